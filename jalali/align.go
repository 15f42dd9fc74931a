/*
align.go - Bounded Nowruz alignment table

PURPOSE:
  Cross-calendar conversion cannot rely on a single day-count formula over
  centuries: the Jalali 33-year leap cycle and the Gregorian 4/100/400 rule
  drift against each other, so the Gregorian date of Farvardin 1 (Nowruz)
  wanders between March 20 and March 22. This file pins the alignment with
  an explicit, bounded, independently-testable table: for each Gregorian
  year in the window, the day of March on which Farvardin 1 of Jalali year
  (gregorianYear - 621) falls.

WINDOW:
  Gregorian 1921..2103, i.e. Jalali 1300..1482. Outside the window the
  conversion falls back to day-count arithmetic through the shared epoch-day
  coordinate; that path is a deliberate approximation, and historical
  accuracy outside the window is a non-goal.

SEE ALSO:
  - date.go:      FromGregorian / ToGregorian use nowruzEpochDay
  - gregorian.go: Gregorian side of the alignment
*/
package jalali

// Alignment window bounds, in Gregorian years.
const (
	alignFirstYear = 1921
	alignLastYear  = 2103
)

// nowruzMarchDay[gy - alignFirstYear] is the day of March on which Farvardin
// 1 of Jalali year gy-621 falls.
var nowruzMarchDay = [alignLastYear - alignFirstYear + 1]int8{
	21, 22, 22, 21, 21, 22, 22, 21, 21, 21, 22, 21, 21, 21, 22, 21, 21, 21, 22, 21,
	21, 21, 22, 21, 21, 21, 22, 21, 21, 21, 22, 21, 21, 21, 22, 21, 21, 21, 22, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 20, 21, 21, 21, 20,
	21, 21, 21, 20, 21, 21, 21, 20, 21, 21, 21, 20, 21, 21, 21, 20, 21, 21, 21, 20,
	21, 21, 21, 20, 21, 21, 21, 20, 20, 21, 21, 20, 20, 21, 21, 20, 20, 21, 21, 20,
	20, 21, 21, 20, 20, 21, 21, 20, 20, 21, 21, 20, 20, 21, 21, 20, 20, 21, 21, 20,
	20, 20, 21, 20, 20, 20, 21, 20, 20, 20, 21, 20, 20, 20, 21, 20, 20, 20, 21, 20,
	20, 20, 21, 20, 20, 20, 21, 20, 20, 20, 21, 20, 20, 20, 20, 20, 20, 20, 20, 21,
	21, 21, 21,
}

// inAlignmentWindow reports whether the table covers the Gregorian year.
func inAlignmentWindow(gregorianYear int) bool {
	return gregorianYear >= alignFirstYear && gregorianYear <= alignLastYear
}

// nowruzEpochDay returns the epoch day of Farvardin 1 of Jalali year
// (gregorianYear - 621), and whether the year was inside the table.
func nowruzEpochDay(gregorianYear int) (int64, bool) {
	if !inAlignmentWindow(gregorianYear) {
		return 0, false
	}
	day := int(nowruzMarchDay[gregorianYear-alignFirstYear])
	return GregorianDate{Year: gregorianYear, Month: 3, Day: day}.EpochDay(), true
}
