/*
gregorian.go - Proleptic Gregorian reference adapter

PURPOSE:
  The minimal slice of the Gregorian calendar this core needs: converting a
  proleptic Gregorian year/month/day to and from the shared epoch-day
  coordinate (day 0 = 1970-01-01). Everything Jalali-to-Gregorian goes
  through these two functions plus the bounded alignment table in align.go.

ALGORITHM:
  Whole-cycle arithmetic over the 400-year Gregorian cycle (146097 days),
  shifted so each cycle starts on March 1. Exact over the full proleptic
  range; no lookup tables.

SEE ALSO:
  - align.go: Nowruz alignment table consuming these conversions
  - date.go:  FromGregorian / ToGregorian entry points
*/
package jalali

// GregorianDate is a plain proleptic Gregorian (year, month, day) triple.
// It exists only as a conversion endpoint; all calendrical behavior lives on
// the Jalali Date type.
type GregorianDate struct {
	Year  int
	Month int
	Day   int
}

// gregDaysBefore[m] is the number of days before month m+1 in a common year.
var gregDaysBefore = [13]int{
	0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365,
}

// IsGregorianLeapYear implements the 4/100/400 rule.
func IsGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// gregMonthLength returns the number of days in a proleptic Gregorian month.
func gregMonthLength(year, month int) int {
	if month == 2 && IsGregorianLeapYear(year) {
		return 29
	}
	return gregDaysBefore[month] - gregDaysBefore[month-1]
}

// Validate checks that the triple is a real proleptic Gregorian date.
func (g GregorianDate) Validate() error {
	if err := checkYear(int64(g.Year)); err != nil {
		return err
	}
	if g.Month < 1 || g.Month > 12 {
		return rangeErr("gregorian month", int64(g.Month), 1, 12)
	}
	if g.Day < 1 || g.Day > 31 {
		return rangeErr("gregorian day", int64(g.Day), 1, 31)
	}
	if max := gregMonthLength(g.Year, g.Month); g.Day > max {
		return stateErr("gregorian day %d invalid for %04d-%02d (max %d)", g.Day, g.Year, g.Month, max)
	}
	return nil
}

// EpochDay returns the signed day count from 1970-01-01 to g. The triple is
// assumed valid; use Validate first for caller-supplied input.
func (g GregorianDate) EpochDay() int64 {
	y := int64(g.Year)
	m := int64(g.Month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]
	var mShift int64
	if m > 2 {
		mShift = m - 3
	} else {
		mShift = m + 9
	}
	doy := (153*mShift+2)/5 + int64(g.Day) - 1          // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy              // [0, 146096]
	return era*146097 + doe - 719468                    // shift epoch to 1970-01-01
}

// gregorianOfEpochDay is the inverse of GregorianDate.EpochDay.
func gregorianOfEpochDay(epochDay int64) GregorianDate {
	z := epochDay + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	var month int64
	if mp < 10 {
		month = mp + 3
	} else {
		month = mp - 9
	}
	if month <= 2 {
		y++
	}
	return GregorianDate{Year: int(y), Month: int(month), Day: int(day)}
}
