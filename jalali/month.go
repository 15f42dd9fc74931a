/*
month.go - The fixed twelve-month model

PURPOSE:
  Month identity and its static consequences: per-leap-year length, the
  cumulative first-day-of-year offsets, and cyclic month arithmetic.

MONTH LENGTHS:
  Months 1-6 have 31 days, 7-11 have 30, and month 12 (Esfand) has 29 days
  in a common year and 30 in a leap year. Only month 12's LENGTH depends on
  the leap flag; the first-day offsets are leap-independent because Esfand
  is last.

SEE ALSO:
  - year.go: IsLeapYear feeding Length
  - date.go: Uses FirstDayOfYear to locate months from a day-of-year
*/
package jalali

// Month is a month-of-year in the Jalali calendar, Farvardin (1) through
// Esfand (12). The zero value is not a valid month.
type Month int

const (
	Farvardin Month = iota + 1
	Ordibehesht
	Khordad
	Tir
	Mordad
	Shahrivar
	Mehr
	Aban
	Azar
	Dey
	Bahman
	Esfand
)

var monthNames = [...]string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

// firstDayOfYear[m-1] is the 1-based day-of-year on which month m begins.
// Months 1-6 are 31 days and 7-11 are 30, so the table is leap-independent.
var firstDayOfYear = [12]int{
	1, 32, 63, 94, 125, 156, 187, 217, 247, 277, 307, 337,
}

// MonthOf returns the month with the given ordinal, or a RangeError if the
// ordinal lies outside 1..12.
func MonthOf(ordinal int) (Month, error) {
	if ordinal < 1 || ordinal > 12 {
		return 0, rangeErr("month", int64(ordinal), 1, 12)
	}
	return Month(ordinal), nil
}

// Length returns the number of days in the month, given the leap status of
// the containing year.
func (m Month) Length(leap bool) int {
	switch {
	case m <= Shahrivar:
		return 31
	case m <= Bahman:
		return 30
	case leap:
		return 30
	default:
		return 29
	}
}

// FirstDayOfYear returns the 1-based day-of-year of the month's first day.
// The leap flag is accepted for interface symmetry; the offsets do not
// depend on it.
func (m Month) FirstDayOfYear(bool) int {
	return firstDayOfYear[m-1]
}

// Plus returns the month n places after m, wrapping cyclically. Negative n
// moves backward.
func (m Month) Plus(n int) Month {
	return Month(floorMod(int(m)-1+n, 12) + 1)
}

// Minus returns the month n places before m, wrapping cyclically.
func (m Month) Minus(n int) Month {
	return m.Plus(-n)
}

// String returns the Latin-script Persian month name.
func (m Month) String() string {
	if m < Farvardin || m > Esfand {
		return "Month(?)"
	}
	return monthNames[m-1]
}
