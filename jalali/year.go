/*
year.go - Leap-year rule and year-level arithmetic

PURPOSE:
  The leap-year predicate for the Jalali (solar hijri) calendar and the
  quantities derived from it: year length, era and year-of-era.

LEAP RULE:
  A year is leap iff floorMod(year, 33) is one of {1, 5, 9, 13, 17, 22, 26,
  30}. Exactly 8 leap years occur in any 33 consecutive years, giving the
  cycle length of 33*365 + 8 = 12053 days used by the epoch-day conversion.
  The rule is deliberately unrelated to the Gregorian 4/100/400 rule and has
  no era special-casing; it extends prolepticly in both directions.

ERA MODEL:
  Two eras. Era 1 (AP, Anno Persico) covers years >= 1 with year-of-era equal
  to the proleptic year. Era 0 covers everything earlier with year-of-era
  1 - year, so year 0 is year 1 of era 0.

SEE ALSO:
  - month.go: Month lengths depend on IsLeapYear for month 12
  - date.go:  Epoch-day conversion built on the 33-year cycle
*/
package jalali

// Year range supported by the calendar. Arithmetic leaving this range raises
// OverflowError rather than wrapping.
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999
)

// Days and leap years per 33-year cycle.
const (
	yearsPerCycle = 33
	leapsPerCycle = 8
	daysPerCycle  = yearsPerCycle*365 + leapsPerCycle // 12053
)

// leapOrdinals marks the residues of leap years within the 33-year cycle.
var leapOrdinals = [yearsPerCycle]bool{
	1: true, 5: true, 9: true, 13: true, 17: true, 22: true, 26: true, 30: true,
}

// leapsBeforeOrdinal[r] counts leap residues strictly below r, so that
// leapsBeforeOrdinal[33] == 8. Used by the closed-form epoch-day conversion.
var leapsBeforeOrdinal = [yearsPerCycle + 1]int{
	0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5,
	5, 5, 5, 6, 6, 6, 6, 7, 7, 7,
	7, 8, 8, 8,
}

// IsLeapYear reports whether the given Jalali year has 366 days.
func IsLeapYear(year int) bool {
	return leapOrdinals[floorMod(year, yearsPerCycle)]
}

// YearLength returns the number of days in the given year: 365 or 366.
func YearLength(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// EraOf returns the era of a proleptic year: 1 for years >= 1, 0 otherwise.
func EraOf(year int) int {
	if year >= 1 {
		return 1
	}
	return 0
}

// YearOfEra returns the within-era year number, always >= 1.
func YearOfEra(year int) int {
	if year >= 1 {
		return year
	}
	return 1 - year
}

// checkYear validates a proleptic year against the supported range.
func checkYear(year int64) error {
	if year < MinYear || year > MaxYear {
		return rangeErr("year", year, MinYear, MaxYear)
	}
	return nil
}

// =============================================================================
// INTEGER HELPERS - floor semantics for negative operands
// =============================================================================

// floorDiv returns the quotient of a/b rounded toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns a - floorDiv(a, b)*b, always in [0, b) for b > 0.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func floorMod64(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
