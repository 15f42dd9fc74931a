/*
unit.go - Temporal units for arithmetic and span measurement

PURPOSE:
  The closed set of units Date.Until and DateTime.Until measure in. Each
  time-based unit carries its exact nanosecond duration; date-based units
  are measured by calendar arithmetic instead.

SEE ALSO:
  - date.go:     Date-based measurement (DaysUntil, MonthsUntil, ...)
  - datetime.go: Combined date+time measurement
*/
package jalali

import "fmt"

// Nanosecond bookkeeping constants.
const (
	nanosPerSecond = int64(1_000_000_000)
	nanosPerMinute = 60 * nanosPerSecond
	nanosPerHour   = 60 * nanosPerMinute
	nanosPerDay    = 24 * nanosPerHour
	secondsPerDay  = int64(86_400)
)

// Unit is a measurable span of time.
type Unit int

const (
	UnitNanos Unit = iota
	UnitSeconds
	UnitMinutes
	UnitHours
	UnitDays
	UnitWeeks
	UnitMonths
	UnitYears
)

var unitNames = [...]string{
	"nanos", "seconds", "minutes", "hours", "days", "weeks", "months", "years",
}

func (u Unit) String() string {
	if u < UnitNanos || u > UnitYears {
		return "unit(?)"
	}
	return unitNames[u]
}

// IsDateBased reports whether the unit is measured by calendar arithmetic.
func (u Unit) IsDateBased() bool { return u >= UnitDays }

// nanos returns the duration of a time-based unit in nanoseconds.
func (u Unit) nanos() int64 {
	switch u {
	case UnitNanos:
		return 1
	case UnitSeconds:
		return nanosPerSecond
	case UnitMinutes:
		return nanosPerMinute
	case UnitHours:
		return nanosPerHour
	default:
		return nanosPerDay
	}
}

// Until measures the signed whole-unit span from d to other in a date-based
// unit, truncating any partial unit toward zero.
func (d Date) Until(other Date, unit Unit) (int64, error) {
	switch unit {
	case UnitDays:
		return d.DaysUntil(other), nil
	case UnitWeeks:
		return d.WeeksUntil(other), nil
	case UnitMonths:
		return d.MonthsUntil(other), nil
	case UnitYears:
		return d.YearsUntil(other), nil
	default:
		return 0, fmt.Errorf("measuring dates in %s: %w", unit, ErrUnsupportedField)
	}
}
