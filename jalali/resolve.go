/*
resolve.go - Reconstructing a concrete date from parsed fields

PURPOSE:
  A parser produces a partially redundant field->value map; this engine
  turns it into one concrete Date under a caller-chosen strictness mode.
  The resolvable combinations form a closed, ordered table: each entry
  declares the fields it consumes and its resolver, the table is scanned
  once, and the first full match wins. Consumed fields are deleted from the
  map so the caller can cross-validate whatever remains without
  reprocessing.

MODES:
  ResolveStrict  - any invalidity fails
  ResolveClamp   - an invalid day clamps to the last valid day; fields
                   outside their static range still fail
  ResolveLenient - overflow becomes further arithmetic (month 13 is month 1
                   of the following year)

CONCURRENCY:
  The field map is mutable and owned by a single Resolve call. Never share
  one map across concurrent resolutions.

SEE ALSO:
  - date.go:  Strict factories and the previous-valid clamp
  - week.go:  The Farvardin-4 anchor used by the week combinations
*/
package jalali

import "fmt"

// ResolveMode selects the strictness of field resolution.
type ResolveMode int

const (
	ResolveStrict ResolveMode = iota
	ResolveClamp
	ResolveLenient
)

var resolveModeNames = [...]string{"strict", "clamp", "lenient"}

func (m ResolveMode) String() string {
	if m < ResolveStrict || m > ResolveLenient {
		return "mode(?)"
	}
	return resolveModeNames[m]
}

// FieldValues is the transient field->value map consumed during one resolve
// cycle. It is never persisted and never shared between calls.
type FieldValues map[Field]int64

// combination is one entry of the resolution table: the fields it consumes
// and the resolver run when all of them are present.
type combination struct {
	name    string
	fields  []Field
	resolve func(v FieldValues, mode ResolveMode) (Date, error)
}

// combinations is scanned in order; the first entry whose fields are all
// present resolves the date. Order matters: the epoch day is authoritative
// when present, explicit fields beat derived week fields.
var combinations = []combination{
	{
		name:    "epoch-day",
		fields:  []Field{FieldEpochDay},
		resolve: resolveEpochDay,
	},
	{
		name:    "year-month-day",
		fields:  []Field{FieldYear, FieldMonthOfYear, FieldDayOfMonth},
		resolve: resolveYearMonthDay,
	},
	{
		name:    "year-day-of-year",
		fields:  []Field{FieldYear, FieldDayOfYear},
		resolve: resolveYearDay,
	},
	{
		name:    "year-aligned-week",
		fields:  []Field{FieldYear, FieldAlignedWeekOfYear, FieldDayOfWeek},
		resolve: resolveWeek(FieldYear, FieldAlignedWeekOfYear),
	},
	{
		name:    "week-based-year",
		fields:  []Field{FieldWeekBasedYear, FieldWeekOfWeekBasedYear, FieldDayOfWeek},
		resolve: resolveWeek(FieldWeekBasedYear, FieldWeekOfWeekBasedYear),
	},
}

// Resolve converts the field map into a concrete Date. The matched
// combination's fields are removed from the map; with an epoch day present,
// every other date field is cross-checked against the resolved date and
// consumed as well.
func Resolve(values FieldValues, mode ResolveMode) (Date, error) {
	for _, c := range combinations {
		if !hasAll(values, c.fields) {
			continue
		}
		d, err := c.resolve(values, mode)
		if err != nil {
			return Date{}, fmt.Errorf("resolving %s: %w", c.name, err)
		}
		for _, f := range c.fields {
			delete(values, f)
		}
		if c.name == "epoch-day" {
			if err := CrossCheck(d, values); err != nil {
				return Date{}, err
			}
		}
		return d, nil
	}
	return Date{}, ErrUnresolved
}

// CrossCheck verifies every date field remaining in the map against the
// resolved date, consuming the ones that match. A mismatch is a
// CalendarStateError regardless of mode.
func CrossCheck(d Date, values FieldValues) error {
	for f, want := range values {
		if !f.IsDateField() {
			continue
		}
		got, err := d.Get(f)
		if err != nil {
			return err
		}
		if got != want {
			return stateErr("%s %d conflicts with resolved date %s (%s is %d)", f, want, d, f, got)
		}
		delete(values, f)
	}
	return nil
}

func hasAll(values FieldValues, fields []Field) bool {
	for _, f := range fields {
		if _, ok := values[f]; !ok {
			return false
		}
	}
	return true
}

// =============================================================================
// RESOLVERS
// =============================================================================

func resolveEpochDay(v FieldValues, _ ResolveMode) (Date, error) {
	return FromEpochDay(v[FieldEpochDay])
}

func resolveYearMonthDay(v FieldValues, mode ResolveMode) (Date, error) {
	year, month, day := v[FieldYear], v[FieldMonthOfYear], v[FieldDayOfMonth]
	if err := checkYear(year); err != nil {
		return Date{}, err
	}
	switch mode {
	case ResolveStrict:
		return newChecked(year, month, day)

	case ResolveClamp:
		m, err := MonthOf(checkedInt(month))
		if err != nil {
			return Date{}, err
		}
		if day < 1 || day > 31 {
			return Date{}, rangeErr("day-of-month", day, 1, 31)
		}
		return resolvePreviousValid(int(year), m, int(day)), nil

	default: // ResolveLenient
		d, err := New(int(year), 1, 1)
		if err != nil {
			return Date{}, err
		}
		if d, err = d.PlusMonths(month - 1); err != nil {
			return Date{}, err
		}
		return d.PlusDays(day - 1)
	}
}

func resolveYearDay(v FieldValues, mode ResolveMode) (Date, error) {
	year, doy := v[FieldYear], v[FieldDayOfYear]
	if err := checkYear(year); err != nil {
		return Date{}, err
	}
	switch mode {
	case ResolveStrict:
		return FromYearDay(int(year), checkedInt(doy))

	case ResolveClamp:
		if doy < 1 || doy > 366 {
			return Date{}, rangeErr("day-of-year", doy, 1, 366)
		}
		if n := int64(YearLength(int(year))); doy > n {
			doy = n
		}
		return FromYearDay(int(year), int(doy))

	default: // ResolveLenient
		d, err := New(int(year), 1, 1)
		if err != nil {
			return Date{}, err
		}
		return d.PlusDays(doy - 1)
	}
}

// resolveWeek builds the resolver shared by the aligned-week and
// week-based-year combinations; both anchor on day 4 of month 1.
func resolveWeek(yearField, weekField Field) func(FieldValues, ResolveMode) (Date, error) {
	return func(v FieldValues, mode ResolveMode) (Date, error) {
		year, week, dow := v[yearField], v[weekField], v[FieldDayOfWeek]
		if err := checkYear(year); err != nil {
			return Date{}, err
		}
		if dow < 1 || dow > 7 {
			return Date{}, rangeErr("day-of-week", dow, 1, 7)
		}
		switch mode {
		case ResolveStrict:
			if week < 1 || week > 53 {
				return Date{}, rangeErr(weekField.String(), week, 1, 53)
			}
			return DateOfWeekFields(int(year), int(week), Weekday(dow))

		case ResolveClamp:
			if week < 1 || week > 53 {
				return Date{}, rangeErr(weekField.String(), week, 1, 53)
			}
			if max := int64(WeeksInYear(int(year))); week > max {
				week = max
			}
			return DateOfWeekFields(int(year), int(week), Weekday(dow))

		default: // ResolveLenient: week overflow keeps walking
			anchor, err := New(int(year), 1, 4)
			if err != nil {
				return Date{}, err
			}
			weekStart, err := anchor.PlusDays(-int64(anchor.DayOfWeek() - 1))
			if err != nil {
				return Date{}, err
			}
			if weekStart, err = weekStart.PlusWeeks(week - 1); err != nil {
				return Date{}, err
			}
			return weekStart.PlusDays(dow - 1)
		}
	}
}

// newChecked is New over int64 inputs, reporting static RangeErrors for
// values too large to narrow.
func newChecked(year, month, day int64) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, rangeErr("month", month, 1, 12)
	}
	if day < 1 || day > 31 {
		return Date{}, rangeErr("day-of-month", day, 1, 31)
	}
	return New(int(year), int(month), int(day))
}

// checkedInt narrows an int64 already destined for a range check; values
// beyond int bounds saturate so the check still fails cleanly.
func checkedInt(v int64) int {
	const maxInt = int64(^uint(0) >> 1)
	if v > maxInt {
		return int(maxInt)
	}
	if v < -maxInt-1 {
		return int(-maxInt - 1)
	}
	return int(v)
}
