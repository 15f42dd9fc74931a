/*
field.go - Calendar field identifiers and their static ranges

PURPOSE:
  The cross-calendar field set exposed to the external text format engine.
  Printing and parsing never touch calendar internals: they read values with
  Date.Get, build dates with the resolver or Date.With, and size output with
  Range.

FIELD SET:
  Date fields carried by Date; time fields carried by DateTime and delegated
  unchanged to the nano-of-day value.

SEE ALSO:
  - date.go:     Get/With/Range implementations
  - resolve.go:  Field-map resolution into a Date
*/
package jalali

// Field identifies a single calendar or clock field.
type Field int

const (
	FieldYear Field = iota
	FieldMonthOfYear
	FieldDayOfMonth
	FieldDayOfYear
	FieldDayOfWeek
	FieldEpochDay
	FieldEra
	FieldYearOfEra
	FieldAlignedWeekOfMonth
	FieldAlignedWeekOfYear
	FieldProlepticMonth
	FieldWeekBasedYear
	FieldWeekOfWeekBasedYear

	FieldNanoOfDay
	FieldSecondOfDay
	FieldHourOfDay
	FieldMinuteOfHour
	FieldSecondOfMinute
	FieldNanoOfSecond
)

var fieldNames = map[Field]string{
	FieldYear:                "year",
	FieldMonthOfYear:         "month-of-year",
	FieldDayOfMonth:          "day-of-month",
	FieldDayOfYear:           "day-of-year",
	FieldDayOfWeek:           "day-of-week",
	FieldEpochDay:            "epoch-day",
	FieldEra:                 "era",
	FieldYearOfEra:           "year-of-era",
	FieldAlignedWeekOfMonth:  "aligned-week-of-month",
	FieldAlignedWeekOfYear:   "aligned-week-of-year",
	FieldProlepticMonth:      "proleptic-month",
	FieldWeekBasedYear:       "week-based-year",
	FieldWeekOfWeekBasedYear: "week-of-week-based-year",
	FieldNanoOfDay:           "nano-of-day",
	FieldSecondOfDay:         "second-of-day",
	FieldHourOfDay:           "hour-of-day",
	FieldMinuteOfHour:        "minute-of-hour",
	FieldSecondOfMinute:      "second-of-minute",
	FieldNanoOfSecond:        "nano-of-second",
}

func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return "field(?)"
}

// IsDateField reports whether the field is carried by Date.
func (f Field) IsDateField() bool {
	return f <= FieldWeekOfWeekBasedYear
}

// IsTimeField reports whether the field is carried by the time-of-day part
// of DateTime.
func (f Field) IsTimeField() bool {
	return f >= FieldNanoOfDay
}

// ValueRange is the inclusive static [Min, Max] span of a field, as needed
// by a formatter to size its output. It is the outermost range: day-of-month
// reports 1..31 even though a concrete month may allow less.
type ValueRange struct {
	Min int64
	Max int64
}

// Contains reports whether v lies within the range.
func (r ValueRange) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// check validates v against the range, raising a RangeError naming the field.
func (r ValueRange) check(f Field, v int64) error {
	if !r.Contains(v) {
		return rangeErr(f.String(), v, r.Min, r.Max)
	}
	return nil
}

var fieldRanges = map[Field]ValueRange{
	FieldYear:                {MinYear, MaxYear},
	FieldMonthOfYear:         {1, 12},
	FieldDayOfMonth:          {1, 31},
	FieldDayOfYear:           {1, 366},
	FieldDayOfWeek:           {1, 7},
	FieldEpochDay:            {minEpochDay, maxEpochDay},
	FieldEra:                 {0, 1},
	FieldYearOfEra:           {1, MaxYear + 1},
	FieldAlignedWeekOfMonth:  {1, 5},
	FieldAlignedWeekOfYear:   {1, 53},
	FieldProlepticMonth:      {MinYear * 12, MaxYear*12 + 11},
	FieldWeekBasedYear:       {MinYear, MaxYear},
	FieldWeekOfWeekBasedYear: {1, 53},
	FieldNanoOfDay:           {0, nanosPerDay - 1},
	FieldSecondOfDay:         {0, 86399},
	FieldHourOfDay:           {0, 23},
	FieldMinuteOfHour:        {0, 59},
	FieldSecondOfMinute:      {0, 59},
	FieldNanoOfSecond:        {0, 999_999_999},
}

// RangeOf returns the static range of a field.
func RangeOf(f Field) (ValueRange, error) {
	r, ok := fieldRanges[f]
	if !ok {
		return ValueRange{}, ErrUnsupportedField
	}
	return r, nil
}
