/*
datetime.go - Date paired with a nanosecond-precision time-of-day

PURPOSE:
  The DateTime value: a Jalali Date plus a nano-of-day in
  [0, 86_400_000_000_000). The time-of-day never represents a full day or
  more; arithmetic folds whole-day carry (positive or negative) into the
  date with floor division, so a negative delta larger than one day still
  lands on a time-of-day in range with the correctly shifted date.

ZONES:
  This core has no time-zone concept. ToEpochSecond/FromEpochSecond take an
  opaque offset in seconds so an external zone-rules engine can do the
  conversion without touching calendar internals.

SEE ALSO:
  - date.go: The date half and its clamping/overflow policies
  - unit.go: Units and their nanosecond constants
*/
package jalali

import (
	"fmt"
	"math"
	"strings"
)

// DateTime is an immutable Jalali date-time. The zero value pairs the
// invalid zero Date with midnight; obtain values through the factories.
type DateTime struct {
	date Date
	nano int64 // nano-of-day, [0, nanosPerDay)
}

// =============================================================================
// FACTORIES
// =============================================================================

// NewDateTime combines a date with a clock time.
func NewDateTime(date Date, hour, minute, second, nano int) (DateTime, error) {
	if hour < 0 || hour > 23 {
		return DateTime{}, rangeErr("hour-of-day", int64(hour), 0, 23)
	}
	if minute < 0 || minute > 59 {
		return DateTime{}, rangeErr("minute-of-hour", int64(minute), 0, 59)
	}
	if second < 0 || second > 59 {
		return DateTime{}, rangeErr("second-of-minute", int64(second), 0, 59)
	}
	if nano < 0 || nano > 999_999_999 {
		return DateTime{}, rangeErr("nano-of-second", int64(nano), 0, 999_999_999)
	}
	nod := int64(hour)*nanosPerHour + int64(minute)*nanosPerMinute +
		int64(second)*nanosPerSecond + int64(nano)
	return DateTime{date: date, nano: nod}, nil
}

// DateTimeOf builds a DateTime from explicit fields.
func DateTimeOf(year, month, day, hour, minute, second, nano int) (DateTime, error) {
	d, err := New(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	return NewDateTime(d, hour, minute, second, nano)
}

// FromNanoOfDay pairs a date with a raw nano-of-day value.
func FromNanoOfDay(date Date, nanoOfDay int64) (DateTime, error) {
	if nanoOfDay < 0 || nanoOfDay >= nanosPerDay {
		return DateTime{}, rangeErr("nano-of-day", nanoOfDay, 0, nanosPerDay-1)
	}
	return DateTime{date: date, nano: nanoOfDay}, nil
}

// AtStartOfDay returns the date at midnight.
func (d Date) AtStartOfDay() DateTime {
	return DateTime{date: d}
}

// FromEpochSecond converts an epoch second count plus a nano adjustment,
// shifted by an opaque zone offset in seconds.
func FromEpochSecond(epochSecond int64, nano int, offsetSeconds int) (DateTime, error) {
	if nano < 0 || nano > 999_999_999 {
		return DateTime{}, rangeErr("nano-of-second", int64(nano), 0, 999_999_999)
	}
	local := epochSecond + int64(offsetSeconds)
	date, err := FromEpochDay(floorDiv(local, secondsPerDay))
	if err != nil {
		return DateTime{}, err
	}
	nod := floorMod64(local, secondsPerDay)*nanosPerSecond + int64(nano)
	return DateTime{date: date, nano: nod}, nil
}

// DateTimeFromDigits builds a DateTime from a compact digit string of 8 to
// 23 digits (yyyyMMdd[hh[mm[ss[n..]]]], up to 9 fraction digits) after
// stripping every non-digit character. A dangling single digit inside the
// hh/mm/ss groups is rejected.
func DateTimeFromDigits(s string) (DateTime, error) {
	digits := stripNonDigits(s)
	if len(digits) < 8 || len(digits) > 23 {
		return DateTime{}, rangeErr("digit count", int64(len(digits)), 8, 23)
	}
	date, err := New(atoi(digits[0:4]), atoi(digits[4:6]), atoi(digits[6:8]))
	if err != nil {
		return DateTime{}, err
	}
	rest := digits[8:]
	var hour, minute, second, nano int
	for _, part := range []*int{&hour, &minute, &second} {
		if rest == "" {
			break
		}
		if len(rest) == 1 {
			return DateTime{}, stateErr("truncated time digits in %q", s)
		}
		*part = atoi(rest[0:2])
		rest = rest[2:]
	}
	if rest != "" {
		// Remaining digits are the fraction, right-padded to nanoseconds.
		nano = atoi(rest) * pow10(9-len(rest))
	}
	return NewDateTime(date, hour, minute, second, nano)
}

func pow10(n int) int {
	p := 1
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}

// =============================================================================
// FIELD READ
// =============================================================================

func (dt DateTime) Date() Date       { return dt.date }
func (dt DateTime) NanoOfDay() int64 { return dt.nano }
func (dt DateTime) Hour() int        { return int(dt.nano / nanosPerHour) }
func (dt DateTime) Minute() int      { return int(dt.nano / nanosPerMinute % 60) }
func (dt DateTime) Second() int      { return int(dt.nano / nanosPerSecond % 60) }
func (dt DateTime) Nano() int        { return int(dt.nano % nanosPerSecond) }
func (dt DateTime) SecondOfDay() int { return int(dt.nano / nanosPerSecond) }

// Get returns a field value, delegating date fields to the Date half and
// serving time fields from nano-of-day unchanged.
func (dt DateTime) Get(f Field) (int64, error) {
	if f.IsDateField() {
		return dt.date.Get(f)
	}
	switch f {
	case FieldNanoOfDay:
		return dt.nano, nil
	case FieldSecondOfDay:
		return int64(dt.SecondOfDay()), nil
	case FieldHourOfDay:
		return int64(dt.Hour()), nil
	case FieldMinuteOfHour:
		return int64(dt.Minute()), nil
	case FieldSecondOfMinute:
		return int64(dt.Second()), nil
	case FieldNanoOfSecond:
		return int64(dt.Nano()), nil
	default:
		return 0, fmt.Errorf("get %s: %w", f, ErrUnsupportedField)
	}
}

// Range mirrors Date.Range for date fields and is static for time fields.
func (dt DateTime) Range(f Field) (ValueRange, error) {
	if f.IsDateField() {
		return dt.date.Range(f)
	}
	return RangeOf(f)
}

// With replaces one field, keeping every other field fixed.
func (dt DateTime) With(f Field, v int64) (DateTime, error) {
	if f.IsDateField() {
		d, err := dt.date.With(f, v)
		if err != nil {
			return DateTime{}, err
		}
		return DateTime{date: d, nano: dt.nano}, nil
	}
	if r, err := RangeOf(f); err != nil {
		return DateTime{}, err
	} else if err := r.check(f, v); err != nil {
		return DateTime{}, err
	}
	switch f {
	case FieldNanoOfDay:
		return DateTime{date: dt.date, nano: v}, nil
	case FieldSecondOfDay:
		return DateTime{date: dt.date, nano: v*nanosPerSecond + int64(dt.Nano())}, nil
	case FieldHourOfDay:
		return NewDateTime(dt.date, int(v), dt.Minute(), dt.Second(), dt.Nano())
	case FieldMinuteOfHour:
		return NewDateTime(dt.date, dt.Hour(), int(v), dt.Second(), dt.Nano())
	case FieldSecondOfMinute:
		return NewDateTime(dt.date, dt.Hour(), dt.Minute(), int(v), dt.Nano())
	case FieldNanoOfSecond:
		return NewDateTime(dt.date, dt.Hour(), dt.Minute(), dt.Second(), int(v))
	default:
		return DateTime{}, fmt.Errorf("with %s: %w", f, ErrUnsupportedField)
	}
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// plusNanos adds a signed nanosecond delta, carrying whole days into the
// date with floor semantics.
func (dt DateTime) plusNanos(delta int64) (DateTime, error) {
	if delta > 0 && dt.nano > math.MaxInt64-delta {
		return DateTime{}, &OverflowError{Op: "time-of-day addition"}
	}
	if delta < 0 && dt.nano < math.MinInt64-delta {
		return DateTime{}, &OverflowError{Op: "time-of-day subtraction"}
	}
	total := dt.nano + delta
	carry := floorDiv(total, nanosPerDay)
	date, err := dt.date.PlusDays(carry)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: date, nano: floorMod64(total, nanosPerDay)}, nil
}

// plusScaled multiplies n by a unit constant with an explicit overflow check
// before widening into the nano delta.
func (dt DateTime) plusScaled(n, unitNanos int64) (DateTime, error) {
	if n > math.MaxInt64/unitNanos || n < math.MinInt64/unitNanos {
		return DateTime{}, &OverflowError{Op: "unit delta widening"}
	}
	return dt.plusNanos(n * unitNanos)
}

func (dt DateTime) PlusNanos(n int64) (DateTime, error)   { return dt.plusNanos(n) }
func (dt DateTime) PlusSeconds(n int64) (DateTime, error) { return dt.plusScaled(n, nanosPerSecond) }
func (dt DateTime) PlusMinutes(n int64) (DateTime, error) { return dt.plusScaled(n, nanosPerMinute) }
func (dt DateTime) PlusHours(n int64) (DateTime, error)   { return dt.plusScaled(n, nanosPerHour) }

func (dt DateTime) PlusDays(n int64) (DateTime, error)   { return dt.plusDate(n, Date.PlusDays) }
func (dt DateTime) PlusWeeks(n int64) (DateTime, error)  { return dt.plusDate(n, Date.PlusWeeks) }
func (dt DateTime) PlusMonths(n int64) (DateTime, error) { return dt.plusDate(n, Date.PlusMonths) }
func (dt DateTime) PlusYears(n int64) (DateTime, error)  { return dt.plusDate(n, Date.PlusYears) }

func (dt DateTime) plusDate(n int64, plus func(Date, int64) (Date, error)) (DateTime, error) {
	d, err := plus(dt.date, n)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, nano: dt.nano}, nil
}

// =============================================================================
// SPANS AND ORDERING
// =============================================================================

// Until measures the signed whole-unit span from dt to other, truncating
// partial units toward zero. Date-based units delegate to the Date half with
// a one-day borrow when the time-of-day ordering disagrees with the date
// ordering; time-based units divide the exact nanosecond span by the unit's
// duration constant.
func (dt DateTime) Until(other DateTime, unit Unit) (int64, error) {
	if unit.IsDateBased() {
		end := other.date
		if end.After(dt.date) && other.nano < dt.nano {
			var err error
			if end, err = end.PlusDays(-1); err != nil {
				return 0, err
			}
		} else if end.Before(dt.date) && other.nano > dt.nano {
			var err error
			if end, err = end.PlusDays(1); err != nil {
				return 0, err
			}
		}
		return dt.date.Until(end, unit)
	}

	days := dt.date.DaysUntil(other.date)
	nanos := other.nano - dt.nano
	if days > 0 && nanos < 0 {
		days--
		nanos += nanosPerDay
	} else if days < 0 && nanos > 0 {
		days++
		nanos -= nanosPerDay
	}
	if days > math.MaxInt64/nanosPerDay || days < math.MinInt64/nanosPerDay {
		return 0, &OverflowError{Op: fmt.Sprintf("measuring %d days in %s", days, unit)}
	}
	total := days * nanosPerDay
	if (nanos > 0 && total > math.MaxInt64-nanos) || (nanos < 0 && total < math.MinInt64-nanos) {
		return 0, &OverflowError{Op: "nanosecond span"}
	}
	return (total + nanos) / unit.nanos(), nil
}

// Compare orders by date, then nano-of-day.
func (dt DateTime) Compare(other DateTime) int {
	if c := dt.date.Compare(other.date); c != 0 {
		return c
	}
	switch {
	case dt.nano < other.nano:
		return -1
	case dt.nano > other.nano:
		return 1
	default:
		return 0
	}
}

func (dt DateTime) Before(other DateTime) bool { return dt.Compare(other) < 0 }
func (dt DateTime) After(other DateTime) bool  { return dt.Compare(other) > 0 }
func (dt DateTime) Equal(other DateTime) bool  { return dt == other }

// ToEpochSecond converts to an epoch second count given an opaque zone
// offset in seconds; sub-second precision is truncated.
func (dt DateTime) ToEpochSecond(offsetSeconds int) int64 {
	return dt.date.EpochDay()*secondsPerDay + int64(dt.SecondOfDay()) - int64(offsetSeconds)
}

// =============================================================================
// TEXT
// =============================================================================

// String renders the canonical form: the date, 'T', and the shortest clock
// text that round-trips (seconds and the fraction are omitted when zero;
// the fraction keeps 3, 6 or 9 digits).
func (dt DateTime) String() string {
	var sb strings.Builder
	sb.WriteString(dt.date.String())
	sb.WriteByte('T')
	fmt.Fprintf(&sb, "%02d:%02d", dt.Hour(), dt.Minute())
	if dt.Second() != 0 || dt.Nano() != 0 {
		fmt.Fprintf(&sb, ":%02d", dt.Second())
	}
	switch nano := dt.Nano(); {
	case nano == 0:
	case nano%1_000_000 == 0:
		fmt.Fprintf(&sb, ".%03d", nano/1_000_000)
	case nano%1_000 == 0:
		fmt.Fprintf(&sb, ".%06d", nano/1_000)
	default:
		fmt.Fprintf(&sb, ".%09d", nano)
	}
	return sb.String()
}

// ParseDateTime reads the canonical form produced by String.
func ParseDateTime(s string) (DateTime, error) {
	datePart, timePart, found := strings.Cut(s, "T")
	if !found {
		return DateTime{}, stateErr("cannot parse %q as a date-time: missing 'T'", s)
	}
	date, err := Parse(datePart)
	if err != nil {
		return DateTime{}, err
	}
	var frac string
	if i := strings.IndexByte(timePart, '.'); i >= 0 {
		timePart, frac = timePart[:i], timePart[i+1:]
	}
	clock := strings.Split(timePart, ":")
	if len(clock) < 2 || len(clock) > 3 {
		return DateTime{}, stateErr("cannot parse %q as a clock time", timePart)
	}
	for _, c := range clock {
		if len(c) != 2 || !isDigits(c) {
			return DateTime{}, stateErr("cannot parse %q as a clock time", timePart)
		}
	}
	second := 0
	if len(clock) == 3 {
		second = atoi(clock[2])
	}
	nano := 0
	if frac != "" {
		if len(frac) > 9 || !isDigits(frac) {
			return DateTime{}, stateErr("cannot parse fraction %q", frac)
		}
		nano = atoi(frac) * pow10(9-len(frac))
	}
	return NewDateTime(date, atoi(clock[0]), atoi(clock[1]), second, nano)
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (dt DateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *DateTime) UnmarshalText(b []byte) error {
	v, err := ParseDateTime(string(b))
	if err == nil {
		*dt = v
	}
	return err
}
