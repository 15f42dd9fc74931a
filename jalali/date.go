/*
date.go - The Jalali date value

PURPOSE:
  An immutable (year, month, day) value in the Jalali solar calendar, never
  constructible in an invalid state. Every "mutator" returns a new value;
  validated factories cover the entry points: explicit fields, day-of-year,
  epoch day, Gregorian date, digit string, and arithmetic on another Date.

EPOCH:
  Epoch day 0 is Jalali 1348-10-11, which is Gregorian 1970-01-01. The
  conversion uses the closed form of the 33-year/8-leap cycle (12053 days)
  plus a residual scan bounded by one cycle; its correctness is pinned by
  the epoch-day round-trip property test.

CLAMPING POLICY:
  WithYear and WithMonth clamp an out-of-range day-of-month to the target
  month's last valid day. New and WithDayOfMonth fail strictly instead.
  Month arithmetic clamps the same way and never rolls into the next month.

SEE ALSO:
  - year.go:     Leap rule and the cycle constants
  - month.go:    Month lengths and first-day offsets
  - align.go:    Nowruz alignment table for Gregorian conversion
  - datetime.go: Date paired with a time-of-day
*/
package jalali

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// epochOffsetDays is the day count from Farvardin 1 of year 0 to epoch day 0
// (1348-10-11): 1348 whole years (492347 days) plus 286 days into 1348.
const epochOffsetDays = 492633

// Epoch day bounds implied by the year range.
const (
	minEpochDay = -365_242_916_510 // MinYear-01-01
	maxEpochDay = 365_241_931_609  // MaxYear-12-30 (MaxYear is leap)
)

// Weekday is a Jalali day of week, Shanbeh (Saturday) = 1 through Jomeh
// (Friday) = 7.
type Weekday int

const (
	Shanbeh Weekday = iota + 1 // Saturday
	Yekshanbeh
	Doshanbeh
	Seshanbeh
	Chaharshanbeh
	Panjshanbeh
	Jomeh // Friday
)

var weekdayNames = [...]string{
	"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
}

func (w Weekday) String() string {
	if w < Shanbeh || w > Jomeh {
		return "Weekday(?)"
	}
	return weekdayNames[w-1]
}

// =============================================================================
// DATE VALUE
// =============================================================================

// Date is an immutable Jalali calendar date. The zero value is the invalid
// date 0000-00-00; obtain values through the factory functions.
type Date struct {
	year  int
	month Month
	day   int
}

// New returns the date with the given proleptic year, month ordinal and
// day-of-month. It fails with a RangeError for values outside their static
// ranges and a CalendarStateError for a day beyond the exact month maximum.
func New(year, month, day int) (Date, error) {
	if err := checkYear(int64(year)); err != nil {
		return Date{}, err
	}
	m, err := MonthOf(month)
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > 31 {
		return Date{}, rangeErr("day-of-month", int64(day), 1, 31)
	}
	leap := IsLeapYear(year)
	if max := m.Length(leap); day > max {
		if m == Esfand && day == 30 {
			return Date{}, stateErr("Esfand has 29 days in %d; day 30 exists only in leap years", year)
		}
		return Date{}, stateErr("day %d invalid for %s %d (max %d)", day, m, year, max)
	}
	return Date{year: year, month: m, day: day}, nil
}

// MustNew is New for statically known-valid dates; it panics on error.
func MustNew(year, month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromYearDay returns the date at the given 1-based day-of-year. Day 366
// of a non-leap year is a CalendarStateError.
func FromYearDay(year, dayOfYear int) (Date, error) {
	if err := checkYear(int64(year)); err != nil {
		return Date{}, err
	}
	if dayOfYear < 1 || dayOfYear > 366 {
		return Date{}, rangeErr("day-of-year", int64(dayOfYear), 1, 366)
	}
	leap := IsLeapYear(year)
	if dayOfYear == 366 && !leap {
		return Date{}, stateErr("day-of-year 366 invalid for non-leap year %d", year)
	}
	// Locate the month whose [first, first+length) range holds the day.
	m := Esfand
	for ; m > Farvardin; m-- {
		if firstDayOfYear[m-1] <= dayOfYear {
			break
		}
	}
	return Date{year: year, month: m, day: dayOfYear - firstDayOfYear[m-1] + 1}, nil
}

// FromEpochDay converts a signed day count relative to 1970-01-01
// (= 1348-10-11).
func FromEpochDay(epochDay int64) (Date, error) {
	if epochDay < minEpochDay || epochDay > maxEpochDay {
		return Date{}, rangeErr("epoch-day", epochDay, minEpochDay, maxEpochDay)
	}
	abs := epochDay + epochOffsetDays // days since Farvardin 1 of year 0
	cycle := floorDiv(abs, daysPerCycle)
	rem := abs - cycle*daysPerCycle // [0, daysPerCycle)
	year := cycle * yearsPerCycle
	// Residual scan within one 33-year cycle.
	for n := int64(YearLength(int(year))); rem >= n; n = int64(YearLength(int(year))) {
		rem -= n
		year++
	}
	return FromYearDay(int(year), int(rem)+1)
}

// FromGregorian converts a proleptic Gregorian date. Inside the alignment
// window the conversion is anchored on the tabulated Nowruz day; outside it,
// day-count arithmetic through the shared epoch is used as a documented
// approximation.
func FromGregorian(g GregorianDate) (Date, error) {
	if err := g.Validate(); err != nil {
		return Date{}, err
	}
	e := g.EpochDay()
	if nowruz, ok := nowruzEpochDay(g.Year); ok {
		if e >= nowruz {
			return FromYearDay(g.Year-621, int(e-nowruz)+1)
		}
		if prev, ok := nowruzEpochDay(g.Year - 1); ok {
			return FromYearDay(g.Year-622, int(e-prev)+1)
		}
	}
	return FromEpochDay(e)
}

// FromTime converts the calendar date of t (in t's location).
func FromTime(t time.Time) (Date, error) {
	y, m, d := t.Date()
	return FromGregorian(GregorianDate{Year: y, Month: int(m), Day: d})
}

// Today returns the current date in the local time zone.
func Today() Date {
	d, err := FromTime(time.Now())
	if err != nil {
		// time.Now is always inside the alignment window during this
		// program's operational lifetime.
		panic(err)
	}
	return d
}

// FromDigits builds a date from a compact digit string: exactly 8 digits
// (yyyyMMdd) after stripping every non-digit character.
func FromDigits(s string) (Date, error) {
	digits := stripNonDigits(s)
	if len(digits) != 8 {
		return Date{}, rangeErr("digit count", int64(len(digits)), 8, 8)
	}
	return New(atoi(digits[0:4]), atoi(digits[4:6]), atoi(digits[6:8]))
}

// =============================================================================
// FIELD READ
// =============================================================================

func (d Date) Year() int    { return d.year }
func (d Date) Month() Month { return d.month }
func (d Date) Day() int     { return d.day }

// DayOfYear returns the 1-based ordinal of the date within its year.
func (d Date) DayOfYear() int {
	return firstDayOfYear[d.month-1] + d.day - 1
}

// EpochDay returns the signed day count from 1970-01-01 (= 1348-10-11).
func (d Date) EpochDay() int64 {
	y := int64(d.year)
	days := 365*y + floorDiv(y, yearsPerCycle)*leapsPerCycle +
		int64(leapsBeforeOrdinal[floorMod(d.year, yearsPerCycle)])
	return days + int64(d.DayOfYear()) - 1 - epochOffsetDays
}

// DayOfWeek returns the Jalali weekday. Epoch day 0 is a Thursday
// (Panjshanbeh, 6), fixing the reference offset.
func (d Date) DayOfWeek() Weekday {
	return Weekday(floorMod64(d.EpochDay()+5, 7) + 1)
}

// AlignedWeekOfMonth numbers weeks from the month's first day: days 1-7 are
// week 1 regardless of weekday.
func (d Date) AlignedWeekOfMonth() int {
	return (d.day-1)/7 + 1
}

// AlignedWeekOfYear numbers weeks from Farvardin 1 the same way.
func (d Date) AlignedWeekOfYear() int {
	return (d.DayOfYear()-1)/7 + 1
}

// ProlepticMonth returns year*12 + month - 1, the zero-based month count
// from month 1 of year 0.
func (d Date) ProlepticMonth() int64 {
	return int64(d.year)*12 + int64(d.month) - 1
}

func (d Date) Era() int       { return EraOf(d.year) }
func (d Date) YearOfEra() int { return YearOfEra(d.year) }

// IsLeapYear reports whether the date's year is leap.
func (d Date) IsLeapYear() bool { return IsLeapYear(d.year) }

// LengthOfMonth returns the number of days in the date's month.
func (d Date) LengthOfMonth() int { return d.month.Length(IsLeapYear(d.year)) }

// LengthOfYear returns 365 or 366.
func (d Date) LengthOfYear() int { return YearLength(d.year) }

// ToGregorian converts through the alignment table inside the window, or
// through the shared epoch outside it.
func (d Date) ToGregorian() GregorianDate {
	gy := d.year + 621
	if nowruz, ok := nowruzEpochDay(gy); ok {
		return gregorianOfEpochDay(nowruz + int64(d.DayOfYear()) - 1)
	}
	return gregorianOfEpochDay(d.EpochDay())
}

// Get returns the value of a date field, for consumption by a formatter.
func (d Date) Get(f Field) (int64, error) {
	switch f {
	case FieldYear:
		return int64(d.year), nil
	case FieldMonthOfYear:
		return int64(d.month), nil
	case FieldDayOfMonth:
		return int64(d.day), nil
	case FieldDayOfYear:
		return int64(d.DayOfYear()), nil
	case FieldDayOfWeek:
		return int64(d.DayOfWeek()), nil
	case FieldEpochDay:
		return d.EpochDay(), nil
	case FieldEra:
		return int64(d.Era()), nil
	case FieldYearOfEra:
		return int64(d.YearOfEra()), nil
	case FieldAlignedWeekOfMonth:
		return int64(d.AlignedWeekOfMonth()), nil
	case FieldAlignedWeekOfYear:
		return int64(d.AlignedWeekOfYear()), nil
	case FieldProlepticMonth:
		return d.ProlepticMonth(), nil
	case FieldWeekBasedYear:
		return int64(WeekBasedYear(d)), nil
	case FieldWeekOfWeekBasedYear:
		return int64(WeekOfWeekBasedYear(d)), nil
	default:
		return 0, fmt.Errorf("get %s: %w", f, ErrUnsupportedField)
	}
}

// Range returns the valid span of a field for this particular date, e.g.
// day-of-month reports the exact length of the date's month.
func (d Date) Range(f Field) (ValueRange, error) {
	switch f {
	case FieldDayOfMonth:
		return ValueRange{1, int64(d.LengthOfMonth())}, nil
	case FieldDayOfYear:
		return ValueRange{1, int64(d.LengthOfYear())}, nil
	case FieldAlignedWeekOfMonth:
		return ValueRange{1, int64((d.LengthOfMonth() + 6) / 7)}, nil
	case FieldWeekOfWeekBasedYear:
		return ValueRange{1, int64(WeeksInYear(WeekBasedYear(d)))}, nil
	default:
		return RangeOf(f)
	}
}

// =============================================================================
// FIELD WRITE
// =============================================================================

// WithYear returns the date with the year replaced, clamping day 30 of
// Esfand to 29 when the target year is not leap.
func (d Date) WithYear(year int) (Date, error) {
	if err := checkYear(int64(year)); err != nil {
		return Date{}, err
	}
	return resolvePreviousValid(year, d.month, d.day), nil
}

// WithMonth returns the date with the month replaced, clamping the day to
// the target month's last valid day.
func (d Date) WithMonth(month int) (Date, error) {
	m, err := MonthOf(month)
	if err != nil {
		return Date{}, err
	}
	return resolvePreviousValid(d.year, m, d.day), nil
}

// WithDayOfMonth returns the date with the day replaced. Unlike WithYear and
// WithMonth this is strict: a day beyond the month's maximum is an error.
func (d Date) WithDayOfMonth(day int) (Date, error) {
	return New(d.year, int(d.month), day)
}

// WithDayOfYear returns the date at the given day of the same year, strict.
func (d Date) WithDayOfYear(dayOfYear int) (Date, error) {
	return FromYearDay(d.year, dayOfYear)
}

// With returns a copy of the date with one field replaced, for use by a
// parser working over the generic field set.
func (d Date) With(f Field, v int64) (Date, error) {
	if r, err := RangeOf(f); err != nil {
		return Date{}, err
	} else if err := r.check(f, v); err != nil {
		return Date{}, err
	}
	switch f {
	case FieldYear:
		return d.WithYear(int(v))
	case FieldMonthOfYear:
		return d.WithMonth(int(v))
	case FieldDayOfMonth:
		return d.WithDayOfMonth(int(v))
	case FieldDayOfYear:
		return d.WithDayOfYear(int(v))
	case FieldEpochDay:
		return FromEpochDay(v)
	case FieldDayOfWeek:
		return d.PlusDays(v - int64(d.DayOfWeek()))
	case FieldEra:
		if int64(d.Era()) == v {
			return d, nil
		}
		return d.WithYear(1 - d.year)
	case FieldYearOfEra:
		if d.Era() == 1 {
			return d.WithYear(int(v))
		}
		return d.WithYear(int(1 - v))
	case FieldProlepticMonth:
		return d.PlusMonths(v - d.ProlepticMonth())
	case FieldAlignedWeekOfMonth:
		return d.PlusDays((v - int64(d.AlignedWeekOfMonth())) * 7)
	case FieldAlignedWeekOfYear:
		return d.PlusDays((v - int64(d.AlignedWeekOfYear())) * 7)
	case FieldWeekBasedYear:
		return WithWeekBasedYear(d, int(v))
	case FieldWeekOfWeekBasedYear:
		return d.PlusDays((v - int64(WeekOfWeekBasedYear(d))) * 7)
	default:
		return Date{}, fmt.Errorf("with %s: %w", f, ErrUnsupportedField)
	}
}

// resolvePreviousValid clamps the day to the last valid day of (year, month).
func resolvePreviousValid(year int, month Month, day int) Date {
	if max := month.Length(IsLeapYear(year)); day > max {
		day = max
	}
	return Date{year: year, month: month, day: day}
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// PlusDays returns the date n days later (earlier for negative n). The year
// boundary walk mirrors FromEpochDay's unit handling; the loop is bounded by
// the magnitude of n.
func (d Date) PlusDays(n int64) (Date, error) {
	if n == 0 {
		return d, nil
	}
	e := d.EpochDay()
	if n > maxEpochDay-e || n < minEpochDay-e {
		return Date{}, &OverflowError{Op: fmt.Sprintf("adding %d days to %s", n, d)}
	}
	year := int64(d.year)
	doy := int64(d.DayOfYear()) + n
	for doy > int64(YearLength(int(year))) {
		doy -= int64(YearLength(int(year)))
		year++
	}
	for doy < 1 {
		year--
		doy += int64(YearLength(int(year)))
	}
	return FromYearDay(int(year), int(doy))
}

// PlusWeeks returns the date n weeks later.
func (d Date) PlusWeeks(n int64) (Date, error) {
	if n > math.MaxInt64/7 || n < math.MinInt64/7 {
		return Date{}, &OverflowError{Op: fmt.Sprintf("adding %d weeks to %s", n, d)}
	}
	return d.PlusDays(n * 7)
}

// PlusMonths returns the date n months later, preserving the day-of-month
// unless it is invalid for the target month, in which case the day clamps to
// that month's last day. It never rolls into the following month.
func (d Date) PlusMonths(n int64) (Date, error) {
	// Wraparound of pm+n cannot land back inside the valid month range
	// (the range spans ~2.4e10 while a wrap shifts by 2^64), so checking
	// the sum against the bounds is sufficient.
	pm := d.ProlepticMonth() + n
	if pm < int64(MinYear)*12 || pm > int64(MaxYear)*12+11 {
		return Date{}, &OverflowError{Op: fmt.Sprintf("adding %d months to %s", n, d)}
	}
	year := floorDiv(pm, 12)
	month := Month(floorMod64(pm, 12) + 1)
	return resolvePreviousValid(int(year), month, d.day), nil
}

// PlusYears returns the date n years later with the same month-end clamp
// policy as PlusMonths: Esfand 30 of a leap year lands on Esfand 29 of a
// non-leap target year.
func (d Date) PlusYears(n int64) (Date, error) {
	y := int64(d.year) + n
	if y < MinYear || y > MaxYear {
		return Date{}, &OverflowError{Op: fmt.Sprintf("adding %d years to %s", n, d)}
	}
	return resolvePreviousValid(int(y), d.month, d.day), nil
}

func (d Date) MinusDays(n int64) (Date, error)   { return d.plusNegated(n, Date.PlusDays) }
func (d Date) MinusWeeks(n int64) (Date, error)  { return d.plusNegated(n, Date.PlusWeeks) }
func (d Date) MinusMonths(n int64) (Date, error) { return d.plusNegated(n, Date.PlusMonths) }
func (d Date) MinusYears(n int64) (Date, error)  { return d.plusNegated(n, Date.PlusYears) }

func (d Date) plusNegated(n int64, plus func(Date, int64) (Date, error)) (Date, error) {
	if n == math.MinInt64 {
		return Date{}, &OverflowError{Op: "negating subtraction amount"}
	}
	return plus(d, -n)
}

// =============================================================================
// ORDERING AND SPANS
// =============================================================================

// Compare orders dates lexicographically by (year, month, day).
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) IsZero() bool           { return d == Date{} }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DaysUntil returns the signed day count from d to other.
func (d Date) DaysUntil(other Date) int64 {
	return other.EpochDay() - d.EpochDay()
}

// MonthsUntil returns the signed whole-month count from d to other, with the
// fractional month truncated toward zero.
func (d Date) MonthsUntil(other Date) int64 {
	// Pack months and days so the division truncates the partial month.
	packed1 := d.ProlepticMonth()*32 + int64(d.day)
	packed2 := other.ProlepticMonth()*32 + int64(other.day)
	return (packed2 - packed1) / 32
}

// YearsUntil returns the signed whole-year count from d to other.
func (d Date) YearsUntil(other Date) int64 {
	return d.MonthsUntil(other) / 12
}

// WeeksUntil returns the signed whole-week count from d to other.
func (d Date) WeeksUntil(other Date) int64 {
	return d.DaysUntil(other) / 7
}

// =============================================================================
// TEXT
// =============================================================================

// String renders the canonical form ±YYYY-MM-DD: the year zero-padded to at
// least four digits, with an explicit sign only for years outside [0, 9999].
func (d Date) String() string {
	var sb strings.Builder
	writeYear(&sb, d.year)
	fmt.Fprintf(&sb, "-%02d-%02d", d.month, d.day)
	return sb.String()
}

func writeYear(sb *strings.Builder, year int) {
	abs := year
	switch {
	case year < 0:
		sb.WriteByte('-')
		abs = -year
	case year > 9999:
		sb.WriteByte('+')
	}
	fmt.Fprintf(sb, "%04d", abs)
}

// Parse reads the canonical ±YYYY-MM-DD form produced by String.
func Parse(s string) (Date, error) {
	neg := false
	body := s
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		body = s[1:]
	case strings.HasPrefix(s, "+"):
		body = s[1:]
	}
	parts := strings.Split(body, "-")
	if len(parts) != 3 || len(parts[0]) < 4 || len(parts[1]) != 2 || len(parts[2]) != 2 || !allDigits(body) {
		return Date{}, stateErr("cannot parse %q as a date", s)
	}
	year := atoi(parts[0])
	if neg {
		year = -year
	}
	return New(year, atoi(parts[1]), atoi(parts[2]))
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// =============================================================================
// STRING HELPERS
// =============================================================================

func stripNonDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// allDigits accepts digits plus the '-' separators of the canonical form.
func allDigits(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// isDigits accepts digits only.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// atoi converts a known-digit string; inputs are pre-validated.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
