package jalali_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/warp/calendar-engine/jalali"
)

// Property: epoch-day conversion round-trips
//
// For any epoch day in a wide span around the epoch, converting to a date
// and back yields the same epoch day, and the weekday advances by exactly
// one per day.
func TestEpochDayRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("FromEpochDay then EpochDay is identity", prop.ForAll(
		func(epoch int64) bool {
			d, err := jalali.FromEpochDay(epoch)
			if err != nil {
				t.Logf("FromEpochDay(%d) failed: %v", epoch, err)
				return false
			}
			if got := d.EpochDay(); got != epoch {
				t.Logf("round trip %d -> %s -> %d", epoch, d, got)
				return false
			}
			return true
		},
		gen.Int64Range(-100_000_000_000, 100_000_000_000),
	))

	properties.Property("consecutive days have consecutive weekdays", prop.ForAll(
		func(epoch int64) bool {
			a, err := jalali.FromEpochDay(epoch)
			if err != nil {
				return false
			}
			b, err := jalali.FromEpochDay(epoch + 1)
			if err != nil {
				return false
			}
			next := a.DayOfWeek()%7 + 1
			if b.DayOfWeek() != next {
				t.Logf("weekday of %s is %s, expected %s after %s", b, b.DayOfWeek(), next, a)
				return false
			}
			return true
		},
		gen.Int64Range(-10_000_000, 10_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: construction round-trips through fields and the epoch day
//
// Any (year, month, day) triple that passes validation reads back its own
// fields, and converting through the epoch day reproduces the same date.
func TestDateConstructionRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("valid triples round-trip", prop.ForAll(
		func(year, month, day int) bool {
			d, err := jalali.New(year, month, day)
			if err != nil {
				// Only the short-month and leap-day combinations may fail.
				return day > 29
			}
			if d.Year() != year || int(d.Month()) != month || d.Day() != day {
				t.Logf("fields of %s: got (%d,%d,%d)", d, d.Year(), d.Month(), d.Day())
				return false
			}
			back, err := jalali.FromEpochDay(d.EpochDay())
			if err != nil {
				t.Logf("FromEpochDay(%d) failed: %v", d.EpochDay(), err)
				return false
			}
			return back.Equal(d)
		},
		gen.IntRange(-10_000, 10_000),
		gen.IntRange(1, 12),
		gen.IntRange(1, 31),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: every 33 consecutive years contain exactly 8 leap years
func TestLeapDensity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("8 leap years per 33-year window", prop.ForAll(
		func(start int) bool {
			leaps := 0
			for y := start; y < start+33; y++ {
				if jalali.IsLeapYear(y) {
					leaps++
				}
			}
			if leaps != 8 {
				t.Logf("window [%d, %d) has %d leap years", start, start+33, leaps)
				return false
			}
			return true
		},
		gen.IntRange(-100_000, 100_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: Gregorian conversion round-trips and preserves the epoch day
func TestGregorianRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	// The range covers the tabulated window plus decades on either side, so
	// both the table path and the fallback path are exercised.
	properties.Property("ToGregorian then FromGregorian is identity", prop.ForAll(
		func(epoch int64) bool {
			d, err := jalali.FromEpochDay(epoch)
			if err != nil {
				return false
			}
			g := d.ToGregorian()
			if g.EpochDay() != epoch {
				t.Logf("%s -> %v has epoch day %d, want %d", d, g, g.EpochDay(), epoch)
				return false
			}
			back, err := jalali.FromGregorian(g)
			if err != nil {
				t.Logf("FromGregorian(%v) failed: %v", g, err)
				return false
			}
			return back.Equal(d)
		},
		gen.Int64Range(-40_000, 80_000), // Gregorian ~1860 to ~2180
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: day arithmetic is consistent with spans and invertible
func TestDayArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("PlusDays moves the epoch day by exactly n", prop.ForAll(
		func(epoch, n int64) bool {
			d, err := jalali.FromEpochDay(epoch)
			if err != nil {
				return false
			}
			moved, err := d.PlusDays(n)
			if err != nil {
				t.Logf("%s.PlusDays(%d) failed: %v", d, n, err)
				return false
			}
			if got := d.DaysUntil(moved); got != n {
				t.Logf("DaysUntil after PlusDays(%d) is %d", n, got)
				return false
			}
			back, err := moved.PlusDays(-n)
			if err != nil {
				return false
			}
			return back.Equal(d)
		},
		gen.Int64Range(-10_000_000, 10_000_000),
		gen.Int64Range(-5_000_000, 5_000_000),
	))

	properties.Property("Compare agrees with DaysUntil", prop.ForAll(
		func(a, b int64) bool {
			da, err := jalali.FromEpochDay(a)
			if err != nil {
				return false
			}
			db, err := jalali.FromEpochDay(b)
			if err != nil {
				return false
			}
			span := da.DaysUntil(db)
			switch {
			case span > 0:
				return da.Compare(db) < 0
			case span < 0:
				return da.Compare(db) > 0
			default:
				return da.Compare(db) == 0 && da.Equal(db)
			}
		},
		gen.Int64Range(-1_000_000, 1_000_000),
		gen.Int64Range(-1_000_000, 1_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: month arithmetic is exact when no clamping can occur
func TestMonthArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	// Day-of-month at most 29 exists in every month, so PlusMonths never
	// clamps and MonthsUntil must report exactly the delta.
	properties.Property("MonthsUntil inverts PlusMonths below the clamp", prop.ForAll(
		func(year, month, day int, n int64) bool {
			d, err := jalali.New(year, month, day)
			if err != nil {
				return false
			}
			moved, err := d.PlusMonths(n)
			if err != nil {
				t.Logf("%s.PlusMonths(%d) failed: %v", d, n, err)
				return false
			}
			got, err := d.Until(moved, jalali.UnitMonths)
			if err != nil {
				return false
			}
			if got != n {
				t.Logf("%s.PlusMonths(%d) = %s, MonthsUntil = %d", d, n, moved, got)
				return false
			}
			return true
		},
		gen.IntRange(-5_000, 5_000),
		gen.IntRange(1, 12),
		gen.IntRange(1, 29),
		gen.Int64Range(-50_000, 50_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: the canonical text form round-trips for any representable date
func TestTextRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(String) is identity", prop.ForAll(
		func(epoch int64) bool {
			d, err := jalali.FromEpochDay(epoch)
			if err != nil {
				return false
			}
			back, err := jalali.Parse(d.String())
			if err != nil {
				t.Logf("Parse(%q) failed: %v", d.String(), err)
				return false
			}
			return back.Equal(d)
		},
		gen.Int64Range(-100_000_000_000, 100_000_000_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
