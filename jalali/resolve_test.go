package jalali_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/calendar-engine/jalali"
)

// =============================================================================
// MODE MATRIX TESTS
// =============================================================================

func TestResolve_MonthOverflowByMode(t *testing.T) {
	fields := func() jalali.FieldValues {
		return jalali.FieldValues{
			jalali.FieldYear:        1400,
			jalali.FieldMonthOfYear: 13,
			jalali.FieldDayOfMonth:  1,
		}
	}

	_, err := jalali.Resolve(fields(), jalali.ResolveStrict)
	assert.ErrorIs(t, err, jalali.ErrRange)

	_, err = jalali.Resolve(fields(), jalali.ResolveClamp)
	assert.ErrorIs(t, err, jalali.ErrRange)

	d, err := jalali.Resolve(fields(), jalali.ResolveLenient)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1401, 1, 1), d, "month 13 carries into the next year")
}

func TestResolve_DayOverflowByMode(t *testing.T) {
	fields := func() jalali.FieldValues {
		return jalali.FieldValues{
			jalali.FieldYear:        1400,
			jalali.FieldMonthOfYear: 7,
			jalali.FieldDayOfMonth:  31,
		}
	}

	_, err := jalali.Resolve(fields(), jalali.ResolveStrict)
	assert.ErrorIs(t, err, jalali.ErrInvalidDate, "Mehr has 30 days")

	d, err := jalali.Resolve(fields(), jalali.ResolveClamp)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 7, 30), d)

	d, err = jalali.Resolve(fields(), jalali.ResolveLenient)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 8, 1), d, "the extra day walks forward")
}

func TestResolve_DayOfYearByMode(t *testing.T) {
	fields := func() jalali.FieldValues {
		return jalali.FieldValues{
			jalali.FieldYear:      1400,
			jalali.FieldDayOfYear: 366,
		}
	}

	_, err := jalali.Resolve(fields(), jalali.ResolveStrict)
	assert.ErrorIs(t, err, jalali.ErrInvalidDate, "1400 is a common year")

	d, err := jalali.Resolve(fields(), jalali.ResolveClamp)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 12, 29), d)

	d, err = jalali.Resolve(fields(), jalali.ResolveLenient)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1401, 1, 1), d)
}

// =============================================================================
// COMBINATION TABLE TESTS
// =============================================================================

func TestResolve_EpochDayIsAuthoritative(t *testing.T) {
	// Epoch day outranks an explicit year-month-day in the same map.
	values := jalali.FieldValues{
		jalali.FieldEpochDay:    18707,
		jalali.FieldYear:        1400,
		jalali.FieldMonthOfYear: 1,
		jalali.FieldDayOfMonth:  1,
	}
	d, err := jalali.Resolve(values, jalali.ResolveStrict)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 1, 1), d)
	assert.Empty(t, values, "matching fields are all consumed")
}

func TestResolve_EpochDayCrossCheckConflict(t *testing.T) {
	values := jalali.FieldValues{
		jalali.FieldEpochDay: 18707,
		jalali.FieldYear:     1399,
	}
	for _, mode := range []jalali.ResolveMode{
		jalali.ResolveStrict, jalali.ResolveClamp, jalali.ResolveLenient,
	} {
		_, err := jalali.Resolve(jalali.FieldValues{
			jalali.FieldEpochDay: values[jalali.FieldEpochDay],
			jalali.FieldYear:     values[jalali.FieldYear],
		}, mode)
		assert.ErrorIs(t, err, jalali.ErrInvalidDate, "mode %s", mode)
	}
}

func TestResolve_AlignedWeekCombination(t *testing.T) {
	d, err := jalali.Resolve(jalali.FieldValues{
		jalali.FieldYear:              1400,
		jalali.FieldAlignedWeekOfYear: 21,
		jalali.FieldDayOfWeek:         2,
	}, jalali.ResolveStrict)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 5, 17), d)
}

func TestResolve_WeekBasedYearCombination(t *testing.T) {
	d, err := jalali.Resolve(jalali.FieldValues{
		jalali.FieldWeekBasedYear:       1402,
		jalali.FieldWeekOfWeekBasedYear: 53,
		jalali.FieldDayOfWeek:           7,
	}, jalali.ResolveStrict)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1403, 1, 3), d)
}

func TestResolve_WeekOverflowByMode(t *testing.T) {
	fields := func(week int64) jalali.FieldValues {
		return jalali.FieldValues{
			jalali.FieldYear:              1400,
			jalali.FieldAlignedWeekOfYear: week,
			jalali.FieldDayOfWeek:         1,
		}
	}

	// 1400 has 52 weeks: week 53 fails strictly, clamps otherwise.
	_, err := jalali.Resolve(fields(53), jalali.ResolveStrict)
	assert.ErrorIs(t, err, jalali.ErrInvalidDate)

	d, err := jalali.Resolve(fields(53), jalali.ResolveClamp)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 12, 21), d)

	// Week 54 is beyond the static range for strict and clamp, but lenient
	// keeps walking into the next year.
	_, err = jalali.Resolve(fields(54), jalali.ResolveClamp)
	assert.ErrorIs(t, err, jalali.ErrRange)

	d, err = jalali.Resolve(fields(54), jalali.ResolveLenient)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1401, 1, 6), d)
}

// =============================================================================
// FIELD CONSUMPTION TESTS
// =============================================================================

func TestResolve_LeavesUnmatchedFields(t *testing.T) {
	values := jalali.FieldValues{
		jalali.FieldYear:        1400,
		jalali.FieldMonthOfYear: 5,
		jalali.FieldDayOfMonth:  17,
		jalali.FieldHourOfDay:   13,
	}
	d, err := jalali.Resolve(values, jalali.ResolveStrict)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 5, 17), d)

	// The time field is not part of any date combination and survives for
	// the caller to apply.
	assert.Equal(t, jalali.FieldValues{jalali.FieldHourOfDay: 13}, values)
}

func TestResolve_NoCombination(t *testing.T) {
	_, err := jalali.Resolve(jalali.FieldValues{
		jalali.FieldMonthOfYear: 5,
		jalali.FieldDayOfMonth:  17,
	}, jalali.ResolveStrict)
	assert.ErrorIs(t, err, jalali.ErrUnresolved)

	_, err = jalali.Resolve(jalali.FieldValues{}, jalali.ResolveLenient)
	assert.ErrorIs(t, err, jalali.ErrUnresolved)
}

func TestCrossCheck_ConsumesMatches(t *testing.T) {
	d := jalali.MustNew(1400, 5, 17)
	values := jalali.FieldValues{
		jalali.FieldDayOfWeek: 2,
		jalali.FieldDayOfYear: 141,
	}
	require.NoError(t, jalali.CrossCheck(d, values))
	assert.Empty(t, values)

	values = jalali.FieldValues{jalali.FieldDayOfWeek: 3}
	assert.ErrorIs(t, jalali.CrossCheck(d, values), jalali.ErrInvalidDate)
}

func TestResolveMode_String(t *testing.T) {
	assert.Equal(t, "strict", jalali.ResolveStrict.String())
	assert.Equal(t, "clamp", jalali.ResolveClamp.String())
	assert.Equal(t, "lenient", jalali.ResolveLenient.String())
}
