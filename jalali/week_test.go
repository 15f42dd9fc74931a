package jalali_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/calendar-engine/jalali"
)

// =============================================================================
// WEEK COUNT TESTS
// =============================================================================

func TestWeeksInYear(t *testing.T) {
	// 1402 opens on Seshanbeh (the 4th weekday) and gets a 53rd week; its
	// neighbors all have 52.
	assert.Equal(t, 53, jalali.WeeksInYear(1402))
	for _, y := range []int{1398, 1399, 1400, 1401, 1403, 1404, 1405, 1406} {
		assert.Equal(t, 52, jalali.WeeksInYear(y), "year %d", y)
	}
}

// =============================================================================
// WEEK FIELD TESTS
// =============================================================================

func TestWeekFields_MidYear(t *testing.T) {
	d := jalali.MustNew(1400, 5, 17)
	assert.Equal(t, 1400, jalali.WeekBasedYear(d))
	assert.Equal(t, 21, jalali.WeekOfWeekBasedYear(d))
}

func TestWeekFields_YearBoundaries(t *testing.T) {
	cases := []struct {
		d    jalali.Date
		wby  int
		week int
	}{
		// Last days of Esfand that already belong to week 1 of the next year.
		{jalali.MustNew(1400, 12, 29), 1401, 1},
		{jalali.MustNew(1399, 12, 30), 1400, 1},
		// Early Farvardin still inside the previous week-based year.
		{jalali.MustNew(1404, 1, 1), 1403, 52},
		{jalali.MustNew(1403, 1, 3), 1402, 53},
	}
	for _, c := range cases {
		assert.Equal(t, c.wby, jalali.WeekBasedYear(c.d), "%s", c.d)
		assert.Equal(t, c.week, jalali.WeekOfWeekBasedYear(c.d), "%s", c.d)
	}
}

// =============================================================================
// WEEK FIELD CONSTRUCTION TESTS
// =============================================================================

func TestDateOfWeekFields(t *testing.T) {
	d, err := jalali.DateOfWeekFields(1400, 21, jalali.Yekshanbeh)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1400, 5, 17), d)

	// The 53rd week of 1402 spills into calendar year 1403.
	d, err = jalali.DateOfWeekFields(1402, 53, jalali.Jomeh)
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1403, 1, 3), d)
}

func TestDateOfWeekFields_InvertsWeekFields(t *testing.T) {
	// GIVEN: a sweep of dates across several year boundaries
	// WHEN: reading the week fields and rebuilding the date from them
	// THEN: the rebuilt date is the original
	d := jalali.MustNew(1398, 12, 20)
	for i := 0; i < 400; i++ {
		got, err := jalali.DateOfWeekFields(
			jalali.WeekBasedYear(d), jalali.WeekOfWeekBasedYear(d), d.DayOfWeek())
		require.NoError(t, err, "%s", d)
		assert.Equal(t, d, got)
		d, err = d.PlusDays(1)
		require.NoError(t, err)
	}
}

func TestDateOfWeekFields_Rejects(t *testing.T) {
	_, err := jalali.DateOfWeekFields(1400, 54, jalali.Shanbeh)
	assert.ErrorIs(t, err, jalali.ErrRange)

	_, err = jalali.DateOfWeekFields(1400, 1, jalali.Weekday(8))
	assert.ErrorIs(t, err, jalali.ErrRange)

	// 1400 has only 52 weeks.
	_, err = jalali.DateOfWeekFields(1400, 53, jalali.Shanbeh)
	assert.ErrorIs(t, err, jalali.ErrInvalidDate)
}

func TestWithWeekBasedYear(t *testing.T) {
	// Week 53 clamps to 52 when the target year is shorter.
	d := jalali.MustNew(1403, 1, 3) // wby 1402, week 53, Jomeh
	out, err := jalali.WithWeekBasedYear(d, 1403)
	require.NoError(t, err)
	assert.Equal(t, 1403, jalali.WeekBasedYear(out))
	assert.Equal(t, 52, jalali.WeekOfWeekBasedYear(out))
	assert.Equal(t, d.DayOfWeek(), out.DayOfWeek())

	// A mid-year date keeps its week and weekday exactly.
	d = jalali.MustNew(1400, 5, 17)
	out, err = jalali.WithWeekBasedYear(d, 1402)
	require.NoError(t, err)
	assert.Equal(t, 1402, jalali.WeekBasedYear(out))
	assert.Equal(t, 21, jalali.WeekOfWeekBasedYear(out))
	assert.Equal(t, d.DayOfWeek(), out.DayOfWeek())
}
