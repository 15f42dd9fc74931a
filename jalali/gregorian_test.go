package jalali_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/calendar-engine/jalali"
)

// =============================================================================
// GREGORIAN ADAPTER TESTS
// =============================================================================

func TestGregorianDate_EpochDay(t *testing.T) {
	cases := []struct {
		g     jalali.GregorianDate
		epoch int64
	}{
		{jalali.GregorianDate{1970, 1, 1}, 0},
		{jalali.GregorianDate{1969, 12, 31}, -1},
		{jalali.GregorianDate{2000, 3, 1}, 11017},
		{jalali.GregorianDate{2021, 3, 21}, 18707},
		{jalali.GregorianDate{2024, 3, 20}, 19802},
		{jalali.GregorianDate{1600, 1, 1}, -135140},
	}
	for _, c := range cases {
		assert.Equal(t, c.epoch, c.g.EpochDay(), "%v", c.g)
	}
}

func TestGregorianDate_Validate(t *testing.T) {
	assert.NoError(t, jalali.GregorianDate{2024, 2, 29}.Validate())
	assert.ErrorIs(t, jalali.GregorianDate{2023, 2, 29}.Validate(), jalali.ErrInvalidDate)
	assert.ErrorIs(t, jalali.GregorianDate{2023, 13, 1}.Validate(), jalali.ErrRange)
	assert.ErrorIs(t, jalali.GregorianDate{2023, 4, 31}.Validate(), jalali.ErrInvalidDate)
}

func TestIsGregorianLeapYear(t *testing.T) {
	assert.True(t, jalali.IsGregorianLeapYear(2024))
	assert.True(t, jalali.IsGregorianLeapYear(2000))
	assert.False(t, jalali.IsGregorianLeapYear(1900))
	assert.False(t, jalali.IsGregorianLeapYear(2023))
}

// =============================================================================
// CROSS-CALENDAR CONVERSION TESTS
// =============================================================================

func TestFromGregorian_KnownPairs(t *testing.T) {
	cases := []struct {
		g jalali.GregorianDate
		j jalali.Date
	}{
		{jalali.GregorianDate{1970, 1, 1}, jalali.MustNew(1348, 10, 11)},
		{jalali.GregorianDate{2021, 3, 21}, jalali.MustNew(1400, 1, 1)},
		{jalali.GregorianDate{2024, 3, 20}, jalali.MustNew(1403, 1, 1)},
		{jalali.GregorianDate{2025, 3, 20}, jalali.MustNew(1403, 12, 30)},
		{jalali.GregorianDate{2025, 3, 21}, jalali.MustNew(1404, 1, 1)},
		{jalali.GregorianDate{2026, 8, 26}, jalali.MustNew(1405, 6, 4)},
		{jalali.GregorianDate{1921, 3, 21}, jalali.MustNew(1300, 1, 1)},
	}
	for _, c := range cases {
		j, err := jalali.FromGregorian(c.g)
		require.NoError(t, err, "%v", c.g)
		assert.Equal(t, c.j, j, "FromGregorian(%v)", c.g)
		assert.Equal(t, c.g, c.j.ToGregorian(), "ToGregorian(%s)", c.j)
	}
}

func TestFromGregorian_BeforeNowruz(t *testing.T) {
	// A Gregorian date before that year's Nowruz belongs to the previous
	// Jalali year.
	j, err := jalali.FromGregorian(jalali.GregorianDate{2024, 3, 19})
	require.NoError(t, err)
	assert.Equal(t, jalali.MustNew(1402, 12, 29), j)
}

func TestGregorianConversion_OutsideWindowFallsBack(t *testing.T) {
	// GIVEN: a Gregorian date outside the tabulated window
	// WHEN: converting through the epoch-day fallback and back
	// THEN: the round trip still holds (values are approximate, consistent)
	g := jalali.GregorianDate{Year: 1850, Month: 6, Day: 15}
	j, err := jalali.FromGregorian(g)
	require.NoError(t, err)
	assert.Equal(t, g, j.ToGregorian())

	g = jalali.GregorianDate{Year: 2200, Month: 1, Day: 1}
	j, err = jalali.FromGregorian(g)
	require.NoError(t, err)
	assert.Equal(t, g, j.ToGregorian())
}

func TestGregorianConversion_WindowEdges(t *testing.T) {
	// The first tabulated Nowruz: dates just before it route through the
	// fallback, dates on it through the table; they must agree.
	atEdge, err := jalali.FromGregorian(jalali.GregorianDate{1921, 3, 21})
	require.NoError(t, err)
	beforeEdge, err := jalali.FromGregorian(jalali.GregorianDate{1921, 3, 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), beforeEdge.DaysUntil(atEdge))
	assert.Equal(t, jalali.MustNew(1299, 12, 29), beforeEdge)
}
