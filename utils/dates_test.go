package utils_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/termstructure/utils"
)

func TestAddTenor(t *testing.T) {
	t.Parallel()

	base := utils.MustParseDate("2025-01-31")
	cases := map[string]string{
		"1D":  "2025-02-01",
		"2W":  "2025-02-14",
		"1M":  "2025-02-28",
		"3M":  "2025-04-30",
		"1Y":  "2026-01-31",
		"10y": "2035-01-31",
	}
	for tenor, want := range cases {
		got, err := utils.AddTenor(base, tenor)
		require.NoError(t, err, tenor)
		assert.Equal(t, want, got.Format(utils.DateLayout), tenor)
	}

	_, err := utils.AddTenor(base, "5Q")
	assert.Error(t, err)
	_, err = utils.AddTenor(base, "M")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := utils.ParseDate(" 2025-03-10 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = utils.ParseDate("10/03/2025")
	assert.Error(t, err)
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.952381, utils.RoundTo(1.0/1.05, 6))
	assert.Equal(t, -0.3, utils.RoundTo(-0.25, 1))
	assert.Equal(t, 1.0/1.05, utils.RoundTo(1.0/1.05, -1))
	assert.True(t, math.IsInf(utils.RoundTo(math.Inf(1), 4), 1))
}
