package daycount_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/termstructure/daycount"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		conv       daycount.Convention
		start, end time.Time
		want       float64
	}{
		{"act360", daycount.Act360, date(2025, 1, 1), date(2025, 7, 1), 181.0 / 360.0},
		{"act365f", daycount.Act365F, date(2025, 1, 1), date(2026, 1, 1), 1.0},
		{"act365f leap", daycount.Act365F, date(2024, 1, 1), date(2025, 1, 1), 366.0 / 365.0},
		{"30e360 eom", daycount.ThirtyE, date(2025, 1, 31), date(2025, 3, 31), 60.0 / 360.0},
		{"30360 feb", daycount.Thirty, date(2025, 1, 30), date(2025, 3, 31), 60.0 / 360.0},
		{"30360 d2 kept", daycount.Thirty, date(2025, 1, 15), date(2025, 3, 31), 76.0 / 360.0},
		{"actact same year", daycount.ActAct, date(2024, 1, 1), date(2024, 7, 1), 182.0 / 366.0},
		{"actact span", daycount.ActAct, date(2024, 7, 1), date(2025, 7, 1), 184.0/366.0 + 181.0/365.0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, tc.conv.YearFraction(tc.start, tc.end), 1e-15)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := daycount.Parse("act/365 fixed")
	require.NoError(t, err)
	assert.Equal(t, daycount.Act365F, c)

	c, err = daycount.Parse("")
	require.NoError(t, err)
	assert.Equal(t, daycount.NoneConv, c)

	_, err = daycount.Parse("BUS/252")
	assert.Error(t, err)
}

func TestNoneConventionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		daycount.NoneConv.YearFraction(date(2025, 1, 1), date(2026, 1, 1))
	})
}
