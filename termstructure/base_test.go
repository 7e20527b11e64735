package termstructure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/termstructure/daycount"
	"github.com/meenmo/termstructure/quote"
	ts "github.com/meenmo/termstructure/termstructure"
)

func TestJumpsApplyPastTheirDates(t *testing.T) {
	t.Parallel()

	jump := quote.NewSimpleQuote(0.999)
	crv := ts.NewFlatSimpleZeroCurve(ts.Fixed(date(2025, 1, 2)), quote.NewSimpleQuote(0.05), ts.Options{
		DayCounter: daycount.Act365F,
		Jumps:      []quote.Handle{jump},
		JumpDates:  []time.Time{date(2025, 12, 31)},
	})
	plain := 1.0 / (1.0 + 0.05*1.0)

	before, err := crv.Discount(0.5, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0/(1.0+0.05*0.5), before)

	after, err := crv.Discount(1.0, false)
	require.NoError(t, err)
	assert.Equal(t, 0.999*plain, after)

	byDate, err := crv.DiscountAt(date(2026, 1, 2), false)
	require.NoError(t, err)
	assert.Equal(t, after, byDate)

	// Quote values are read at query time.
	jump.SetValue(0.998)
	after, err = crv.Discount(1.0, false)
	require.NoError(t, err)
	assert.Equal(t, 0.998*plain, after)

	origin, err := crv.Discount(0, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, origin)
}

func TestDefaultJumpDates(t *testing.T) {
	t.Parallel()

	base := ts.NewBase(ts.Fixed(date(2025, 3, 3)), ts.Options{
		DayCounter: daycount.Act365F,
		Jumps:      quote.Handles(0.999, 0.998),
	})
	dates, err := base.JumpDates()
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2025, 12, 31), date(2026, 12, 31)}, dates)

	effect, err := base.JumpEffect(5)
	require.NoError(t, err)
	assert.Equal(t, 0.999*0.998, effect)
}

func TestJumpMismatchSurfacesOnQuery(t *testing.T) {
	t.Parallel()

	// Construction accepts the mismatch.
	crv := ts.NewFlatSimpleZeroCurve(ts.Fixed(date(2025, 1, 2)), quote.NewSimpleQuote(0.05), ts.Options{
		DayCounter: daycount.Act365F,
		Jumps:      quote.Handles(0.999, 0.998),
		JumpDates:  []time.Time{date(2025, 12, 31)},
	})

	_, err := crv.Discount(1, false)
	assert.ErrorIs(t, err, ts.ErrJumpMismatch)
}

func TestInvalidJumpValue(t *testing.T) {
	t.Parallel()

	crv := ts.NewFlatSimpleZeroCurve(ts.Fixed(date(2025, 1, 2)), quote.NewSimpleQuote(0.05), ts.Options{
		DayCounter: daycount.Act365F,
		Jumps:      quote.Handles(1.01),
		JumpDates:  []time.Time{date(2025, 6, 30)},
	})

	_, err := crv.Discount(1, false)
	assert.ErrorIs(t, err, ts.ErrInvalidJump)

	// Queries before the jump never read it.
	_, err = crv.Discount(0.25, false)
	assert.NoError(t, err)
}

func TestRangeGate(t *testing.T) {
	t.Parallel()

	crv := ts.NewFlatSimpleZeroCurve(ts.Fixed(date(2025, 1, 2)), quote.NewSimpleQuote(0.05), ts.Options{
		DayCounter: daycount.Act365F,
	})
	crv.SetMaxDate(date(2030, 1, 2))
	maxT := crv.MaxTime()

	_, err := crv.Discount(maxT, false)
	assert.NoError(t, err)

	_, err = crv.Discount(maxT+0.5, false)
	assert.ErrorIs(t, err, ts.ErrOutOfRange)
	_, err = crv.DiscountAt(date(2031, 1, 2), false)
	assert.ErrorIs(t, err, ts.ErrOutOfRange)

	_, err = crv.Discount(maxT+0.5, true)
	assert.NoError(t, err)

	crv.EnableExtrapolation(true)
	_, err = crv.DiscountAt(date(2031, 1, 2), false)
	assert.NoError(t, err)

	_, err = crv.Discount(-0.1, true)
	assert.ErrorIs(t, err, ts.ErrNegativeTime)
}

func TestSettingsObservers(t *testing.T) {
	t.Parallel()

	s := ts.NewSettings(date(2025, 1, 2))
	var seen []time.Time
	s.Observe(func(d time.Time) { seen = append(seen, d) })

	s.SetEvaluationDate(time.Date(2025, 1, 3, 15, 30, 0, 0, time.UTC))
	s.SetEvaluationDate(date(2025, 1, 3))

	assert.Equal(t, date(2025, 1, 3), s.EvaluationDate())
	assert.Equal(t, []time.Time{date(2025, 1, 3)}, seen)
	assert.False(t, ts.NewSettings(time.Time{}).EvaluationDate().IsZero())
}

func TestReferenceString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "floating", ts.Floating().String())
	assert.Equal(t, "fixed:2025-01-02", ts.Fixed(date(2025, 1, 2)).String())
	assert.Equal(t, "settlement-lag:2", ts.SettlementLag(2).String())
}
