package termstructure

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvertedPeriod is returned for forward rates whose end precedes their start.
var ErrInvertedPeriod = errors.New("termstructure: forward period ends before it starts")

// DiscountImplementer computes raw discount factors once the range check
// has passed. Jumps are applied on top by Curve.
type DiscountImplementer interface {
	DiscountImpl(t float64) float64
	DiscountImplAt(d time.Time) float64
}

// Curve is the yield term structure queried by valuation code.
type Curve struct {
	*Base
	impl DiscountImplementer
}

// NewCurve wraps a discount implementation with its framework part.
func NewCurve(base *Base, impl DiscountImplementer) *Curve {
	return &Curve{Base: base, impl: impl}
}

// NewSimpleZeroCurve builds a curve whose discount factors are derived from
// the provider's simple zero yields.
func NewSimpleZeroCurve(ref Reference, provider SimpleZeroYieldProvider, opts Options) *Curve {
	base := NewBase(ref, opts)
	return NewCurve(base, NewSimpleZeroYieldStructure(base, provider))
}

// Impl returns the underlying discount implementation.
func (c *Curve) Impl() DiscountImplementer {
	return c.impl
}

// Discount returns the discount factor at time t, jumps included.
func (c *Curve) Discount(t float64, extrapolate bool) (float64, error) {
	if err := c.CheckRange(t, extrapolate); err != nil {
		return 0, err
	}
	jump, err := c.JumpEffect(t)
	if err != nil {
		return 0, err
	}
	return jump * c.impl.DiscountImpl(t), nil
}

// DiscountAt returns the discount factor at date d, jumps included.
func (c *Curve) DiscountAt(d time.Time, extrapolate bool) (float64, error) {
	if err := c.CheckDateRange(d, extrapolate); err != nil {
		return 0, err
	}
	jump, err := c.JumpEffect(c.TimeFromReference(d))
	if err != nil {
		return 0, err
	}
	return jump * c.impl.DiscountImplAt(d), nil
}

// ZeroRate returns the zero rate to time t under the given convention.
// At t == 0 the rate over the first ForwardStep is returned.
func (c *Curve) ZeroRate(t float64, comp Compounding, freq Frequency, extrapolate bool) (float64, error) {
	if t == 0.0 {
		t = cfg.ForwardStep
	}
	df, err := c.Discount(t, extrapolate)
	if err != nil {
		return 0, err
	}
	return ImpliedRate(1.0/df, t, comp, freq)
}

// ZeroRateAt is ZeroRate for a date.
func (c *Curve) ZeroRateAt(d time.Time, comp Compounding, freq Frequency, extrapolate bool) (float64, error) {
	if err := c.CheckDateRange(d, extrapolate); err != nil {
		return 0, err
	}
	return c.ZeroRate(c.TimeFromReference(d), comp, freq, true)
}

// ForwardRate returns the rate implied between t1 and t2. Equal times give
// the instantaneous forward around t1.
func (c *Curve) ForwardRate(t1, t2 float64, comp Compounding, freq Frequency, extrapolate bool) (float64, error) {
	if t2 < t1 {
		return 0, fmt.Errorf("%w: t1=%g, t2=%g", ErrInvertedPeriod, t1, t2)
	}
	if t2 == t1 {
		dt := cfg.ForwardStep
		t1 = math.Max(t1-dt/2.0, 0.0)
		t2 = t1 + dt
	}
	df1, err := c.Discount(t1, extrapolate)
	if err != nil {
		return 0, err
	}
	df2, err := c.Discount(t2, extrapolate)
	if err != nil {
		return 0, err
	}
	return ImpliedRate(df1/df2, t2-t1, comp, freq)
}

// ForwardRateAt is ForwardRate between two dates.
func (c *Curve) ForwardRateAt(d1, d2 time.Time, comp Compounding, freq Frequency, extrapolate bool) (float64, error) {
	for _, d := range []time.Time{d1, d2} {
		if err := c.CheckDateRange(d, extrapolate); err != nil {
			return 0, err
		}
	}
	return c.ForwardRate(c.TimeFromReference(d1), c.TimeFromReference(d2), comp, freq, true)
}
