package termstructure

import "github.com/meenmo/termstructure/quote"

// FlatSimpleZero quotes the same simple zero rate at every time. The rate is
// read from the handle on each query, so market updates show up at once.
type FlatSimpleZero struct {
	rate quote.Handle
}

func NewFlatSimpleZero(rate quote.Handle) *FlatSimpleZero {
	return &FlatSimpleZero{rate: rate}
}

func (f *FlatSimpleZero) SimpleZeroYield(float64) float64 {
	return f.rate.Value()
}

// NewFlatSimpleZeroCurve builds an unbounded curve on a flat simple rate.
func NewFlatSimpleZeroCurve(ref Reference, rate quote.Handle, opts Options) *Curve {
	return NewSimpleZeroCurve(ref, NewFlatSimpleZero(rate), opts)
}
