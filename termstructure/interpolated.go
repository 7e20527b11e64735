package termstructure

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/meenmo/termstructure/daycount"
)

// ErrInvalidNodes is returned for node sets an interpolated curve cannot use.
var ErrInvalidNodes = errors.New("termstructure: invalid curve nodes")

// InterpolatedSimpleZero interpolates simple zero rates linearly in time.
// Rates are held flat before the first and after the last node.
type InterpolatedSimpleZero struct {
	times []float64
	rates []float64
}

// datedSimpleZero adds the node dates so that node-date queries skip the
// day count round trip.
type datedSimpleZero struct {
	*InterpolatedSimpleZero
	dates []time.Time
	dc    daycount.DayCounter
}

// NewInterpolatedSimpleZero builds the provider from node times and rates.
// Times must be strictly increasing.
func NewInterpolatedSimpleZero(times, rates []float64) (*InterpolatedSimpleZero, error) {
	if len(times) == 0 || len(times) != len(rates) {
		return nil, fmt.Errorf("%w: %d times, %d rates", ErrInvalidNodes, len(times), len(rates))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w: times not increasing at node %d (%g <= %g)", ErrInvalidNodes, i, times[i], times[i-1])
		}
	}
	return &InterpolatedSimpleZero{
		times: append([]float64(nil), times...),
		rates: append([]float64(nil), rates...),
	}, nil
}

// NewInterpolatedSimpleZeroCurve builds a curve on dated nodes. The first
// date is the fixed reference date and the last date bounds the range.
func NewInterpolatedSimpleZeroCurve(dates []time.Time, rates []float64, dc daycount.DayCounter, opts Options) (*Curve, error) {
	if len(dates) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 dates, got %d", ErrInvalidNodes, len(dates))
	}
	if dc == nil || dc == daycount.NoneConv {
		return nil, fmt.Errorf("%w: a day counter is required", ErrInvalidNodes)
	}
	nodes := make([]time.Time, len(dates))
	times := make([]float64, len(dates))
	for i, d := range dates {
		nodes[i] = truncateDay(d)
		times[i] = dc.YearFraction(nodes[0], nodes[i])
	}
	p, err := NewInterpolatedSimpleZero(times, rates)
	if err != nil {
		return nil, err
	}

	opts.DayCounter = dc
	c := NewSimpleZeroCurve(Fixed(nodes[0]), &datedSimpleZero{InterpolatedSimpleZero: p, dates: nodes, dc: dc}, opts)
	c.SetMaxDate(nodes[len(nodes)-1])
	return c, nil
}

func (p *InterpolatedSimpleZero) Times() []float64 {
	return append([]float64(nil), p.times...)
}

func (p *InterpolatedSimpleZero) Rates() []float64 {
	return append([]float64(nil), p.rates...)
}

// SimpleZeroYield returns the node rate on a node and the linear
// interpolation between the bracketing nodes otherwise.
func (p *InterpolatedSimpleZero) SimpleZeroYield(t float64) float64 {
	n := len(p.times)
	idx := sort.SearchFloat64s(p.times, t)
	if idx < n && p.times[idx] == t {
		return p.rates[idx]
	}
	if idx == 0 {
		return p.rates[0]
	}
	if idx >= n {
		return p.rates[n-1]
	}
	t1, t2 := p.times[idx-1], p.times[idx]
	r1, r2 := p.rates[idx-1], p.rates[idx]
	return r1 + (r2-r1)*(t-t1)/(t2-t1)
}

// SimpleZeroYieldAt returns node rates directly for node dates. Node times
// were measured with the curve day counter from the curve reference date,
// so this agrees with SimpleZeroYield on the converted time.
func (p *datedSimpleZero) SimpleZeroYieldAt(d time.Time) float64 {
	d = truncateDay(d)
	idx := sort.Search(len(p.dates), func(i int) bool {
		return !p.dates[i].Before(d)
	})
	if idx < len(p.dates) && p.dates[idx].Equal(d) {
		return p.rates[idx]
	}
	return p.SimpleZeroYield(p.dc.YearFraction(p.dates[0], d))
}
