package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cast"

	"github.com/meenmo/termstructure/calendar"
	"github.com/meenmo/termstructure/daycount"
	"github.com/meenmo/termstructure/quote"
	"github.com/meenmo/termstructure/termstructure"
	"github.com/meenmo/termstructure/utils"
)

var errMissing = errors.New("value is required")

// ParseRate coerces a YAML scalar to a decimal rate. Strings ending in "%"
// are read as percentages.
func ParseRate(v any) (float64, error) {
	if v == nil {
		return 0, errMissing
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "%") {
			f, err := cast.ToFloat64E(strings.TrimSpace(strings.TrimSuffix(s, "%")))
			if err != nil {
				return 0, err
			}
			return f / 100.0, nil
		}
		v = s
	}
	return cast.ToFloat64E(v)
}

// Curve is a built curve together with the live inputs driving it. Rate is
// nil unless the zero curve is flat.
type Curve struct {
	*termstructure.Curve
	Settings *termstructure.Settings
	Rate     *quote.SimpleQuote
	Jumps    []*quote.SimpleQuote
}

// Build turns a validated config into a curve.
func Build(c *Config) (*Curve, error) {
	settings := termstructure.NewSettings(time.Time{})
	if c.EvaluationDate != "" {
		d, err := utils.ParseDate(c.EvaluationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: evaluation_date: %v", ErrInvalidConfig, err)
		}
		settings.SetEvaluationDate(d)
	}

	dc, err := daycount.Parse(c.DayCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cal := calendar.CalendarID(c.Calendar)
	for i, h := range c.Holidays {
		d, err := utils.ParseDate(h)
		if err != nil {
			return nil, fmt.Errorf("%w: holidays[%d]: %v", ErrInvalidConfig, i, err)
		}
		calendar.AddHolidays(cal, d)
	}
	conv, err := calendar.ParseConvention(c.JumpAdjustment)
	if err != nil {
		return nil, fmt.Errorf("%w: jump_adjustment: %v", ErrInvalidConfig, err)
	}

	out := &Curve{Settings: settings}
	opts := termstructure.Options{
		Calendar:   cal,
		DayCounter: dc,
		Settings:   settings,
	}
	for i, j := range c.Jumps {
		v, err := ParseRate(j.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: jumps[%d].value: %v", ErrInvalidConfig, i, err)
		}
		q := quote.NewSimpleQuote(v)
		out.Jumps = append(out.Jumps, q)
		opts.Jumps = append(opts.Jumps, q)
		if j.Date != "" {
			d, err := utils.ParseDate(j.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: jumps[%d].date: %v", ErrInvalidConfig, i, err)
			}
			opts.JumpDates = append(opts.JumpDates, calendar.Adjust(cal, d, conv))
		}
	}

	ref, err := c.reference()
	if err != nil {
		return nil, err
	}

	var crv *termstructure.Curve
	switch c.Zero.Type {
	case ZeroFlat:
		r, err := ParseRate(c.Zero.Rate)
		if err != nil {
			return nil, fmt.Errorf("%w: zero.rate: %v", ErrInvalidConfig, err)
		}
		out.Rate = quote.NewSimpleQuote(r)
		crv = termstructure.NewFlatSimpleZeroCurve(ref, out.Rate, opts)
	case ZeroNelsonSiegel:
		ns := c.Zero.NelsonSiegel
		params := make([]float64, 4)
		for i, v := range []any{ns.Beta0, ns.Beta1, ns.Beta2, ns.Tau} {
			if params[i], err = ParseRate(v); err != nil {
				return nil, fmt.Errorf("%w: zero.nelson_siegel: %v", ErrInvalidConfig, err)
			}
		}
		p, err := termstructure.NewNelsonSiegelSimpleZero(params[0], params[1], params[2], params[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		crv = termstructure.NewSimpleZeroCurve(ref, p, opts)
	case ZeroInterpolated:
		crv, err = c.buildInterpolated(termstructure.NewBase(ref, opts).ReferenceDate(), dc, opts)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown zero.type %q", ErrInvalidConfig, c.Zero.Type)
	}
	crv.EnableExtrapolation(c.Extrapolate)
	out.Curve = crv
	out.observe()

	log.Debug().
		Str("reference", crv.Reference().String()).
		Str("zero_type", c.Zero.Type).
		Str("day_count", c.DayCount).
		Int("jumps", len(opts.Jumps)).
		Int("holidays", len(c.Holidays)).
		Msg("curve built")
	return out, nil
}

// observe logs changes to the curve inputs after construction.
func (c *Curve) observe() {
	c.Settings.Observe(func(d time.Time) {
		log.Debug().
			Str("evaluation_date", d.Format(utils.DateLayout)).
			Str("reference_date", c.ReferenceDate().Format(utils.DateLayout)).
			Msg("evaluation date changed")
	})
	if c.Rate != nil {
		c.Rate.Observe(func(v float64) {
			log.Debug().Float64("rate", v).Msg("flat rate updated")
		})
	}
	for i, q := range c.Jumps {
		q.Observe(func(v float64) {
			log.Debug().Int("jump", i).Float64("value", v).Msg("jump updated")
		})
	}
}

func (c *Config) reference() (termstructure.Reference, error) {
	switch c.Reference.Mode {
	case ModeFixed:
		d, err := utils.ParseDate(c.Reference.Date)
		if err != nil {
			return termstructure.Reference{}, fmt.Errorf("%w: reference.date: %v", ErrInvalidConfig, err)
		}
		return termstructure.Fixed(d), nil
	case ModeSettlementLag:
		return termstructure.SettlementLag(c.Reference.SettlementDays), nil
	case ModeFloating:
		return termstructure.Floating(), nil
	default:
		return termstructure.Reference{}, fmt.Errorf("%w: unknown reference.mode %q", ErrInvalidConfig, c.Reference.Mode)
	}
}

// buildInterpolated resolves tenor nodes against refDate. The node set is
// pinned to that date, so the resulting curve has a fixed reference. When
// no node falls on refDate the first node rate is extended back to it.
func (c *Config) buildInterpolated(refDate time.Time, dc daycount.DayCounter, opts termstructure.Options) (*termstructure.Curve, error) {
	type node struct {
		date time.Time
		rate float64
	}
	nodes := make([]node, 0, len(c.Zero.Nodes)+1)
	for i, n := range c.Zero.Nodes {
		var (
			d   time.Time
			err error
		)
		if n.Tenor != "" {
			d, err = utils.AddTenor(refDate, n.Tenor)
		} else {
			d, err = utils.ParseDate(n.Date)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: zero.nodes[%d]: %v", ErrInvalidConfig, i, err)
		}
		r, err := ParseRate(n.Rate)
		if err != nil {
			return nil, fmt.Errorf("%w: zero.nodes[%d].rate: %v", ErrInvalidConfig, i, err)
		}
		if d.Before(refDate) {
			return nil, fmt.Errorf("%w: zero.nodes[%d] %s is before the reference date %s",
				ErrInvalidConfig, i, d.Format(utils.DateLayout), refDate.Format(utils.DateLayout))
		}
		nodes = append(nodes, node{date: d, rate: r})
	}

	dates := make([]time.Time, 0, len(nodes))
	for _, n := range nodes {
		dates = append(dates, n.date)
	}
	utils.SortDates(dates)
	byDate := make(map[time.Time]float64, len(nodes))
	for _, n := range nodes {
		if _, dup := byDate[n.date]; dup {
			return nil, fmt.Errorf("%w: duplicate node date %s", ErrInvalidConfig, n.date.Format(utils.DateLayout))
		}
		byDate[n.date] = n.rate
	}
	if !dates[0].Equal(refDate) {
		byDate[refDate] = byDate[dates[0]]
		dates = append([]time.Time{refDate}, dates...)
	}
	rates := make([]float64, len(dates))
	for i, d := range dates {
		rates[i] = byDate[d]
	}

	crv, err := termstructure.NewInterpolatedSimpleZeroCurve(dates, rates, dc, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return crv, nil
}
