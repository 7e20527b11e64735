package termstructure

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/termstructure/calendar"
	"github.com/meenmo/termstructure/daycount"
	"github.com/meenmo/termstructure/quote"
)

var (
	// ErrOutOfRange is returned for queries past the curve's max date
	// without extrapolation.
	ErrOutOfRange = errors.New("termstructure: query outside curve range")
	// ErrNegativeTime is returned for queries before the reference date.
	ErrNegativeTime = errors.New("termstructure: negative time")
	// ErrJumpMismatch is returned when jump quotes and jump dates differ in length.
	ErrJumpMismatch = errors.New("termstructure: jump quotes and jump dates differ in length")
	// ErrInvalidJump is returned when a jump value is not a valid discount factor.
	ErrInvalidJump = errors.New("termstructure: invalid jump value")
)

// Options are the settings shared by all reference modes.
type Options struct {
	// Calendar advances settlement-lag references. Defaults to calendar.Null.
	Calendar calendar.Calendar
	// DayCounter measures time from the reference date. A nil day counter
	// is the undefined convention: date-based queries panic.
	DayCounter daycount.DayCounter
	// Jumps are discount factor multipliers applied past their dates.
	Jumps []quote.Handle
	// JumpDates pairs with Jumps. When empty, jumps fall on 31 December of
	// consecutive years starting from the reference year.
	JumpDates []time.Time
	// Settings supplies the evaluation date. Defaults to DefaultSettings.
	Settings *Settings
}

// ReferenceResolver converts dates into times on a curve.
type ReferenceResolver interface {
	ReferenceDate() time.Time
	TimeFromReference(d time.Time) float64
}

// Base resolves the reference date, gates queries against the curve range
// and owns jump composition.
type Base struct {
	reference     Reference
	calendar      calendar.Calendar
	dayCounter    daycount.DayCounter
	jumps         []quote.Handle
	jumpDates     []time.Time
	settings      *Settings
	maxDate       time.Time
	extrapolation bool
}

// NewBase builds the framework part of a curve. No validation is done here;
// inconsistent jumps surface as ErrJumpMismatch on the first query.
func NewBase(ref Reference, opts Options) *Base {
	b := &Base{
		reference:  ref,
		calendar:   opts.Calendar,
		dayCounter: opts.DayCounter,
		jumps:      opts.Jumps,
		jumpDates:  opts.JumpDates,
		settings:   opts.Settings,
	}
	if b.calendar == nil {
		b.calendar = calendar.Null
	}
	if b.dayCounter == nil {
		b.dayCounter = daycount.NoneConv
	}
	if b.settings == nil {
		b.settings = DefaultSettings
	}
	return b
}

func (b *Base) Reference() Reference {
	return b.reference
}

func (b *Base) Calendar() calendar.Calendar {
	return b.calendar
}

func (b *Base) DayCounter() daycount.DayCounter {
	return b.dayCounter
}

func (b *Base) Settings() *Settings {
	return b.settings
}

func (b *Base) AllowsExtrapolation() bool {
	return b.extrapolation
}

// EnableExtrapolation lifts the max-date gate for every query.
func (b *Base) EnableExtrapolation(enabled bool) {
	b.extrapolation = enabled
}

// SetMaxDate bounds the calibrated range; the zero date removes the bound.
func (b *Base) SetMaxDate(d time.Time) {
	b.maxDate = truncateDay(d)
}

// ReferenceDate resolves the reference date for the current evaluation date.
func (b *Base) ReferenceDate() time.Time {
	switch b.reference.mode {
	case ReferenceFixed:
		return b.reference.date
	case ReferenceSettlementLag:
		return b.calendar.Advance(b.settings.EvaluationDate(), b.reference.settlementDays)
	default:
		return b.settings.EvaluationDate()
	}
}

// TimeFromReference measures d from the reference date with the curve day counter.
func (b *Base) TimeFromReference(d time.Time) float64 {
	return b.dayCounter.YearFraction(b.ReferenceDate(), d)
}

// MaxDate is the last date the curve is calibrated to; zero means unbounded.
func (b *Base) MaxDate() time.Time {
	return b.maxDate
}

// MaxTime is MaxDate as a time, or +Inf for unbounded curves.
func (b *Base) MaxTime() float64 {
	if b.maxDate.IsZero() {
		return math.Inf(1)
	}
	return b.TimeFromReference(b.maxDate)
}

// CheckRange rejects negative times and, unless extrapolation is allowed,
// times past MaxTime.
func (b *Base) CheckRange(t float64, extrapolate bool) error {
	if t < 0 {
		return fmt.Errorf("%w: t=%g", ErrNegativeTime, t)
	}
	if extrapolate || b.extrapolation {
		return nil
	}
	maxT := b.MaxTime()
	if t <= maxT || math.Abs(t-maxT) <= cfg.TimeTolerance*math.Max(1, math.Abs(maxT)) {
		return nil
	}
	return fmt.Errorf("%w: t=%g is past max time %g", ErrOutOfRange, t, maxT)
}

// CheckDateRange is CheckRange for dates.
func (b *Base) CheckDateRange(d time.Time, extrapolate bool) error {
	ref := b.ReferenceDate()
	if d.Before(ref) {
		return fmt.Errorf("%w: %s is before reference date %s", ErrNegativeTime,
			d.Format("2006-01-02"), ref.Format("2006-01-02"))
	}
	if extrapolate || b.extrapolation || b.maxDate.IsZero() || !d.After(b.maxDate) {
		return nil
	}
	return fmt.Errorf("%w: %s is past max date %s", ErrOutOfRange,
		d.Format("2006-01-02"), b.maxDate.Format("2006-01-02"))
}

// JumpDates returns the effective jump dates.
func (b *Base) JumpDates() ([]time.Time, error) {
	if len(b.jumps) == 0 {
		return nil, nil
	}
	if len(b.jumpDates) == 0 {
		year := b.ReferenceDate().Year()
		dates := make([]time.Time, len(b.jumps))
		for i := range dates {
			dates[i] = time.Date(year+i, time.December, 31, 0, 0, 0, 0, time.UTC)
		}
		return dates, nil
	}
	if len(b.jumpDates) != len(b.jumps) {
		return nil, fmt.Errorf("%w: %d quotes, %d dates", ErrJumpMismatch, len(b.jumps), len(b.jumpDates))
	}
	return b.jumpDates, nil
}

// JumpEffect multiplies the jumps falling strictly inside (0, t).
func (b *Base) JumpEffect(t float64) (float64, error) {
	dates, err := b.JumpDates()
	if err != nil {
		return 0, err
	}
	effect := 1.0
	for i, d := range dates {
		jt := b.TimeFromReference(d)
		if jt <= 0 || jt >= t {
			continue
		}
		v := b.jumps[i].Value()
		if math.IsNaN(v) || v <= 0 || v > cfg.MaxJumpValue {
			return 0, fmt.Errorf("%w: jump %d on %s has value %g", ErrInvalidJump, i, d.Format("2006-01-02"), v)
		}
		effect *= v
	}
	return effect, nil
}
