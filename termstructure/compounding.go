package termstructure

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidFrequency is returned when a compounded rate is requested
// without a positive frequency.
var ErrInvalidFrequency = errors.New("termstructure: compounding frequency must be positive")

// Compounding is the rate convention used when quoting zero and forward rates.
type Compounding int

const (
	// Simple is 1 + r*t.
	Simple Compounding = iota
	// Compounded is (1 + r/f)^(f*t).
	Compounded
	// Continuous is e^(r*t).
	Continuous
	// SimpleThenCompounded is Simple up to one period, Compounded beyond.
	SimpleThenCompounded
)

// Frequency is the number of compounding periods per year.
type Frequency int

const (
	NoFrequency Frequency = 0
	Annual      Frequency = 1
	Semiannual  Frequency = 2
	Quarterly   Frequency = 4
	Monthly     Frequency = 12
)

func (c Compounding) String() string {
	switch c {
	case Simple:
		return "simple"
	case Compounded:
		return "compounded"
	case Continuous:
		return "continuous"
	case SimpleThenCompounded:
		return "simple-then-compounded"
	default:
		return fmt.Sprintf("Compounding(%d)", int(c))
	}
}

// ParseCompounding accepts the names printed by Compounding.String.
func ParseCompounding(s string) (Compounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "":
		return Simple, nil
	case "compounded":
		return Compounded, nil
	case "continuous":
		return Continuous, nil
	case "simple-then-compounded":
		return SimpleThenCompounded, nil
	default:
		return 0, fmt.Errorf("termstructure: unknown compounding %q", s)
	}
}

// ImpliedRate returns the rate that grows 1 into compound over time t.
func ImpliedRate(compound, t float64, comp Compounding, freq Frequency) (float64, error) {
	if (comp == Compounded || comp == SimpleThenCompounded) && freq <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidFrequency, freq)
	}
	if compound == 1.0 {
		return 0, nil
	}
	f := float64(freq)
	switch comp {
	case Simple:
		return (compound - 1.0) / t, nil
	case Compounded:
		return (math.Pow(compound, 1.0/(f*t)) - 1.0) * f, nil
	case Continuous:
		return math.Log(compound) / t, nil
	case SimpleThenCompounded:
		if t <= 1.0/f {
			return (compound - 1.0) / t, nil
		}
		return (math.Pow(compound, 1.0/(f*t)) - 1.0) * f, nil
	default:
		return 0, fmt.Errorf("termstructure: unknown compounding %d", int(comp))
	}
}

// CompoundFactor is the inverse of ImpliedRate.
func CompoundFactor(r, t float64, comp Compounding, freq Frequency) (float64, error) {
	if (comp == Compounded || comp == SimpleThenCompounded) && freq <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidFrequency, freq)
	}
	f := float64(freq)
	switch comp {
	case Simple:
		return 1.0 + r*t, nil
	case Compounded:
		return math.Pow(1.0+r/f, f*t), nil
	case Continuous:
		return math.Exp(r * t), nil
	case SimpleThenCompounded:
		if t <= 1.0/f {
			return 1.0 + r*t, nil
		}
		return math.Pow(1.0+r/f, f*t), nil
	default:
		return 0, fmt.Errorf("termstructure: unknown compounding %d", int(comp))
	}
}
