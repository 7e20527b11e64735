package termstructure

import (
	"fmt"
	"math"
)

// NelsonSiegelSimpleZero is the Nelson-Siegel parametrisation read as a
// simple zero rate:
//
//	r(t) = b0 + b1*g(x) + b2*(g(x) - e^-x),  x = t/tau,  g(x) = (1 - e^-x)/x
//
// g has a removable singularity at the origin, so r(0) evaluates to NaN.
type NelsonSiegelSimpleZero struct {
	Beta0, Beta1, Beta2 float64
	Tau                 float64
}

// NewNelsonSiegelSimpleZero validates the decay parameter.
func NewNelsonSiegelSimpleZero(beta0, beta1, beta2, tau float64) (*NelsonSiegelSimpleZero, error) {
	if !(tau > 0) {
		return nil, fmt.Errorf("termstructure: nelson-siegel tau must be positive, got %g", tau)
	}
	return &NelsonSiegelSimpleZero{Beta0: beta0, Beta1: beta1, Beta2: beta2, Tau: tau}, nil
}

func (n *NelsonSiegelSimpleZero) SimpleZeroYield(t float64) float64 {
	x := t / n.Tau
	ex := math.Exp(-x)
	g := (1 - ex) / x
	return n.Beta0 + n.Beta1*g + n.Beta2*(g-ex)
}
