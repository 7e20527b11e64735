package termstructure

import "time"

// SimpleZeroYieldProvider supplies annual simple-compounding zero rates.
//
// SimpleZeroYield is only called after the range check has passed, so an
// implementation must assume extrapolation is allowed and must not validate
// t itself. It is never called with t == 0.
type SimpleZeroYieldProvider interface {
	SimpleZeroYield(t float64) float64
}

// DateSimpleZeroYieldProvider is implemented by providers with a more
// accurate date-native rate. For any date d, SimpleZeroYieldAt(d) must equal
// SimpleZeroYield(TimeFromReference(d)).
type DateSimpleZeroYieldProvider interface {
	SimpleZeroYieldAt(d time.Time) float64
}

// SimpleZeroYieldStructure turns simple zero yields into discount factors.
type SimpleZeroYieldStructure struct {
	resolver ReferenceResolver
	provider SimpleZeroYieldProvider
}

// NewSimpleZeroYieldStructure binds a provider to the reference resolution
// of the curve it is part of.
func NewSimpleZeroYieldStructure(resolver ReferenceResolver, provider SimpleZeroYieldProvider) *SimpleZeroYieldStructure {
	return &SimpleZeroYieldStructure{resolver: resolver, provider: provider}
}

// Provider returns the zero-yield provider.
func (s *SimpleZeroYieldStructure) Provider() SimpleZeroYieldProvider {
	return s.provider
}

// SimpleZeroYieldAt is the date query: the provider's own date method when
// it has one, the time query on TimeFromReference(d) otherwise.
func (s *SimpleZeroYieldStructure) SimpleZeroYieldAt(d time.Time) float64 {
	if p, ok := s.provider.(DateSimpleZeroYieldProvider); ok {
		return p.SimpleZeroYieldAt(d)
	}
	return s.provider.SimpleZeroYield(s.resolver.TimeFromReference(d))
}

// DiscountImpl returns 1 / (1 + r(t)*t).
//
// t == 0 returns exactly 1 without asking the provider, which may be
// undefined at the origin. A rate of -1/t or a negative t produce an
// infinite or meaningless factor; neither is guarded here.
func (s *SimpleZeroYieldStructure) DiscountImpl(t float64) float64 {
	if t == 0.0 {
		return 1.0
	}
	r := s.provider.SimpleZeroYield(t)
	return 1.0 / (1.0 + r*t)
}

// DiscountImplAt is DiscountImpl(TimeFromReference(d)).
func (s *SimpleZeroYieldStructure) DiscountImplAt(d time.Time) float64 {
	return s.DiscountImpl(s.resolver.TimeFromReference(d))
}
