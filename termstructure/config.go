package termstructure

// Config holds numeric knobs of the curve framework.
type Config struct {
	// ForwardStep is the time step used for instantaneous quantities:
	// zero rates at t == 0 and forward rates over an empty period.
	ForwardStep float64

	// MaxJumpValue caps jump discount factors. 1.0 rejects jumps that would
	// raise the discount factor; set above 1 to allow negative-rate jumps.
	MaxJumpValue float64

	// TimeTolerance is the relative slack applied when comparing a query
	// time with the curve's max time.
	TimeTolerance float64
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ForwardStep:   0.0001,
	MaxJumpValue:  1.0,
	TimeTolerance: 1e-12,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
