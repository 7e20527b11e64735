// Package config loads curve definitions from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/termstructure/calendar"
	"github.com/meenmo/termstructure/daycount"
	"github.com/meenmo/termstructure/utils"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid curve config")

// Reference modes accepted in reference.mode.
const (
	ModeFloating      = "floating"
	ModeFixed         = "fixed"
	ModeSettlementLag = "settlement_lag"
)

// Zero curve types accepted in zero.type.
const (
	ZeroFlat         = "flat"
	ZeroInterpolated = "interpolated"
	ZeroNelsonSiegel = "nelson_siegel"
)

// Config describes one simple-compounding zero curve.
type Config struct {
	EvaluationDate string          `yaml:"evaluation_date"`
	Calendar       string          `yaml:"calendar"`
	DayCount       string          `yaml:"day_count"`
	Extrapolate    bool            `yaml:"extrapolate"`
	Reference      ReferenceConfig `yaml:"reference"`
	Zero           ZeroConfig      `yaml:"zero"`
	Jumps          []JumpConfig    `yaml:"jumps"`
	JumpAdjustment string          `yaml:"jump_adjustment"`
	Holidays       []string        `yaml:"holidays"`
	Logging        LoggingConfig   `yaml:"logging"`

	overrides []Override
}

// Override records an environment variable that replaced a file value.
type Override struct {
	Env   string
	Value string
}

// ReferenceConfig selects the reference-date strategy.
type ReferenceConfig struct {
	Mode           string `yaml:"mode"`
	Date           string `yaml:"date"`
	SettlementDays int    `yaml:"settlement_days"`
}

// ZeroConfig holds the zero-yield provider parameters. Rates may be written
// as numbers (0.05) or strings ("0.05", "5%").
type ZeroConfig struct {
	Type         string             `yaml:"type"`
	Rate         any                `yaml:"rate"`
	Nodes        []NodeConfig       `yaml:"nodes"`
	NelsonSiegel NelsonSiegelConfig `yaml:"nelson_siegel"`
}

// NodeConfig is one interpolation node, keyed by tenor or by date.
type NodeConfig struct {
	Tenor string `yaml:"tenor"`
	Date  string `yaml:"date"`
	Rate  any    `yaml:"rate"`
}

type NelsonSiegelConfig struct {
	Beta0 any `yaml:"beta0"`
	Beta1 any `yaml:"beta1"`
	Beta2 any `yaml:"beta2"`
	Tau   any `yaml:"tau"`
}

// JumpConfig is a discount factor jump. An empty date uses the default
// year-end jump schedule; either all jumps have dates or none do. Explicit
// dates are rolled with jump_adjustment on the curve calendar.
type JumpConfig struct {
	Date  string `yaml:"date"`
	Value any    `yaml:"value"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Nothing is logged here: the applied overrides are kept for the
// caller, whose logger may depend on the config itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load for in-memory YAML.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides lists the environment overrides applied while parsing.
func (c *Config) Overrides() []Override {
	return c.overrides
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"TERMSTRUCTURE_EVALUATION_DATE", &c.EvaluationDate},
		{"TERMSTRUCTURE_CALENDAR", &c.Calendar},
		{"TERMSTRUCTURE_DAY_COUNT", &c.DayCount},
		{"TERMSTRUCTURE_LOG_LEVEL", &c.Logging.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
			c.overrides = append(c.overrides, Override{Env: o.env, Value: v})
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Calendar == "" {
		c.Calendar = string(calendar.TARGET)
	}
	if c.DayCount == "" {
		c.DayCount = string(daycount.Act365F)
	}
	if c.Reference.Mode == "" {
		c.Reference.Mode = ModeFloating
	}
	if c.Zero.Type == "" {
		c.Zero.Type = ZeroFlat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Calendar = strings.ToUpper(strings.TrimSpace(c.Calendar))
	c.Reference.Mode = strings.ToLower(strings.TrimSpace(c.Reference.Mode))
	c.Zero.Type = strings.ToLower(strings.TrimSpace(c.Zero.Type))
}

// Validate checks that all required fields are set and well formed.
func (c *Config) Validate() error {
	if c.EvaluationDate != "" {
		if _, err := utils.ParseDate(c.EvaluationDate); err != nil {
			return fmt.Errorf("%w: evaluation_date: %v", ErrInvalidConfig, err)
		}
	}
	if !calendar.Known(calendar.CalendarID(c.Calendar)) {
		return fmt.Errorf("%w: unknown calendar %q", ErrInvalidConfig, c.Calendar)
	}
	dc, err := daycount.Parse(c.DayCount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.Holidays) > 0 && (c.Calendar == string(calendar.Null) || c.Calendar == string(calendar.WeekendsOnly)) {
		return fmt.Errorf("%w: holidays cannot be added to the %s calendar", ErrInvalidConfig, c.Calendar)
	}
	for i, h := range c.Holidays {
		if _, err := utils.ParseDate(h); err != nil {
			return fmt.Errorf("%w: holidays[%d]: %v", ErrInvalidConfig, i, err)
		}
	}

	switch c.Reference.Mode {
	case ModeFloating:
	case ModeFixed:
		if _, err := utils.ParseDate(c.Reference.Date); err != nil {
			return fmt.Errorf("%w: reference.date: %v", ErrInvalidConfig, err)
		}
	case ModeSettlementLag:
		if c.Reference.SettlementDays < 0 {
			return fmt.Errorf("%w: reference.settlement_days must be >= 0", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown reference.mode %q", ErrInvalidConfig, c.Reference.Mode)
	}

	switch c.Zero.Type {
	case ZeroFlat:
		if _, err := ParseRate(c.Zero.Rate); err != nil {
			return fmt.Errorf("%w: zero.rate: %v", ErrInvalidConfig, err)
		}
	case ZeroInterpolated:
		if dc == daycount.NoneConv {
			return fmt.Errorf("%w: interpolated curves need a day_count", ErrInvalidConfig)
		}
		if len(c.Zero.Nodes) == 0 {
			return fmt.Errorf("%w: zero.nodes is required for interpolated curves", ErrInvalidConfig)
		}
		for i, n := range c.Zero.Nodes {
			if (n.Tenor == "") == (n.Date == "") {
				return fmt.Errorf("%w: zero.nodes[%d] needs exactly one of tenor or date", ErrInvalidConfig, i)
			}
			if _, err := ParseRate(n.Rate); err != nil {
				return fmt.Errorf("%w: zero.nodes[%d].rate: %v", ErrInvalidConfig, i, err)
			}
		}
	case ZeroNelsonSiegel:
		ns := c.Zero.NelsonSiegel
		for name, v := range map[string]any{"beta0": ns.Beta0, "beta1": ns.Beta1, "beta2": ns.Beta2, "tau": ns.Tau} {
			if _, err := ParseRate(v); err != nil {
				return fmt.Errorf("%w: zero.nelson_siegel.%s: %v", ErrInvalidConfig, name, err)
			}
		}
	default:
		return fmt.Errorf("%w: unknown zero.type %q", ErrInvalidConfig, c.Zero.Type)
	}

	dated := 0
	for i, j := range c.Jumps {
		if _, err := ParseRate(j.Value); err != nil {
			return fmt.Errorf("%w: jumps[%d].value: %v", ErrInvalidConfig, i, err)
		}
		if j.Date != "" {
			if _, err := utils.ParseDate(j.Date); err != nil {
				return fmt.Errorf("%w: jumps[%d].date: %v", ErrInvalidConfig, i, err)
			}
			dated++
		}
	}
	if dated != 0 && dated != len(c.Jumps) {
		return fmt.Errorf("%w: either every jump has a date or none does", ErrInvalidConfig)
	}
	if _, err := calendar.ParseConvention(c.JumpAdjustment); err != nil {
		return fmt.Errorf("%w: jump_adjustment: %v", ErrInvalidConfig, err)
	}
	return nil
}
