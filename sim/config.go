package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// probabilityEpsilon absorbs float rounding when deriving the veteran B share
// (1 - 0.55 - 0.45 is -5.5e-17 in float64, not a configuration error).
const probabilityEpsilon = 1e-9

// ConfigurationError reports an inconsistent configuration value.
// The core never clamps: it returns this error instead.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Range is a closed interval [Min, Max] in minutes.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample maps a uniform draw u in [0,1) linearly into the range.
func (r Range) Sample(u float64) float64 {
	return r.Min + u*(r.Max-r.Min)
}

// StylistConfig describes one skill tier.
// Probability is ignored for veteran B, whose share is derived.
type StylistConfig struct {
	Probability float64         `yaml:"probability,omitempty"`
	Service     Range           `yaml:"service_minutes"`
	Fee         decimal.Decimal `yaml:"fee"`
}

// Config groups every parameter of a simulated shop day.
type Config struct {
	ArrivalInterval Range           `yaml:"arrival_interval_minutes"`
	Apprentice      StylistConfig   `yaml:"apprentice"`
	VeteranA        StylistConfig   `yaml:"veteran_a"`
	VeteranB        StylistConfig   `yaml:"veteran_b"`
	SnackThreshold  float64         `yaml:"snack_threshold_minutes"` // wait before a snack is due
	SnackCost       decimal.Decimal `yaml:"snack_cost"`
	Workday         float64         `yaml:"workday_minutes"`        // intake window
	MaxSimTime      float64         `yaml:"max_simulation_minutes"` // hard clock limit
	MaxIterations   int             `yaml:"max_iterations"`         // dispatched events per day
	// SnackAlertThreshold is the per-day snack count that counts as a bad day
	// in the aggregate probability.
	SnackAlertThreshold int `yaml:"snack_alert_threshold"`
}

// DefaultConfig returns the reference shop: three stylists, an eight hour
// intake window and twice that as the hard clock limit.
func DefaultConfig() Config {
	return Config{
		ArrivalInterval: Range{Min: 2, Max: 12},
		Apprentice: StylistConfig{
			Probability: 0.15,
			Service:     Range{Min: 20, Max: 30},
			Fee:         decimal.NewFromInt(18000),
		},
		VeteranA: StylistConfig{
			Probability: 0.45,
			Service:     Range{Min: 11, Max: 13},
			Fee:         decimal.NewFromInt(32500),
		},
		VeteranB: StylistConfig{
			Service: Range{Min: 12, Max: 18},
			Fee:     decimal.NewFromInt(32500),
		},
		SnackThreshold:      30,
		SnackCost:           decimal.NewFromInt(5500),
		Workday:             8 * 60,
		MaxSimTime:          2 * 8 * 60,
		MaxIterations:       100000,
		SnackAlertThreshold: 5,
	}
}

// VeteranBProbability returns 1 - apprentice - veteranA, with float noise
// around zero flattened to exactly zero.
func (c Config) VeteranBProbability() float64 {
	p := 1 - c.Apprentice.Probability - c.VeteranA.Probability
	if math.Abs(p) < probabilityEpsilon {
		return 0
	}
	return p
}

// Stylist returns the configuration for the given tier.
func (c Config) Stylist(kind StylistKind) StylistConfig {
	switch kind {
	case Apprentice:
		return c.Apprentice
	case VeteranA:
		return c.VeteranA
	case VeteranB:
		sc := c.VeteranB
		sc.Probability = c.VeteranBProbability()
		return sc
	default:
		panic(fmt.Sprintf("unknown stylist kind %d", kind))
	}
}

// Validate checks every field and joins all problems found, so a caller can
// report them together. Each joined error is a *ConfigurationError.
func (c Config) Validate() error {
	return errors.Join(c.problems()...)
}

func (c Config) problems() []error {
	var errs []error
	checkRange := func(field string, r Range) {
		if !isFinite(r.Min) || !isFinite(r.Max) {
			errs = append(errs, configErrorf(field, "bounds must be finite, got [%g, %g]", r.Min, r.Max))
			return
		}
		if r.Min < 0 {
			errs = append(errs, configErrorf(field, "min must be non-negative, got %g", r.Min))
		}
		if !(r.Min <= r.Max) {
			errs = append(errs, configErrorf(field, "min %g is greater than max %g", r.Min, r.Max))
		}
	}
	// written as !(v > 0) so NaN fails too
	checkPositive := func(field string, v float64) {
		if !(v > 0) || !isFinite(v) {
			errs = append(errs, configErrorf(field, "must be positive and finite, got %g", v))
		}
	}

	checkRange("arrival_interval_minutes", c.ArrivalInterval)
	for _, kind := range StylistKinds {
		sc := c.Stylist(kind)
		checkRange(kind.key()+".service_minutes", sc.Service)
		if sc.Fee.IsNegative() {
			errs = append(errs, configErrorf(kind.key()+".fee", "must be non-negative, got %s", sc.Fee))
		}
	}
	for _, kind := range []StylistKind{Apprentice, VeteranA} {
		p := c.Stylist(kind).Probability
		if p < 0 || p > 1 || math.IsNaN(p) {
			errs = append(errs, configErrorf(kind.key()+".probability", "must be within [0, 1], got %g", p))
		}
	}
	if c.VeteranB.Probability != 0 {
		errs = append(errs, configErrorf("veteran_b.probability", "is derived from apprentice and veteran_a and must not be set"))
	}
	if p := c.VeteranBProbability(); p < 0 {
		errs = append(errs, configErrorf("veteran_b.probability",
			"derived share is negative: apprentice %g + veteran_a %g exceed 1",
			c.Apprentice.Probability, c.VeteranA.Probability))
	}
	if !(c.SnackThreshold >= 0) || !isFinite(c.SnackThreshold) {
		errs = append(errs, configErrorf("snack_threshold_minutes", "must be non-negative and finite, got %g", c.SnackThreshold))
	}
	if c.SnackCost.IsNegative() {
		errs = append(errs, configErrorf("snack_cost", "must be non-negative, got %s", c.SnackCost))
	}
	checkPositive("workday_minutes", c.Workday)
	checkPositive("max_simulation_minutes", c.MaxSimTime)
	if c.MaxIterations <= 0 {
		errs = append(errs, configErrorf("max_iterations", "must be positive, got %d", c.MaxIterations))
	}
	if c.SnackAlertThreshold < 0 {
		errs = append(errs, configErrorf("snack_alert_threshold", "must be non-negative, got %d", c.SnackAlertThreshold))
	}
	return errs
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
