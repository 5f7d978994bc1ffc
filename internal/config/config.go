package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported benchmark eras. Each era fixes the result dataset queried and
// the reference constants used to convert scores to megacycles.
const (
	SpecCPU2006 = "cpu2006"
	SpecCPU2017 = "cpu2017"
)

// DefaultVCPURatio is the virtual-to-physical core ratio assumed when the
// requirements file does not set one (no oversubscription).
const DefaultVCPURatio = 1.0

// Config is the top-level requirement tree.
// Fields map 1:1 to requirements.example.yaml.
type Config struct {
	Query  Query       `yaml:"query"`
	Sizing Computation `yaml:"sizing"`
}

// Query holds the optional substring filters forwarded to the remote
// results query. Empty fields request the unfiltered dataset.
type Query struct {
	// CPU matches against the processor name, e.g. "EPYC 9334".
	CPU string `yaml:"cpu"`

	// Vendor matches against the hardware vendor (company) name.
	Vendor string `yaml:"vendor"`

	// System matches against the system model name.
	System string `yaml:"system"`
}

// Computation holds the sizing requirement evaluated against every row of
// the benchmark dump.
//
// For cores and chips, either the exact count or the min/max bounds may be
// set, never both. A zero value means "unset": unset min is no lower bound,
// unset max is no upper bound.
type Computation struct {
	// Spec selects the benchmark era: cpu2006 | cpu2017.
	Spec string `yaml:"spec"`

	// Cores is the exact physical core count to match (0 = unset).
	// Required when VCPUs is set — it is the scaling divisor.
	Cores int `yaml:"cores"`

	MinCores int `yaml:"min_cores"`
	MaxCores int `yaml:"max_cores"`

	// Chips is the exact processor package count to match (0 = unset).
	Chips int `yaml:"chips"`

	MinChips int `yaml:"min_chips"`
	MaxChips int `yaml:"max_chips"`

	// MinMegaCycles is the workload's required total megacycle capacity.
	// Systems below the (overhead-adjusted) threshold are filtered out.
	MinMegaCycles int `yaml:"min_megacycles"`

	// Overhead is the percentage buffer added on top of MinMegaCycles to
	// account for unmodeled load. Range 0–100.
	Overhead int `yaml:"overhead"`

	// VCPURatio is the vCPU:pCPU oversubscription ratio. Range 1–2.
	VCPURatio float64 `yaml:"vcpu_ratio"`

	// VCPUs is the virtual core allocation to size for (0 = no scaling,
	// otherwise 1–100). When set, each row's result is rescaled to the
	// proportional share a VCPUs-wide guest would get on a Cores-wide host.
	VCPUs int `yaml:"vcpus"`
}

// ConfigError reports an invalid or contradictory requirement configuration.
// It is always raised before any network activity.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Default returns a Config pre-populated with default values: cpu2017 era,
// no filters, no megacycle requirement, ratio 1.
func Default() *Config {
	return &Config{
		Sizing: Computation{
			Spec:      SpecCPU2017,
			VCPURatio: DefaultVCPURatio,
		},
	}
}

// Load reads and parses the YAML requirements file at path.
// Missing optional fields are filled with defaults; the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks range bounds and mutual exclusivity. It returns a
// *ConfigError describing the first violation found, or nil.
func (c *Config) Validate() error {
	s := c.Sizing

	switch s.Spec {
	case SpecCPU2006, SpecCPU2017:
	default:
		return &ConfigError{"sizing.spec", fmt.Sprintf("unknown benchmark era %q", s.Spec)}
	}

	if err := validateBounds("cores", s.Cores, s.MinCores, s.MaxCores); err != nil {
		return err
	}
	if err := validateBounds("chips", s.Chips, s.MinChips, s.MaxChips); err != nil {
		return err
	}

	if s.MinMegaCycles < 0 {
		return &ConfigError{"sizing.min_megacycles", "must not be negative"}
	}
	if s.Overhead < 0 || s.Overhead > 100 {
		return &ConfigError{"sizing.overhead", "must be in range 0-100"}
	}
	if s.VCPURatio < 1 || s.VCPURatio > 2 {
		return &ConfigError{"sizing.vcpu_ratio", "must be in range 1-2"}
	}
	if s.VCPUs != 0 && (s.VCPUs < 1 || s.VCPUs > 100) {
		return &ConfigError{"sizing.vcpus", "must be in range 1-100"}
	}
	if s.VCPUs > 0 && s.Cores <= 0 {
		// The vCPU rescale divides by the configured core count, so an
		// exact core count is mandatory whenever vcpus is set.
		return &ConfigError{"sizing.vcpus", "requires sizing.cores to be set"}
	}

	return nil
}

func validateBounds(dim string, exact, min, max int) error {
	if exact < 0 {
		return &ConfigError{"sizing." + dim, "must not be negative"}
	}
	if min < 0 {
		return &ConfigError{"sizing.min_" + dim, "must not be negative"}
	}
	if max < 0 {
		return &ConfigError{"sizing.max_" + dim, "must not be negative"}
	}
	if exact > 0 && (min > 0 || max > 0) {
		return &ConfigError{"sizing." + dim, "exact count excludes min/max bounds"}
	}
	if min > 0 && max > 0 && min > max {
		return &ConfigError{"sizing.min_" + dim, fmt.Sprintf("lower bound %d exceeds upper bound %d", min, max)}
	}
	return nil
}

// CoreBounds returns the effective [min, max] core interval: the exact
// count collapses both ends, unset bounds widen to the full range.
func (s Computation) CoreBounds() (int, int) {
	return effectiveBounds(s.Cores, s.MinCores, s.MaxCores)
}

// ChipBounds returns the effective [min, max] chip interval.
func (s Computation) ChipBounds() (int, int) {
	return effectiveBounds(s.Chips, s.MinChips, s.MaxChips)
}

func effectiveBounds(exact, min, max int) (int, int) {
	if exact > 0 {
		return exact, exact
	}
	if max == 0 {
		max = math.MaxInt
	}
	return min, max
}

// Threshold returns the effective megacycle threshold: MinMegaCycles plus
// the overhead buffer, truncated to an integer.
func (s Computation) Threshold() int {
	return s.MinMegaCycles * (100 + s.Overhead) / 100
}
