// Package config provides configuration loading and access for tree generation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds all generation parameters.
type Config struct {
	Species     string            `yaml:"species"`
	Growth      GrowthConfig      `yaml:"growth"`
	LSystem     LSystemConfig     `yaml:"l_system"`
	Branching   BranchingConfig   `yaml:"branching"`
	Tropism     TropismConfig     `yaml:"tropism"`
	Environment EnvironmentConfig `yaml:"environment"`
	Resources   ResourcesConfig   `yaml:"resources"`
	Output      OutputConfig      `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GrowthConfig controls the simulation run.
type GrowthConfig struct {
	Cycles     int   `yaml:"cycles"`      // resource/prune cycles after generation
	RandomSeed int64 `yaml:"random_seed"` // seeds the grammar and turtle
}

// LSystemConfig holds the grammar and segment geometry.
type LSystemConfig struct {
	Axiom               string            `yaml:"axiom"`
	Rules               map[string]string `yaml:"rules"`           // single-symbol keys
	AlternateRules      map[string]string `yaml:"alternate_rules"` // used when the variation check fires
	Iterations          int               `yaml:"iterations"`
	StochasticVariation float64           `yaml:"stochastic_variation"` // 0-1
	SegmentLength       float64           `yaml:"segment_length"`
	SegmentRadius       float64           `yaml:"segment_radius"`
}

// BranchingConfig holds turn angles in degrees.
type BranchingConfig struct {
	BaseAngleDegrees float64 `yaml:"base_angle_degrees"`
	AngleVariation   float64 `yaml:"angle_variation"` // uniform jitter, +/- degrees
}

// TropismConfig holds the environmental bending response.
type TropismConfig struct {
	Enabled              bool    `yaml:"enabled"`
	CurveSegments        int     `yaml:"curve_segments"`
	PhototropismEnabled  bool    `yaml:"phototropism_enabled"`
	PhototropismStrength float64 `yaml:"phototropism_strength"`
	GravitropismEnabled  bool    `yaml:"gravitropism_enabled"`
	GravitropismStrength float64 `yaml:"gravitropism_strength"`
	ResponseDistance     float64 `yaml:"response_distance"`
	ApicalDominance      float64 `yaml:"apical_dominance"`
	AgeSensitivity       float64 `yaml:"age_sensitivity"`
}

// EnvironmentConfig places the light source and sets gravity.
type EnvironmentConfig struct {
	LightX       float64 `yaml:"light_x"`
	LightY       float64 `yaml:"light_y"`
	LightZ       float64 `yaml:"light_z"`
	AmbientLight float64 `yaml:"ambient_light"`
	GravityX     float64 `yaml:"gravity_x"`
	GravityY     float64 `yaml:"gravity_y"`
	GravityZ     float64 `yaml:"gravity_z"`
}

// ResourcesConfig holds the light and resource economy.
type ResourcesConfig struct {
	Enabled                  bool    `yaml:"enabled"`
	LightCompetitionEnabled  bool    `yaml:"light_competition_enabled"`
	BaseLightLevel           float64 `yaml:"base_light_level"`
	OcclusionRadius          float64 `yaml:"occlusion_radius"`
	OcclusionFalloff         float64 `yaml:"occlusion_falloff"`
	PhotosynthesisEfficiency float64 `yaml:"photosynthesis_efficiency"`
	MaintenanceCost          float64 `yaml:"maintenance_cost"`
	PruningEnabled           bool    `yaml:"pruning_enabled"`
	MinLightThreshold        float64 `yaml:"min_light_threshold"`
	MinResourceThreshold     float64 `yaml:"min_resource_threshold"`
	PruningGracePeriod       int     `yaml:"pruning_grace_period"` // depth proxy
	CompetitionRadius        float64 `yaml:"competition_radius"`
	DominanceFactor          float64 `yaml:"dominance_factor"`
	FullCheckLimit           int     `yaml:"full_check_limit"` // exact passes up to this many branches
	Workers                  int     `yaml:"workers"`          // 0 = GOMAXPROCS
}

// OutputConfig selects the files written after a run.
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	USD  bool   `yaml:"usd"`
	CSV  bool   `yaml:"csv"`
	Text bool   `yaml:"text"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Rules          map[byte]string
	AlternateRules map[byte]string
	CurveSegments  int // 0 when tropism is disabled
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges YAML data over the embedded defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		// Rule maps are replaced, not merged.
		rules, alternates := cfg.LSystem.Rules, cfg.LSystem.AlternateRules
		cfg.LSystem.Rules, cfg.LSystem.AlternateRules = nil, nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if cfg.LSystem.Rules == nil {
			cfg.LSystem.Rules = rules
		}
		if cfg.LSystem.AlternateRules == nil {
			cfg.LSystem.AlternateRules = alternates
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks ranges the generator relies on.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Growth.Cycles < 0 {
		fail("growth.cycles must be >= 0, got %d", c.Growth.Cycles)
	}
	if c.LSystem.Axiom == "" {
		fail("l_system.axiom is empty")
	}
	if c.LSystem.Iterations < 0 {
		fail("l_system.iterations must be >= 0, got %d", c.LSystem.Iterations)
	}
	if v := c.LSystem.StochasticVariation; v < 0 || v > 1 {
		fail("l_system.stochastic_variation must be in [0, 1], got %g", v)
	}
	if c.LSystem.SegmentLength <= 0 {
		fail("l_system.segment_length must be > 0, got %g", c.LSystem.SegmentLength)
	}
	if c.LSystem.SegmentRadius <= 0 {
		fail("l_system.segment_radius must be > 0, got %g", c.LSystem.SegmentRadius)
	}
	for k := range c.LSystem.Rules {
		if len(k) != 1 {
			fail("l_system.rules key %q must be a single symbol", k)
		}
	}
	for k := range c.LSystem.AlternateRules {
		if len(k) != 1 {
			fail("l_system.alternate_rules key %q must be a single symbol", k)
		}
	}
	if a := c.Branching.BaseAngleDegrees; math.IsNaN(a) || math.IsInf(a, 0) {
		fail("branching.base_angle_degrees must be finite, got %g", a)
	}
	if c.Branching.AngleVariation < 0 {
		fail("branching.angle_variation must be >= 0, got %g", c.Branching.AngleVariation)
	}
	if c.Tropism.CurveSegments < 0 {
		fail("tropism.curve_segments must be >= 0, got %d", c.Tropism.CurveSegments)
	}
	if c.Resources.FullCheckLimit < 0 {
		fail("resources.full_check_limit must be >= 0, got %d", c.Resources.FullCheckLimit)
	}
	if c.Resources.Workers < 0 {
		fail("resources.workers must be >= 0, got %d", c.Resources.Workers)
	}
	if c.Resources.OcclusionRadius < 0 || c.Resources.CompetitionRadius < 0 {
		fail("resources radii must be >= 0")
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Rules = symbolMap(c.LSystem.Rules)
	c.Derived.AlternateRules = symbolMap(c.LSystem.AlternateRules)
	if c.Tropism.Enabled {
		c.Derived.CurveSegments = c.Tropism.CurveSegments
	} else {
		c.Derived.CurveSegments = 0
	}
}

func symbolMap(m map[string]string) map[byte]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[byte]string, len(m))
	for k, v := range m {
		if len(k) == 1 {
			out[k[0]] = v
		}
	}
	return out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
