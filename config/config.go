// Package config provides configuration loading and access for the rule
// table generation engine. Every probability and threshold the engine
// consults lives here; stages receive a *Config value and never mutate
// it, so swapping configurations is whole-value replacement.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generation and validation parameters.
type Config struct {
	Grid         GridConfig         `yaml:"grid"`
	Pool         PoolConfig         `yaml:"pool"`
	Sampler      SamplerConfig      `yaml:"sampler"`
	Generate     GenerateConfig     `yaml:"generate"`
	Diversify    DiversifyConfig    `yaml:"diversify"`
	Boost        BoostConfig        `yaml:"boost"`
	Validate     ValidateConfig     `yaml:"validate"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
}

// GridConfig holds the validation simulation grid parameters.
type GridConfig struct {
	Width  int `yaml:"width"`  // validation grid width in cells
	Height int `yaml:"height"` // validation grid height in cells
	Agents int `yaml:"agents"` // agents spawned per validation run
}

// PoolConfig holds seed pool construction parameters.
type PoolConfig struct {
	TargetSize       int     `yaml:"target_size"`       // top up with derived entries below this
	MinStates        int     `yaml:"min_states"`        // enhancer state floor for pool entries
	MinColors        int     `yaml:"min_colors"`        // enhancer color floor for pool entries
	StreamStates     int     `yaml:"stream_states"`     // stream-expand mapping state count
	StreamColors     int     `yaml:"stream_colors"`     // stream-expand mapping color count
	EnhanceMutations int     `yaml:"enhance_mutations"` // point mutations per enhancer pass
	DerivedWeight    float64 `yaml:"derived_weight"`    // sampling weight factor for derived entries (0..1)
}

// SamplerConfig holds the two-level weighted sampler multipliers.
type SamplerConfig struct {
	FamilyWeights  map[string]float64 `yaml:"family_weights"`  // bucket multiplier per family
	MappingWeights map[string]float64 `yaml:"mapping_weights"` // bucket multiplier per mapping scheme
	HintWeights    []float64          `yaml:"hint_weights"`    // per-entry weight for class hints 1..4
}

// GenerateConfig holds the generation strategy parameters.
type GenerateConfig struct {
	FreshProb  float64 `yaml:"fresh_prob"`  // probability of a fresh generator branch
	PoolProb   float64 `yaml:"pool_prob"`   // probability of the pool-seed branch
	PresetProb float64 `yaml:"preset_prob"` // probability of the preset branch

	CAStatesMin  int     `yaml:"ca_states_min"`
	CAStatesMax  int     `yaml:"ca_states_max"`
	CAColorsMin  int     `yaml:"ca_colors_min"`
	CAColorsMax  int     `yaml:"ca_colors_max"`
	CARandomCell float64 `yaml:"ca_random_cell"` // per-cell chance of a uniformly random rule

	SacredStates []int   `yaml:"sacred_states"` // state count choices
	SacredColors []int   `yaml:"sacred_colors"` // color count choices
	SacredStay   float64 `yaml:"sacred_stay"`   // chance nextState stays put
	SacredSkip   float64 `yaml:"sacred_skip"`   // chance nextState skips one
	SacredFlip   float64 `yaml:"sacred_flip"`   // chance the parity turn flips

	MutationsMin int `yaml:"mutations_min"` // mutations applied to pool/preset seeds
	MutationsMax int `yaml:"mutations_max"`
}

// DiversifyConfig holds structural diversification parameters.
type DiversifyConfig struct {
	AddColorProb     float64 `yaml:"add_color_prob"`
	AddStateProb     float64 `yaml:"add_state_prob"`
	RerouteWriteProb float64 `yaml:"reroute_write_prob"` // per-cell chance to reroute a write to the new color
	RerouteStateProb float64 `yaml:"reroute_state_prob"` // per-cell chance to retarget the new state
	AlterCloneProb   float64 `yaml:"alter_clone_prob"`   // chance to perturb a cloned rule
	MaxStates        int     `yaml:"max_states"`
	MaxColors        int     `yaml:"max_colors"`
	MinStates        int     `yaml:"min_states"`
	MinColors        int     `yaml:"min_colors"`
	MaxPasses        int     `yaml:"max_passes"` // minimum-dimension enforcement pass budget
}

// BoostConfig holds activity booster parameters.
type BoostConfig struct {
	MinExternal     int     `yaml:"min_external"`     // minimum non-self transitions per state
	RerandomizeProb float64 `yaml:"rerandomize_prob"` // chance to re-roll turn/write on a flow repair
	MaxNoTurn       float64 `yaml:"max_no_turn"`      // nudge cells while no-turn ratio exceeds this
	MinWriteChange  float64 `yaml:"min_write_change"` // nudge cells while write-change ratio is below this
	MaxSelfState    float64 `yaml:"max_self_state"`   // strong flow repair above this self-next ratio
	Passes          int     `yaml:"passes"`           // bounded nudge passes
	Batch           int     `yaml:"batch"`            // cells nudged per pass
}

// ValidateConfig holds all validator gate thresholds.
type ValidateConfig struct {
	MinStates       int `yaml:"min_states"`
	MinColors       int `yaml:"min_colors"`
	MinTurnVariety  int `yaml:"min_turn_variety"`
	MinWriteVariety int `yaml:"min_write_variety"`

	MinWriteChange    float64 `yaml:"min_write_change"`
	MaxNoTurn         float64 `yaml:"max_no_turn"`
	MaxSelfState      float64 `yaml:"max_self_state"`
	MinPaintingStates int     `yaml:"min_painting_states"`

	Warmup        int     `yaml:"warmup"`          // discarded warmup steps
	Window        int     `yaml:"window"`          // steps per measured window
	Tail          int     `yaml:"tail"`            // long tail window steps
	MinChanged    int     `yaml:"min_changed"`     // minimum changed cells in window one
	MinLate       int     `yaml:"min_late"`        // minimum changed cells in window two
	MinTail       int     `yaml:"min_tail"`        // minimum changed cells in the tail window
	LateRatio     float64 `yaml:"late_ratio"`      // window two must keep this fraction of window one
	TailRatio     float64 `yaml:"tail_ratio"`      // tail must keep this fraction of window two
	MinPainted    int     `yaml:"min_painted"`     // minimum non-background cells after the run
	MinColorsSeen int     `yaml:"min_colors_seen"` // minimum distinct non-background colors
	ScaleFloor    float64 `yaml:"scale_floor"`     // color-count threshold scaling floor
	ScaleCap      float64 `yaml:"scale_cap"`       // color-count threshold scaling cap
}

// OrchestratorConfig holds the retry loop bound.
type OrchestratorConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check verifies ranges that would otherwise fail deep inside the engine.
func (c *Config) Check() error {
	if c.Grid.Width < 8 || c.Grid.Height < 8 {
		return fmt.Errorf("config: grid %dx%d below minimum 8x8", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.Agents < 1 {
		return fmt.Errorf("config: at least one validation agent required")
	}
	if c.Pool.MinColors < 2 || c.Pool.MinStates < 1 {
		return fmt.Errorf("config: pool floors %d states / %d colors below minimum 1/2",
			c.Pool.MinStates, c.Pool.MinColors)
	}
	if len(c.Sampler.HintWeights) != 4 {
		return fmt.Errorf("config: hint_weights needs 4 entries, got %d", len(c.Sampler.HintWeights))
	}
	if p := c.Generate.FreshProb + c.Generate.PoolProb + c.Generate.PresetProb; p <= 0 {
		return fmt.Errorf("config: strategy probabilities sum to %v", p)
	}
	if c.Diversify.MaxStates < c.Diversify.MinStates || c.Diversify.MaxColors < c.Diversify.MinColors {
		return fmt.Errorf("config: diversify maxima below minima")
	}
	if c.Validate.Window < 1 || c.Validate.Tail < 1 {
		return fmt.Errorf("config: validation windows must be positive")
	}
	if c.Orchestrator.MaxAttempts < 1 {
		return fmt.Errorf("config: max_attempts must be at least 1")
	}
	return nil
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
