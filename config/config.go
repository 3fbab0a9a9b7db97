// Package config holds the runtime settings of the prototype: tick rate,
// physics constants, rewind cadence and the key bindings of every logical
// action.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/rewind/ecs/component"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. REWIND_TPS.
const EnvPrefix = "REWIND_"

type Config struct {
	TPS     int     `yaml:"tps" env:"TPS"`
	Gravity float64 `yaml:"gravity" env:"GRAVITY"`
	// SamplePeriod is the history cadence in seconds. Zero means one tick.
	SamplePeriod float64 `yaml:"sample_period" env:"SAMPLE_PERIOD"`
	// RestGravityScale is used for bodies whose prefab does not set one.
	RestGravityScale float64  `yaml:"rest_gravity_scale" env:"REST_GRAVITY_SCALE"`
	Level            string   `yaml:"level" env:"LEVEL"`
	Debug            bool     `yaml:"debug" env:"DEBUG"`
	Bindings         Bindings `yaml:"bindings" envPrefix:"BIND_"`
}

// Bindings maps each logical action to physical key names. Names follow
// Ebitengine's key names ("A", "ArrowLeft", "Space", "ShiftLeft").
type Bindings struct {
	MoveLeft     []string `yaml:"move_left" env:"MOVE_LEFT" envSeparator:","`
	MoveRight    []string `yaml:"move_right" env:"MOVE_RIGHT" envSeparator:","`
	Jump         []string `yaml:"jump" env:"JUMP" envSeparator:","`
	RewindGlobal []string `yaml:"rewind_global" env:"REWIND_GLOBAL" envSeparator:","`
	RewindLocal  []string `yaml:"rewind_local" env:"REWIND_LOCAL" envSeparator:","`
	RewindObject []string `yaml:"rewind_object" env:"REWIND_OBJECT" envSeparator:","`
}

func Default() Config {
	return Config{
		TPS:              60,
		Gravity:          98.1,
		RestGravityScale: 10,
		Level:            "reference.json",
		Bindings: Bindings{
			MoveLeft:     []string{"A", "ArrowLeft"},
			MoveRight:    []string{"D", "ArrowRight"},
			Jump:         []string{"W", "Space"},
			RewindGlobal: []string{"R"},
			RewindLocal:  []string{"Q"},
			RewindObject: []string{"E"},
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then REWIND_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	ErrInvalidTPS          = errors.New("config: tps must be positive")
	ErrInvalidSamplePeriod = errors.New("config: sample_period must not be negative")
	ErrUnboundAction       = errors.New("config: action has no key binding")
)

func (c Config) Validate() error {
	if c.TPS <= 0 {
		return ErrInvalidTPS
	}
	if c.SamplePeriod < 0 {
		return ErrInvalidSamplePeriod
	}
	for _, a := range component.Actions() {
		if len(c.Bindings.Keys(a)) == 0 {
			return fmt.Errorf("%w: %s", ErrUnboundAction, a)
		}
	}
	return nil
}

// Delta is the fixed step of one tick in seconds.
func (c Config) Delta() float64 {
	if c.TPS <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TPS)
}

// SampleInterval is the history cadence in seconds.
func (c Config) SampleInterval() float64 {
	if c.SamplePeriod <= 0 {
		return c.Delta()
	}
	return c.SamplePeriod
}

// Keys returns the key names bound to a.
func (b Bindings) Keys(a component.Action) []string {
	switch a {
	case component.ActionMoveLeft:
		return b.MoveLeft
	case component.ActionMoveRight:
		return b.MoveRight
	case component.ActionJump:
		return b.Jump
	case component.ActionRewindGlobal:
		return b.RewindGlobal
	case component.ActionRewindLocal:
		return b.RewindLocal
	case component.ActionRewindObject:
		return b.RewindObject
	default:
		return nil
	}
}
