// Package config loads simulator settings from an optional file and BUOY_ environment
// variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// EnvPrefix is prepended to environment overrides, e.g. BUOY_PHYSICS_BLOCKSIZE.
const EnvPrefix = "BUOY"

type Drag struct {
	Enabled bool    `json:"enabled" mapstructure:"enabled"`
	Linear  float64 `json:"linear" mapstructure:"linear"`
	Angular float64 `json:"angular" mapstructure:"angular"`
}

// Settle drives the vehicle down at a fixed speed until the water carries it.
type Settle struct {
	Enabled        bool    `json:"enabled" mapstructure:"enabled"`
	Speed          float64 `json:"speed" mapstructure:"speed"`
	ForceThreshold float64 `json:"forceThreshold" mapstructure:"forceThreshold"`
	Steps          int     `json:"steps" mapstructure:"steps"`
}

// Physics holds the constants of the simulation.
type Physics struct {
	BlockSize     float64   `json:"blockSize" mapstructure:"blockSize"`
	WaterDensity  float64   `json:"waterDensity" mapstructure:"waterDensity"`
	BlockDensity  float64   `json:"blockDensity" mapstructure:"blockDensity"`
	Gravity       []float64 `json:"gravity" mapstructure:"gravity"`
	Timestep      float64   `json:"timestep" mapstructure:"timestep"`
	StatsInterval int       `json:"statsInterval" mapstructure:"statsInterval"`
	Drag          Drag      `json:"drag" mapstructure:"drag"`
	Settle        Settle    `json:"settle" mapstructure:"settle"`
}

// Recorder selects where step telemetry is stored.
type Recorder struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Driver    string `json:"driver" mapstructure:"driver"`
	DSN       string `json:"dsn" mapstructure:"dsn"`
	BatchSize int    `json:"batchSize" mapstructure:"batchSize"`
}

type Config struct {
	LogLevel    string   `json:"logLevel" mapstructure:"logLevel"`
	LogEncoding string   `json:"logEncoding" mapstructure:"logEncoding"`
	Workers     int      `json:"workers" mapstructure:"workers"`
	Physics     Physics  `json:"physics" mapstructure:"physics"`
	Recorder    Recorder `json:"recorder" mapstructure:"recorder"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logEncoding", "json")
	v.SetDefault("workers", 1)

	v.SetDefault("physics.blockSize", 1.0)
	v.SetDefault("physics.waterDensity", 1000.0)
	v.SetDefault("physics.blockDensity", 1050.0)
	v.SetDefault("physics.gravity", []float64{0, -9.81, 0})
	v.SetDefault("physics.timestep", 0.02)
	v.SetDefault("physics.statsInterval", 1000)

	v.SetDefault("physics.drag.enabled", true)
	v.SetDefault("physics.drag.linear", 0.975)
	v.SetDefault("physics.drag.angular", 0.975)

	v.SetDefault("physics.settle.enabled", true)
	v.SetDefault("physics.settle.speed", 0.5)
	v.SetDefault("physics.settle.forceThreshold", 1.0)
	v.SetDefault("physics.settle.steps", 20)

	v.SetDefault("recorder.enabled", false)
	v.SetDefault("recorder.driver", "sqlite")
	v.SetDefault("recorder.dsn", "buoy.db")
	v.SetDefault("recorder.batchSize", 500)
}

// Default returns the configuration used when no file or environment override is given.
func Default() Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(err)
	}

	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (json, yaml or toml, chosen by extension) over the defaults. An empty
// path loads defaults and environment overrides only. The result is validated.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.Recorder.Enabled {
		switch c.Recorder.Driver {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: unknown recorder driver %q", ErrInvalid, c.Recorder.Driver)
		}
	}

	return c.Physics.Validate()
}

// Validate rejects constants the simulation cannot run with.
func (p Physics) Validate() error {
	switch {
	case !(p.BlockSize > 0) || math.IsInf(p.BlockSize, 0):
		return fmt.Errorf("%w: physics.blockSize must be positive, got %v", ErrInvalid, p.BlockSize)
	case p.WaterDensity < 0:
		return fmt.Errorf("%w: physics.waterDensity must not be negative, got %v", ErrInvalid, p.WaterDensity)
	case p.BlockDensity < 0:
		return fmt.Errorf("%w: physics.blockDensity must not be negative, got %v", ErrInvalid, p.BlockDensity)
	case len(p.Gravity) != 3:
		return fmt.Errorf("%w: physics.gravity needs 3 components, got %d", ErrInvalid, len(p.Gravity))
	case !(p.Timestep > 0):
		return fmt.Errorf("%w: physics.timestep must be positive, got %v", ErrInvalid, p.Timestep)
	case p.StatsInterval < 0:
		return fmt.Errorf("%w: physics.statsInterval must not be negative, got %d", ErrInvalid, p.StatsInterval)
	case p.Drag.Linear < 0 || p.Drag.Linear > 1:
		return fmt.Errorf("%w: physics.drag.linear must be within [0,1], got %v", ErrInvalid, p.Drag.Linear)
	case p.Drag.Angular < 0 || p.Drag.Angular > 1:
		return fmt.Errorf("%w: physics.drag.angular must be within [0,1], got %v", ErrInvalid, p.Drag.Angular)
	case p.Settle.Speed < 0 || p.Settle.Steps < 0:
		return fmt.Errorf("%w: physics.settle speed and steps must not be negative", ErrInvalid)
	}

	return nil
}

// GravityVector returns Gravity as a vector. Validate guarantees 3 components.
func (p Physics) GravityVector() mgl64.Vec3 {
	if len(p.Gravity) != 3 {
		return mgl64.Vec3{}
	}

	return mgl64.Vec3{p.Gravity[0], p.Gravity[1], p.Gravity[2]}
}

// BlockMass is the mass of one solid block of BlockSize.
func (p Physics) BlockMass() float64 {
	return p.BlockDensity * p.BlockSize * p.BlockSize * p.BlockSize
}
