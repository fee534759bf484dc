package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultG            = 1.0
	DefaultSoftening    = 0.05
	DefaultDt           = 0.001
	DefaultStepsPerTick = 10
	DefaultScale        = 10.0
	DefaultLogLevel     = "info"
	DefaultTheme        = "deepspace"

	EnvPrefix = "GRAVSANDBOX"
)

type Config struct {
	Physics  PhysicsConfig `yaml:"physics" mapstructure:"physics"`
	View     ViewConfig    `yaml:"view" mapstructure:"view"`
	LogFile  string        `yaml:"log_file" mapstructure:"log_file"`
	LogLevel string        `yaml:"log_level" mapstructure:"log_level"`
	LastDir  string        `yaml:"last_dir" mapstructure:"last_dir"`
}

type PhysicsConfig struct {
	G            float64 `yaml:"g" mapstructure:"g"`
	Softening    float64 `yaml:"softening" mapstructure:"softening"`
	Dt           float64 `yaml:"dt" mapstructure:"dt"`
	StepsPerTick int     `yaml:"steps_per_tick" mapstructure:"steps_per_tick"`
}

type ViewConfig struct {
	Scale float64 `yaml:"scale" mapstructure:"scale"`
	Trail bool    `yaml:"trail" mapstructure:"trail"`
	Theme string  `yaml:"theme" mapstructure:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			G:            DefaultG,
			Softening:    DefaultSoftening,
			Dt:           DefaultDt,
			StepsPerTick: DefaultStepsPerTick,
		},
		View: ViewConfig{
			Scale: DefaultScale,
			Trail: true,
			Theme: DefaultTheme,
		},
		LogFile:  filepath.Join(DefaultDir(), "gravsandbox.log"),
		LogLevel: DefaultLogLevel,
	}
}

// DefaultDir is ~/.gravsandbox, or .gravsandbox when HOME is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gravsandbox"
	}
	return filepath.Join(home, ".gravsandbox")
}

// Load reads path (YAML) over the defaults. GRAVSANDBOX_* environment
// variables override file values, e.g. GRAVSANDBOX_PHYSICS_DT. An empty
// path or a missing file yields the defaults plus env overrides.
func Load(path string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("physics.g", def.Physics.G)
	v.SetDefault("physics.softening", def.Physics.Softening)
	v.SetDefault("physics.dt", def.Physics.Dt)
	v.SetDefault("physics.steps_per_tick", def.Physics.StepsPerTick)
	v.SetDefault("view.scale", def.View.Scale)
	v.SetDefault("view.trail", def.View.Trail)
	v.SetDefault("view.theme", def.View.Theme)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("last_dir", def.LastDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Physics.Dt <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %g", c.Physics.Dt)
	}
	if c.Physics.G <= 0 {
		return fmt.Errorf("physics.g must be positive, got %g", c.Physics.G)
	}
	if c.Physics.Softening < 0 {
		return fmt.Errorf("physics.softening must not be negative, got %g", c.Physics.Softening)
	}
	if c.Physics.StepsPerTick < 1 {
		return fmt.Errorf("physics.steps_per_tick must be at least 1, got %d", c.Physics.StepsPerTick)
	}
	if c.View.Scale <= 0 {
		return fmt.Errorf("view.scale must be positive, got %g", c.View.Scale)
	}
	return nil
}
