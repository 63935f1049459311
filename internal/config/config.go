// Package config holds the runtime configuration for the flurry command.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/phanxgames/flurry"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the root configuration, loaded from file, env and flags.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`
	Viewer ViewerConfig `mapstructure:"viewer" yaml:"viewer"`
	Input  InputConfig  `mapstructure:"input" yaml:"input"`
	Audio  AudioConfig  `mapstructure:"audio" yaml:"audio"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the terminal color of each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// EngineConfig configures the particle engine.
type EngineConfig struct {
	Particles    int     `mapstructure:"particles" yaml:"particles"`
	Shape        string  `mapstructure:"shape" yaml:"shape"`
	Color        string  `mapstructure:"color" yaml:"color"` // hex or palette name
	ParticleSize float64 `mapstructure:"particle_size" yaml:"particle_size"`
	Seed         uint64  `mapstructure:"seed" yaml:"seed"`
	Debug        bool    `mapstructure:"debug" yaml:"debug"`
}

// ViewerConfig configures the desktop window.
type ViewerConfig struct {
	Width          int     `mapstructure:"width" yaml:"width"`
	Height         int     `mapstructure:"height" yaml:"height"`
	Title          string  `mapstructure:"title" yaml:"title"`
	FOV            float64 `mapstructure:"fov" yaml:"fov"` // vertical, degrees
	CameraDistance float64 `mapstructure:"camera_distance" yaml:"camera_distance"`
	TPS            int     `mapstructure:"tps" yaml:"tps"`
	ScreenshotDir  string  `mapstructure:"screenshot_dir" yaml:"screenshot_dir"`
}

// InputConfig selects where control signals come from.
type InputConfig struct {
	// Source is one of "pointer", "touch", "sim" or "none".
	Source       string  `mapstructure:"source" yaml:"source"`
	SimRate      float64 `mapstructure:"sim_rate" yaml:"sim_rate"` // signals per second
	SimBurst     int     `mapstructure:"sim_burst" yaml:"sim_burst"`
	DragDeadZone float64 `mapstructure:"drag_dead_zone" yaml:"drag_dead_zone"`
}

// AudioConfig configures the recognition chime.
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	SampleRate int     `mapstructure:"sample_rate" yaml:"sample_rate"`
	Volume     float64 `mapstructure:"volume" yaml:"volume"` // log2 gain, 0 is unity
}

// EnvPrefix prefixes environment overrides, e.g. FLURRY_ENGINE_SHAPE.
const EnvPrefix = "FLURRY"

var envReplacer = strings.NewReplacer(".", "_")

var inputSources = map[string]bool{"pointer": true, "touch": true, "sim": true, "none": true}

// NewDefaultConfig returns a Config populated only with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "flurry")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Engine --
	v.SetDefault("engine.particles", flurry.DefaultParticleCount)
	v.SetDefault("engine.shape", flurry.ShapeSphere.String())
	v.SetDefault("engine.color", flurry.DefaultColor.Hex())
	v.SetDefault("engine.particle_size", flurry.DefaultParticleSize)
	v.SetDefault("engine.seed", 0)
	v.SetDefault("engine.debug", false)

	// -- Viewer --
	v.SetDefault("viewer.width", 1280)
	v.SetDefault("viewer.height", 720)
	v.SetDefault("viewer.title", "flurry")
	v.SetDefault("viewer.fov", 75.0)
	v.SetDefault("viewer.camera_distance", 8.0)
	v.SetDefault("viewer.tps", 60)
	v.SetDefault("viewer.screenshot_dir", "screenshots")

	// -- Input --
	v.SetDefault("input.source", "pointer")
	v.SetDefault("input.sim_rate", 30.0)
	v.SetDefault("input.sim_burst", 1)
	v.SetDefault("input.drag_dead_zone", 4.0)

	// -- Audio --
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.volume", -1.0)
}

// BindEnv enables FLURRY_* environment overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
}

// SearchPaths returns the directories searched for flurry.yaml, in order.
func SearchPaths() []string {
	paths := []string{"."}
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "flurry"))
	}
	return paths
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer.width and viewer.height must be positive")
	}
	if c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180 {
		return fmt.Errorf("viewer.fov must be between 0 and 180 degrees")
	}
	if c.Viewer.CameraDistance <= 0 {
		return fmt.Errorf("viewer.camera_distance must be positive")
	}
	if c.Viewer.TPS <= 0 {
		return fmt.Errorf("viewer.tps must be a positive integer")
	}
	if !inputSources[c.Input.Source] {
		return fmt.Errorf("input.source %q must be one of pointer, touch, sim, none", c.Input.Source)
	}
	if c.Input.SimRate <= 0 || c.Input.SimBurst <= 0 {
		return fmt.Errorf("input.sim_rate and input.sim_burst must be positive")
	}
	if c.Input.DragDeadZone < 0 {
		return fmt.Errorf("input.drag_dead_zone must not be negative")
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be a positive integer")
	}
	return nil
}

// Validate checks the engine section.
func (e *EngineConfig) Validate() error {
	if e.Particles <= 0 {
		return fmt.Errorf("engine.particles must be a positive integer")
	}
	if _, err := flurry.ParseShapeKind(e.Shape); err != nil {
		return fmt.Errorf("engine.shape: %w", err)
	}
	if _, err := e.ParseColor(); err != nil {
		return fmt.Errorf("engine.color: %w", err)
	}
	if e.ParticleSize <= 0 || e.ParticleSize > flurry.MaxParticleSize {
		return fmt.Errorf("engine.particle_size must be in (0, %v]", flurry.MaxParticleSize)
	}
	return nil
}

// ParseColor resolves Color as a palette name first, then as a hex string.
func (e *EngineConfig) ParseColor() (flurry.Color, error) {
	if p, ok := flurry.LookupPalette(e.Color); ok {
		return p.Color, nil
	}
	return flurry.ParseHexColor(e.Color)
}

// Flurry converts the engine section into an engine configuration.
func (e *EngineConfig) Flurry(log *zap.Logger, events flurry.EventSink) (flurry.Config, error) {
	if err := e.Validate(); err != nil {
		return flurry.Config{}, err
	}
	kind, _ := flurry.ParseShapeKind(e.Shape)
	color, _ := e.ParseColor()
	return flurry.Config{
		Count:        e.Particles,
		Shape:        kind,
		Color:        color,
		ParticleSize: e.ParticleSize,
		Seed:         e.Seed,
		Logger:       log,
		Events:       events,
	}, nil
}
