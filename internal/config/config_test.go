package config

import (
	"bytes"
	"testing"

	"github.com/phanxgames/flurry"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "green", cfg.Logger.Colors.Info)
	assert.Equal(t, flurry.DefaultParticleCount, cfg.Engine.Particles)
	assert.Equal(t, "sphere", cfg.Engine.Shape)
	assert.Equal(t, "#00f2ff", cfg.Engine.Color)
	assert.Equal(t, 1280, cfg.Viewer.Width)
	assert.Equal(t, "pointer", cfg.Input.Source)
	assert.True(t, cfg.Audio.Enabled)
	assert.NoError(t, cfg.Validate(), "defaults must be valid")
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero particles", func(c *Config) { c.Engine.Particles = 0 }, "engine.particles"},
		{"unknown shape", func(c *Config) { c.Engine.Shape = "torus" }, "engine.shape"},
		{"bad color", func(c *Config) { c.Engine.Color = "#12" }, "engine.color"},
		{"particle size", func(c *Config) { c.Engine.ParticleSize = 1 }, "engine.particle_size"},
		{"viewer size", func(c *Config) { c.Viewer.Height = 0 }, "viewer.width"},
		{"fov", func(c *Config) { c.Viewer.FOV = 190 }, "viewer.fov"},
		{"camera", func(c *Config) { c.Viewer.CameraDistance = 0 }, "viewer.camera_distance"},
		{"tps", func(c *Config) { c.Viewer.TPS = 0 }, "viewer.tps"},
		{"source", func(c *Config) { c.Input.Source = "webcam" }, "input.source"},
		{"sim rate", func(c *Config) { c.Input.SimRate = 0 }, "input.sim_rate"},
		{"dead zone", func(c *Config) { c.Input.DragDeadZone = -1 }, "input.drag_dead_zone"},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 0 }, "audio.sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("audio disabled skips sample rate", func(t *testing.T) {
		cfg := NewDefaultConfig()
		cfg.Audio.Enabled = false
		cfg.Audio.SampleRate = 0
		assert.NoError(t, cfg.Validate())
	})
}

// -- Viper Integration Tests --

func TestNewConfigFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	yaml := []byte(`
engine:
  particles: 1500
  shape: dna
  color: love
input:
  source: sim
  sim_rate: 15
`)
	require.NoError(t, v.ReadConfig(bytes.NewReader(yaml)))

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.Engine.Particles)
	assert.Equal(t, "sim", cfg.Input.Source)
	assert.Equal(t, 15.0, cfg.Input.SimRate)
	assert.Equal(t, 720, cfg.Viewer.Height, "unset keys keep their defaults")

	ec, err := cfg.Engine.Flurry(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, flurry.ShapeHelix, ec.Shape)
	assert.Equal(t, flurry.PaletteLove.Color, ec.Color)
	assert.Equal(t, 1500, ec.Count)
}

func TestNewConfigFromViper_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("engine.particles", -5)
	_, err := NewConfigFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestNewConfigFromViper_Env(t *testing.T) {
	t.Setenv("FLURRY_ENGINE_SHAPE", "galaxy")
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "galaxy", cfg.Engine.Shape)
}

func TestEngineConfigFlurry_Hex(t *testing.T) {
	ec := NewDefaultConfig().Engine
	ec.Color = "#ff69b4"
	fc, err := ec.Flurry(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, flurry.PaletteRose.Color, fc.Color)

	ec.Particles = 0
	_, err = ec.Flurry(nil, nil)
	assert.Error(t, err)
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
}
