package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.InDelta(t, 0.1, cfg.Player.VolumeStep, 1e-9)
	assert.Equal(t, 16, cfg.Player.CommandDepth)
	assert.Equal(t, 30, cfg.LifeSupport.IntervalSec)
	assert.Equal(t, 1, cfg.LifeSupport.LowWater)
	assert.Equal(t, 5, cfg.LifeSupport.ReplyTimeoutSec)
	assert.Equal(t, "beep", cfg.Engine.Type)
	assert.Empty(t, cfg.Library.Extensions)

	assert.Equal(t, 30*time.Second, cfg.KeepAliveInterval())
	assert.Equal(t, 5*time.Second, cfg.ReplyTimeout())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
library:
  extensions: [".mp3", ".flac"]
player:
  volume_step: 0.2
life_support:
  interval_sec: 10
  low_water: 2
engine:
  type: beep
  settings:
    sample_rate: 48000
    buffer_ms: 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".mp3", ".flac"}, cfg.Library.Extensions)
	assert.InDelta(t, 0.2, cfg.Player.VolumeStep, 1e-9)
	assert.Equal(t, 10, cfg.LifeSupport.IntervalSec)
	assert.Equal(t, 2, cfg.LifeSupport.LowWater)
	assert.EqualValues(t, 48000, cfg.Engine.Settings["sample_rate"])

	// Unset fields still get defaults.
	assert.Equal(t, 5, cfg.LifeSupport.ReplyTimeoutSec)
	assert.Equal(t, 16, cfg.Player.CommandDepth)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "player: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "volume step above 1",
			content: `
player:
  volume_step: 1.5
`,
		},
		{
			name: "unknown engine type",
			content: `
engine:
  type: gramophone
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHUFFLEBOX_VOLUME_STEP", "0.25")
	t.Setenv("SHUFFLEBOX_KEEPALIVE_SEC", "7")
	t.Setenv("SHUFFLEBOX_LOW_WATER", "4")

	cfg, err := Default()
	require.NoError(t, err)

	assert.InDelta(t, 0.25, cfg.Player.VolumeStep, 1e-9)
	assert.Equal(t, 7, cfg.LifeSupport.IntervalSec)
	assert.Equal(t, 4, cfg.LifeSupport.LowWater)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SHUFFLEBOX_VOLUME_STEP", "0.5")

	path := writeConfig(t, `
player:
  volume_step: 0.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Player.VolumeStep, 1e-9)
}
