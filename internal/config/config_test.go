package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TIMEFRAMES_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "BTC", cfg.Symbol)
	require.Equal(t, 10, cfg.RequestTimeout)
	require.Equal(t, 168, cfg.HistoryHours)
	require.Equal(t, model.DefaultTimeframes(), cfg.Timeframes)
	require.Equal(t, "@every 15m", cfg.BroadcastCron)
}

func TestLoadTimeframesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeframes.yaml")
	content := `timeframes:
  - label: 30M
    hours_ahead: 1
    volatility_multiplier: 0.5
  - label: 12H
    hours_ahead: 12
    volatility_multiplier: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("TIMEFRAMES_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []model.Timeframe{
		{Label: "30M", HoursAhead: 1, VolatilityMultiplier: 0.5},
		{Label: "12H", HoursAhead: 12, VolatilityMultiplier: 3},
	}, cfg.Timeframes)
}

func TestLoadTimeframesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeframes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeframes: []\n"), 0o600))

	_, err := LoadTimeframes(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Symbol:         "BTC",
			LogLevel:       "info",
			RequestTimeout: 10,
			RequestsPerSec: 5,
			HistoryHours:   168,
			Timeframes:     model.DefaultTimeframes(),
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, ok: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }},
		{name: "short history", mutate: func(c *Config) { c.HistoryHours = 24 }},
		{name: "no timeframes", mutate: func(c *Config) { c.Timeframes = nil }},
		{
			name: "duplicate timeframe",
			mutate: func(c *Config) {
				c.Timeframes = append(c.Timeframes, c.Timeframes[0])
			},
		},
		{
			name: "zero multiplier",
			mutate: func(c *Config) {
				c.Timeframes = []model.Timeframe{{Label: "1H", HoursAhead: 1}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
