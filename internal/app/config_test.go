package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/forecast"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, 3, cfg.ZoneBlackMax)
	require.Equal(t, 10, cfg.ZoneGreenMin)
	require.False(t, cfg.IsProduction())
}

func TestZoneThresholds(t *testing.T) {
	cfg := &Config{ZoneBlackMax: 2, ZoneGreenMin: 14}
	require.Equal(t, forecast.Thresholds{BlackMax: 2, GreenMin: 14}, cfg.ZoneThresholds())

	var nilCfg *Config
	require.Equal(t, forecast.DefaultThresholds(), nilCfg.ZoneThresholds())
}

func TestZoneEnvOverrides(t *testing.T) {
	t.Setenv("ZONE_BLACK_MAX", "1")
	t.Setenv("ZONE_GREEN_MIN", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, forecast.Thresholds{BlackMax: 1, GreenMin: 7}, cfg.ZoneThresholds())
}
