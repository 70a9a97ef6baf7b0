package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FITNESS_WEIGHT_KG", "FITNESS_HEIGHT_CM", "FITNESS_FORMAT", "FITNESS_OUT_DIR", "FITNESS_KEEP_GOING"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, Config{Format: "parquet"}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FITNESS_WEIGHT_KG", "72.5")
	t.Setenv("FITNESS_HEIGHT_CM", " 180 ")
	t.Setenv("FITNESS_FORMAT", "CSV")
	t.Setenv("FITNESS_OUT_DIR", "/tmp/out")
	t.Setenv("FITNESS_KEEP_GOING", "true")

	cfg := Load()
	require.Equal(t, 72.5, cfg.WeightKG)
	require.Equal(t, 180, cfg.HeightCM)
	require.Equal(t, "csv", cfg.Format)
	require.Equal(t, "/tmp/out", cfg.OutDir)
	require.True(t, cfg.KeepGoing)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("FITNESS_WEIGHT_KG", "heavy")
	t.Setenv("FITNESS_HEIGHT_CM", "1.8m")
	t.Setenv("FITNESS_KEEP_GOING", "maybe")

	cfg := Load()
	require.Zero(t, cfg.WeightKG)
	require.Zero(t, cfg.HeightCM)
	require.False(t, cfg.KeepGoing)
}
