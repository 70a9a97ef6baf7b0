// Package config reads environment defaults for the command line tools.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config captures defaults that flags may override.
type Config struct {
	WeightKG  float64
	HeightCM  int
	Format    string
	OutDir    string
	KeepGoing bool
}

// Load reads environment variables into Config, falling back to local defaults.
func Load() Config {
	return Config{
		WeightKG:  getFloatEnv("FITNESS_WEIGHT_KG", 0),
		HeightCM:  getIntEnv("FITNESS_HEIGHT_CM", 0),
		Format:    strings.ToLower(getEnv("FITNESS_FORMAT", "parquet")),
		OutDir:    getEnv("FITNESS_OUT_DIR", ""),
		KeepGoing: getBoolEnv("FITNESS_KEEP_GOING", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}
