package config

import (
	"os"
	"strconv"

	"distviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Curve    CurveConfig
	Sampling SamplingConfig
	Log      LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// CurveConfig holds curve generation settings
type CurveConfig struct {
	Points int // Points on a default continuous domain
}

// SamplingConfig holds sample generation settings
type SamplingConfig struct {
	MinSize       int
	MaxSize       int
	DefaultSize   int
	HistogramBins int
	Seed          uint64 // 0 selects a crypto-random seed
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Default returns the configuration used when no environment overrides exist
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Curve:  CurveConfig{Points: 500},
		Sampling: SamplingConfig{
			MinSize:       10,
			MaxSize:       1000,
			DefaultSize:   100,
			HistogramBins: 30,
		},
		Log: LogConfig{Level: "INFO"},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	def := Default()
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", def.Server.Port),
		},
		Curve: CurveConfig{
			Points: getEnvIntOrDefault("CURVE_POINTS", def.Curve.Points),
		},
		Sampling: SamplingConfig{
			MinSize:       getEnvIntOrDefault("SAMPLE_MIN_SIZE", def.Sampling.MinSize),
			MaxSize:       getEnvIntOrDefault("SAMPLE_MAX_SIZE", def.Sampling.MaxSize),
			DefaultSize:   getEnvIntOrDefault("SAMPLE_DEFAULT_SIZE", def.Sampling.DefaultSize),
			HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", def.Sampling.HistogramBins),
			Seed:          getEnvUintOrDefault("RNG_SEED", 0),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", def.Log.Level),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Curve.Points < 2 {
		return errors.ConfigInvalid("CURVE_POINTS must be at least 2")
	}
	s := config.Sampling
	if s.MinSize < 1 {
		return errors.ConfigInvalid("SAMPLE_MIN_SIZE must be positive")
	}
	if s.MaxSize < s.MinSize {
		return errors.ConfigInvalid("SAMPLE_MAX_SIZE must not be below SAMPLE_MIN_SIZE")
	}
	if s.DefaultSize < s.MinSize || s.DefaultSize > s.MaxSize {
		return errors.ConfigInvalid("SAMPLE_DEFAULT_SIZE must lie within the sample size bounds")
	}
	if s.HistogramBins < 1 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}
