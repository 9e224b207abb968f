package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Simulation SimulationConfig
	Search     SearchConfig
	Session    SessionConfig
	Messages   MessagesConfig
	Metrics    MetricsConfig
	Telemetry  TelemetryConfig
}

type SimulationConfig struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	FailureRate float64
	Seed        int64
}

type SearchConfig struct {
	DebounceWindow time.Duration
}

type SessionConfig struct {
	RequireBiometric bool
}

type MessagesConfig struct {
	// OverrideFile points at an optional JSON file overriding the
	// compiled-in notification texts.
	OverrideFile string
}

type MetricsConfig struct {
	Enabled bool
	Port    string
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

func Load() (*Config, error) {

	minDelay, err := time.ParseDuration(getEnv("SIM_MIN_DELAY", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_MIN_DELAY: %w", err)
	}
	maxDelay, err := time.ParseDuration(getEnv("SIM_MAX_DELAY", "800ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_MAX_DELAY: %w", err)
	}
	failureRate, err := strconv.ParseFloat(getEnv("SIM_FAILURE_RATE", "0.05"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_FAILURE_RATE: %w", err)
	}
	seed, err := strconv.ParseInt(getEnv("SIM_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_SEED: %w", err)
	}

	debounceWindow, err := time.ParseDuration(getEnv("SEARCH_DEBOUNCE_WINDOW", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE_WINDOW: %w", err)
	}

	cfg := &Config{
		Simulation: SimulationConfig{
			MinDelay:    minDelay,
			MaxDelay:    maxDelay,
			FailureRate: failureRate,
			Seed:        seed,
		},
		Search: SearchConfig{
			DebounceWindow: debounceWindow,
		},
		Session: SessionConfig{
			RequireBiometric: getBoolEnv("SESSION_REQUIRE_BIOMETRIC", false),
		},
		Messages: MessagesConfig{
			OverrideFile: getEnv("MESSAGES_FILE", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("METRICS_ENABLED", true),
			Port:    getEnv("METRICS_PORT", "9090"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "bolso-sim"),
			Environment:  getEnv("OTEL_ENVIRONMENT", "development"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
		},
	}

	// Validate ranges
	if cfg.Simulation.MinDelay < 0 {
		return nil, fmt.Errorf("SIM_MIN_DELAY must not be negative")
	}
	if cfg.Simulation.MaxDelay < cfg.Simulation.MinDelay {
		return nil, fmt.Errorf("SIM_MAX_DELAY must be >= SIM_MIN_DELAY")
	}
	if cfg.Simulation.FailureRate < 0 || cfg.Simulation.FailureRate > 1 {
		return nil, fmt.Errorf("SIM_FAILURE_RATE must be between 0 and 1")
	}
	if cfg.Search.DebounceWindow <= 0 {
		return nil, fmt.Errorf("SEARCH_DEBOUNCE_WINDOW must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept: true, false, 1, 0, yes, no (case-insensitive)
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
