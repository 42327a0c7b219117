package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains all runtime settings for the risk monitoring service.
type Config struct {
	BindAddr         string
	MetricsNamespace string
	AllowAnyOrigin   bool
	ShutdownTimeout  time.Duration

	// Core tuning.
	WindowSize    int
	ProbeTimeout  time.Duration
	LatencyBudget time.Duration

	// Reporting. A zero interval disables the periodic reporter.
	ReportInterval time.Duration
	DatabaseURL    string
}

// Load reads environment variables and applies safe defaults. A local .env
// file is honored when present.
func Load() (Config, error) {
	// Ignore a missing .env; it only exists in local development.
	_ = godotenv.Load()

	cfg := Config{
		BindAddr:         envOrDefault("RISKGUARD_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("RISKGUARD_METRICS_NAMESPACE", "riskguard"),
		AllowAnyOrigin:   false,
		ShutdownTimeout:  15 * time.Second,
		WindowSize:       20,
		ProbeTimeout:     3 * time.Second,
		LatencyBudget:    2 * time.Second,
		ReportInterval:   30 * time.Second,
		DatabaseURL:      envTrimmed("DATABASE_URL"),
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("RISKGUARD_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.WindowSize, err = intFromEnv("RISKGUARD_WINDOW_SIZE", cfg.WindowSize)
	if err != nil {
		return Config{}, err
	}
	cfg.ProbeTimeout, err = durationFromEnv("RISKGUARD_PROBE_TIMEOUT", cfg.ProbeTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.LatencyBudget, err = durationFromEnv("RISKGUARD_LATENCY_BUDGET", cfg.LatencyBudget)
	if err != nil {
		return Config{}, err
	}
	cfg.ReportInterval, err = durationFromEnv("RISKGUARD_REPORT_INTERVAL", cfg.ReportInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("RISKGUARD_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.WindowSize < 1 {
		return Config{}, fmt.Errorf("RISKGUARD_WINDOW_SIZE must be at least 1")
	}
	if cfg.ProbeTimeout <= 0 {
		return Config{}, fmt.Errorf("RISKGUARD_PROBE_TIMEOUT must be positive")
	}
	if cfg.LatencyBudget <= 0 {
		return Config{}, fmt.Errorf("RISKGUARD_LATENCY_BUDGET must be positive")
	}
	if cfg.ReportInterval < 0 {
		return Config{}, fmt.Errorf("RISKGUARD_REPORT_INTERVAL must not be negative")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(envTrimmed(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
