package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/i474232898/carbon-intensity-proxy/internal/carbon/upstream"
	"github.com/i474232898/carbon-intensity-proxy/internal/observability"
)

type AppConfig struct {
	// Carbon intensity API settings.
	BaseURL        string
	Timeout        time.Duration
	BreakerEnabled bool

	Port            string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
// Loading a .env file is the caller's job.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.BaseURL = getenvDefault("CARBON_INTENSITY_BASE_URL", upstream.DefaultBaseURL)
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid CARBON_INTENSITY_BASE_URL: %w", err)
	}

	timeout, err := getenvDuration("CARBON_INTENSITY_TIMEOUT", upstream.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout

	breaker, err := getenvBool("CARBON_INTENSITY_BREAKER_ENABLED", false)
	if err != nil {
		return nil, err
	}
	cfg.BreakerEnabled = breaker

	cfg.Port = getenvDefault("PORT", "8080")
	if n, err := strconv.Atoi(cfg.Port); err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getenvDefault("LOG_FORMAT", observability.LogFormatJSON)
	if cfg.LogFormat != observability.LogFormatJSON && cfg.LogFormat != observability.LogFormatConsole {
		return nil, fmt.Errorf("invalid LOG_FORMAT: %q", cfg.LogFormat)
	}

	shutdown, err := getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = shutdown

	return cfg, nil
}

// Upstream returns the client settings.
func (c *AppConfig) Upstream() upstream.Config {
	return upstream.Config{
		BaseURL:        c.BaseURL,
		Timeout:        c.Timeout,
		BreakerEnabled: c.BreakerEnabled,
	}
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
