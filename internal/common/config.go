package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for all environment overrides (STOCKSAGE_API_URL etc.)
const EnvPrefix = "STOCKSAGE"

// Config holds all configuration for StockSage
type Config struct {
	Environment string        `toml:"environment"`
	API         APIConfig     `toml:"api"`
	Chart       ChartConfig   `toml:"chart"`
	Logging     LoggingConfig `toml:"logging"`
	Tracing     TracingConfig `toml:"tracing"`
}

// APIConfig holds the prediction service connection settings
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit"` // requests per second across both endpoints
}

// GetTimeout parses and returns the timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// ChartConfig controls PNG rendering of the price chart
type ChartConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

// TracingConfig holds OpenTelemetry span export configuration
type TracingConfig struct {
	Enabled  bool   `toml:"enabled"`
	FilePath string `toml:"file_path"` // empty writes spans to stderr
}

// envOverrides is decoded from STOCKSAGE_* variables. Zero values mean "not set".
type envOverrides struct {
	Env            string `envconfig:"ENV"`
	APIURL         string `envconfig:"API_URL"`
	APITimeout     string `envconfig:"API_TIMEOUT"`
	APIRateLimit   int    `envconfig:"API_RATE_LIMIT"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
	LogFormat      string `envconfig:"LOG_FORMAT"`
	ChartDir       string `envconfig:"CHART_DIR"`
	TracingEnabled string `envconfig:"TRACING_ENABLED"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			Timeout:   "30s",
			RateLimit: 10,
		},
		Chart: ChartConfig{
			Enabled: true,
			Dir:     "data/charts",
			Width:   900,
			Height:  400,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped. A .env file in
// the working directory is loaded into the environment before overrides apply.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Existing environment variables win over .env entries
	_ = godotenv.Load()

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if env.Env != "" {
		config.Environment = env.Env
	}
	if env.APIURL != "" {
		config.API.BaseURL = env.APIURL
	}
	if env.APITimeout != "" {
		config.API.Timeout = env.APITimeout
	}
	if env.APIRateLimit > 0 {
		config.API.RateLimit = env.APIRateLimit
	}
	if env.LogLevel != "" {
		config.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		config.Logging.Format = env.LogFormat
	}
	if env.ChartDir != "" {
		config.Chart.Dir = env.ChartDir
	}
	if env.TracingEnabled != "" {
		enabled, err := strconv.ParseBool(env.TracingEnabled)
		if err != nil {
			return fmt.Errorf("invalid %s_TRACING_ENABLED %q: %w", EnvPrefix, env.TracingEnabled, err)
		}
		config.Tracing.Enabled = enabled
	}

	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
