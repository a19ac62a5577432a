// Package common provides shared utilities for Stockfin
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Stockfin
type Config struct {
	Environment string         `toml:"environment"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Logging     LoggingConfig  `toml:"logging"`
}

// StorageConfig holds paths for the on-disk cache and report output.
type StorageConfig struct {
	CachePath  string `toml:"cache_path"`
	ReportPath string `toml:"report_path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EastMoney EastMoneyConfig `toml:"eastmoney"`
	Yahoo     YahooConfig     `toml:"yahoo"`
}

// EastMoneyConfig holds the CN statement/quote provider configuration
type EastMoneyConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EastMoneyConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// YahooConfig holds the international price provider configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// AnalysisConfig holds the metric engine tunables.
type AnalysisConfig struct {
	Workers        int `toml:"workers"`          // financial-category worker pool size
	WindowPeriods  int `toml:"window_periods"`   // reporting periods per analysis window
	PeriodsPerYear int `toml:"periods_per_year"` // quarterly reporting = 4
	PriceDays      int `toml:"price_days"`       // default price history span in days
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			CachePath:  "cache",
			ReportPath: "reports",
		},
		Clients: ClientsConfig{
			EastMoney: EastMoneyConfig{
				BaseURL:   "https://datacenter-web.eastmoney.com/api",
				RateLimit: 5,
				Timeout:   "30s",
			},
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 2,
				Timeout:   "30s",
			},
		},
		Analysis: AnalysisConfig{
			Workers:        4,
			WindowPeriods:  12,
			PeriodsPerYear: 4,
			PriceDays:      730,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKFIN_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("STOCKFIN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("STOCKFIN_CACHE_PATH"); path != "" {
		config.Storage.CachePath = path
	}

	if path := os.Getenv("STOCKFIN_REPORT_PATH"); path != "" {
		config.Storage.ReportPath = path
	}

	if workers := os.Getenv("STOCKFIN_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			config.Analysis.Workers = n
		}
	}
}

func validateConfig(config *Config) error {
	if config.Analysis.Workers <= 0 {
		config.Analysis.Workers = 4
	}
	if config.Analysis.WindowPeriods <= 0 {
		config.Analysis.WindowPeriods = 12
	}
	if config.Analysis.PeriodsPerYear <= 0 {
		config.Analysis.PeriodsPerYear = 4
	}
	if config.Analysis.PriceDays <= 0 {
		config.Analysis.PriceDays = 730
	}
	if config.Storage.CachePath == "" {
		return fmt.Errorf("storage.cache_path must not be empty")
	}
	if config.Storage.ReportPath == "" {
		return fmt.Errorf("storage.report_path must not be empty")
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
