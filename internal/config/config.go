package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"StockWatch/internal/feed"
	"StockWatch/internal/model"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Realtime string `yaml:"realtime"` // "sina" or "tencent"
		Symbol   string `yaml:"symbol"`
	} `yaml:"data_source"`
	Poll struct {
		IntervalSeconds int `yaml:"interval_seconds"`
		TimeoutSeconds  int `yaml:"timeout_seconds"`
	} `yaml:"poll"`
	Chart struct {
		MaxSamples  int `yaml:"max_samples"`
		VisibleBars int `yaml:"visible_bars"`
	} `yaml:"chart"`
	HistoricalDays int    `yaml:"historical_days"`
	Proxy          string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCK_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("REALTIME_SOURCE"); v != "" {
		cfg.DataSource.Realtime = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("POLL_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Poll.IntervalSeconds = n
		}
	}

	// Defaults
	if cfg.DataSource.Realtime == "" {
		cfg.DataSource.Realtime = string(feed.SourceSina)
	}
	if cfg.Poll.IntervalSeconds == 0 {
		cfg.Poll.IntervalSeconds = 5
	}
	if cfg.Poll.TimeoutSeconds == 0 {
		cfg.Poll.TimeoutSeconds = 10
	}
	if cfg.Chart.MaxSamples == 0 {
		cfg.Chart.MaxSamples = 50
	}
	if cfg.Chart.VisibleBars == 0 {
		cfg.Chart.VisibleBars = 20
	}
	if cfg.HistoricalDays == 0 {
		cfg.HistoricalDays = 100
	}

	return cfg, nil
}

// Validate checks that all fields are consistent.
func (c *Config) Validate() error {
	if !feed.Source(c.DataSource.Realtime).Valid() {
		return fmt.Errorf("data_source.realtime must be %q or %q", feed.SourceSina, feed.SourceTencent)
	}
	if c.DataSource.Symbol != "" {
		if err := model.ValidateSymbol(c.DataSource.Symbol); err != nil {
			return fmt.Errorf("data_source.symbol: %w", err)
		}
	}
	if c.Poll.IntervalSeconds <= 0 {
		return fmt.Errorf("poll.interval_seconds must be positive")
	}
	if c.Poll.TimeoutSeconds <= 0 {
		return fmt.Errorf("poll.timeout_seconds must be positive")
	}
	if c.Chart.MaxSamples <= 0 || c.Chart.VisibleBars <= 0 {
		return fmt.Errorf("chart capacities must be positive")
	}
	if c.Chart.VisibleBars > c.Chart.MaxSamples {
		return fmt.Errorf("chart.visible_bars must not exceed chart.max_samples")
	}
	if c.HistoricalDays <= 0 {
		return fmt.Errorf("historical_days must be positive")
	}
	return nil
}

// Source returns the configured realtime source.
func (c *Config) Source() feed.Source { return feed.Source(c.DataSource.Realtime) }

// Interval returns the polling period.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Poll.TimeoutSeconds) * time.Second
}
