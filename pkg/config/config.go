package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"2s"`
	} `yaml:"metrics"`
	MarketData struct {
		BaseURL          string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
		Timeout          time.Duration `yaml:"timeout" default:"20s"`
		UserAgent        string        `yaml:"user_agent" default:"Mozilla/5.0"`
		ExchangeSuffixes []string      `yaml:"exchange_suffixes" default:"[\".NS\",\".BO\"]"`
		HistoryPeriod    string        `yaml:"history_period" default:"2y"`
		TrendingPeriod   string        `yaml:"trending_period" default:"5d"`
	} `yaml:"market_data"`
	Cache struct {
		MarketDataTTL time.Duration `yaml:"market_data_ttl" default:"30m"`
		PredictionTTL time.Duration `yaml:"prediction_ttl" default:"1h"`
		QuoteTTL      time.Duration `yaml:"quote_ttl" default:"15m"`
		MaxEntries    int           `yaml:"max_entries"`
	} `yaml:"cache"`
	Model struct {
		Trees        int   `yaml:"trees" default:"50"`
		MaxDepth     int   `yaml:"max_depth" default:"12"`
		Seed         int64 `yaml:"seed" default:"42"`
		MaxTrainRows int   `yaml:"max_train_rows" default:"400"`
		MinRows      int   `yaml:"min_rows" default:"50"`
	} `yaml:"model"`
	Workers struct {
		Size int `yaml:"size"`
	} `yaml:"workers"`
	Watchlist struct {
		Trending  []string `yaml:"trending" default:"[\"RELIANCE\",\"TCS\",\"INFY\",\"HDFCBANK\",\"ICICIBANK\",\"SBIN\",\"ITC\",\"BHARTIARTL\"]"`
		Dashboard []string `yaml:"dashboard" default:"[\"RELIANCE\",\"TCS\",\"INFY\",\"HDFCBANK\",\"ICICIBANK\",\"SBIN\",\"AXISBANK\",\"LT\"]"`
	} `yaml:"watchlist"`
	Catalog struct {
		Path string `yaml:"path" default:"data/stocks.csv"`
	} `yaml:"catalog"`
	Store struct {
		Backend string `yaml:"backend" default:"memory"`
		Redis   struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"stocksense"`
		} `yaml:"redis"`
	} `yaml:"store"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity" default:"20"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"0.5"`
	} `yaml:"rate_limit"`
	Warmup struct {
		Cron string `yaml:"cron"`
	} `yaml:"warmup"`
	Stream struct {
		Interval time.Duration `yaml:"interval" default:"30s"`
	} `yaml:"stream"`
}

// Default returns a config populated from struct defaults only.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of the struct defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, then applies environment overrides.
// A missing YAML file falls back to defaults.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if c, err = Default(); err != nil {
			return nil, err
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Store.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Store.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Store.Redis.Password = v
	}
	if v := os.Getenv("TRENDING_SYMBOLS"); v != "" {
		c.Watchlist.Trending = splitList(v)
	}
	if v := os.Getenv("DASHBOARD_SYMBOLS"); v != "" {
		c.Watchlist.Dashboard = splitList(v)
	}
	if v := os.Getenv("WARMUP_CRON"); v != "" {
		c.Warmup.Cron = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.MarketData.BaseURL == "" {
		return fmt.Errorf("market_data.base_url is required")
	}
	if len(c.MarketData.ExchangeSuffixes) == 0 {
		return fmt.Errorf("market_data.exchange_suffixes cannot be empty")
	}
	if c.Model.Trees <= 0 || c.Model.MaxDepth <= 0 {
		return fmt.Errorf("model.trees and model.max_depth must be positive")
	}
	if c.Model.MinRows < 5 {
		return fmt.Errorf("model.min_rows must be at least 5, got %d", c.Model.MinRows)
	}
	if c.Store.Backend != "memory" && c.Store.Backend != "redis" {
		return fmt.Errorf("store.backend must be 'memory' or 'redis', got '%s'", c.Store.Backend)
	}
	if len(c.Watchlist.Trending) == 0 || len(c.Watchlist.Dashboard) == 0 {
		return fmt.Errorf("watchlist.trending and watchlist.dashboard cannot be empty")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}
