// Package config holds the monitor settings shared by all commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPathEnv names an optional YAML file used when --config is not set
const ConfigPathEnv = "BREWPUB_CONFIG"

const (
	DefaultEndpoint        = "http://192.168.1.120:1880/restData"
	DefaultDataDir         = "~/.go-brewpub-monitor"
	DefaultLogFile         = "~/.go-brewpub-monitor/logs/app.log"
	DefaultRefreshInterval = 15 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultUIRefreshRate   = 1.0
	DefaultPageSize        = 10

	StoreFile  = "file"
	StoreRedis = "redis"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config contains the settings for polling, storage and display
type Config struct {
	// Telemetry source
	Endpoint        string        `yaml:"endpoint"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`

	// History storage
	DataDir string      `yaml:"data_dir"`
	Store   string      `yaml:"store"`
	Redis   RedisConfig `yaml:"redis"`

	// Display settings
	Timezone      string  `yaml:"timezone"`
	UIRefreshRate float64 `yaml:"ui_refresh_rate"`
	PageSize      int     `yaml:"page_size"`

	// Logging
	LogFile   string `yaml:"log_file"`
	LogFormat string `yaml:"log_format"`
}

// RedisConfig is only read when Store is "redis"
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// Default returns a validated configuration with every default applied
func Default() *Config {
	c := &Config{}
	_ = c.Validate()
	return c
}

// Load reads path, or the file named by BREWPUB_CONFIG when path is empty,
// then applies BREWPUB_* overrides. With no file the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}

	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(ExpandPath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate fills defaults and rejects values the monitor cannot run with
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.Store == "" {
		c.Store = StoreFile
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.UIRefreshRate == 0 {
		c.UIRefreshRate = DefaultUIRefreshRate
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}

	c.Store = strings.ToLower(c.Store)

	switch {
	case !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://"):
		return fmt.Errorf("%w: endpoint must be an http(s) URL, got %q", ErrInvalidConfig, c.Endpoint)
	case c.RefreshInterval < time.Second:
		return fmt.Errorf("%w: refresh interval must be at least 1s, got %s", ErrInvalidConfig, c.RefreshInterval)
	case c.RequestTimeout < 0:
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	case c.Store != StoreFile && c.Store != StoreRedis:
		return fmt.Errorf("%w: unknown store %q (want file or redis)", ErrInvalidConfig, c.Store)
	case c.Store == StoreRedis && c.Redis.Addr == "":
		return fmt.Errorf("%w: redis store requires redis.addr", ErrInvalidConfig)
	case c.UIRefreshRate < 0:
		return fmt.Errorf("%w: ui refresh rate must be positive", ErrInvalidConfig)
	case c.PageSize < 0:
		return fmt.Errorf("%w: page size must be positive", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}

	if c.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, c.Timezone)
		}
	}
	return nil
}

// UIRefreshPeriod converts the refresh rate (Hz) into a ticker period
func (c *Config) UIRefreshPeriod() time.Duration {
	if c.UIRefreshRate <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / c.UIRefreshRate)
}

// ExpandPath resolves a leading ~/ and makes the path absolute
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
