package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment overrides, applied between the config file and the flags
const (
	EnvEndpoint      = "BREWPUB_ENDPOINT"
	EnvInterval      = "BREWPUB_INTERVAL"
	EnvDataDir       = "BREWPUB_DATA_DIR"
	EnvStore         = "BREWPUB_STORE"
	EnvRedisAddr     = "BREWPUB_REDIS_ADDR"
	EnvRedisPassword = "BREWPUB_REDIS_PASSWORD"
	EnvRedisDB       = "BREWPUB_REDIS_DB"
	EnvTimezone      = "BREWPUB_TIMEZONE"
)

// LoadDotEnv exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from BREWPUB_* variables. Empty values are ignored.
func (c *Config) applyEnv() error {
	c.Endpoint = getEnv(EnvEndpoint, c.Endpoint)
	c.DataDir = getEnv(EnvDataDir, c.DataDir)
	c.Store = getEnv(EnvStore, c.Store)
	c.Redis.Addr = getEnv(EnvRedisAddr, c.Redis.Addr)
	c.Redis.Password = getEnv(EnvRedisPassword, c.Redis.Password)
	c.Timezone = getEnv(EnvTimezone, c.Timezone)

	if v := getEnv(EnvInterval, ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvInterval, err)
		}
		c.RefreshInterval = d
	}
	if v := getEnv(EnvRedisDB, ""); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvRedisDB, err)
		}
		c.Redis.DB = db
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultVal
}
