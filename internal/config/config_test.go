package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Validate())

	assert.Equal(t, DefaultEndpoint, c.Endpoint)
	assert.Equal(t, 15*time.Second, c.RefreshInterval)
	assert.Equal(t, DefaultRequestTimeout, c.RequestTimeout)
	assert.Equal(t, DefaultDataDir, c.DataDir)
	assert.Equal(t, StoreFile, c.Store)
	assert.Equal(t, "Local", c.Timezone)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, time.Second, c.UIRefreshPeriod())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "non http endpoint", mutate: func(c *Config) { c.Endpoint = "ftp://tank" }},
		{name: "interval too short", mutate: func(c *Config) { c.RefreshInterval = 100 * time.Millisecond }},
		{name: "unknown store", mutate: func(c *Config) { c.Store = "sqlite" }},
		{name: "redis without addr", mutate: func(c *Config) { c.Store = "redis" }},
		{name: "negative page size", mutate: func(c *Config) { c.PageSize = -1 }},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateNormalizesStore(t *testing.T) {
	c := &Config{Store: "REDIS", Redis: RedisConfig{Addr: "localhost:6379"}}
	require.NoError(t, c.Validate())
	assert.Equal(t, StoreRedis, c.Store)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	content := `
endpoint: http://10.0.0.5:1880/restData
refresh_interval: 30s
store: redis
redis:
  addr: localhost:6379
  db: 2
timezone: UTC
page_size: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:1880/restData", c.Endpoint)
	assert.Equal(t, 30*time.Second, c.RefreshInterval)
	assert.Equal(t, StoreRedis, c.Store)
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
	assert.Equal(t, 2, c.Redis.DB)
	assert.Equal(t, "UTC", c.Timezone)
	assert.Equal(t, 20, c.PageSize)
	assert.Equal(t, DefaultDataDir, c.DataDir)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 5\n"), 0644))
	t.Setenv(ConfigPathEnv, path)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, c.PageSize)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("refresh_interval: [1, 2"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("store: sqlite\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.Endpoint)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "test/path"), ExpandPath("~/test/path"))
	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))

	abs, _ := filepath.Abs("relative/path")
	assert.Equal(t, abs, ExpandPath("relative/path"))
}
