package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/client/heroapi"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		DataDir:             "~/.epicquest",
		DBFile:              "epicquest.db",
		Store:               "sqlite",
		RedisAddr:           "127.0.0.1:6379",
		Namespace:           "EpicQuestPrefs",
		DailyOpportunities:  5,
		Cooldown:            time.Hour,
		HeroAPIBaseURL:      heroapi.DefaultBaseURL,
		HeroAPITimeout:      heroapi.DefaultTimeout,
		ServerEndpointAddr:  "127.0.0.1:50051",
		OnlineCheckInterval: 3 * time.Second,
		LogFormat:           "slog",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
	assert.NoError(t, defaults().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown store", func(c *Config) { c.Store = "etcd" }, `unknown store "etcd"`},
		{"zero draws", func(c *Config) { c.DailyOpportunities = 0 }, "daily opportunities"},
		{"negative cooldown", func(c *Config) { c.Cooldown = -time.Second }, "cooldown"},
		{"no timeout", func(c *Config) { c.HeroAPITimeout = 0 }, "hero api timeout"},
		{"no interval", func(c *Config) { c.OnlineCheckInterval = 0 }, "online check interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.errMsg)
		})
	}

	c := defaults()
	c.Cooldown = 0
	assert.NoError(t, c.Validate(), "zero cooldown disables the pause")
}

func TestDBPath(t *testing.T) {
	c := defaults()
	c.DataDir = "data"
	assert.Equal(t, filepath.Join("data", "epicquest.db"), c.DBPath())

	abs := filepath.Join(t.TempDir(), "x.db")
	c.DBFile = abs
	assert.Equal(t, abs, c.DBPath())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"store":               "redis",
		"redis_addr":          "json:6379",
		"daily_opportunities": 7,
		"cooldown":            "30m",
	})
	t.Setenv("EPICQUEST_REDIS_ADDR", "env:6379")
	t.Setenv("EPICQUEST_COOLDOWN", "45m")

	cfg, err := Load([]string{"-c", path, "-cooldown", "10m"})
	require.NoError(t, err)

	want := defaults()
	want.Store = "redis"
	want.RedisAddr = "env:6379"
	want.DailyOpportunities = 7
	want.Cooldown = 10 * time.Minute
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.ErrorContains(t, err, "config file")

	t.Run("env", func(t *testing.T) {
		t.Setenv("EPICQUEST_DAILY_OPPORTUNITIES", "many")
		_, err := Load(nil)
		assert.ErrorContains(t, err, "environment")
	})

	_, err = Load([]string{"-daily", "lots"})
	assert.ErrorContains(t, err, "flags")

	_, err = Load([]string{"-store", "etcd"})
	assert.ErrorContains(t, err, "unknown store")
}
