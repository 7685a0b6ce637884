package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/client/heroapi"
	"github.com/dmitrijs2005/epicquest/internal/common"
)

// EnvPrefix is prepended to every environment variable name, e.g.
// EPICQUEST_STORE=redis.
const EnvPrefix = "EPICQUEST"

// Config holds runtime settings for the EpicQuest CLI.
type Config struct {
	DataDir   string `envconfig:"DATA_DIR"`
	DBFile    string `envconfig:"DB_FILE"`
	Store     string `envconfig:"STORE"`
	RedisAddr string `envconfig:"REDIS_ADDR"`
	Namespace string `envconfig:"NAMESPACE"`

	DailyOpportunities int           `envconfig:"DAILY_OPPORTUNITIES"`
	Cooldown           time.Duration `envconfig:"COOLDOWN"`

	HeroAPIBaseURL string        `envconfig:"HERO_API_URL"`
	HeroAPIToken   string        `envconfig:"HERO_API_TOKEN"`
	HeroAPITimeout time.Duration `envconfig:"HERO_API_TIMEOUT"`

	ServerEndpointAddr  string        `envconfig:"SERVER_ADDR"`
	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`

	LogFormat string `envconfig:"LOG_FORMAT"`
	Debug     bool   `envconfig:"DEBUG"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "~/.epicquest"
	c.DBFile = "epicquest.db"
	c.Store = "sqlite"
	c.RedisAddr = "127.0.0.1:6379"
	c.Namespace = common.PreferencesNamespace

	c.DailyOpportunities = 5
	c.Cooldown = time.Hour

	c.HeroAPIBaseURL = heroapi.DefaultBaseURL
	c.HeroAPITimeout = heroapi.DefaultTimeout

	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second

	c.LogFormat = "slog"
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store {
	case "sqlite", "redis", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.DailyOpportunities < 1 {
		errs = append(errs, fmt.Errorf("daily opportunities must be positive, got %d", c.DailyOpportunities))
	}
	if c.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("cooldown must not be negative, got %s", c.Cooldown))
	}
	if c.HeroAPITimeout <= 0 {
		errs = append(errs, fmt.Errorf("hero api timeout must be positive, got %s", c.HeroAPITimeout))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval))
	}
	return errors.Join(errs...)
}

// DBPath is the SQLite file location inside the data directory.
func (c *Config) DBPath() string {
	if filepath.IsAbs(c.DBFile) {
		return c.DBFile
	}
	return filepath.Join(c.DataDir, c.DBFile)
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then EPICQUEST_* environment variables, then flags in args. Later sources
// take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads the configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
