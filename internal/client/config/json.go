package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/epicquest/internal/flagx"
	"github.com/dmitrijs2005/epicquest/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "90s" style strings or integer nanoseconds.
type JsonConfig struct {
	DataDir   string `json:"data_dir"`
	DBFile    string `json:"db_file"`
	Store     string `json:"store"`
	RedisAddr string `json:"redis_addr"`
	Namespace string `json:"namespace"`

	DailyOpportunities int             `json:"daily_opportunities"`
	Cooldown           *timex.Duration `json:"cooldown"`

	HeroAPIBaseURL string          `json:"hero_api_url"`
	HeroAPIToken   string          `json:"hero_api_token"`
	HeroAPITimeout *timex.Duration `json:"hero_api_timeout"`

	ServerEndpointAddr  string          `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`

	LogFormat string `json:"log_format"`
	Debug     *bool  `json:"debug"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJSON overlays cfg with the fields present in the file named by
// -c/-config. Without either flag nothing happens.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.DBFile, jc.DBFile)
	setString(&cfg.Store, jc.Store)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.Namespace, jc.Namespace)
	setString(&cfg.HeroAPIBaseURL, jc.HeroAPIBaseURL)
	setString(&cfg.HeroAPIToken, jc.HeroAPIToken)
	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.DailyOpportunities != 0 {
		cfg.DailyOpportunities = jc.DailyOpportunities
	}
	if jc.Cooldown != nil {
		cfg.Cooldown = jc.Cooldown.Duration
	}
	if jc.HeroAPITimeout != nil {
		cfg.HeroAPITimeout = jc.HeroAPITimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
	return nil
}
