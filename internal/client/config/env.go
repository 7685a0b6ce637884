package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays cfg with EPICQUEST_* variables; unset variables leave
// the current value alone.
func parseEnv(cfg *Config) error {
	return envconfig.Process(EnvPrefix, cfg)
}
