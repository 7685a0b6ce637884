// Package config loads runtime configuration for the EpicQuest CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. EPICQUEST_* environment variables.
//  4. Command-line flags.
//
// # JSON schema
//
// Durations are strings like "30m" or integer nanoseconds. Omitted keys
// keep their previous value:
//
//	{
//	  "data_dir": "~/.epicquest",
//	  "store": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "daily_opportunities": 5,
//	  "cooldown": "1h",
//	  "hero_api_token": "...",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s"
//	}
package config
