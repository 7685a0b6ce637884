package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/flagx"
)

var knownFlags = []string{
	"-a", "-i", "-d", "-store", "-redis", "-daily", "-cooldown",
	"-hero-url", "-hero-token", "-log", "-debug",
}

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// knownFlags are considered, so -c and anything else is left alone.
//
//	-a string          cloud server address
//	-i int             online check interval, seconds
//	-d string          data directory
//	-store string      sqlite, redis or memory
//	-redis string      redis address
//	-daily int         draws per day
//	-cooldown duration pause between draws
//	-hero-url string   hero API base URL
//	-hero-token string hero API access token
//	-log string        slog, slog-json, zap or logrus
//	-debug             verbose logging
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("epicquest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "cloud server address")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "preferences backend")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address")
	fs.IntVar(&cfg.DailyOpportunities, "daily", cfg.DailyOpportunities, "draws per day")
	fs.DurationVar(&cfg.Cooldown, "cooldown", cfg.Cooldown, "pause between draws")
	fs.StringVar(&cfg.HeroAPIBaseURL, "hero-url", cfg.HeroAPIBaseURL, "hero API base URL")
	fs.StringVar(&cfg.HeroAPIToken, "hero-token", cfg.HeroAPIToken, "hero API token")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags...)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
