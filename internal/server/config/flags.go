package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/epicquest/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string       gRPC bind address
//	-m string       admin HTTP address (metrics, health)
//	-d string       PostgreSQL DSN
//	-s string       JWT HMAC secret
//	-t duration     ID token lifetime
//	-docs string    document backend, s3 or mongo
//	-b string       S3 bucket
//	-e string       S3 base endpoint
//	-mongo string   MongoDB URI
//	-log string     log format
//	-debug          verbose logging
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, "-a", "-m", "-d", "-s", "-t", "-docs", "-b", "-e", "-mongo", "-log", "-debug")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.GRPCAddr, "a", cfg.GRPCAddr, "address and port to run server")
	fs.StringVar(&cfg.AdminAddr, "m", cfg.AdminAddr, "admin listener address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "ID token validity")
	fs.StringVar(&cfg.DocumentBackend, "docs", cfg.DocumentBackend, "document backend")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.MongoURI, "mongo", cfg.MongoURI, "MongoDB URI")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")

	return fs.Parse(args)
}
