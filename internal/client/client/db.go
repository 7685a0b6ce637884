package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/client/migrations"
	"github.com/dmitrijs2005/epicquest/internal/client/repositories/kv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

// Preference store backends accepted by OpenStore.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}
	return db, nil
}

// NewRedisClient connects to addr and checks the server answers.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// StoreOptions selects and configures the preferences backend.
type StoreOptions struct {
	Backend   string
	DSN       string
	RedisAddr string
	Namespace string
}

// OpenStore opens the configured backend. The returned close function
// releases the underlying connection.
func OpenStore(ctx context.Context, opts StoreOptions) (kv.Repository, func() error, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		db, err := InitDatabase(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewSQLiteRepository(db, opts.Namespace), db.Close, nil
	case BackendRedis:
		rdb, err := NewRedisClient(ctx, opts.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedisRepository(rdb, opts.Namespace), rdb.Close, nil
	case BackendMemory:
		return kv.NewMemoryRepository(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
