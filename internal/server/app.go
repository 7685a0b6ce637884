// Package server wires the EpicQuest cloud server: the Postgres account
// store, the document backend, the CloudSync gRPC service and the admin
// HTTP endpoints.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/dmitrijs2005/epicquest/internal/server/config"
	"github.com/dmitrijs2005/epicquest/internal/server/documents"
	gs "github.com/dmitrijs2005/epicquest/internal/server/grpc"
	"github.com/dmitrijs2005/epicquest/internal/server/metrics"
	"github.com/dmitrijs2005/epicquest/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/epicquest/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	store   documents.Store
	metrics *metrics.Metrics

	identity  *services.IdentityService
	documents *services.DocumentService
}

// Seams for tests.
var (
	openPostgres   = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
	openStore      = openDocumentStore
)

func openDocumentStore(ctx context.Context, c *config.Config) (documents.Store, error) {
	switch c.DocumentBackend {
	case config.BackendMongo:
		return documents.NewMongoStore(ctx, c.MongoURI, c.MongoDatabase)
	case config.BackendS3:
		s, err := documents.NewS3Store(ctx, documents.S3Config{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown document backend %q", c.DocumentBackend)
	}
}

// NewApp connects to Postgres, applies migrations and opens the document
// backend.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := openStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("document store: %w", err)
	}
	logger.Info(ctx, "Document store ready", "backend", c.DocumentBackend)

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		store:     store,
		metrics:   metrics.New(),
		identity:  services.NewIdentityService(db, rm, c),
		documents: services.NewDocumentService(store),
	}, nil
}

func (app *App) ready(ctx context.Context) error {
	return app.db.PingContext(ctx)
}

// Run serves gRPC and admin traffic until ctx is cancelled or either
// listener fails.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")
	defer app.close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.identity, app.documents, app.metrics.UnaryInterceptor())
		return s.Run(ctx)
	})
	g.Go(func() error {
		return metrics.Serve(ctx, app.config.AdminAddr, app.metrics.Router(app.ready), app.logger)
	})

	return g.Wait()
}

func (app *App) close() {
	ctx := context.Background()
	if err := app.store.Close(ctx); err != nil {
		app.logger.Warn(ctx, "closing document store", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

