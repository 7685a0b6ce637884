package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/client/client"
	"github.com/dmitrijs2005/epicquest/internal/client/config"
	"github.com/dmitrijs2005/epicquest/internal/client/heroapi"
	"github.com/dmitrijs2005/epicquest/internal/client/preferences"
	"github.com/dmitrijs2005/epicquest/internal/client/services"
	"github.com/dmitrijs2005/epicquest/internal/client/session"
	"github.com/dmitrijs2005/epicquest/internal/filex"
	"github.com/dmitrijs2005/epicquest/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Manager
	users   *services.AsyncUserService
	cards   *services.CardService
	backup  *services.BackupService
	cloud   client.Cloud
	reader  *bufio.Reader
	out     io.Writer

	mu       sync.RWMutex
	userName string
	mode     Mode

	closers []func() error
}

// NewApp opens local storage and wires the game services described by c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}
	c.DataDir = dir

	repo, closeStore, err := client.OpenStore(ctx, client.StoreOptions{
		Backend:   c.Store,
		DSN:       c.DBPath(),
		RedisAddr: c.RedisAddr,
		Namespace: c.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cloud, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("cloud client: %w", err)
	}

	store := preferences.New(repo, logger)
	sm := session.Shared(ctx, store, logger)
	fetcher := heroapi.New(heroapi.Config{
		BaseURL: c.HeroAPIBaseURL,
		Token:   c.HeroAPIToken,
		Timeout: c.HeroAPITimeout,
	}, logger)

	a := newApp(c, logger, sm, services.NewUserService(store, sm, logger, c.DailyOpportunities), fetcher, cloud)
	a.closers = append(a.closers, closeStore)
	return a, nil
}

// newApp assembles an App from ready collaborators. The worker is owned
// by the App and stopped by Close.
func newApp(c *config.Config, logger logging.Logger, sm *session.Manager, users services.UserService, fetcher services.Fetcher, cloud client.Cloud) *App {
	worker := services.NewWorker(64)
	async := services.NewAsyncUserService(users, worker)

	a := &App{
		config:  c,
		logger:  logger.With("module", "cli"),
		session: sm,
		users:   async,
		cards:   services.NewCardService(async, fetcher, c.Cooldown, logger),
		backup:  services.NewBackupService(async, cloud, logger),
		cloud:   cloud,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		mode:    ModeOffline,
	}
	a.closers = append(a.closers, func() error { worker.Close(); return nil }, cloud.Close)
	return a
}

// Close stops the worker and releases storage and network resources.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error(ctx, "shutdown", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName != ""
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "cloud connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the cloud every interval and flips the
// mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	if err := a.cloud.Ping(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
