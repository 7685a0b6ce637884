package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/epicquest/internal/client/preferences"
	"github.com/dmitrijs2005/epicquest/internal/client/repositories/kv"
	"github.com/dmitrijs2005/epicquest/internal/client/session"
	"github.com/dmitrijs2005/epicquest/internal/logging"
)

type env struct {
	repo    *kv.MemoryRepository
	store   *preferences.Store
	session *session.Manager
	users   UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvOn(t, kv.NewMemoryRepository())
}

// newEnvOn builds a fresh service stack over an existing backend, the way
// a restarted process would.
func newEnvOn(t *testing.T, repo *kv.MemoryRepository) *env {
	t.Helper()
	ctx := context.Background()
	store := preferences.New(repo, logging.Nop())
	sm := session.NewManager(ctx, store, logging.Nop())
	return &env{
		repo:    repo,
		store:   store,
		session: sm,
		users:   NewUserService(store, sm, logging.Nop(), 5),
	}
}

func (e *env) async(t *testing.T) *AsyncUserService {
	t.Helper()
	w := NewWorker(16)
	t.Cleanup(w.Close)
	return NewAsyncUserService(e.users, w)
}
