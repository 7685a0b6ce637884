package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/dbx"
	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/dmitrijs2005/epicquest/internal/server/config"
	"github.com/dmitrijs2005/epicquest/internal/server/documents"
	"github.com/dmitrijs2005/epicquest/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/epicquest/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct{ migrateErr error }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return m.migrateErr }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository     { return accounts.NewPostgresRepository(db) }

type nopStore struct{ closed bool }

func (s *nopStore) Put(context.Context, string, string, map[string]any) error { return nil }

func (s *nopStore) Get(context.Context, string, string) (map[string]any, error) {
	return nil, common.ErrorNotFound
}

func (s *nopStore) Close(context.Context) error {
	s.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		GRPCAddr:        "127.0.0.1:0",
		AdminAddr:       "127.0.0.1:0",
		SecretKey:       "k",
		TokenTTL:        time.Hour,
		DocumentBackend: config.BackendS3,
	}
}

func stubSeams(t *testing.T, rm *fakeRepoManager, store documents.Store, storeErr error) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origRM, origStore := openPostgres, newRepoManager, openStore
	t.Cleanup(func() { openPostgres, newRepoManager, openStore = origOpen, origRM, origStore })

	openPostgres = func(context.Context, string) (*sql.DB, error) { return db, nil }
	newRepoManager = func() repomanager.RepositoryManager { return rm }
	openStore = func(context.Context, *config.Config) (documents.Store, error) { return store, storeErr }
	return mock
}

func TestNewApp_RunStopsOnCancel(t *testing.T) {
	store := &nopStore{}
	mock := stubSeams(t, &fakeRepoManager{}, store, nil)
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, store.closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_MigrationFailure(t *testing.T) {
	mock := stubSeams(t, &fakeRepoManager{migrateErr: errors.New("bad sql")}, &nopStore{}, nil)
	mock.ExpectClose()

	_, err := NewApp(context.Background(), testConfig(), logging.Nop())
	assert.ErrorContains(t, err, "migrations: bad sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_StoreFailure(t *testing.T) {
	mock := stubSeams(t, &fakeRepoManager{}, nil, errors.New("no bucket"))
	mock.ExpectClose()

	_, err := NewApp(context.Background(), testConfig(), logging.Nop())
	assert.ErrorContains(t, err, "document store: no bucket")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenDocumentStore_UnknownBackend(t *testing.T) {
	c := testConfig()
	c.DocumentBackend = "ftp"
	_, err := openDocumentStore(context.Background(), c)
	assert.ErrorContains(t, err, `unknown document backend "ftp"`)
}

func TestApp_Ready(t *testing.T) {
	mock := stubSeams(t, &fakeRepoManager{}, &nopStore{}, nil)
	app, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)

	mock.ExpectPing()
	assert.NoError(t, app.ready(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("gone"))
	assert.ErrorContains(t, app.ready(context.Background()), "gone")
}
