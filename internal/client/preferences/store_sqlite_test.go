package preferences

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/epicquest/internal/client/client"
	"github.com/dmitrijs2005/epicquest/internal/client/repositories/kv"
	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return New(kv.NewSQLiteRepository(db, "EpicQuestPrefs"), log)
}

func TestStore_SQLite_EmptyStringIsPresent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutString(ctx, "k", ""))
	assert.True(t, s.Contains(ctx, "k"))
	assert.Equal(t, "", s.GetString(ctx, "k", "def"))

	assert.False(t, s.Contains(ctx, "absent"))
	assert.Equal(t, "def", s.GetString(ctx, "absent", "def"))
}

func TestStore_SQLite_ScalarsAndObjects(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutBool(ctx, "first_time", false))
	require.NoError(t, s.PutInt(ctx, "n", 42))
	assert.False(t, s.GetBool(ctx, "first_time", true))
	assert.Equal(t, 42, s.GetInt(ctx, "n", 0))

	in := profile{Name: "alice", Level: 2, Tags: []string{"a"}}
	require.NoError(t, s.PutObject(ctx, "p", &in))
	assert.Equal(t, in, GetObject(ctx, s, "p", profile{}))

	require.NoError(t, s.Remove(ctx, "p"))
	assert.False(t, s.Contains(ctx, "p"))

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.Contains(ctx, "n"))
}
