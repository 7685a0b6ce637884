package kv

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE preferences (
  namespace  TEXT NOT NULL,
  key        TEXT NOT NULL,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (namespace, key)
);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_SetGetUpsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "EpicQuestPrefs")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSQLite_GetMissing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "EpicQuestPrefs")

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_NamespacesAreIsolated(t *testing.T) {
	db := setupDB(t)
	a := NewSQLiteRepository(db, "a")
	b := NewSQLiteRepository(db, "b")
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "k", []byte{1}))
	require.NoError(t, b.Set(ctx, "k", []byte{2}))
	require.NoError(t, b.Set(ctx, "only-b", []byte{3}))

	m, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"k": {1}}, m)

	require.NoError(t, b.Clear(ctx))
	v, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, v, "clearing b must not touch a")
}

func TestSQLite_DeleteIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "p")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_EmptyValueIsStored(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "p")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "blank", nil))
	require.NoError(t, r.Set(ctx, "empty", []byte{}))

	for _, key := range []string{"blank", "empty"} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, v, "a zero-length value is present, not missing")
		assert.Empty(t, v)
	}

	m, err := r.List(ctx)
	require.NoError(t, err)
	require.Contains(t, m, "blank")
	assert.NotNil(t, m["blank"])
}

func TestSQLite_ErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, "p")
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get preference[k]")

	assert.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set preference[k]")
	assert.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete preference[k]")
	assert.ErrorContains(t, r.Clear(ctx), "failed to clear preferences")

	_, err = r.List(ctx)
	assert.ErrorContains(t, err, "failed to list preferences")
}
