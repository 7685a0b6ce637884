package documents

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalize(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	in := bson.M{
		"username": "alice",
		"count":    int32(3),
		"big":      int64(7),
		"at":       primitive.NewDateTimeFromTime(ts),
		"cards":    bson.A{"70", bson.D{{Key: "id", Value: "644"}}},
	}
	want := map[string]any{
		"username": "alice",
		"count":    float64(3),
		"big":      float64(7),
		"at":       "2025-01-02T03:04:05Z",
		"cards":    []any{"70", map[string]any{"id": "644"}},
	}
	if diff := cmp.Diff(want, normalize(in)); diff != "" {
		t.Errorf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("EPICQUEST_TEST_MONGO")
	if uri == "" {
		t.Skip("EPICQUEST_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, uri, "epicquest_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })

	doc := map[string]any{"username": "alice", "cards": []any{"70"}}
	require.NoError(t, s.Put(ctx, "users", "u-1", doc))
	got, err := s.Get(ctx, "users", "u-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = s.Get(ctx, "users", "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
