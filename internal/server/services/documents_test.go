package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	docs map[string]map[string]any
}

func (m *memStore) Put(_ context.Context, collection, id string, data map[string]any) error {
	m.docs[collection+"/"+id] = data
	return nil
}

func (m *memStore) Get(_ context.Context, collection, id string) (map[string]any, error) {
	d, ok := m.docs[collection+"/"+id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

func (m *memStore) Close(context.Context) error { return nil }

func TestDocumentService_SaveGet(t *testing.T) {
	store := &memStore{docs: map[string]map[string]any{}}
	s := NewDocumentService(store)
	ctx := context.Background()

	_, err := s.Get(ctx, "u-1", CollectionUsers, "u-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	doc := map[string]any{"username": "alice"}
	require.NoError(t, s.Save(ctx, "u-1", CollectionUsers, "u-1", doc))

	got, err := s.Get(ctx, "u-1", CollectionUsers, "u-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDocumentService_Authorize(t *testing.T) {
	s := NewDocumentService(&memStore{docs: map[string]map[string]any{}})
	ctx := context.Background()
	doc := map[string]any{"a": 1.0}

	tests := []struct {
		name                string
		uid, collection, id string
		data                map[string]any
		want                error
	}{
		{"anonymous", "", CollectionUsers, "u-1", doc, common.ErrorUnauthorized},
		{"foreign document", "u-1", CollectionUsers, "u-2", doc, common.ErrForbidden},
		{"unknown collection", "u-1", "secrets", "u-1", doc, common.ErrValidation},
		{"path in collection", "u-1", "../users", "u-1", doc, common.ErrValidation},
		{"empty id", "u-1", CollectionUsers, "", doc, common.ErrValidation},
		{"nil data", "u-1", CollectionUsers, "u-1", nil, common.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Save(ctx, tc.uid, tc.collection, tc.id, tc.data), tc.want)
		})
	}

	_, err := s.Get(ctx, "u-1", CollectionUsers, "u-2")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestDocumentService_CustomCollections(t *testing.T) {
	s := NewDocumentService(&memStore{docs: map[string]map[string]any{}}, "decks")
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, "u-1", "decks", "u-1", map[string]any{}))
	assert.ErrorIs(t, s.Save(ctx, "u-1", CollectionUsers, "u-1", map[string]any{}), common.ErrValidation)
}
