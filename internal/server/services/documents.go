package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/server/documents"
)

// CollectionUsers holds one player document per account.
const CollectionUsers = "users"

// DocumentService lets an account read and write its own documents.
type DocumentService struct {
	store       documents.Store
	collections map[string]struct{}
}

// NewDocumentService accepts documents in the listed collections, or in
// CollectionUsers when none are given.
func NewDocumentService(store documents.Store, collections ...string) *DocumentService {
	if len(collections) == 0 {
		collections = []string{CollectionUsers}
	}
	allowed := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		allowed[c] = struct{}{}
	}
	return &DocumentService{store: store, collections: allowed}
}

func (s *DocumentService) authorize(uid, collection, id string) error {
	if uid == "" {
		return common.ErrorUnauthorized
	}
	if err := documents.ValidateName("collection", collection); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if _, ok := s.collections[collection]; !ok {
		return fmt.Errorf("%w: unknown collection %q", common.ErrValidation, collection)
	}
	if err := documents.ValidateName("document id", id); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if id != uid {
		return common.ErrForbidden
	}
	return nil
}

// Save replaces the document (collection, id) owned by uid.
func (s *DocumentService) Save(ctx context.Context, uid, collection, id string, data map[string]any) error {
	if err := s.authorize(uid, collection, id); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: document data is empty", common.ErrValidation)
	}
	return s.store.Put(ctx, collection, id, data)
}

// Get returns common.ErrorNotFound when nothing was saved yet.
func (s *DocumentService) Get(ctx context.Context, uid, collection, id string) (map[string]any, error) {
	if err := s.authorize(uid, collection, id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, collection, id)
}
