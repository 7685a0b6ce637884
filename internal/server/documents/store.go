// Package documents persists the JSON documents clients back up. Two
// backends are provided: S3 (or any S3-compatible service such as MinIO)
// and MongoDB.
package documents

import (
	"context"
	"fmt"
	"strings"
)

// Store keeps one document per (collection, id). Get returns
// common.ErrorNotFound for missing documents.
type Store interface {
	Put(ctx context.Context, collection, id string, data map[string]any) error
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	Close(ctx context.Context) error
}

// ValidateName rejects empty names and names that would escape the key
// layout.
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s is empty", kind)
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("%s %q contains illegal characters", kind, name)
	}
	if len(name) > 128 {
		return fmt.Errorf("%s is longer than 128 characters", kind)
	}
	return nil
}
