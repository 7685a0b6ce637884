// Package preferences is the typed key-value adapter the session and the
// user registry persist through. Scalars are stored as text; objects are
// stored as JSON inside a schema envelope so that incompatible or corrupt
// payloads are detected and replaced by the caller's default.
package preferences

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/dmitrijs2005/epicquest/internal/client/repositories/kv"
	"github.com/dmitrijs2005/epicquest/internal/logging"
)

// SchemaVersion is written into every object envelope.
const SchemaVersion = 1

// ErrDecode marks a stored value that could not be turned back into the
// requested type. It is logged, never returned from the getters.
var ErrDecode = errors.New("stored value could not be decoded")

type envelope struct {
	Schema  int             `json:"schema"`
	Payload json.RawMessage `json:"payload"`
}

type Store struct {
	repo   kv.Repository
	logger logging.Logger
}

func New(repo kv.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("module", "preferences")}
}

func (s *Store) PutString(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, []byte(value))
}

// GetString returns def when the key is absent or the backend fails.
func (s *Store) GetString(ctx context.Context, key, def string) string {
	b, ok := s.raw(ctx, key)
	if !ok {
		return def
	}
	return string(b)
}

func (s *Store) PutBool(ctx context.Context, key string, value bool) error {
	return s.repo.Set(ctx, key, []byte(strconv.FormatBool(value)))
}

func (s *Store) GetBool(ctx context.Context, key string, def bool) bool {
	b, ok := s.raw(ctx, key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(string(b))
	if err != nil {
		s.dataLoss(ctx, key, err)
		return def
	}
	return v
}

func (s *Store) PutInt(ctx context.Context, key string, value int) error {
	return s.repo.Set(ctx, key, []byte(strconv.Itoa(value)))
}

func (s *Store) GetInt(ctx context.Context, key string, def int) int {
	b, ok := s.raw(ctx, key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(string(b))
	if err != nil {
		s.dataLoss(ctx, key, err)
		return def
	}
	return v
}

// PutObject stores value as versioned JSON. A nil value removes the key.
func (s *Store) PutObject(ctx context.Context, key string, value any) error {
	if isNil(value) {
		return s.Remove(ctx, key)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	b, err := json.Marshal(envelope{Schema: SchemaVersion, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, b)
}

// GetObject decodes the object stored under key into a T. It returns def
// when the key is absent or the stored bytes do not decode; the latter is
// logged as recoverable data loss. Values written without an envelope are
// decoded as-is.
func GetObject[T any](ctx context.Context, s *Store, key string, def T) T {
	b, ok := s.raw(ctx, key)
	if !ok {
		return def
	}

	payload, err := unwrap(b)
	if err != nil {
		s.dataLoss(ctx, key, err)
		return def
	}

	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		s.dataLoss(ctx, key, err)
		return def
	}
	return v
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *Store) Contains(ctx context.Context, key string) bool {
	_, ok := s.raw(ctx, key)
	return ok
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *Store) raw(ctx context.Context, key string) ([]byte, bool) {
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Error(ctx, "preference read failed", "key", key, "error", err)
		return nil, false
	}
	if b == nil {
		return nil, false
	}
	return b, true
}

func (s *Store) dataLoss(ctx context.Context, key string, err error) {
	s.logger.Warn(ctx, "discarding unreadable stored value",
		"key", key, "error", fmt.Errorf("%w: %w", ErrDecode, err))
}

func unwrap(b []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, errors.New("empty value")
	}

	if trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
		rawSchema, hasSchema := fields["schema"]
		payload, hasPayload := fields["payload"]
		if hasSchema && hasPayload && len(fields) == 2 {
			var schema int
			if err := json.Unmarshal(rawSchema, &schema); err != nil {
				return nil, fmt.Errorf("bad schema field: %w", err)
			}
			if schema != SchemaVersion {
				return nil, fmt.Errorf("unsupported schema version %d", schema)
			}
			return payload, nil
		}
	}

	// legacy value written before envelopes existed
	return trimmed, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
