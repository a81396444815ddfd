package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
)

// Store reads and writes JSON values under string keys on top of a Backend.
type Store struct {
	backend model.Backend
	logger  *logger.Logger
}

// NewStore creates a Store over the given backend.
func NewStore(backend model.Backend, logger *logger.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

// Read decodes the value stored under key into dst.
//
// It reports false when the key was never set, holds JSON null, or when the
// stored bytes are not valid JSON for dst; malformed data is logged and
// treated as absent. dst is left untouched unless Read reports true.
func (s *Store) Read(ctx context.Context, key string, dst any) (bool, error) {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, fmt.Errorf("failed to read key %q: destination must be a non-nil pointer, got %T", key, dst)
	}

	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		s.logger.Debug("KV store: stored value is null",
			"key", key)
		return false, nil
	}

	decoded := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(raw, decoded.Interface()); err != nil {
		s.logger.Warn("KV store: ignoring stored value",
			"key", key,
			"error", fmt.Errorf("%w: %w", model.ErrMalformedStoredData, err).Error())
		return false, nil
	}

	target.Elem().Set(decoded.Elem())
	return true, nil
}

// Write encodes value as JSON and stores it under key, replacing any prior value.
func (s *Store) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}

	if err := s.backend.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.backend.Delete(ctx, key)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}
