package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
)

var _ model.Backend = (*Backend)(nil)

// ErrCorruptState is returned by writes while the state file cannot be
// decoded. The file is left in place until it is repaired or removed.
var ErrCorruptState = errors.New("state file is corrupt")

// Backend keeps every key in a single JSON document on disk, mapping keys to
// the stored text the same way a browser's local storage does.
type Backend struct {
	mu     sync.Mutex
	path   string
	logger *logger.Logger
}

// NewBackend creates a Backend persisting to path. The file is created on
// first write. An undecodable file reads as empty.
func NewBackend(path string, logger *logger.Logger) *Backend {
	return &Backend{
		path:   path,
		logger: logger,
	}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load()
	if errors.Is(err, ErrCorruptState) {
		b.logger.Warn("File storage: state file unreadable, treating as empty",
			"path", b.path,
			"error", err.Error())
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	v, ok := doc[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return []byte(v), nil
}

func (b *Backend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load()
	if err != nil {
		return err
	}

	doc[key] = string(value)
	return b.save(doc)
}

func (b *Backend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}

	delete(doc, key)
	return b.save(doc)
}

func (b *Backend) load() (map[string]string, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	doc := make(map[string]string)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrCorruptState, b.path, err)
	}
	return doc, nil
}

func (b *Backend) save(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state file: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
