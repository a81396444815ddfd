package model

import "context"

// Backend is a raw key-value store used by the persistence adapter.
// Get returns ErrNotFound when the key was never set.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StorageBackend names a Backend implementation selectable from config.
type StorageBackend string

const (
	StorageBackendMemory   StorageBackend = "memory"
	StorageBackendFile     StorageBackend = "file"
	StorageBackendSQLite   StorageBackend = "sqlite"
	StorageBackendPostgres StorageBackend = "postgres"
	StorageBackendMinio    StorageBackend = "minio"
)
