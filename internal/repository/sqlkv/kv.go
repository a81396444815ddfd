package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtroode/shopfront/internal/model"
)

var _ model.Backend = (*KVRepository)(nil)

// KVRepository stores key-value pairs in the kv_entries table.
type KVRepository struct {
	db      *sql.DB
	dialect Dialect

	getQuery    string
	putQuery    string
	deleteQuery string
}

func NewKVRepository(conn *Connection) *KVRepository {
	return newKVRepository(conn.DB, conn.dialect)
}

func newKVRepository(db *sql.DB, dialect Dialect) *KVRepository {
	p := dialect.Placeholder
	return &KVRepository{
		db:       db,
		dialect:  dialect,
		getQuery: fmt.Sprintf(`SELECT value FROM kv_entries WHERE key = %s`, p(1)),
		putQuery: fmt.Sprintf(`INSERT INTO kv_entries (key, value, updated_at)
			VALUES (%s, %s, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, p(1), p(2)),
		deleteQuery: fmt.Sprintf(`DELETE FROM kv_entries WHERE key = %s`, p(1)),
	}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, r.getQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return []byte(value), nil
}

func (r *KVRepository) Put(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, r.putQuery, key, string(value)); err != nil {
		return fmt.Errorf("failed to put entry: %w", err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.deleteQuery, key); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
