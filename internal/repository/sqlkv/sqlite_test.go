package sqlkv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/testutil"
)

func TestKVRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	conn, err := NewConnection(ctx, SQLite, path, testutil.MakeNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := NewKVRepository(conn)

	_, err = repo.Get(ctx, "users")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "users", []byte(`[{"email":"a@b.c"}]`)))
	require.NoError(t, repo.Put(ctx, "users", []byte(`[{"email":"d@e.f"}]`)))

	got, err := repo.Get(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"email":"d@e.f"}]`, string(got))

	require.NoError(t, repo.Delete(ctx, "users"))
	_, err = repo.Get(ctx, "users")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestNewConnection_SQLiteMigrationIsRepeatable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := NewConnection(ctx, SQLite, path, testutil.MakeNoopLogger())
	require.NoError(t, err)
	require.NoError(t, NewKVRepository(first).Put(ctx, "currentUser", []byte(`{}`)))
	require.NoError(t, first.Close())

	second, err := NewConnection(ctx, SQLite, path, testutil.MakeNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := NewKVRepository(second).Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}
