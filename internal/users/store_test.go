package users

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (
		user_id INTEGER PRIMARY KEY,
		first_seen_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	return NewStore(db)
}

func TestRegisterIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Register(ctx, 100))
	require.NoError(t, store.Register(ctx, 100))
	require.NoError(t, store.Register(ctx, 200))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestListIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{300, 100, 200} {
		require.NoError(t, store.Register(ctx, id))
	}

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{100, 200, 300}, ids)
}
