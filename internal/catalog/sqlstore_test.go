package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE users (
    user_id INTEGER PRIMARY KEY,
    first_seen_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE sections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE subsections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    section_id INTEGER NOT NULL REFERENCES sections (id) ON DELETE CASCADE,
    name TEXT NOT NULL
);

CREATE TABLE products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    subsection_id INTEGER NOT NULL REFERENCES subsections (id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    price INTEGER NOT NULL CHECK (price >= 0)
);
`

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func TestCreateAndGet(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	secID, err := store.CreateSection(ctx, "Teas")
	require.NoError(t, err)
	subID, err := store.CreateSubsection(ctx, secID, "Green LIGHT")
	require.NoError(t, err)
	prodID, err := store.CreateProduct(ctx, subID, "Sencha", 392)
	require.NoError(t, err)

	sec, err := store.GetSection(ctx, secID)
	require.NoError(t, err)
	require.Equal(t, "Teas", sec.Name)

	sub, err := store.GetSubsection(ctx, subID)
	require.NoError(t, err)
	require.Equal(t, secID, sub.SectionID)

	p, err := store.GetProduct(ctx, prodID)
	require.NoError(t, err)
	require.Equal(t, subID, p.SubsectionID)
	require.Equal(t, int64(390), p.Price, "price is rounded on create")
}

func TestCreateUnderMissingParent(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	_, err := store.CreateSubsection(ctx, 42, "orphan")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.CreateProduct(ctx, 42, "orphan", 100)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	secID, err := store.CreateSection(ctx, "Teas")
	require.NoError(t, err)
	subID, err := store.CreateSubsection(ctx, secID, "Green LIGHT")
	require.NoError(t, err)
	for i := 0; i < 23; i++ {
		_, err := store.CreateProduct(ctx, subID, fmt.Sprintf("Flavor %02d", i), 100)
		require.NoError(t, err)
	}

	var all []int64
	wantSizes := []int{10, 10, 3}
	for page, want := range wantSizes {
		rows, hasNext, err := store.ListProducts(ctx, subID, page, 10)
		require.NoError(t, err)
		require.Len(t, rows, want, "page %d", page)
		require.Equal(t, page < len(wantSizes)-1, hasNext, "page %d", page)
		for _, p := range rows {
			all = append(all, p.ID)
		}
	}

	// Pages concatenate without gaps or duplicates.
	require.Len(t, all, 23)
	for i := 1; i < len(all); i++ {
		require.Greater(t, all[i], all[i-1])
	}

	n, err := store.CountProducts(ctx, subID)
	require.NoError(t, err)
	require.Equal(t, 23, n)
}

func TestListMissingParent(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	_, _, err := store.ListSubsections(ctx, 42, 0, 10)
	require.ErrorIs(t, err, ErrNotFound)

	_, _, err = store.ListProducts(ctx, 42, 0, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	secID, err := store.CreateSection(ctx, "Teas")
	require.NoError(t, err)
	subID, err := store.CreateSubsection(ctx, secID, "Green LIGHT")
	require.NoError(t, err)
	prodID, err := store.CreateProduct(ctx, subID, "Sencha", 390)
	require.NoError(t, err)

	require.NoError(t, store.DeleteSection(ctx, secID))

	_, err = store.GetSubsection(ctx, subID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetProduct(ctx, prodID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissing(t *testing.T) {
	store := NewSQLStore(newTestDB(t))
	ctx := context.Background()

	require.ErrorIs(t, store.DeleteSection(ctx, 42), ErrNotFound)
	require.ErrorIs(t, store.DeleteSubsection(ctx, 42), ErrNotFound)
	require.ErrorIs(t, store.DeleteProduct(ctx, 42), ErrNotFound)
}
