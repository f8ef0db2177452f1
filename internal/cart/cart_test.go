package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/catalog"
)

type stubGetter map[int64]catalog.Product

func (s stubGetter) GetProduct(_ context.Context, id int64) (catalog.Product, error) {
	p, ok := s[id]
	if !ok {
		return catalog.Product{}, fmt.Errorf("product %d: %w", id, catalog.ErrNotFound)
	}
	return p, nil
}

func TestAddAccumulates(t *testing.T) {
	c := New()
	require.True(t, c.Empty())

	c.Add(5)
	c.Add(5)
	c.Add(7)

	require.False(t, c.Empty())
	require.Equal(t, 2, c["5"])
	require.Equal(t, 1, c["7"])

	c.Clear()
	require.True(t, c.Empty())
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	c.Add(1)

	snap := c.Clone()
	snap.Add(1)
	snap.Add(2)

	require.Equal(t, 1, c["1"])
	require.Zero(t, c["2"])
}

func TestSummary(t *testing.T) {
	store := stubGetter{
		1: {ID: 1, Name: "Assam", Price: 450},
		2: {ID: 2, Name: "Sencha", Price: 390},
	}
	c := New()
	c.Add(2)
	c.Add(1)
	c.Add(1)

	text, total, err := Summary(context.Background(), store, c, "₽")
	require.NoError(t, err)
	require.Equal(t, int64(1290), total)
	require.Equal(t,
		"Your cart:\n• Assam × 2 = 900 ₽\n• Sencha × 1 = 390 ₽\n\nTotal: 1290 ₽",
		text)
}

func TestSummarySkipsStaleEntries(t *testing.T) {
	store := stubGetter{1: {ID: 1, Name: "Assam", Price: 450}}
	c := New()
	c.Add(1)
	c.Add(99) // deleted from the catalog mid-session

	text, total, err := Summary(context.Background(), store, c, "₽")
	require.NoError(t, err)
	require.Equal(t, int64(450), total)
	require.NotContains(t, text, "99")
	require.Contains(t, text, "Assam × 1 = 450 ₽")
}

func TestSummaryEmpty(t *testing.T) {
	text, total, err := Summary(context.Background(), stubGetter{}, New(), "₽")
	require.NoError(t, err)
	require.Zero(t, total)
	require.Equal(t, EmptyText, text)
}

func TestSummaryAllStale(t *testing.T) {
	c := New()
	c.Add(99)

	text, total, err := Summary(context.Background(), stubGetter{}, c, "₽")
	require.NoError(t, err)
	require.Zero(t, total)
	require.Equal(t, EmptyText, text)
}
