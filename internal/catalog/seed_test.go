package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLineAndFlavor(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		flavor string
	}{
		{"Juice HARD Mango", "Juice HARD", "Mango"},
		{"Breakfast MEDIUM Ceylon", "Breakfast MEDIUM", "Ceylon"},
		{"Green V2 Jasmine", "Green V2", "Jasmine"},
		{"Green LIGHT", "Green LIGHT", DefaultFlavor},
		{"Juice hard Mango", "Juice hard", "Mango"},
		{"Juice HARD V2 Mango Mix", "Juice HARD V2", "Mango Mix"},
		{"SingleWord", "SingleWord", DefaultFlavor},
		{"Plain Mango Juice", "Plain", "Mango Juice"},
	}
	for _, tc := range cases {
		line, flavor := SplitLineAndFlavor(tc.name)
		require.Equal(t, tc.line, line, tc.name)
		require.Equal(t, tc.flavor, flavor, tc.name)
	}
}

func TestRoundPrice(t *testing.T) {
	cases := []struct{ in, want int64 }{
		{0, 0},
		{95, 95},
		{96, 95},
		{97, 95},
		{98, 100},
		{99, 100},
		{100, 100},
		{101, 100},
		{102, 100},
		{103, 105},
		{-7, 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RoundPrice(tc.in), "price=%d", tc.in)
	}
}

func TestSeederGroupsByLine(t *testing.T) {
	db := newTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()

	seeder := NewSeeder("Teas", []SeedRow{
		{Name: "Breakfast HARD Assam", Price: 447},
		{Name: "Breakfast HARD Ceylon", Price: 420},
		{Name: "Green LIGHT Sencha", Price: 391},
	})
	require.NoError(t, seeder.Seed(ctx, db))

	sections, _, err := store.ListSections(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Equal(t, "Teas", sections[0].Name)

	subs, _, err := store.ListSubsections(ctx, sections[0].ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "Breakfast HARD", subs[0].Name)
	require.Equal(t, "Green LIGHT", subs[1].Name)

	products, _, err := store.ListProducts(ctx, subs[0].ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Assam", products[0].Name)
	require.Equal(t, int64(445), products[0].Price)

	// A populated catalog is never reseeded.
	require.NoError(t, seeder.Seed(ctx, db))
	n, err := store.CountSections(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
