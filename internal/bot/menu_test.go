package bot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/internal/nav"
)

func TestPagerRow(t *testing.T) {
	to := func(p int) nav.Action { return nav.OpenCatalog{Page: p} }

	require.Nil(t, pagerRow(0, 10, to), "single page: no controls")

	row := pagerRow(0, 25, to)
	require.Len(t, row, 1)
	require.Equal(t, "1", row[0].Data, "first page links forward only")

	row = pagerRow(1, 25, to)
	require.Len(t, row, 2)
	require.Equal(t, "0", row[0].Data)
	require.Equal(t, "2", row[1].Data)

	row = pagerRow(2, 25, to)
	require.Len(t, row, 1)
	require.Equal(t, "1", row[0].Data, "last page links back only")
}

func TestActionBtnSplitsToken(t *testing.T) {
	btn := actionBtn("Assam — 450 ₽", nav.AddToCart{ProductID: 5, SubsectionID: 2, Page: 1})
	require.Equal(t, nav.VerbAdd, btn.Unique)
	require.Equal(t, "5:2:1", btn.Data)

	btn = actionBtn("🧺 Cart", nav.OpenCart{})
	require.Equal(t, nav.VerbOpenCart, btn.Unique)
	require.Empty(t, btn.Data)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 40))
	require.Equal(t, "тёплый…", truncate("тёплый зелёный чай", 7))
}

func TestSplitParts(t *testing.T) {
	require.Equal(t, []string{"3", "Green LIGHT"}, splitParts(" 3 | Green LIGHT ", 2))
	require.Equal(t, []string{"3", "Sencha", "Premium | 390"},
		splitParts("3 | Sencha | Premium | 390", 3))

	require.Nil(t, splitParts("3", 2), "too few fields")
	require.Nil(t, splitParts("3 | ", 2), "empty field")
}

func TestParseID(t *testing.T) {
	id, ok := parseID(" 42 ")
	require.True(t, ok)
	require.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "-1", "0", "1 2"} {
		_, ok := parseID(bad)
		require.False(t, ok, bad)
	}
}
