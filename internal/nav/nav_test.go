package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	actions := []Action{
		OpenCatalog{},
		OpenCatalog{Page: 7},
		OpenSection{SectionID: 3, Page: 1},
		OpenSubsection{SubsectionID: 12},
		AddToCart{ProductID: 42, SubsectionID: 12, Page: 2},
		OpenCart{},
		Checkout{},
		ClearCart{},
		About{},
		BackMain{},
	}
	for _, want := range actions {
		got, err := Parse(want.Token())
		require.NoError(t, err, want.Token())
		require.Equal(t, want, got, want.Token())
	}
}

func TestParseRejectsMalformedTokens(t *testing.T) {
	bad := []string{
		"",
		"unknown_verb",
		"open_section",       // missing args
		"open_section:abc:0", // non-numeric
		"open_section:-1:0",  // negative
		"open_catalog:1:2",   // surplus arg folds into the last one
		"open_cart:1",        // args on a bare verb
		"add:1:2",            // not enough args
	}
	for _, tok := range bad {
		_, err := Parse(tok)
		require.ErrorIs(t, err, ErrInvalidAction, tok)
	}
}

func TestSplitMatchesDecode(t *testing.T) {
	unique, payload := Split(AddToCart{ProductID: 5, SubsectionID: 2, Page: 1}.Token())
	require.Equal(t, VerbAdd, unique)
	require.Equal(t, "5:2:1", payload)

	act, err := Decode(unique, payload)
	require.NoError(t, err)
	require.Equal(t, AddToCart{ProductID: 5, SubsectionID: 2, Page: 1}, act)

	unique, payload = Split(OpenCart{}.Token())
	require.Equal(t, VerbOpenCart, unique)
	require.Empty(t, payload)
}
