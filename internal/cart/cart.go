// Package cart implements the per-session accumulation of selected
// products and the rendering of the cart summary against live catalog
// prices.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/catalog"
	"log/slog"
)

// EmptyText is the fixed sentinel shown for a cart with no items.
const EmptyText = "Your cart is empty."

// Cart maps a product id (serialized as string) to a quantity >= 1.
type Cart map[string]int

// New returns an empty cart.
func New() Cart {
	return make(Cart)
}

// Add puts one more unit of the product into the cart.
func (c Cart) Add(productID int64) {
	c[strconv.FormatInt(productID, 10)]++
}

// Clear removes every entry.
func (c Cart) Clear() {
	for k := range c {
		delete(c, k)
	}
}

// Empty reports whether the cart holds no items.
func (c Cart) Empty() bool {
	return len(c) == 0
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Summary renders the cart lines and computes the total. Entries whose
// product no longer exists in the catalog are skipped: they contribute
// nothing to the total and no line to the text. An empty cart renders
// the EmptyText sentinel with no total line.
func Summary(ctx context.Context, store catalog.ProductGetter, c Cart, currency string) (string, int64, error) {
	if c.Empty() {
		return EmptyText, 0, nil
	}

	// Stable ordering by numeric product id.
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.ParseInt(keys[i], 10, 64)
		b, _ := strconv.ParseInt(keys[j], 10, 64)
		return a < b
	})

	var (
		b     strings.Builder
		total int64
		shown int
	)
	b.WriteString("Your cart:\n")
	for _, key := range keys {
		qty := c[key]
		if qty <= 0 {
			continue
		}
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		product, err := store.GetProduct(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			// Deleted mid-session; drop the line silently.
			if logger.SVCCart != nil {
				logger.SVCCart.DebugContext(ctx, "stale cart entry",
					slog.String("event", "summary.skip"),
					slog.Int64("product_id", id),
				)
			}
			continue
		}
		if err != nil {
			return "", 0, fmt.Errorf("cart: summary: %w", err)
		}
		subtotal := product.Price * int64(qty)
		total += subtotal
		shown++
		fmt.Fprintf(&b, "• %s × %d = %d %s\n", product.Name, qty, subtotal, currency)
	}

	if shown == 0 {
		return EmptyText, 0, nil
	}
	fmt.Fprintf(&b, "\nTotal: %d %s", total, currency)
	return b.String(), total, nil
}
