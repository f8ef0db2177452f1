package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/core/bootstrap"
	"github.com/m3rciful/shopbot/core/logger"
	"log/slog"
)

// markerTokens are strength/tier tags used to split a raw price-list
// name into a product line and a flavor.
var markerTokens = map[string]struct{}{
	"HARD":   {},
	"MEDIUM": {},
	"LIGHT":  {},
	"V2":     {},
}

// DefaultFlavor labels products whose raw name carries no flavor part.
const DefaultFlavor = "Classic"

// SplitLineAndFlavor splits a raw product name into (line, flavor).
// When one or more marker tokens are present, the line is everything up
// to and including the last marker; otherwise the line is the first
// token. An empty flavor falls back to DefaultFlavor.
func SplitLineAndFlavor(name string) (string, string) {
	tokens := strings.Fields(name)

	lastMarker := -1
	for i, tok := range tokens {
		if _, ok := markerTokens[strings.ToUpper(tok)]; ok {
			lastMarker = i
		}
	}

	var line, flavor string
	if lastMarker >= 0 {
		line = strings.Join(tokens[:lastMarker+1], " ")
		flavor = strings.Join(tokens[lastMarker+1:], " ")
	} else if len(tokens) > 0 {
		line = tokens[0]
		flavor = strings.Join(tokens[1:], " ")
	}

	if line == "" {
		line = strings.TrimSpace(name)
	}
	if flavor == "" {
		flavor = DefaultFlavor
	}
	return line, flavor
}

// RoundPrice rounds a non-negative price to the nearest multiple of 5.
// Remainders of 3 and 4 round up, everything else rounds down (half-up;
// an exact half is impossible on integer input).
func RoundPrice(price int64) int64 {
	if price < 0 {
		return 0
	}
	rem := price % 5
	if rem >= 3 {
		return price + 5 - rem
	}
	return price - rem
}

// SeedRow is one raw price-list entry consumed at seed time.
type SeedRow struct {
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
}

// NewSeeder builds a bootstrap seeder that populates an empty catalog:
// one umbrella section holding the rows grouped into line subsections
// by SplitLineAndFlavor. A non-empty catalog is left untouched.
func NewSeeder(sectionName string, rows []SeedRow) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
		if sectionName == "" || len(rows) == 0 {
			return nil
		}
		store := NewSQLStore(db)

		existing, err := store.CountSections(ctx)
		if err != nil {
			return fmt.Errorf("seed: count sections: %w", err)
		}
		if existing > 0 {
			if logger.SEED != nil {
				logger.SEED.Debug("seed skipped",
					slog.String("event", "skip"),
					slog.Int("count", existing),
				)
			}
			return nil
		}

		sectionID, err := store.CreateSection(ctx, sectionName)
		if err != nil {
			return fmt.Errorf("seed: create section: %w", err)
		}

		// Group rows by line, preserving first-appearance order.
		type flavorRow struct {
			name  string
			price int64
		}
		var lines []string
		grouped := make(map[string][]flavorRow)
		for _, row := range rows {
			line, flavor := SplitLineAndFlavor(row.Name)
			if _, seen := grouped[line]; !seen {
				lines = append(lines, line)
			}
			grouped[line] = append(grouped[line], flavorRow{name: flavor, price: row.Price})
		}

		products := 0
		for _, line := range lines {
			subID, err := store.CreateSubsection(ctx, sectionID, line)
			if err != nil {
				return fmt.Errorf("seed: create subsection %q: %w", line, err)
			}
			for _, fl := range grouped[line] {
				if _, err := store.CreateProduct(ctx, subID, fl.name, fl.price); err != nil {
					return fmt.Errorf("seed: create product %q: %w", fl.name, err)
				}
				products++
			}
		}

		if logger.SEED != nil {
			logger.SEED.Info("catalog seeded",
				slog.String("event", "summary"),
				slog.Int64("section_id", sectionID),
				slog.Int("count", products),
			)
		}
		return nil
	})
}
