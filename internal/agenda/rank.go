package agenda

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/vendorstack/agendaq/internal/models"
)

// DefaultLimit caps a ranked agenda when the caller passes no limit.
const DefaultLimit = 20

// Assembler merges open items from the source adapters into one ranked list.
// It is a pure read over store state at call time: no locks, no side effects.
type Assembler struct {
	sources []Source
}

// NewAssembler builds an assembler over the three store-backed adapters.
func NewAssembler(store Store) *Assembler {
	return &Assembler{sources: Sources(store)}
}

// NewAssemblerFromSources builds an assembler over explicit sources,
// preserving their order for tie-breaking.
func NewAssemblerFromSources(sources ...Source) *Assembler {
	return &Assembler{sources: sources}
}

// Rank returns at most limit open items for the vendor, strictly descending
// by score, ranks 1..len. Ties keep stable input order (adapter order, then
// original sequence); that order carries no meaning beyond stability. An
// empty result is a valid outcome, not an error.
func (a *Assembler) Rank(ctx context.Context, vendorID string, limit int) ([]models.RankedItem, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	now := time.Now()

	var ranked []models.RankedItem
	for _, source := range a.sources {
		items, err := source.OpenItems(ctx, vendorID, now)
		if err != nil {
			return nil, fmt.Errorf("fetch open items: %w", err)
		}
		for _, item := range items {
			if item.Status != models.StatusOpen {
				continue
			}
			ranked = append(ranked, models.RankedItem{
				WorkItem: item,
				Score:    Score(item),
			})
		}
	}

	slices.SortStableFunc(ranked, func(x, y models.RankedItem) int {
		switch {
		case x.Score > y.Score:
			return -1
		case x.Score < y.Score:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}
