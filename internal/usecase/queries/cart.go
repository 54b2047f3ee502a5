package queries

import (
	"context"

	"github.com/google/uuid"
)

// CartView resolves the session's product references against the catalog at
// render time. Prices are read live: a price change between add and checkout
// is reflected immediately, because the cart stores references, not
// snapshots.
type CartView struct {
	SessionID  string         `json:"session_id"`
	Items      []*ProductView `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

type CartQueries interface {
	// GetCart returns (nil, false, nil) when the session has no cart yet,
	// letting the caller redirect instead of rendering zero items.
	GetCart(ctx context.Context, sessionID string) (*CartView, bool, error)
}

type CartReader interface {
	Get(ctx context.Context, sessionID string) ([]uuid.UUID, bool, error)
}

type cartQueriesImpl struct {
	carts    CartReader
	products ProductViewRepo
}

func NewCartQueries(carts CartReader, products ProductViewRepo) CartQueries {
	return &cartQueriesImpl{
		carts:    carts,
		products: products,
	}
}

func (q *cartQueriesImpl) GetCart(ctx context.Context, sessionID string) (*CartView, bool, error) {
	itemIDs, found, err := q.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	view := &CartView{SessionID: sessionID, Items: []*ProductView{}}
	if len(itemIDs) == 0 {
		return view, true, nil
	}

	resolved, err := q.products.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, false, err
	}

	byID := make(map[uuid.UUID]*ProductView, len(resolved))
	for _, p := range resolved {
		byID[p.ID] = p
	}

	// Preserve cart insertion order; references to products that vanished
	// from the catalog are silently skipped.
	for _, id := range itemIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		view.Items = append(view.Items, p)
		view.TotalCents += p.PriceCents
	}
	return view, true, nil
}
