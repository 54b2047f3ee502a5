package queries

import (
	"context"
	"time"

	"flea-market/internal/infra"
	"flea-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPurchaseNotFound = errs.New("purchase not found")
	ErrNotPurchaseOwner = errs.New("purchase belongs to another buyer")
)

type PurchaseView struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PurchaseDetailView is the invoice-shaped read model: the purchase plus
// every product bound to it and their summed price.
type PurchaseDetailView struct {
	PurchaseView
	Items      []*ProductView `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

type PurchaseQueries interface {
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*PurchaseDetailView, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*PurchaseView, error)
}

type PurchaseViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*PurchaseView, error)
}

type purchaseQueriesImpl struct {
	purchases PurchaseViewRepo
	products  ProductViewRepo
}

func NewPurchaseQueries(purchases PurchaseViewRepo, products ProductViewRepo) PurchaseQueries {
	return &purchaseQueriesImpl{
		purchases: purchases,
		products:  products,
	}
}

func (q *purchaseQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*PurchaseDetailView, error) {
	view, err := q.purchases.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	if view.BuyerID != actorID {
		return nil, ErrNotPurchaseOwner
	}

	items, err := q.products.FindByPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &PurchaseDetailView{
		PurchaseView: *view,
		Items:        items,
	}
	for _, item := range items {
		detail.TotalCents += item.PriceCents
	}
	return detail, nil
}

func (q *purchaseQueriesImpl) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*PurchaseView, error) {
	return q.purchases.FindByBuyer(ctx, buyerID)
}
