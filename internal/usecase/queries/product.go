package queries

import (
	"context"
	"time"

	"flea-market/internal/infra"
	"flea-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.New("product not found")

// ProductView represents read-optimized product data. PriceCents is always
// the current catalog price; nothing on the read side snapshots prices.
type ProductView struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	PriceCents int64      `json:"price_cents"`
	ImageRef   *string    `json:"image_ref,omitempty"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	PurchaseID *uuid.UUID `json:"purchase_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (v *ProductView) IsAvailable() bool {
	return v.PurchaseID == nil
}

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListAvailable(ctx context.Context) ([]*ProductView, error)
	SearchAvailable(ctx context.Context, query string) ([]*ProductView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ProductView, error)
}

type ProductViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*ProductView, error)
	FindAvailable(ctx context.Context, nameQuery string) ([]*ProductView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ProductView, error)
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*ProductView, error)
}

type productQueriesImpl struct {
	repo ProductViewRepo
}

func NewProductQueries(repo ProductViewRepo) ProductQueries {
	return &productQueriesImpl{repo: repo}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *productQueriesImpl) ListAvailable(ctx context.Context) ([]*ProductView, error) {
	return q.repo.FindAvailable(ctx, "")
}

func (q *productQueriesImpl) SearchAvailable(ctx context.Context, query string) ([]*ProductView, error) {
	return q.repo.FindAvailable(ctx, query)
}

func (q *productQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ProductView, error) {
	return q.repo.FindByOwner(ctx, ownerID)
}
