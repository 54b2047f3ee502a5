package response

import (
	"time"

	"flea-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type PurchaseResponse struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PurchaseDetailResponse struct {
	PurchaseResponse
	Items      []*ProductResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

// CheckoutResponse reports the per-product outcome of a checkout. Rejected
// ids are products that were sold to someone else before this checkout
// could claim them.
type CheckoutResponse struct {
	Purchase *PurchaseResponse `json:"purchase"`
	Claimed  []uuid.UUID       `json:"claimed"`
	Rejected []uuid.UUID       `json:"rejected"`
}

func FromPurchaseView(v *queries.PurchaseView) *PurchaseResponse {
	return &PurchaseResponse{
		ID:        v.ID,
		BuyerID:   v.BuyerID,
		CreatedAt: v.CreatedAt,
	}
}

func FromPurchaseViews(views []*queries.PurchaseView) []*PurchaseResponse {
	out := make([]*PurchaseResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromPurchaseView(v))
	}
	return out
}

func FromPurchaseDetailView(v *queries.PurchaseDetailView) *PurchaseDetailResponse {
	return &PurchaseDetailResponse{
		PurchaseResponse: PurchaseResponse{
			ID:        v.ID,
			BuyerID:   v.BuyerID,
			CreatedAt: v.CreatedAt,
		},
		Items:      FromProductViews(v.Items),
		TotalCents: v.TotalCents,
	}
}
