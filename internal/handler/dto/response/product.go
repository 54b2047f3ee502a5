package response

import (
	"time"

	"flea-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	ImageRef   *string   `json:"image_ref,omitempty"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:         v.ID,
		Name:       v.Name,
		PriceCents: v.PriceCents,
		ImageRef:   v.ImageRef,
		OwnerID:    v.OwnerID,
		Available:  v.IsAvailable(),
		CreatedAt:  v.CreatedAt,
	}
}

func FromProductViews(views []*queries.ProductView) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromProductView(v))
	}
	return out
}

type CartResponse struct {
	SessionID  string             `json:"session_id"`
	Items      []*ProductResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

func FromCartView(v *queries.CartView) *CartResponse {
	return &CartResponse{
		SessionID:  v.SessionID,
		Items:      FromProductViews(v.Items),
		TotalCents: v.TotalCents,
	}
}
