package request

import (
	"github.com/google/uuid"
)

// CreateProductRequest arrives as multipart form data so the listing image
// can ride along in the same request.
type CreateProductRequest struct {
	Name       string `form:"name" binding:"required"`
	PriceCents int64  `form:"price_cents" binding:"required,min=0"`
}

type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}
