package commands

import (
	"context"
	"time"

	"flea-market/internal/domain/product"
	"flea-market/internal/domain/purchase"
	"flea-market/internal/domain/user"

	"github.com/google/uuid"
)

// UploadedFile carries multipart content into the write side without
// binding use cases to HTTP types.
type UploadedFile struct {
	Name    string
	Content []byte
}

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	// Claim conditionally binds the product to the purchase. It returns
	// false when the product was already sold; the two cases are not
	// distinguishable from the caller's side by design.
	Claim(ctx context.Context, productID, purchaseID uuid.UUID) (bool, error)
	Delete(ctx context.Context, productID, ownerID uuid.UUID) (bool, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, p *purchase.Purchase) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
}

// CartStore holds each session's ordered product-id list. A session's slot
// is only ever touched by requests carrying that session's cookie, so the
// store needs no cross-session coordination.
type CartStore interface {
	Get(ctx context.Context, sessionID string) ([]uuid.UUID, bool, error)
	Set(ctx context.Context, sessionID string, items []uuid.UUID) error
	Remove(ctx context.Context, sessionID string) error
}

type BlobStore interface {
	Save(content []byte, originalName string) (string, error)
	Delete(storedName string) error
}

type PurchaseCompletedEvent struct {
	PurchaseID uuid.UUID   `json:"purchase_id"`
	BuyerID    uuid.UUID   `json:"buyer_id"`
	ProductIDs []uuid.UUID `json:"product_ids"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type EventPublisher interface {
	PublishPurchaseCompleted(ctx context.Context, event PurchaseCompletedEvent) error
}
