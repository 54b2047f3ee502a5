package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("product name cannot be empty")
	ErrNegativePrice = errors.New("product price cannot be negative")
	ErrAlreadySold   = errors.New("product is already sold")
)

// Product is a single listed item. A product belongs to its seller forever;
// purchaseID flips from nil to a purchase exactly once and never changes
// again (sales are final, no returns modeled).
type Product struct {
	id         uuid.UUID
	name       Name
	price      Price
	imageRef   *string
	ownerID    uuid.UUID
	purchaseID *uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func NewProduct(name Name, price Price, imageRef *string, ownerID uuid.UUID) *Product {
	return &Product{
		id:       uuid.New(),
		name:     name,
		price:    price,
		imageRef: imageRef,
		ownerID:  ownerID,
	}
}

func ReconstructProduct(
	id uuid.UUID,
	name Name,
	price Price,
	imageRef *string,
	ownerID uuid.UUID,
	purchaseID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:         id,
		name:       name,
		price:      price,
		imageRef:   imageRef,
		ownerID:    ownerID,
		purchaseID: purchaseID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// IsAvailable reports whether the product can still be claimed.
func (p *Product) IsAvailable() bool {
	return p.purchaseID == nil
}

func (p *Product) IsOwnedBy(userID uuid.UUID) bool {
	return p.ownerID == userID
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() Name             { return p.name }
func (p *Product) Price() Price           { return p.price }
func (p *Product) ImageRef() *string      { return p.imageRef }
func (p *Product) OwnerID() uuid.UUID     { return p.ownerID }
func (p *Product) PurchaseID() *uuid.UUID { return p.purchaseID }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
