package purchase

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingBuyer = errors.New("purchase requires a buyer")

// Purchase is the immutable record of one checkout. It is created before any
// product claim is attempted, so a purchase that lost every race legitimately
// ends up bound to zero products. Purchases are never updated or deleted.
type Purchase struct {
	id        uuid.UUID
	buyerID   uuid.UUID
	createdAt time.Time
}

func NewPurchase(buyerID uuid.UUID, now time.Time) (*Purchase, error) {
	if buyerID == uuid.Nil {
		return nil, ErrMissingBuyer
	}
	return &Purchase{
		id:        uuid.New(),
		buyerID:   buyerID,
		createdAt: now,
	}, nil
}

func ReconstructPurchase(id, buyerID uuid.UUID, createdAt time.Time) *Purchase {
	return &Purchase{
		id:        id,
		buyerID:   buyerID,
		createdAt: createdAt,
	}
}

func (p *Purchase) ID() uuid.UUID        { return p.id }
func (p *Purchase) BuyerID() uuid.UUID   { return p.buyerID }
func (p *Purchase) CreatedAt() time.Time { return p.createdAt }
