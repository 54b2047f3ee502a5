package commands

import (
	"context"

	"flea-market/internal/domain/cart"
	"flea-market/internal/infra"
	"flea-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductUnavailable = errs.New("product is no longer available")

type CartCommands interface {
	// AddItem returns true when the product was inserted, false when it was
	// already in the cart. Both outcomes are success.
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (bool, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) error
}

type cartCommandsImpl struct {
	carts    CartStore
	products ProductRepository
}

func NewCartCommands(carts CartStore, products ProductRepository) CartCommands {
	return &cartCommandsImpl{
		carts:    carts,
		products: products,
	}
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (bool, error) {
	entity, err := c.products.FindByID(ctx, productID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.Mark(err, ErrProductNotFound)
		}
		return false, err
	}
	// Adding a sold product is rejected up front, but this is only a
	// courtesy check: the authoritative test happens at checkout.
	if !entity.IsAvailable() {
		return false, ErrProductUnavailable
	}

	current, err := c.load(ctx, sessionID)
	if err != nil {
		return false, err
	}

	added := current.Add(productID)
	if !added {
		return false, nil
	}
	if err := c.carts.Set(ctx, sessionID, current.Snapshot()); err != nil {
		return false, err
	}
	return true, nil
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) error {
	current, err := c.load(ctx, sessionID)
	if err != nil {
		return err
	}

	if !current.Remove(productID) {
		return nil
	}
	if current.IsEmpty() {
		return c.carts.Remove(ctx, sessionID)
	}
	return c.carts.Set(ctx, sessionID, current.Snapshot())
}

func (c *cartCommandsImpl) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	items, found, err := c.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return cart.New(sessionID), nil
	}
	return cart.Reconstruct(sessionID, items), nil
}
