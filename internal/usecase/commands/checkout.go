package commands

import (
	"context"
	"log/slog"

	"flea-market/internal/domain/purchase"
	"flea-market/internal/pkg/clock"
	"flea-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart          = errs.New("cart is empty")
	ErrPurchaseCreation   = errs.New("failed to create purchase")
	ErrCatalogUnavailable = errs.New("catalog unreachable during checkout")
)

// CheckoutResult partitions the cart snapshot into products this checkout
// won and products it did not get. Rejections are per-item outcomes, not
// failures: the checkout as a whole succeeds for whatever it could claim.
// When a catalog error aborts the claim loop, the item whose outcome is
// unknown and every untried item after it also land in Rejected; callers
// cannot tell a lost race apart from an abort, only that the item was not
// won by this purchase.
type CheckoutResult struct {
	Purchase *purchase.Purchase
	Claimed  []uuid.UUID
	Rejected []uuid.UUID
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, sessionID string, buyerID uuid.UUID) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	carts     CartStore
	products  ProductRepository
	purchases PurchaseRepository
	events    EventPublisher
	clock     clock.Clock
}

func NewCheckoutCommands(
	carts CartStore,
	products ProductRepository,
	purchases PurchaseRepository,
	events EventPublisher,
	clk clock.Clock,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		carts:     carts,
		products:  products,
		purchases: purchases,
		events:    events,
		clock:     clk,
	}
}

// Checkout turns the session's cart into a durable purchase.
//
// The cart is read once up front; mutations to it during this call are
// invisible here. The purchase record is created unconditionally, then each
// snapshot item is claimed with a single conditional write against the
// catalog. Claims are independent: losing one product does not affect the
// others, and committed claims are never rolled back. If the catalog becomes
// unreachable mid-loop the partial result is returned alongside the error so
// the caller can see what was already bound.
func (u *checkoutCommandsImpl) Checkout(ctx context.Context, sessionID string, buyerID uuid.UUID) (*CheckoutResult, error) {
	itemIDs, found, err := u.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read cart")
	}
	if !found || len(itemIDs) == 0 {
		return nil, ErrEmptyCart
	}

	newPurchase, err := purchase.NewPurchase(buyerID, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrPurchaseCreation)
	}
	if err := u.purchases.Create(ctx, newPurchase); err != nil {
		return nil, errs.Mark(err, ErrPurchaseCreation)
	}

	result := &CheckoutResult{
		Purchase: newPurchase,
		Claimed:  []uuid.UUID{},
		Rejected: []uuid.UUID{},
	}

	for i, productID := range itemIDs {
		claimed, claimErr := u.products.Claim(ctx, productID, newPurchase.ID())
		if claimErr != nil {
			// Unknown outcome for this item; prior claims stay committed.
			result.Rejected = append(result.Rejected, itemIDs[i:]...)
			u.clearCart(ctx, sessionID)
			return result, errs.Mark(claimErr, ErrCatalogUnavailable)
		}
		if claimed {
			result.Claimed = append(result.Claimed, productID)
		} else {
			result.Rejected = append(result.Rejected, productID)
		}
	}

	u.clearCart(ctx, sessionID)
	u.publishCompleted(ctx, result)
	return result, nil
}

// clearCart empties the session slot regardless of claim outcomes. A failure
// here is logged and swallowed: the purchase already happened, and a stale
// cart only costs the user a manual removal.
func (u *checkoutCommandsImpl) clearCart(ctx context.Context, sessionID string) {
	if err := u.carts.Remove(ctx, sessionID); err != nil {
		slog.Warn("failed to clear cart after checkout", "session_id", sessionID, "error", err.Error())
	}
}

func (u *checkoutCommandsImpl) publishCompleted(ctx context.Context, result *CheckoutResult) {
	if len(result.Claimed) == 0 {
		return
	}
	event := PurchaseCompletedEvent{
		PurchaseID: result.Purchase.ID(),
		BuyerID:    result.Purchase.BuyerID(),
		ProductIDs: result.Claimed,
		OccurredAt: result.Purchase.CreatedAt(),
	}
	if err := u.events.PublishPurchaseCompleted(ctx, event); err != nil {
		slog.Warn("failed to publish purchase completed event", "purchase_id", event.PurchaseID, "error", err.Error())
	}
}
