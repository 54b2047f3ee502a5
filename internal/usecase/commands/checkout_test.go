//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flea-market/internal/domain/product"
	"flea-market/internal/domain/purchase"
	"flea-market/internal/infra/sessionstore"
	"flea-market/internal/pkg/clock"
	"flea-market/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog emulates the conditional claim with a mutex-guarded
// test-and-set, so concurrent checkouts in tests race exactly the way they
// do against the real catalog.
type fakeCatalog struct {
	mu     sync.Mutex
	owners map[uuid.UUID]*uuid.UUID

	failClaims bool
	failAfter  int
	claims     int
}

func newFakeCatalog(productIDs ...uuid.UUID) *fakeCatalog {
	owners := make(map[uuid.UUID]*uuid.UUID, len(productIDs))
	for _, id := range productIDs {
		owners[id] = nil
	}
	return &fakeCatalog{owners: owners, failAfter: -1}
}

func (f *fakeCatalog) Claim(_ context.Context, productID, purchaseID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failClaims && f.failAfter >= 0 && f.claims >= f.failAfter {
		return false, errors.New("connection refused")
	}
	f.claims++

	current, exists := f.owners[productID]
	if !exists || current != nil {
		return false, nil
	}
	owner := purchaseID
	f.owners[productID] = &owner
	return true, nil
}

func (f *fakeCatalog) ownerOf(productID uuid.UUID) *uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owners[productID]
}

func (f *fakeCatalog) Create(context.Context, *product.Product) error { return nil }

func (f *fakeCatalog) FindByID(context.Context, uuid.UUID) (*product.Product, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) Delete(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, errors.New("not implemented")
}

type fakePurchases struct {
	mu      sync.Mutex
	created []*purchase.Purchase
	failing bool
}

func (f *fakePurchases) Create(_ context.Context, p *purchase.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("insert failed")
	}
	f.created = append(f.created, p)
	return nil
}

type fakeEvents struct {
	mu        sync.Mutex
	published []commands.PurchaseCompletedEvent
}

func (f *fakeEvents) PublishPurchaseCompleted(_ context.Context, e commands.PurchaseCompletedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, e)
	return nil
}

type checkoutFixture struct {
	carts     *sessionstore.MemoryCartStore
	catalog   *fakeCatalog
	purchases *fakePurchases
	events    *fakeEvents
	uc        commands.CheckoutCommands
}

func newCheckoutFixture(t *testing.T, productIDs ...uuid.UUID) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		carts:     sessionstore.NewMemoryCartStore(),
		catalog:   newFakeCatalog(productIDs...),
		purchases: &fakePurchases{},
		events:    &fakeEvents{},
	}
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	f.uc = commands.NewCheckoutCommands(f.carts, f.catalog, f.purchases, f.events, clk)
	return f
}

func (f *checkoutFixture) fillCart(t *testing.T, sessionID string, items ...uuid.UUID) {
	t.Helper()
	require.NoError(t, f.carts.Set(context.Background(), sessionID, items))
}

func TestCheckout_ClaimsEveryAvailableItem(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	buyerID := uuid.New()

	f := newCheckoutFixture(t, productA, productB)
	f.fillCart(t, "session-1", productA, productB)

	result, err := f.uc.Checkout(context.Background(), "session-1", buyerID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{productA, productB}, result.Claimed)
	assert.Empty(t, result.Rejected)
	assert.Equal(t, buyerID, result.Purchase.BuyerID())

	require.NotNil(t, f.catalog.ownerOf(productA))
	assert.Equal(t, result.Purchase.ID(), *f.catalog.ownerOf(productA))
	assert.Equal(t, result.Purchase.ID(), *f.catalog.ownerOf(productB))
}

func TestCheckout_EmptyCartIsRejectedBeforeAnyMutation(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Checkout(context.Background(), "session-1", uuid.New())
	require.ErrorIs(t, err, commands.ErrEmptyCart)
	assert.Empty(t, f.purchases.created)

	f.fillCart(t, "session-2", []uuid.UUID{}...)
	_, err = f.uc.Checkout(context.Background(), "session-2", uuid.New())
	require.ErrorIs(t, err, commands.ErrEmptyCart)
	assert.Empty(t, f.purchases.created)
}

func TestCheckout_PreSoldItemIsRejectedNotFatal(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	buyerID := uuid.New()

	f := newCheckoutFixture(t, productA, productB)
	f.fillCart(t, "session-1", productA, productB)

	// Someone else bought B before this checkout begins.
	otherPurchase := uuid.New()
	claimed, err := f.catalog.Claim(context.Background(), productB, otherPurchase)
	require.NoError(t, err)
	require.True(t, claimed)

	result, err := f.uc.Checkout(context.Background(), "session-1", buyerID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{productA}, result.Claimed)
	assert.Equal(t, []uuid.UUID{productB}, result.Rejected)
	assert.Equal(t, otherPurchase, *f.catalog.ownerOf(productB), "losing a claim must not overwrite the winner")
}

func TestCheckout_ClearsCartRegardlessOfOutcome(t *testing.T) {
	productA := uuid.New()
	f := newCheckoutFixture(t, productA)

	// All items rejected: A already sold.
	claimed, err := f.catalog.Claim(context.Background(), productA, uuid.New())
	require.NoError(t, err)
	require.True(t, claimed)

	f.fillCart(t, "session-1", productA)
	result, err := f.uc.Checkout(context.Background(), "session-1", uuid.New())
	require.NoError(t, err)
	assert.Empty(t, result.Claimed)

	_, found, err := f.carts.Get(context.Background(), "session-1")
	require.NoError(t, err)
	assert.False(t, found, "cart must be gone after checkout even when every claim lost")
}

func TestCheckout_CatalogFailureMidLoopKeepsCommittedClaims(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	productC := uuid.New()
	buyerID := uuid.New()

	f := newCheckoutFixture(t, productA, productB, productC)
	f.fillCart(t, "session-1", productA, productB, productC)

	// First claim succeeds, then the catalog goes away.
	f.catalog.failClaims = true
	f.catalog.failAfter = 1

	result, err := f.uc.Checkout(context.Background(), "session-1", buyerID)
	require.ErrorIs(t, err, commands.ErrCatalogUnavailable)
	require.NotNil(t, result, "partial result must accompany the error")

	assert.Equal(t, []uuid.UUID{productA}, result.Claimed)
	assert.Equal(t, []uuid.UUID{productB, productC}, result.Rejected)
	assert.Equal(t, result.Purchase.ID(), *f.catalog.ownerOf(productA), "committed claims stay committed")
	assert.Nil(t, f.catalog.ownerOf(productB))

	_, found, getErr := f.carts.Get(context.Background(), "session-1")
	require.NoError(t, getErr)
	assert.False(t, found)
}

func TestCheckout_PurchaseCreationFailureAbortsBeforeClaims(t *testing.T) {
	productA := uuid.New()
	f := newCheckoutFixture(t, productA)
	f.fillCart(t, "session-1", productA)
	f.purchases.failing = true

	result, err := f.uc.Checkout(context.Background(), "session-1", uuid.New())
	require.ErrorIs(t, err, commands.ErrPurchaseCreation)
	assert.Nil(t, result)
	assert.Nil(t, f.catalog.ownerOf(productA), "no claim may happen without a purchase")
}

func TestCheckout_PublishesEventOnlyWhenSomethingWasClaimed(t *testing.T) {
	productA := uuid.New()
	f := newCheckoutFixture(t, productA)

	claimed, err := f.catalog.Claim(context.Background(), productA, uuid.New())
	require.NoError(t, err)
	require.True(t, claimed)

	f.fillCart(t, "session-1", productA)
	_, err = f.uc.Checkout(context.Background(), "session-1", uuid.New())
	require.NoError(t, err)
	assert.Empty(t, f.events.published, "an all-rejected checkout has nothing to announce")

	productB := uuid.New()
	f2 := newCheckoutFixture(t, productB)
	f2.fillCart(t, "session-2", productB)
	result, err := f2.uc.Checkout(context.Background(), "session-2", uuid.New())
	require.NoError(t, err)

	require.Len(t, f2.events.published, 1)
	assert.Equal(t, result.Purchase.ID(), f2.events.published[0].PurchaseID)
	assert.Equal(t, []uuid.UUID{productB}, f2.events.published[0].ProductIDs)
}

// Exactly one of N concurrent checkouts whose carts all reference the same
// product may end up with it in Claimed; everyone else must see it Rejected.
func TestCheckout_ConcurrentCheckoutsHaveExactlyOneWinner(t *testing.T) {
	const sessions = 64

	contested := uuid.New()
	f := newCheckoutFixture(t, contested)

	sessionIDs := make([]string, sessions)
	for i := range sessionIDs {
		sessionIDs[i] = uuid.NewString()
		f.fillCart(t, sessionIDs[i], contested)
	}

	results := make([]*commands.CheckoutResult, sessions)
	errs := make([]error, sessions)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range sessionIDs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = f.uc.Checkout(context.Background(), sessionIDs[i], uuid.New())
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for i := range results {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		if len(results[i].Claimed) == 1 {
			winners++
			assert.Equal(t, contested, results[i].Claimed[0])
			assert.Equal(t, results[i].Purchase.ID(), *f.catalog.ownerOf(contested))
		} else {
			assert.Equal(t, []uuid.UUID{contested}, results[i].Rejected)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, f.purchases.created, sessions, "every checkout creates its purchase record, win or lose")
}

// Unrelated checkouts must not contend: each buyer claims their own product
// and every one of them wins.
func TestCheckout_DisjointCartsAllSucceedConcurrently(t *testing.T) {
	const sessions = 32

	productIDs := make([]uuid.UUID, sessions)
	for i := range productIDs {
		productIDs[i] = uuid.New()
	}
	f := newCheckoutFixture(t, productIDs...)

	sessionIDs := make([]string, sessions)
	for i := range sessionIDs {
		sessionIDs[i] = uuid.NewString()
		f.fillCart(t, sessionIDs[i], productIDs[i])
	}

	var wg sync.WaitGroup
	results := make([]*commands.CheckoutResult, sessions)
	errs := make([]error, sessions)
	for i := range sessionIDs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.uc.Checkout(context.Background(), sessionIDs[i], uuid.New())
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, []uuid.UUID{productIDs[i]}, results[i].Claimed)
		assert.Empty(t, results[i].Rejected)
	}
}
