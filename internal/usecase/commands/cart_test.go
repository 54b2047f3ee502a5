//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"flea-market/internal/domain/product"
	"flea-market/internal/infra"
	"flea-market/internal/infra/sessionstore"
	"flea-market/internal/pkg/clock"
	"flea-market/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProductRepo serves FindByID from a fixed set; Claim delegates to a
// per-product conditional write like the real catalog.
type stubProductRepo struct {
	entities map[uuid.UUID]*product.Product
	owners   map[uuid.UUID]*uuid.UUID
}

func newStubProductRepo(entities ...*product.Product) *stubProductRepo {
	s := &stubProductRepo{
		entities: make(map[uuid.UUID]*product.Product),
		owners:   make(map[uuid.UUID]*uuid.UUID),
	}
	for _, e := range entities {
		s.entities[e.ID()] = e
		s.owners[e.ID()] = e.PurchaseID()
	}
	return s
}

func (s *stubProductRepo) Create(_ context.Context, p *product.Product) error {
	s.entities[p.ID()] = p
	s.owners[p.ID()] = nil
	return nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*product.Product, error) {
	e, ok := s.entities[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return e, nil
}

func (s *stubProductRepo) Claim(_ context.Context, productID, purchaseID uuid.UUID) (bool, error) {
	current, exists := s.owners[productID]
	if !exists || current != nil {
		return false, nil
	}
	owner := purchaseID
	s.owners[productID] = &owner
	return true, nil
}

func (s *stubProductRepo) Delete(_ context.Context, productID, _ uuid.UUID) (bool, error) {
	delete(s.entities, productID)
	delete(s.owners, productID)
	return true, nil
}

func mustProduct(t *testing.T, name string, priceCents int64) *product.Product {
	t.Helper()
	n, err := product.NewName(name)
	require.NoError(t, err)
	p, err := product.NewPrice(priceCents)
	require.NoError(t, err)
	return product.NewProduct(n, p, nil, uuid.New())
}

func soldProduct(t *testing.T, name string) *product.Product {
	t.Helper()
	n, err := product.NewName(name)
	require.NoError(t, err)
	p, err := product.NewPrice(1000)
	require.NoError(t, err)
	buyerPurchase := uuid.New()
	now := time.Now()
	return product.ReconstructProduct(uuid.New(), n, p, nil, uuid.New(), &buyerPurchase, now, now)
}

func TestCartCommands_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and is idempotent", func(t *testing.T) {
		item := mustProduct(t, "camera", 15000)
		carts := sessionstore.NewMemoryCartStore()
		uc := commands.NewCartCommands(carts, newStubProductRepo(item))

		added, err := uc.AddItem(ctx, "s1", item.ID())
		require.NoError(t, err)
		assert.True(t, added)

		added, err = uc.AddItem(ctx, "s1", item.ID())
		require.NoError(t, err)
		assert.False(t, added, "second add of the same product is a no-op")

		items, found, err := carts.Get(ctx, "s1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []uuid.UUID{item.ID()}, items)
	})

	t.Run("unknown product", func(t *testing.T) {
		uc := commands.NewCartCommands(sessionstore.NewMemoryCartStore(), newStubProductRepo())

		_, err := uc.AddItem(ctx, "s1", uuid.New())
		assert.ErrorIs(t, err, commands.ErrProductNotFound)
	})

	t.Run("sold product", func(t *testing.T) {
		item := soldProduct(t, "gone")
		uc := commands.NewCartCommands(sessionstore.NewMemoryCartStore(), newStubProductRepo(item))

		_, err := uc.AddItem(ctx, "s1", item.ID())
		assert.ErrorIs(t, err, commands.ErrProductUnavailable)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		first := mustProduct(t, "first", 100)
		second := mustProduct(t, "second", 200)
		carts := sessionstore.NewMemoryCartStore()
		uc := commands.NewCartCommands(carts, newStubProductRepo(first, second))

		_, err := uc.AddItem(ctx, "s1", first.ID())
		require.NoError(t, err)
		_, err = uc.AddItem(ctx, "s1", second.ID())
		require.NoError(t, err)

		items, _, err := carts.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first.ID(), second.ID()}, items)
	})
}

func TestCartCommands_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removes present item", func(t *testing.T) {
		first := mustProduct(t, "first", 100)
		second := mustProduct(t, "second", 200)
		carts := sessionstore.NewMemoryCartStore()
		uc := commands.NewCartCommands(carts, newStubProductRepo(first, second))

		_, err := uc.AddItem(ctx, "s1", first.ID())
		require.NoError(t, err)
		_, err = uc.AddItem(ctx, "s1", second.ID())
		require.NoError(t, err)

		require.NoError(t, uc.RemoveItem(ctx, "s1", first.ID()))

		items, found, err := carts.Get(ctx, "s1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []uuid.UUID{second.ID()}, items)
	})

	t.Run("removing absent item is a no-op", func(t *testing.T) {
		carts := sessionstore.NewMemoryCartStore()
		uc := commands.NewCartCommands(carts, newStubProductRepo())

		assert.NoError(t, uc.RemoveItem(ctx, "s1", uuid.New()))
	})

	t.Run("removing the last item drops the slot", func(t *testing.T) {
		item := mustProduct(t, "only", 100)
		carts := sessionstore.NewMemoryCartStore()
		uc := commands.NewCartCommands(carts, newStubProductRepo(item))

		_, err := uc.AddItem(ctx, "s1", item.ID())
		require.NoError(t, err)
		require.NoError(t, uc.RemoveItem(ctx, "s1", item.ID()))

		_, found, err := carts.Get(ctx, "s1")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

// Full path: add, add, duplicate add, checkout. The purchase must claim both
// products and the cart must end empty.
func TestCartToCheckout_EndToEnd(t *testing.T) {
	ctx := context.Background()

	first := mustProduct(t, "record player", 32000)
	second := mustProduct(t, "speaker", 18000)
	repo := newStubProductRepo(first, second)
	carts := sessionstore.NewMemoryCartStore()

	cartUC := commands.NewCartCommands(carts, repo)
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	checkoutUC := commands.NewCheckoutCommands(carts, repo, &fakePurchases{}, &fakeEvents{}, clk)

	added, err := cartUC.AddItem(ctx, "s1", first.ID())
	require.NoError(t, err)
	assert.True(t, added)
	added, err = cartUC.AddItem(ctx, "s1", second.ID())
	require.NoError(t, err)
	assert.True(t, added)
	added, err = cartUC.AddItem(ctx, "s1", first.ID())
	require.NoError(t, err)
	assert.False(t, added)

	buyerID := uuid.New()
	result, err := checkoutUC.Checkout(ctx, "s1", buyerID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{first.ID(), second.ID()}, result.Claimed)
	assert.Empty(t, result.Rejected)

	_, found, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)
}
