//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"

	"flea-market/internal/domain/product"
	"flea-market/internal/infra"
	"flea-market/internal/infra/repository"
	"flea-market/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := repository.NewProductRepository(pool)
	ownerID := testutil.InsertUser(t, ctx, pool, "seller@example.com")

	name, err := product.NewName("vinyl crate")
	require.NoError(t, err)
	price, err := product.NewPrice(4500)
	require.NoError(t, err)
	entity := product.NewProduct(name, price, nil, ownerID)

	require.NoError(t, repo.Create(ctx, entity))

	found, err := repo.FindByID(ctx, entity.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.ID(), found.ID())
	assert.Equal(t, "vinyl crate", found.Name().String())
	assert.Equal(t, int64(4500), found.Price().Cents())
	assert.True(t, found.IsAvailable())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestProductRepository_Claim(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := repository.NewProductRepository(pool)
	sellerID := testutil.InsertUser(t, ctx, pool, "seller@example.com")
	buyerID := testutil.InsertUser(t, ctx, pool, "buyer@example.com")
	productID := testutil.InsertProduct(t, ctx, pool, sellerID, "bike", 20000)
	purchaseID := testutil.InsertPurchase(t, ctx, pool, buyerID)

	claimed, err := repo.Claim(ctx, productID, purchaseID)
	require.NoError(t, err)
	assert.True(t, claimed)

	// Second claim must lose without disturbing the first.
	otherPurchase := testutil.InsertPurchase(t, ctx, pool, buyerID)
	claimed, err = repo.Claim(ctx, productID, otherPurchase)
	require.NoError(t, err)
	assert.False(t, claimed)

	found, err := repo.FindByID(ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, found.PurchaseID())
	assert.Equal(t, purchaseID, *found.PurchaseID())
}

// Concurrent claims against one row through real connections: the
// conditional UPDATE must admit exactly one winner.
func TestProductRepository_ConcurrentClaimsSingleWinner(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := repository.NewProductRepository(pool)
	sellerID := testutil.InsertUser(t, ctx, pool, "seller@example.com")
	buyerID := testutil.InsertUser(t, ctx, pool, "buyer@example.com")
	productID := testutil.InsertProduct(t, ctx, pool, sellerID, "console", 30000)

	const contenders = 16
	purchaseIDs := make([]uuid.UUID, contenders)
	for i := range purchaseIDs {
		purchaseIDs[i] = testutil.InsertPurchase(t, ctx, pool, buyerID)
	}

	outcomes := make([]bool, contenders)
	claimErrs := make([]error, contenders)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range purchaseIDs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			outcomes[i], claimErrs[i] = repo.Claim(ctx, productID, purchaseIDs[i])
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	var winnerPurchase uuid.UUID
	for i := range outcomes {
		require.NoError(t, claimErrs[i])
		if outcomes[i] {
			winners++
			winnerPurchase = purchaseIDs[i]
		}
	}
	require.Equal(t, 1, winners)

	found, err := repo.FindByID(ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, found.PurchaseID())
	assert.Equal(t, winnerPurchase, *found.PurchaseID())
}

func TestProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := repository.NewProductRepository(pool)
	sellerID := testutil.InsertUser(t, ctx, pool, "seller@example.com")
	buyerID := testutil.InsertUser(t, ctx, pool, "buyer@example.com")

	t.Run("unsold product owned by caller", func(t *testing.T) {
		productID := testutil.InsertProduct(t, ctx, pool, sellerID, "lamp", 900)
		deleted, err := repo.Delete(ctx, productID, sellerID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("someone else's product", func(t *testing.T) {
		productID := testutil.InsertProduct(t, ctx, pool, sellerID, "chair", 1200)
		deleted, err := repo.Delete(ctx, productID, buyerID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("sold product", func(t *testing.T) {
		productID := testutil.InsertProduct(t, ctx, pool, sellerID, "desk", 8000)
		purchaseID := testutil.InsertPurchase(t, ctx, pool, buyerID)
		claimed, err := repo.Claim(ctx, productID, purchaseID)
		require.NoError(t, err)
		require.True(t, claimed)

		deleted, err := repo.Delete(ctx, productID, sellerID)
		require.NoError(t, err)
		assert.False(t, deleted, "sold rows stay forever")
	})
}
