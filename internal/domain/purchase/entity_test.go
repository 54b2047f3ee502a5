//go:build unit

package purchase_test

import (
	"testing"
	"time"

	"flea-market/internal/domain/purchase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	buyer := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p, err := purchase.NewPurchase(buyer, now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Equal(t, buyer, p.BuyerID())
	assert.Equal(t, now, p.CreatedAt())
}

func TestNewPurchase_RequiresBuyer(t *testing.T) {
	_, err := purchase.NewPurchase(uuid.Nil, time.Now())
	assert.ErrorIs(t, err, purchase.ErrMissingBuyer)
}
