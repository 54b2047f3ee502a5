package repository

import (
	"context"
	"errors"
	"time"

	"flea-market/internal/domain/purchase"
	"flea-market/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create inserts the purchase record. There is no update path: purchases
// are written once and never touched again.
func (r *PurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	const stmt = `INSERT INTO purchases (id, buyer_id, created_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, stmt, p.ID(), p.BuyerID(), p.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create purchase", err)
	}
	return nil
}

func (r *PurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	const query = `SELECT id, buyer_id, created_at FROM purchases WHERE id = $1`

	var (
		rowID     uuid.UUID
		buyerID   uuid.UUID
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(&rowID, &buyerID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find purchase by ID", err)
	}

	return purchase.ReconstructPurchase(rowID, buyerID, createdAt), nil
}
