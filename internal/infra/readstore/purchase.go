package readstore

import (
	"context"
	"errors"

	"flea-market/internal/infra"
	"flea-market/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseReadStore struct {
	pool *pgxpool.Pool
}

func NewPurchaseReadStore(pool *pgxpool.Pool) *PurchaseReadStore {
	return &PurchaseReadStore{pool: pool}
}

func (r *PurchaseReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PurchaseView, error) {
	const query = `SELECT id, buyer_id, created_at FROM purchases WHERE id = $1`

	var v queries.PurchaseView
	err := r.pool.QueryRow(ctx, query, id).Scan(&v.ID, &v.BuyerID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find purchase by ID", err)
	}
	return &v, nil
}

func (r *PurchaseReadStore) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*queries.PurchaseView, error) {
	const query = `
SELECT id, buyer_id, created_at
FROM purchases
WHERE buyer_id = $1
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list purchases by buyer", err)
	}
	defer rows.Close()

	result := []*queries.PurchaseView{}
	for rows.Next() {
		var v queries.PurchaseView
		if err := rows.Scan(&v.ID, &v.BuyerID, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan purchase row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate purchase rows", err)
	}
	return result, nil
}
