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

const productViewColumns = `id, name, price_cents, image_ref, owner_id, purchase_id, created_at, updated_at`

type ProductReadStore struct {
	pool *pgxpool.Pool
}

func NewProductReadStore(pool *pgxpool.Pool) *ProductReadStore {
	return &ProductReadStore{pool: pool}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	const query = `SELECT ` + productViewColumns + ` FROM products WHERE id = $1`

	view, err := scanProductView(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return view, nil
}

func (r *ProductReadStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*queries.ProductView, error) {
	if len(ids) == 0 {
		return []*queries.ProductView{}, nil
	}

	const query = `SELECT ` + productViewColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find products by IDs", err)
	}
	defer rows.Close()

	return collectProductViews(rows)
}

// FindAvailable lists unsold products, optionally filtered by a
// case-insensitive name substring.
func (r *ProductReadStore) FindAvailable(ctx context.Context, nameQuery string) ([]*queries.ProductView, error) {
	const query = `
SELECT ` + productViewColumns + `
FROM products
WHERE purchase_id IS NULL AND ($1 = '' OR name ILIKE '%' || $1 || '%')
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, nameQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available products", err)
	}
	defer rows.Close()

	return collectProductViews(rows)
}

func (r *ProductReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ProductView, error) {
	const query = `
SELECT ` + productViewColumns + `
FROM products
WHERE owner_id = $1
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products by owner", err)
	}
	defer rows.Close()

	return collectProductViews(rows)
}

func (r *ProductReadStore) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*queries.ProductView, error) {
	const query = `
SELECT ` + productViewColumns + `
FROM products
WHERE purchase_id = $1
ORDER BY name`

	rows, err := r.pool.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products by purchase", err)
	}
	defer rows.Close()

	return collectProductViews(rows)
}

func scanProductView(row pgx.Row) (*queries.ProductView, error) {
	var v queries.ProductView
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.PriceCents,
		&v.ImageRef,
		&v.OwnerID,
		&v.PurchaseID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectProductViews(rows pgx.Rows) ([]*queries.ProductView, error) {
	result := []*queries.ProductView{}
	for rows.Next() {
		view, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product rows", err)
	}
	return result, nil
}
