package repository

import (
	"context"
	"errors"
	"time"

	"flea-market/internal/domain/product"
	"flea-market/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	const stmt = `
INSERT INTO products (id, name, price_cents, image_ref, owner_id, purchase_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NULL, now(), now())`

	_, err := r.pool.Exec(ctx, stmt,
		p.ID(),
		p.Name().String(),
		p.Price().Cents(),
		p.ImageRef(),
		p.OwnerID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	const query = `
SELECT id, name, price_cents, image_ref, owner_id, purchase_id, created_at, updated_at
FROM products
WHERE id = $1`

	var (
		rowID      uuid.UUID
		rawName    string
		priceCents int64
		imageRef   *string
		ownerID    uuid.UUID
		purchaseID *uuid.UUID
		createdAt  time.Time
		updatedAt  time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rowID, &rawName, &priceCents, &imageRef, &ownerID, &purchaseID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}

	name, err := product.NewName(rawName)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt product name", err)
	}
	price, err := product.NewPrice(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt product price", err)
	}

	return product.ReconstructProduct(
		rowID, name, price, imageRef, ownerID, purchaseID, createdAt, updatedAt,
	), nil
}

// Claim atomically binds an available product to a purchase. The WHERE
// clause carries the availability condition, so the test and the set are a
// single linearizable statement: of any number of concurrent claims on one
// product, exactly one sees RowsAffected == 1.
func (r *ProductRepository) Claim(ctx context.Context, productID, purchaseID uuid.UUID) (bool, error) {
	const stmt = `
UPDATE products
SET purchase_id = $2, updated_at = now()
WHERE id = $1 AND purchase_id IS NULL`

	ct, err := r.pool.Exec(ctx, stmt, productID, purchaseID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim product", err)
	}
	return ct.RowsAffected() == 1, nil
}

// Delete removes an owner's product as long as it has not been sold. Rows
// bound to a purchase are immutable history and never deleted.
func (r *ProductRepository) Delete(ctx context.Context, productID, ownerID uuid.UUID) (bool, error) {
	const stmt = `
DELETE FROM products
WHERE id = $1 AND owner_id = $2 AND purchase_id IS NULL`

	ct, err := r.pool.Exec(ctx, stmt, productID, ownerID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete product", err)
	}
	return ct.RowsAffected() == 1, nil
}
