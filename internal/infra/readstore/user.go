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

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const query = `
SELECT id, email, first_name, last_name, avatar_ref, is_active
FROM users
WHERE id = $1`

	var v queries.UserView
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Email, &v.FirstName, &v.LastName, &v.AvatarRef, &v.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserView, string, error) {
	const query = `
SELECT id, email, first_name, last_name, avatar_ref, is_active, password_hash
FROM users
WHERE email = $1`

	var (
		v    queries.UserView
		hash string
	)
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&v.ID, &v.Email, &v.FirstName, &v.LastName, &v.AvatarRef, &v.IsActive, &hash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &v, hash, nil
}
