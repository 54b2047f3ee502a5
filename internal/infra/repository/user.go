package repository

import (
	"context"
	"errors"

	"flea-market/internal/domain/user"
	"flea-market/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const stmt = `
	INSERT INTO users (id, email, password_hash, first_name, last_name, avatar_ref, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

	_, err := r.pool.Exec(ctx, stmt,
		u.ID(), u.Email().Value(), u.PasswordHash(),
		u.FirstName(), u.LastName(), u.AvatarRef(), u.IsActive(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}
