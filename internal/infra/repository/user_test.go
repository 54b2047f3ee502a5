//go:build integration

package repository_test

import (
	"context"
	"testing"

	"flea-market/internal/domain/user"
	"flea-market/internal/infra"
	"flea-market/internal/infra/repository"
	"flea-market/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := repository.NewUserRepository(pool)

	email, err := user.NewEmail("ana@example.com")
	require.NoError(t, err)
	first := user.NewUser(email, "bcrypt-hash", "Ana", "Vargas", nil)
	require.NoError(t, repo.Create(ctx, first))

	// Same email again must surface as a duplicate key, not a generic failure.
	second := user.NewUser(email, "bcrypt-hash", "Ana", "Duplicada", nil)
	err = repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
}
