package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mask-detector/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesOnce(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	first, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	second, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestMemoryUserRepository_Stats(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	u.RecordCheck(entity.NewImageResult("a.jpg", "", 1))
	u.RecordCheck(entity.NewImageResult("b.jpg", "", 1))
	require.NoError(t, repo.Save(ctx, u))

	_, err = repo.Get(ctx, 2, 20)
	require.NoError(t, err)

	users, checks, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, users)
	require.Equal(t, 2, checks)
}
