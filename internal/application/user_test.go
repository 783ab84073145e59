package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mask-detector/internal/domain/entity"
	"mask-detector/internal/infrastructure/storage"
)

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestUserService_Finish(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	res := entity.NewImageResult("photo.jpg", "", 1)
	user, err := svc.Finish(ctx, 3, 30, res)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
	require.Equal(t, 1, user.Checks)
	require.Same(t, res, user.LastResult)
}

func TestUserService_Stats(t *testing.T) {
	svc := NewUserService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	_, err := svc.Finish(ctx, 1, 10, entity.NewImageResult("a.jpg", "", 1))
	require.NoError(t, err)
	_, err = svc.Finish(ctx, 1, 10, entity.NewImageResult("b.jpg", "", 1))
	require.NoError(t, err)
	_, err = svc.BeginCheck(ctx, 2, 20)
	require.NoError(t, err)

	users, checks, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, users)
	require.Equal(t, 2, checks)
}
