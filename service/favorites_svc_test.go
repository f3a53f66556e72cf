package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavoriteIdempotent(t *testing.T) {
	repo := &memFavoritesRepo{}
	svc := newTestService(&fakeBackend{}, repo)

	require.NoError(t, svc.AddFavorite(context.Background(), 8080))
	require.NoError(t, svc.AddFavorite(context.Background(), 8080))

	assert.Equal(t, []uint16{8080}, svc.Favorites())
	assert.Equal(t, 1, repo.saveCount(), "duplicate add must not re-persist")
}

func TestAddFavoriteRejectsInvalidPort(t *testing.T) {
	repo := &memFavoritesRepo{}
	svc := newTestService(&fakeBackend{}, repo)

	err := svc.AddFavorite(context.Background(), 0)
	require.Error(t, err)
	assert.Empty(t, svc.Favorites())
	assert.Zero(t, repo.saveCount())
}

func TestRemoveFavoriteIdempotent(t *testing.T) {
	repo := &memFavoritesRepo{}
	svc := newTestService(&fakeBackend{}, repo)

	require.NoError(t, svc.AddFavorite(context.Background(), 3000))
	require.NoError(t, svc.AddFavorite(context.Background(), 5432))

	require.NoError(t, svc.RemoveFavorite(context.Background(), 3000))
	assert.Equal(t, []uint16{5432}, svc.Favorites())

	require.NoError(t, svc.RemoveFavorite(context.Background(), 3000))
	assert.Equal(t, 3, repo.saveCount(), "removing an absent port must not re-persist")
}

func TestToggleFavorite(t *testing.T) {
	svc := newTestService(&fakeBackend{}, nil)

	require.NoError(t, svc.ToggleFavorite(context.Background(), 6379))
	assert.Equal(t, []uint16{6379}, svc.Favorites())

	require.NoError(t, svc.ToggleFavorite(context.Background(), 6379))
	assert.Empty(t, svc.Favorites())
}

func TestFavoritesPreserveInsertionOrder(t *testing.T) {
	svc := newTestService(&fakeBackend{}, nil)

	for _, port := range []uint16{9000, 80, 5432} {
		require.NoError(t, svc.AddFavorite(context.Background(), port))
	}
	assert.Equal(t, []uint16{9000, 80, 5432}, svc.Favorites())
}

func TestSetFavoritesDeduplicates(t *testing.T) {
	svc := newTestService(&fakeBackend{}, nil)

	svc.setFavorites([]uint16{80, 443, 80, 443, 8080})
	assert.Equal(t, []uint16{80, 443, 8080}, svc.Favorites())
}
