package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

func favoriteFixture() (*FavoriteUseCase, *fakeFavoriteRepo) {
	listingRepo := newFakeListingRepo(
		&entity.Listing{ID: "l1", SellerID: "seller", Title: "Retro platenspeler", Status: entity.ListingStatusActive},
		&entity.Listing{ID: "l2", SellerID: "seller", Title: "Boxspring 160x200", Status: entity.ListingStatusActive},
	)
	favoriteRepo := newFakeFavoriteRepo(listingRepo)
	return NewFavoriteUseCase(favoriteRepo, listingRepo), favoriteRepo
}

func TestAddFavoriteTwiceKeepsOne(t *testing.T) {
	uc, favoriteRepo := favoriteFixture()

	first, err := uc.AddFavorite(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	assert.Equal(t, "buyer_l1", first.ID)

	second, err := uc.AddFavorite(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, favoriteRepo.favorites, 1)
}

func TestAddFavoriteRejectsOwnListing(t *testing.T) {
	uc, _ := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "seller", "l1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestAddFavoriteUnknownListing(t *testing.T) {
	uc, _ := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "buyer", "nope")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestRemoveFavoriteIsIdempotent(t *testing.T) {
	uc, _ := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "buyer", "l1")
	require.NoError(t, err)

	require.NoError(t, uc.RemoveFavorite(context.Background(), "buyer", "l1"))
	require.NoError(t, uc.RemoveFavorite(context.Background(), "buyer", "l1"))

	isFavorite, err := uc.IsFavorite(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	assert.False(t, isFavorite)
}

func TestListFavoritesJoinsListings(t *testing.T) {
	uc, _ := favoriteFixture()

	_, err := uc.AddFavorite(context.Background(), "buyer", "l1")
	require.NoError(t, err)
	_, err = uc.AddFavorite(context.Background(), "buyer", "l2")
	require.NoError(t, err)

	favorites, total, err := uc.ListFavorites(context.Background(), "buyer", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, favorites, 2)
	for _, f := range favorites {
		require.NotNil(t, f.Listing)
		assert.Equal(t, f.ListingID, f.Listing.ID)
	}

	count, err := uc.CountFavorites(context.Background(), "buyer")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
