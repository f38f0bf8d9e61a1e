package usecase

import (
	"context"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	listingRepo  repository.ListingRepository
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	listingRepo repository.ListingRepository,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

// AddFavorite saves a listing for the user. Adding the same listing twice
// is a no-op, not an error.
func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, listingID string) (*entity.Favorite, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID == userID {
		return nil, errors.BadRequest("You cannot favorite your own listing", nil)
	}

	return uc.favoriteRepo.Add(ctx, userID, listingID)
}

// RemoveFavorite is idempotent: removing an absent favorite succeeds.
func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	return uc.favoriteRepo.Remove(ctx, userID, listingID)
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	return uc.favoriteRepo.IsFavorite(ctx, userID, listingID)
}

func (uc *FavoriteUseCase) ListFavorites(ctx context.Context, userID string, page, limit int) ([]*entity.FavoriteWithListing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.favoriteRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *FavoriteUseCase) CountFavorites(ctx context.Context, userID string) (int64, error) {
	return uc.favoriteRepo.CountByUserID(ctx, userID)
}
