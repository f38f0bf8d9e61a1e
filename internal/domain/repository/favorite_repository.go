package repository

import (
	"context"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, listingID string) (*entity.Favorite, error)
	Remove(ctx context.Context, userID, listingID string) error
	IsFavorite(ctx context.Context, userID, listingID string) (bool, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.FavoriteWithListing, int64, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}
