package repository

import (
	"context"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	// GetByReviewerAndListing finds an existing review for duplicate checks.
	GetByReviewerAndListing(ctx context.Context, reviewerID, revieweeID, listingID string) (*entity.Review, error)
	ListByRevieweeID(ctx context.Context, revieweeID string, limit, offset int) ([]*entity.Review, int64, error)
}
