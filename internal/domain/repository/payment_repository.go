package repository

import (
	"context"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Payment, int64, error)
	// GetPaidByListingID returns the paid payment for a listing, if any.
	GetPaidByListingID(ctx context.Context, listingID string) (*entity.Payment, error)
}
