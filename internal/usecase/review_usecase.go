package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	listingRepo repository.ListingRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
	}
}

type CreateReviewInput struct {
	ListingID string
	Rating    int
	Comment   string
}

// CreateReview lets the buyer of a sold listing rate its seller, once.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID == reviewerID {
		return nil, errors.BadRequest("You cannot review yourself", nil)
	}

	payment, err := uc.paymentRepo.GetPaidByListingID(ctx, input.ListingID)
	if err != nil {
		return nil, errors.BadRequest("Listing has no completed purchase", err)
	}
	if payment.BuyerID != reviewerID {
		return nil, errors.Forbidden("Only the buyer of this listing can review the seller", nil)
	}

	existing, err := uc.reviewRepo.GetByReviewerAndListing(ctx, reviewerID, listing.SellerID, input.ListingID)
	if err == nil && existing != nil {
		return nil, errors.Conflict("You already reviewed this purchase")
	}

	review := &entity.Review{
		ID:         uuid.New().String(),
		ReviewerID: reviewerID,
		RevieweeID: listing.SellerID,
		ListingID:  input.ListingID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedAt:  time.Now(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.updateUserRating(listing.SellerID, input.Rating)

	return review, nil
}

// updateUserRating folds one new rating into the reviewee's running
// average.
func (uc *ReviewUseCase) updateUserRating(revieweeID string, rating int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := uc.userRepo.GetByID(ctx, revieweeID)
		if err != nil {
			logger.Error("Failed to load user %s for rating update: %v", revieweeID, err)
			return
		}

		total := user.Rating*float64(user.ReviewCount) + float64(rating)
		user.ReviewCount++
		user.Rating = total / float64(user.ReviewCount)

		if err := uc.userRepo.Update(ctx, user); err != nil {
			logger.Error("Failed to update rating for %s: %v", revieweeID, err)
		}
	}()
}

// ListReviews returns reviews about a user, newest first, each joined with
// its reviewer's public profile.
func (uc *ReviewUseCase) ListReviews(ctx context.Context, revieweeID string, page, limit int) ([]*entity.ReviewWithReviewer, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	reviews, total, err := uc.reviewRepo.ListByRevieweeID(ctx, revieweeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*entity.ReviewWithReviewer, 0, len(reviews))
	for _, review := range reviews {
		reviewer, err := uc.userRepo.GetByID(ctx, review.ReviewerID)
		if err != nil {
			reviewer = nil
		}
		result = append(result, &entity.ReviewWithReviewer{
			Review:   review,
			Reviewer: reviewer,
		})
	}

	return result, total, nil
}
