package usecase

import (
	"context"
	"time"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	listingRepo  repository.ListingRepository
	reviewRepo   repository.ReviewRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	reviewRepo repository.ReviewRepository,
	firebaseAuth FirebaseAuthClient,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		listingRepo:  listingRepo,
		reviewRepo:   reviewRepo,
		firebaseAuth: firebaseAuth,
	}
}

type UpdateProfileInput struct {
	Username  string
	FullName  string
	Phone     string
	Bio       string
	Location  string
	AvatarURL string
}

type NotificationPrefsInput struct {
	NotifyNewMessage    *bool
	NotifyPaymentUpdate *bool
}

// PublicProfile is the seller page view: the profile plus their active
// listings.
type PublicProfile struct {
	User     *entity.User      `json:"user"`
	Listings []*entity.Listing `json:"listings"`
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User not found", err)
	}
	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User not found", err)
	}

	if input.Username != "" && input.Username != user.Username {
		existing, err := uc.userRepo.GetByUsername(ctx, input.Username)
		if err == nil && existing != nil && existing.ID != userID {
			return nil, errors.BadRequest("Username already taken", nil)
		}
		user.Username = input.Username
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Location != "" {
		user.Location = input.Location
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) UpdateNotificationPrefs(ctx context.Context, userID string, input NotificationPrefsInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User not found", err)
	}

	if input.NotifyNewMessage != nil {
		user.NotifyNewMessage = *input.NotifyNewMessage
	}
	if input.NotifyPaymentUpdate != nil {
		user.NotifyPaymentUpdate = *input.NotifyPaymentUpdate
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if err := uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}
	return nil
}

// GetPublicProfile returns another user's profile together with their
// active listings. The handler strips the email before responding.
func (uc *UserUseCase) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User not found", err)
	}

	listings, _, err := uc.listingRepo.ListBySellerID(ctx, userID, entity.ListingStatusActive, 50, 0)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		User:     user,
		Listings: listings,
	}, nil
}

func (uc *UserUseCase) ListReviews(ctx context.Context, userID string, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListByRevieweeID(ctx, userID, limit, offset)
}
