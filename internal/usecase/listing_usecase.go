package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/internal/domain/service"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/logger"
	"github.com/Mattyonemillion/henlo/pkg/utils"
)

type ListingUseCase struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	fileService  service.FileUploadService
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		fileService:  fileService,
	}
}

type ListingImageInput struct {
	URL          string `json:"url"`
	Path         string `json:"path"`
	DisplayOrder int    `json:"display_order"`
}

type CreateListingInput struct {
	Title             string
	Description       string
	Price             float64
	Condition         string
	CategoryID        string
	Location          string
	ShippingAvailable bool
	PickupAvailable   bool
	Images            []ListingImageInput
}

type UpdateListingInput struct {
	Title             string
	Description       string
	Price             *float64
	Condition         string
	CategoryID        string
	Location          string
	ShippingAvailable *bool
	PickupAvailable   *bool
	Images            []ListingImageInput
}

// ListingDetail decorates a listing with its seller and category for the
// detail page.
type ListingDetail struct {
	Listing  *entity.Listing  `json:"listing"`
	Seller   *entity.User     `json:"seller"`
	Category *entity.Category `json:"category"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	if !entity.IsValidCondition(input.Condition) {
		return nil, errors.BadRequest("Invalid condition", nil)
	}

	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, errors.BadRequest("Invalid category", err)
	}

	images := make([]entity.ListingImage, len(input.Images))
	for i, img := range input.Images {
		images[i] = entity.ListingImage{
			URL:          img.URL,
			Path:         img.Path,
			DisplayOrder: img.DisplayOrder,
		}
	}

	now := time.Now()
	listing := &entity.Listing{
		SellerID:          sellerID,
		Title:             input.Title,
		Slug:              uc.buildSlug(input.Title),
		Description:       input.Description,
		Price:             input.Price,
		Condition:         input.Condition,
		CategoryID:        category.ID,
		Location:          input.Location,
		Images:            images,
		Status:            entity.ListingStatusActive,
		ShippingAvailable: input.ShippingAvailable,
		PickupAvailable:   input.PickupAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		// The images were uploaded before this insert; clean them up so
		// they don't become orphans in the bucket.
		uc.cleanupImages(listing.Images)
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, id, sellerID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if listing.Status == entity.ListingStatusSold {
		return nil, errors.BadRequest("Sold listings cannot be edited", nil)
	}

	if input.Title != "" && input.Title != listing.Title {
		listing.Title = input.Title
		listing.Slug = uc.buildSlug(input.Title)
	}
	if input.Description != "" {
		listing.Description = input.Description
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.Condition != "" {
		if !entity.IsValidCondition(input.Condition) {
			return nil, errors.BadRequest("Invalid condition", nil)
		}
		listing.Condition = input.Condition
	}
	if input.CategoryID != "" && input.CategoryID != listing.CategoryID {
		category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
		if err != nil {
			return nil, errors.BadRequest("Invalid category", err)
		}
		listing.CategoryID = category.ID
	}
	if input.Location != "" {
		listing.Location = input.Location
	}
	if input.ShippingAvailable != nil {
		listing.ShippingAvailable = *input.ShippingAvailable
	}
	if input.PickupAvailable != nil {
		listing.PickupAvailable = *input.PickupAvailable
	}

	if len(input.Images) > 0 {
		replaced := listing.Images
		images := make([]entity.ListingImage, len(input.Images))
		for i, img := range input.Images {
			images[i] = entity.ListingImage{
				URL:          img.URL,
				Path:         img.Path,
				DisplayOrder: img.DisplayOrder,
			}
		}
		listing.Images = images
		uc.cleanupImages(dropped(replaced, images))
	}

	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, id, sellerID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if listing.SellerID != sellerID {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.cleanupImages(listing.Images)
	return nil
}

// SetStatus toggles a listing between active and inactive. Sold is a
// terminal status reached only through a paid payment, never through
// this path.
func (uc *ListingUseCase) SetStatus(ctx context.Context, id, sellerID, status string) (*entity.Listing, error) {
	if status != entity.ListingStatusActive && status != entity.ListingStatusInactive {
		return nil, errors.BadRequest("Status must be active or inactive", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("You don't have permission to change this listing", nil)
	}

	if listing.Status == entity.ListingStatusSold {
		return nil, errors.BadRequest("Sold listings cannot change status", nil)
	}

	listing.Status = status
	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) GetListingByID(ctx context.Context, id string) (*ListingDetail, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return uc.buildDetail(ctx, listing)
}

func (uc *ListingUseCase) GetListingBySlug(ctx context.Context, slug string) (*ListingDetail, error) {
	listing, err := uc.listingRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return uc.buildDetail(ctx, listing)
}

func (uc *ListingUseCase) buildDetail(ctx context.Context, listing *entity.Listing) (*ListingDetail, error) {
	// View counting is best effort and must not delay the response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = uc.listingRepo.IncrementViews(ctx, listing.ID)
	}()

	seller, err := uc.userRepo.GetByID(ctx, listing.SellerID)
	if err != nil {
		return nil, errors.Internal("Failed to load seller", err)
	}

	category, err := uc.categoryRepo.GetByID(ctx, listing.CategoryID)
	if err != nil {
		category = nil
	}

	return &ListingDetail{
		Listing:  listing,
		Seller:   seller,
		Category: category,
	}, nil
}

func (uc *ListingUseCase) ListListings(ctx context.Context, filter repository.ListingFilter, page, limit int) ([]*entity.Listing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.List(ctx, filter, limit, offset)
}

func (uc *ListingUseCase) ListMyListings(ctx context.Context, sellerID, status string, page, limit int) ([]*entity.Listing, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.listingRepo.ListBySellerID(ctx, sellerID, status, limit, offset)
}

func (uc *ListingUseCase) buildSlug(title string) string {
	return fmt.Sprintf("%s-%s", utils.Slugify(title), uuid.New().String()[:6])
}

func (uc *ListingUseCase) cleanupImages(images []entity.ListingImage) {
	if uc.fileService == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, img := range images {
			if img.Path == "" {
				continue
			}
			if err := uc.fileService.DeleteFile(ctx, img.Path); err != nil {
				logger.Error("Failed to delete image %s: %v", img.Path, err)
			}
		}
	}()
}

// dropped returns the images present in old but absent from updated.
func dropped(old, updated []entity.ListingImage) []entity.ListingImage {
	kept := make(map[string]bool, len(updated))
	for _, img := range updated {
		kept[img.Path] = true
	}

	var removed []entity.ListingImage
	for _, img := range old {
		if !kept[img.Path] {
			removed = append(removed, img)
		}
	}
	return removed
}
