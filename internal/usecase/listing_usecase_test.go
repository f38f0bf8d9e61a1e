package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

func listingFixture() (*ListingUseCase, *fakeListingRepo, *fakeFileService) {
	listingRepo := newFakeListingRepo()
	categoryRepo := newFakeCategoryRepo(&entity.Category{ID: "cat-electronics", Slug: "electronics", Name: "Elektronica"})
	userRepo := newFakeUserRepo(&entity.User{ID: "seller", Username: "anna"})
	fileService := &fakeFileService{}

	uc := NewListingUseCase(listingRepo, categoryRepo, userRepo, fileService)
	return uc, listingRepo, fileService
}

func validCreateInput() CreateListingInput {
	return CreateListingInput{
		Title:       "Sony WH-1000XM4 koptelefoon",
		Description: "Nauwelijks gebruikt, met originele doos en kabels.",
		Price:       120,
		Condition:   entity.ConditionLikeNew,
		CategoryID:  "cat-electronics",
		Location:    "Utrecht",
		Images: []ListingImageInput{
			{URL: "https://storage.googleapis.com/henlo/seller/a.jpg", Path: "seller/a.jpg", DisplayOrder: 0},
		},
	}
}

func TestCreateListingBuildsSlugAndDefaults(t *testing.T) {
	uc, _, _ := listingFixture()

	listing, err := uc.CreateListing(context.Background(), "seller", validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	assert.Equal(t, "seller", listing.SellerID)
	assert.True(t, strings.HasPrefix(listing.Slug, "sony-wh-1000xm4-koptelefoon-"), "slug was %q", listing.Slug)
	require.Len(t, listing.Images, 1)
	assert.Equal(t, "seller/a.jpg", listing.Images[0].Path)
}

func TestCreateListingSlugsAreUnique(t *testing.T) {
	uc, _, _ := listingFixture()

	first, err := uc.CreateListing(context.Background(), "seller", validCreateInput())
	require.NoError(t, err)
	second, err := uc.CreateListing(context.Background(), "seller", validCreateInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
}

func TestCreateListingRejectsBadConditionAndCategory(t *testing.T) {
	uc, _, _ := listingFixture()

	input := validCreateInput()
	input.Condition = "broken"
	_, err := uc.CreateListing(context.Background(), "seller", input)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	input = validCreateInput()
	input.CategoryID = "nope"
	_, err = uc.CreateListing(context.Background(), "seller", input)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdateListingOwnershipAndSoldGuard(t *testing.T) {
	uc, listingRepo, _ := listingFixture()

	listing, err := uc.CreateListing(context.Background(), "seller", validCreateInput())
	require.NoError(t, err)

	_, err = uc.UpdateListing(context.Background(), listing.ID, "stranger", UpdateListingInput{Title: "Gekaapt"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, listingRepo.MarkSold(context.Background(), listing.ID))
	_, err = uc.UpdateListing(context.Background(), listing.ID, "seller", UpdateListingInput{Title: "Te laat"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdateListingReplacedImagesAreCleanedUp(t *testing.T) {
	uc, _, fileService := listingFixture()

	listing, err := uc.CreateListing(context.Background(), "seller", validCreateInput())
	require.NoError(t, err)

	_, err = uc.UpdateListing(context.Background(), listing.ID, "seller", UpdateListingInput{
		Images: []ListingImageInput{
			{URL: "https://storage.googleapis.com/henlo/seller/b.jpg", Path: "seller/b.jpg", DisplayOrder: 0},
		},
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		deleted := fileService.deletedPaths()
		return len(deleted) == 1 && deleted[0] == "seller/a.jpg"
	}, time.Second, 10*time.Millisecond)
}

func TestDeleteListingCleansUpImages(t *testing.T) {
	uc, listingRepo, fileService := listingFixture()

	listing, err := uc.CreateListing(context.Background(), "seller", validCreateInput())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteListing(context.Background(), listing.ID, "seller"))
	assert.Empty(t, listingRepo.listings)

	assert.Eventually(t, func() bool {
		return len(fileService.deletedPaths()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSetStatusNeverReachesSold(t *testing.T) {
	uc, listingRepo, _ := listingFixture()

	listing, err := uc.CreateListing(context.Background(), "seller", validCreateInput())
	require.NoError(t, err)

	_, err = uc.SetStatus(context.Background(), listing.ID, "seller", entity.ListingStatusSold)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	updated, err := uc.SetStatus(context.Background(), listing.ID, "seller", entity.ListingStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusInactive, updated.Status)

	// Once a payment made it sold, the seller can no longer flip it back.
	require.NoError(t, listingRepo.MarkSold(context.Background(), listing.ID))
	_, err = uc.SetStatus(context.Background(), listing.ID, "seller", entity.ListingStatusActive)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListMyListingsFiltersByStatus(t *testing.T) {
	uc, _, _ := listingFixture()

	for i := 0; i < 3; i++ {
		input := validCreateInput()
		input.Title = fmt.Sprintf("Aanbieding nummer %d", i)
		_, err := uc.CreateListing(context.Background(), "seller", input)
		require.NoError(t, err)
	}

	listings, total, err := uc.ListMyListings(context.Background(), "seller", entity.ListingStatusActive, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, listings, 3)

	_, total, err = uc.ListMyListings(context.Background(), "seller", entity.ListingStatusSold, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}
