package usecase

import (
	"context"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
)

type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List(ctx)
}

func (uc *CategoryUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return uc.categoryRepo.GetBySlug(ctx, slug)
}

// DefaultCategories is the fixed set seeded on first boot.
func DefaultCategories() []*entity.Category {
	return []*entity.Category{
		{ID: "electronics", Slug: "electronics", Name: "Elektronica", Icon: "smartphone"},
		{ID: "clothing", Slug: "clothing", Name: "Kleding", Icon: "shirt"},
		{ID: "home_garden", Slug: "home-garden", Name: "Huis en Tuin", Icon: "home"},
		{ID: "sports", Slug: "sports", Name: "Sport", Icon: "bike"},
		{ID: "books", Slug: "books", Name: "Boeken", Icon: "book"},
		{ID: "toys", Slug: "toys", Name: "Speelgoed", Icon: "blocks"},
		{ID: "vehicles", Slug: "vehicles", Name: "Auto's en Fietsen", Icon: "car"},
		{ID: "other", Slug: "other", Name: "Overig", Icon: "package"},
	}
}

// SeedCategories is called at startup; it is a no-op once the collection
// has content.
func (uc *CategoryUseCase) SeedCategories(ctx context.Context) error {
	return uc.categoryRepo.Seed(ctx, DefaultCategories())
}
