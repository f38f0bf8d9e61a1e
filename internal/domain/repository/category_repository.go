package repository

import (
	"context"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// Seed inserts the default category set when the collection is empty.
	Seed(ctx context.Context, categories []*entity.Category) error
}
