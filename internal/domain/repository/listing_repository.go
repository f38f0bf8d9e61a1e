package repository

import (
	"context"
	"strings"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
)

// ListingFilter holds the optional browse filters. All set fields combine
// with logical AND on top of the implicit status == active predicate.
type ListingFilter struct {
	PriceMin   *float64 // inclusive lower bound
	PriceMax   *float64 // inclusive upper bound
	Condition  string   // exact match
	CategoryID string   // exact match
	Location   string   // case-insensitive substring
	Query      string   // case-insensitive title/description substring
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Listing, error)
	List(ctx context.Context, filter ListingFilter, limit, offset int) ([]*entity.Listing, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Listing, int64, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	// MarkSold sets status to sold and stamps soldAt. Repeating the call on
	// an already-sold listing must leave it unchanged.
	MarkSold(ctx context.Context, id string) error
}

// MatchesFilter reports whether a listing satisfies every predicate of the
// filter. Only active listings can match. The store can't express all of
// these predicates server-side, so implementations run candidates through
// this one function to keep the AND semantics in a single place.
func MatchesFilter(l *entity.Listing, f ListingFilter) bool {
	if l.Status != entity.ListingStatusActive {
		return false
	}
	if f.PriceMin != nil && l.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && l.Price > *f.PriceMax {
		return false
	}
	if f.Condition != "" && l.Condition != f.Condition {
		return false
	}
	if f.CategoryID != "" && l.CategoryID != f.CategoryID {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) {
			return false
		}
	}
	return true
}
