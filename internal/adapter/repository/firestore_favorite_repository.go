package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

// Add uses the deterministic (user, listing) document id, so a double-click
// on the heart writes the same document twice instead of duplicating it.
func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, listingID string) (*entity.Favorite, error) {
	favorite := &entity.Favorite{
		ID:        entity.FavoriteID(userID, listingID),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	_, err := r.client.Collection("favorites").Doc(favorite.ID).Set(ctx, favorite)
	if err != nil {
		return nil, errors.Internal("Failed to add favorite", err)
	}

	return favorite, nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	_, err := r.client.Collection("favorites").Doc(entity.FavoriteID(userID, listingID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	_, err := r.client.Collection("favorites").Doc(entity.FavoriteID(userID, listingID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}

	return true, nil
}

func (r *firestoreFavoriteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.FavoriteWithListing, int64, error) {
	query := r.client.Collection("favorites").Query.Where("userId", "==", userID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count favorites", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var favorites []*entity.FavoriteWithListing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			return nil, 0, errors.Internal("Failed to parse favorite data", err)
		}

		item := &entity.FavoriteWithListing{
			ID:        favorite.ID,
			UserID:    favorite.UserID,
			ListingID: favorite.ListingID,
			CreatedAt: favorite.CreatedAt,
		}

		// A favorite can outlive its listing; skip the decoration then.
		listingDoc, err := r.client.Collection("listings").Doc(favorite.ListingID).Get(ctx)
		if err == nil {
			var listing entity.Listing
			if err := listingDoc.DataTo(&listing); err == nil {
				item.Listing = &listing
			}
		}

		favorites = append(favorites, item)
	}

	return favorites, total, nil
}

func (r *firestoreFavoriteRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("favorites").Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count favorites", err)
	}

	return int64(len(docs)), nil
}
