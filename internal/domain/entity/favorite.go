package entity

import "time"

// Favorite is a set membership: one user saving one listing. The document id
// is derived from the pair, so adding twice is a no-op.
type Favorite struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	ListingID string    `json:"listing_id" firestore:"listingId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// FavoriteID is the deterministic document id for a (user, listing) pair.
func FavoriteID(userID, listingID string) string {
	return userID + "_" + listingID
}

type FavoriteWithListing struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	Listing   *Listing  `json:"listing"`
	CreatedAt time.Time `json:"created_at"`
}
