package entity

import "time"

type Review struct {
	ID         string    `json:"id" firestore:"id"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	RevieweeID string    `json:"reviewee_id" firestore:"revieweeId"`
	ListingID  string    `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	Rating     int       `json:"rating" firestore:"rating"` // 1-5
	Comment    string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

type ReviewWithReviewer struct {
	Review   *Review `json:"review"`
	Reviewer *User   `json:"reviewer"`
}
