package entity

import (
	"time"
)

// Listing conditions, Dutch marketplace convention.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like_new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionPoor    = "poor"
)

// Listing statuses. A sold listing is terminal: it never goes back to active
// or inactive.
const (
	ListingStatusActive   = "active"
	ListingStatusSold     = "sold"
	ListingStatusInactive = "inactive"
)

type ListingImage struct {
	URL          string `json:"url" firestore:"url"`
	Path         string `json:"path" firestore:"path"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

type Listing struct {
	ID          string `json:"id" firestore:"id"`
	SellerID    string `json:"seller_id" firestore:"sellerId"`
	Title       string `json:"title" firestore:"title"`
	Slug        string `json:"slug" firestore:"slug"`
	Description string `json:"description" firestore:"description"`
	// Price in EUR. Mollie wants a two-decimal string on the wire; the
	// gateway client does that formatting.
	Price     float64        `json:"price" firestore:"price"`
	Condition string         `json:"condition" firestore:"condition"`
	CategoryID string        `json:"category_id" firestore:"categoryId"`
	Location  string         `json:"location" firestore:"location"`
	Images    []ListingImage `json:"images" firestore:"images"`
	Status    string         `json:"status" firestore:"status"`
	Views     int            `json:"views" firestore:"views"`

	ShippingAvailable bool `json:"shipping_available" firestore:"shippingAvailable"`
	PickupAvailable   bool `json:"pickup_available" firestore:"pickupAvailable"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	SoldAt    *time.Time `json:"sold_at,omitempty" firestore:"soldAt,omitempty"`
}

// PrimaryImage returns the first image URL, or "" for a listing without
// photos.
func (l *Listing) PrimaryImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0].URL
}

func IsValidCondition(c string) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}
