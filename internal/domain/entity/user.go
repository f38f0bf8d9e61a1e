package entity

import (
	"time"
)

// User is the profile row keyed by the Firebase auth uid.
type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	FullName string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Location string `json:"location,omitempty" firestore:"location,omitempty"`

	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`

	Rating      float64 `json:"rating" firestore:"rating"`
	ReviewCount int     `json:"review_count" firestore:"reviewCount"`
	SaleCount   int     `json:"sale_count" firestore:"saleCount"`

	NotifyNewMessage    bool `json:"notify_new_message" firestore:"notifyNewMessage"`
	NotifyPaymentUpdate bool `json:"notify_payment_update" firestore:"notifyPaymentUpdate"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
