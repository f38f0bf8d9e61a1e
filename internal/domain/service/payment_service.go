package service

import (
	"context"
)

// PaymentMetadata is attached to a payment at creation time and echoed back
// by the provider. The webhook path uses it to find the listing to mark sold.
type PaymentMetadata struct {
	ListingID string `json:"listingId"`
	BuyerID   string `json:"buyerId"`
	SellerID  string `json:"sellerId"`
}

// CreatePaymentRequest describes one hosted checkout session.
type CreatePaymentRequest struct {
	Amount      float64 // EUR
	Description string
	RedirectURL string
	WebhookURL  string
	Metadata    PaymentMetadata
}

// GatewayPayment is the provider's view of a payment. Status is already
// mapped to the local vocabulary (pending/paid/failed/canceled/expired).
type GatewayPayment struct {
	ID          string
	Status      string
	Amount      float64 // EUR
	CheckoutURL string
	Metadata    PaymentMetadata
}

// PaymentGatewayService is the boundary to the hosted payment provider.
// GetPayment is the only trusted source of payment status: webhook payloads
// are wake-up signals, never data sources.
type PaymentGatewayService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*GatewayPayment, error)
	GetPayment(ctx context.Context, id string) (*GatewayPayment, error)
}
