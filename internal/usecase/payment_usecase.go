package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/internal/domain/service"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/logger"
)

type PaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	gateway     service.PaymentGatewayService
	rateLimiter RateLimiter
	baseURL     string
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	gateway service.PaymentGatewayService,
	rateLimiter RateLimiter,
	baseURL string,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		rateLimiter: rateLimiter,
		baseURL:     baseURL,
	}
}

type CheckoutResult struct {
	PaymentID   string `json:"payment_id"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

// Checkout creates a hosted payment session for a listing. The local
// payment row is written only after the provider accepted the session, so
// there are never local rows for sessions that don't exist upstream.
func (uc *PaymentUseCase) Checkout(ctx context.Context, buyerID, listingID string) (*CheckoutResult, error) {
	if uc.rateLimiter != nil {
		allowed, wait := uc.rateLimiter.Allow(buyerID, "checkout")
		if !allowed {
			return nil, errors.TooManyRequests(fmt.Sprintf("Too many checkout attempts, retry in %s", wait.Round(time.Second)))
		}
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot buy your own listing", nil)
	}

	if listing.Status != entity.ListingStatusActive {
		return nil, errors.BadRequest("Listing is not available for purchase", nil)
	}

	gatewayPayment, err := uc.gateway.CreatePayment(ctx, service.CreatePaymentRequest{
		Amount:      listing.Price,
		Description: fmt.Sprintf("Henlo: %s", listing.Title),
		RedirectURL: fmt.Sprintf("%s/payments/return?listing=%s", uc.baseURL, listing.ID),
		WebhookURL:  fmt.Sprintf("%s/api/webhooks/mollie", uc.baseURL),
		Metadata: service.PaymentMetadata{
			ListingID: listing.ID,
			BuyerID:   buyerID,
			SellerID:  listing.SellerID,
		},
	})
	if err != nil {
		return nil, errors.PaymentProvider("Payment provider rejected the checkout", err)
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:        gatewayPayment.ID,
		ListingID: listing.ID,
		BuyerID:   buyerID,
		SellerID:  listing.SellerID,
		Amount:    listing.Price,
		Status:    gatewayPayment.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		logger.Error("Payment %s created at provider but not persisted: %v", gatewayPayment.ID, err)
		return nil, err
	}

	return &CheckoutResult{
		PaymentID:   payment.ID,
		CheckoutURL: gatewayPayment.CheckoutURL,
		Status:      payment.Status,
	}, nil
}

// HandleWebhook processes a provider notification. The notification body
// carries only the payment id; the status is re-fetched from the provider,
// which keeps forged or stale payloads harmless. Safe to run repeatedly
// for the same payment.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, paymentID string) error {
	gatewayPayment, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		logger.LogWebhookError(paymentID, err)
		return errors.PaymentProvider("Failed to fetch payment status", err)
	}

	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.LogWebhookError(paymentID, err)
			return err
		}
		// The provider knows a payment we never stored. Rebuild the row
		// from the session metadata rather than dropping the event.
		if gatewayPayment.Metadata.ListingID == "" {
			err := errors.BadRequest("Unknown payment without metadata", nil)
			logger.LogWebhookError(paymentID, err)
			return err
		}
		amount := gatewayPayment.Amount
		if amount == 0 {
			if listing, err := uc.listingRepo.GetByID(ctx, gatewayPayment.Metadata.ListingID); err == nil {
				amount = listing.Price
			}
		}
		now := time.Now()
		payment = &entity.Payment{
			ID:        gatewayPayment.ID,
			ListingID: gatewayPayment.Metadata.ListingID,
			BuyerID:   gatewayPayment.Metadata.BuyerID,
			SellerID:  gatewayPayment.Metadata.SellerID,
			Amount:    amount,
			Status:    gatewayPayment.Status,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.paymentRepo.Create(ctx, payment); err != nil {
			logger.LogWebhookError(paymentID, err)
			return err
		}
	}

	becamePaid := gatewayPayment.Status == entity.PaymentStatusPaid && payment.Status != entity.PaymentStatusPaid

	payment.Status = gatewayPayment.Status
	payment.UpdatedAt = time.Now()
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		logger.LogWebhookError(paymentID, err)
		return err
	}

	if gatewayPayment.Status == entity.PaymentStatusPaid {
		// MarkSold is idempotent, so a replayed paid webhook is harmless.
		if err := uc.listingRepo.MarkSold(ctx, payment.ListingID); err != nil {
			logger.LogWebhookError(paymentID, err)
			return err
		}
	}

	if becamePaid {
		uc.recordSale(payment.SellerID)
	}

	return nil
}

// recordSale bumps the seller's sale counter once per payment that
// reaches paid.
func (uc *PaymentUseCase) recordSale(sellerID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		seller, err := uc.userRepo.GetByID(ctx, sellerID)
		if err != nil {
			logger.Error("Failed to load seller %s for sale count: %v", sellerID, err)
			return
		}
		seller.SaleCount++
		if err := uc.userRepo.Update(ctx, seller); err != nil {
			logger.Error("Failed to update sale count for %s: %v", sellerID, err)
		}
	}()
}

// GetPayment returns a payment to its buyer or seller only.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, userID, paymentID string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.BuyerID != userID && payment.SellerID != userID {
		return nil, errors.Forbidden("You don't have access to this payment", nil)
	}

	return payment, nil
}

func (uc *PaymentUseCase) ListMyPayments(ctx context.Context, buyerID string, page, limit int) ([]*entity.Payment, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.paymentRepo.ListByBuyerID(ctx, buyerID, limit, offset)
}
