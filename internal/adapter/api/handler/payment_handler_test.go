package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/internal/domain/service"
	"github.com/Mattyonemillion/henlo/internal/usecase"
	"github.com/Mattyonemillion/henlo/pkg/errors"
)

type webhookPaymentRepo struct {
	payment *entity.Payment
}

func (r *webhookPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.payment = payment
	return nil
}

func (r *webhookPaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	if r.payment == nil || r.payment.ID != id {
		return nil, errors.NotFound("Payment not found", nil)
	}
	return r.payment, nil
}

func (r *webhookPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.payment = payment
	return nil
}

func (r *webhookPaymentRepo) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Payment, int64, error) {
	return nil, 0, nil
}

func (r *webhookPaymentRepo) GetPaidByListingID(ctx context.Context, listingID string) (*entity.Payment, error) {
	return nil, errors.NotFound("Payment not found", nil)
}

type webhookGateway struct {
	payment *service.GatewayPayment
}

func (g *webhookGateway) CreatePayment(ctx context.Context, req service.CreatePaymentRequest) (*service.GatewayPayment, error) {
	return g.payment, nil
}

func (g *webhookGateway) GetPayment(ctx context.Context, id string) (*service.GatewayPayment, error) {
	return g.payment, nil
}

type webhookListingRepo struct{}

func (webhookListingRepo) Create(ctx context.Context, listing *entity.Listing) error  { return nil }
func (webhookListingRepo) Update(ctx context.Context, listing *entity.Listing) error  { return nil }
func (webhookListingRepo) Delete(ctx context.Context, id string) error                { return nil }
func (webhookListingRepo) IncrementViews(ctx context.Context, id string) error        { return nil }
func (webhookListingRepo) MarkSold(ctx context.Context, id string) error              { return nil }
func (webhookListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	return nil, errors.NotFound("Listing not found", nil)
}
func (webhookListingRepo) GetBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	return nil, errors.NotFound("Listing not found", nil)
}
func (webhookListingRepo) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	return nil, 0, nil
}
func (webhookListingRepo) ListBySellerID(ctx context.Context, sellerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	return nil, 0, nil
}

type webhookUserRepo struct{}

func (webhookUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (webhookUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (webhookUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return &entity.User{ID: id}, nil
}
func (webhookUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User not found", nil)
}
func (webhookUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, errors.NotFound("User not found", nil)
}

// A processed notification is acknowledged with {"received": true}, the
// body the provider's integration checks expect.
func TestMollieWebhookAcknowledgesWithReceivedBody(t *testing.T) {
	paymentRepo := &webhookPaymentRepo{payment: &entity.Payment{
		ID:        "tr_abc",
		ListingID: "l1",
		BuyerID:   "buyer",
		SellerID:  "seller",
		Status:    entity.PaymentStatusPending,
	}}
	gateway := &webhookGateway{payment: &service.GatewayPayment{
		ID:     "tr_abc",
		Status: entity.PaymentStatusPending,
	}}

	uc := usecase.NewPaymentUseCase(paymentRepo, webhookListingRepo{}, webhookUserRepo{}, gateway, nil, "https://henlo.nl")
	h := NewPaymentHandler(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mollie", strings.NewReader("id=tr_abc"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.MollieWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received": true}`, rec.Body.String())
}

// A webhook body without a payment id is rejected before any processing.
func TestMollieWebhookRequiresPaymentID(t *testing.T) {
	h := NewPaymentHandler(nil)

	cases := []struct {
		name        string
		body        string
		contentType string
	}{
		{"empty body", "", echo.MIMEApplicationForm},
		{"form without id", "other=value", echo.MIMEApplicationForm},
		{"json without id", `{"other":"value"}`, echo.MIMEApplicationJSON},
		{"malformed json", `{not json`, echo.MIMEApplicationJSON},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mollie", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, tc.contentType)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			require.NoError(t, h.MollieWebhook(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}
