package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/pkg/logger"
)

// MolliePaymentService talks to the Mollie v2 HTTP API. Mollie hosts the
// checkout page itself; this service never sees card data.
type MolliePaymentService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewMolliePaymentService(apiKey string) *MolliePaymentService {
	return &MolliePaymentService{
		apiKey:     apiKey,
		baseURL:    "https://api.mollie.com/v2",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type mollieAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

type mollieCreatePaymentRequest struct {
	Amount      mollieAmount    `json:"amount"`
	Description string          `json:"description"`
	RedirectURL string          `json:"redirectUrl"`
	WebhookURL  string          `json:"webhookUrl"`
	Metadata    PaymentMetadata `json:"metadata"`
}

type molliePaymentResponse struct {
	ID       string          `json:"id"`
	Status   string          `json:"status"`
	Amount   mollieAmount    `json:"amount"`
	Metadata PaymentMetadata `json:"metadata"`
	Links    struct {
		Checkout struct {
			Href string `json:"href"`
		} `json:"checkout"`
	} `json:"_links"`
}

// amountValue parses Mollie's decimal-string amount. A missing or
// malformed value comes back as zero.
func (p *molliePaymentResponse) amountValue() float64 {
	value, err := strconv.ParseFloat(p.Amount.Value, 64)
	if err != nil {
		return 0
	}
	return value
}

func (s *MolliePaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*GatewayPayment, error) {
	body := mollieCreatePaymentRequest{
		Amount: mollieAmount{
			Currency: "EUR",
			// Mollie requires exactly two decimal places.
			Value: fmt.Sprintf("%.2f", req.Amount),
		},
		Description: req.Description,
		RedirectURL: req.RedirectURL,
		WebhookURL:  req.WebhookURL,
		Metadata:    req.Metadata,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/payments", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		logger.Warn("Mollie create payment error: status=%d body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("mollie API error: %s", string(respBody))
	}

	var payment molliePaymentResponse
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	logger.Info("Mollie payment created: %s (%.2f EUR)", payment.ID, req.Amount)

	return &GatewayPayment{
		ID:          payment.ID,
		Status:      mapMollieStatus(payment.Status),
		Amount:      payment.amountValue(),
		CheckoutURL: payment.Links.Checkout.Href,
		Metadata:    payment.Metadata,
	}, nil
}

func (s *MolliePaymentService) GetPayment(ctx context.Context, id string) (*GatewayPayment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/payments/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Mollie get payment error: status=%d body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("mollie API error: %s", string(respBody))
	}

	var payment molliePaymentResponse
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &GatewayPayment{
		ID:          payment.ID,
		Status:      mapMollieStatus(payment.Status),
		Amount:      payment.amountValue(),
		CheckoutURL: payment.Links.Checkout.Href,
		Metadata:    payment.Metadata,
	}, nil
}

// mapMollieStatus converts Mollie's payment statuses to the local
// vocabulary. Mollie's "open" and "authorized" are not yet settled, so both
// map to pending; anything unknown defaults to pending rather than inventing
// a terminal state.
func mapMollieStatus(status string) string {
	switch status {
	case "paid":
		return entity.PaymentStatusPaid
	case "failed":
		return entity.PaymentStatusFailed
	case "canceled":
		return entity.PaymentStatusCanceled
	case "expired":
		return entity.PaymentStatusExpired
	case "open", "pending", "authorized":
		return entity.PaymentStatusPending
	default:
		logger.Warn("Unknown Mollie payment status %q, treating as pending", status)
		return entity.PaymentStatusPending
	}
}
