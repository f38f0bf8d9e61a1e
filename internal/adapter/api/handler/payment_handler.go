package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mattyonemillion/henlo/internal/usecase"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/logger"
	"github.com/Mattyonemillion/henlo/pkg/response"
	"github.com/Mattyonemillion/henlo/pkg/utils"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) Checkout(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		ListingID string `json:"listing_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.paymentUseCase.Checkout(c.Request().Context(), uid, req.ListingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

// MollieWebhook receives payment status notifications. The body carries
// only the payment id (form-encoded by Mollie, JSON accepted for
// convenience); the handler answers non-2xx on processing failures so the
// provider retries.
func (h *PaymentHandler) MollieWebhook(c echo.Context) error {
	paymentID := c.FormValue("id")

	if paymentID == "" {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err == nil {
			paymentID = body.ID
		}
	}

	if paymentID == "" {
		return c.NoContent(http.StatusBadRequest)
	}

	logger.Info("Webhook received for payment %s", paymentID)

	if err := h.paymentUseCase.HandleWebhook(c.Request().Context(), paymentID); err != nil {
		return response.Error(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	uid := c.Get("uid").(string)

	payment, err := h.paymentUseCase.GetPayment(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) ListMyPayments(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	payments, total, err := h.paymentUseCase.ListMyPayments(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, payments, total, pagination.Page, pagination.PageSize)
}
