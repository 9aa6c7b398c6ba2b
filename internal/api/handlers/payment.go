package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils/response"
)

// maxWebhookBytes matches the payload ceiling Stripe documents for events.
const maxWebhookBytes = 65536

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// HandleStripeWebhook godoc
//	@Summary		Stripe webhook
//	@Description	Receives payment intent events from Stripe and settles the matching card order.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string					true	"Stripe signature header"
//	@Success		200					{object}	map[string]bool			"Event processed"
//	@Failure		400					{object}	response.ErrorResponse	"Missing or invalid signature"
//	@Failure		500					{object}	response.ErrorResponse	"Order store error"
//	@Router			/payments/webhook [post]
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))

			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe Signature is required"))

			return
		}

		event, err := h.paymentService.ProcessWebhook(r.Context(), payload, signature)
		if err != nil {
			logger.Error("Failed to process payment webhook",
				slog.String("eventId", event.ID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payment webhook processed", slog.String("eventId", event.ID), slog.String("type", string(event.Type)))
		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}
