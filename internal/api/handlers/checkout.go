package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService, orderService service.OrderService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, orderService: orderService, validator: validator.New()}
}

// Checkout godoc
//	@Summary		Start checkout
//	@Description	Freezes the selected lines, their prices and the applied coupon into an order intent. Any later cart change invalidates it.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	models.OrderIntent		"Order intent for the current selection"
//	@Failure		400	{object}	response.ErrorResponse	"Nothing selected"
//	@Failure		422	{object}	response.ErrorResponse	"Applied coupon no longer valid"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "checkout")
		if !ok {
			return
		}

		intent, err := h.checkoutService.Checkout(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Checkout rejected", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout started", slog.String("intentId", intent.ID.String()))
		response.Success(w, http.StatusCreated, intent)
	}
}

// PlaceOrder godoc
//	@Summary		Place the pending order
//	@Description	Submits the latest order intent with shipping details. Card orders return a Stripe client secret.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.PlaceOrderRequest	true	"Intent ID, shipping and payment method"
//	@Success		201		{object}	models.OrderConfirmation	"Order placed"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		409		{object}	response.ErrorResponse		"Intent stale or stock changed"
//	@Failure		502		{object}	response.ErrorResponse		"Payment provider error, order ID in details"
//	@Failure		503		{object}	response.ErrorResponse		"Order service unavailable"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "place_order")
		if !ok {
			return
		}

		var req models.PlaceOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid place order input")

			return
		}

		confirmation, err := h.orderService.PlaceOrder(r.Context(), claims.UserID, claims.Email, &req)
		if err != nil {
			logger.Error("Failed to place order", slog.String("intentId", req.IntentID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed successfully", slog.String("orderId", confirmation.OrderID.String()))
		response.Success(w, http.StatusCreated, confirmation)
	}
}
