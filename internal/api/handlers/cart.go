package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService   service.CartService
	couponService service.CouponService
	validator     *validator.Validate
}

func NewCartHandler(cartService service.CartService, couponService service.CouponService) *CartHandler {
	return &CartHandler{cartService: cartService, couponService: couponService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the shopper's cart
//	@Description	Loads the cart session on first use and returns lines, selection, pricing and the applied coupon.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView			"Current cart view"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Cart service error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "get_cart")
		if !ok {
			return
		}

		view, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// UpdateQuantity godoc
//	@Summary		Change a line's quantity
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Cart line ID"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.CartView					"Updated cart view"
//	@Failure		400			{object}	response.ErrorResponse			"Quantity below 1 or invalid body"
//	@Failure		404			{object}	response.ErrorResponse			"Line not in cart"
//	@Failure		409			{object}	response.ErrorResponse			"Not enough stock"
//	@Failure		422			{object}	response.ErrorResponse			"Product inactive"
//	@Security		BearerAuth
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "update_quantity")
		if !ok {
			return
		}

		cartID := r.PathValue("id")

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input", slog.String("cartID", cartID))

			return
		}

		view, err := h.cartService.SetQuantity(r.Context(), claims.UserID, cartID, *req.Quantity)
		if err != nil {
			logger.Warn("Quantity change rejected", slog.String("cartID", cartID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Quantity updated", slog.String("cartID", cartID), slog.Int("quantity", *req.Quantity))
		response.Success(w, http.StatusOK, view)
	}
}

// RemoveItem godoc
//	@Summary	Remove a line from the cart
//	@Tags		Cart
//	@Produce	json
//	@Param		id	path		string					true	"Cart line ID"
//	@Success	200	{object}	models.CartView			"Updated cart view"
//	@Failure	500	{object}	response.ErrorResponse	"Cart service error"
//	@Security	BearerAuth
//	@Router		/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "remove_item")
		if !ok {
			return
		}

		cartID := r.PathValue("id")

		view, err := h.cartService.RemoveLine(r.Context(), claims.UserID, cartID)
		if err != nil {
			logger.Error("Failed to remove line", slog.String("cartID", cartID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Line removed", slog.String("cartID", cartID))
		response.Success(w, http.StatusOK, view)
	}
}

// ToggleItem godoc
//	@Summary	Select or deselect a line for checkout
//	@Tags		Cart
//	@Produce	json
//	@Param		id	path		string					true	"Cart line ID"
//	@Success	200	{object}	models.CartView			"Updated cart view"
//	@Failure	404	{object}	response.ErrorResponse	"Line not in cart"
//	@Failure	422	{object}	response.ErrorResponse	"Line cannot be selected"
//	@Security	BearerAuth
//	@Router		/cart/items/{id}/toggle [post]
func (h *CartHandler) ToggleItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "toggle_item")
		if !ok {
			return
		}

		cartID := r.PathValue("id")

		view, err := h.cartService.ToggleSelect(r.Context(), claims.UserID, cartID)
		if err != nil {
			logger.Warn("Selection toggle rejected", slog.String("cartID", cartID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SelectAll godoc
//	@Summary	Select every selectable line
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.CartView	"Updated cart view"
//	@Security	BearerAuth
//	@Router		/cart/selection [post]
func (h *CartHandler) SelectAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "select_all")
		if !ok {
			return
		}

		view, err := h.cartService.SelectAll(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to select all lines", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// ClearSelection godoc
//	@Summary	Deselect every line
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.CartView	"Updated cart view"
//	@Security	BearerAuth
//	@Router		/cart/selection [delete]
func (h *CartHandler) ClearSelection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "clear_selection")
		if !ok {
			return
		}

		view, err := h.cartService.ClearAll(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to clear selection", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// ApplyCoupon godoc
//	@Summary		Apply a coupon code to the selection
//	@Description	Validates the code against the selected lines. A rejected code leaves the previously applied coupon in place.
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Param			coupon	body		models.ApplyCouponRequest	true	"Coupon code"
//	@Success		200		{object}	models.CartView				"Cart view with the discount applied"
//	@Failure		404		{object}	response.ErrorResponse		"Unknown or inactive code"
//	@Failure		409		{object}	response.ErrorResponse		"Superseded by a newer request"
//	@Failure		422		{object}	response.ErrorResponse		"Coupon conditions not met"
//	@Failure		429		{object}	response.ErrorResponse		"Too many attempts"
//	@Failure		503		{object}	response.ErrorResponse		"Coupon service unavailable"
//	@Security		BearerAuth
//	@Router			/cart/coupon [post]
func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "apply_coupon")
		if !ok {
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid apply coupon input")

			return
		}

		view, err := h.couponService.ApplyCoupon(r.Context(), claims.UserID, req.Code)
		if err != nil {
			if appErr, ok := errors.IsAppError(err); ok && errors.KindOf(appErr.Code) == errors.KindCoupon {
				logger.Info("Coupon not applied", slog.String("reason", appErr.Code))
			} else {
				logger.Error("Failed to apply coupon", slog.String("error", err.Error()))
			}

			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// RemoveCoupon godoc
//	@Summary	Remove the applied coupon
//	@Tags		Coupons
//	@Produce	json
//	@Success	200	{object}	models.CartView	"Cart view without a coupon"
//	@Security	BearerAuth
//	@Router		/cart/coupon [delete]
func (h *CartHandler) RemoveCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "remove_coupon")
		if !ok {
			return
		}

		view, err := h.couponService.RemoveCoupon(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to remove coupon", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// EndSession godoc
//	@Summary		End the cart session
//	@Description	Saves the current selection and releases the in-memory session.
//	@Tags			Cart
//	@Success		204
//	@Failure		500	{object}	response.ErrorResponse	"Selection could not be saved"
//	@Security		BearerAuth
//	@Router			/session [delete]
func (h *CartHandler) EndSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := shopper(w, r, "end_session")
		if !ok {
			return
		}

		if err := h.cartService.EndSession(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to end session", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Cart session ended")
		w.WriteHeader(http.StatusNoContent)
	}
}
