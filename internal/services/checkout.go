package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/google/uuid"
)

// CheckoutAssembler freezes a priced selection into an OrderIntent.
type CheckoutAssembler struct {
	pricing *PricingCalculator
	now     func() time.Time
}

func NewCheckoutAssembler(pricing *PricingCalculator) *CheckoutAssembler {
	return &CheckoutAssembler{pricing: pricing, now: time.Now}
}

func (a *CheckoutAssembler) Assemble(userID uuid.UUID, selection []models.CartLine, coupon *models.Coupon) (*models.OrderIntent, error) {
	if len(selection) == 0 {
		return nil, errors.EmptySelectionError()
	}

	snap := a.pricing.Price(selection, coupon)

	lines := make([]models.OrderIntentLine, len(selection))
	for i, line := range selection {
		lines[i] = models.OrderIntentLine{
			CartID:    line.CartID,
			SKU:       line.SKU,
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  snap.Lines[i].Subtotal,
			Discount:  snap.Lines[i].Discount,
		}
	}

	intent := &models.OrderIntent{
		ID:            uuid.New(),
		UserID:        userID,
		Lines:         lines,
		Subtotal:      snap.Subtotal,
		Discount:      snap.Discount,
		FinalTotal:    snap.FinalTotal,
		TotalQuantity: snap.TotalQuantity,
		CreatedAt:     a.now().UTC(),
	}

	if coupon != nil {
		intent.Coupon = &models.CouponRef{ID: coupon.ID, Code: coupon.Code}
	}

	return intent, nil
}

// Payload converts an intent into the order-creation request.
func Payload(intent *models.OrderIntent, orderID uuid.UUID, shipping models.ShippingAddress, method models.PaymentMethod) *models.CreateOrderPayload {
	items := make([]models.OrderItemPayload, len(intent.Lines))
	for i, line := range intent.Lines {
		items[i] = models.OrderItemPayload{
			SKU:       line.SKU,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			CartID:    line.CartID,
		}
	}

	payload := &models.CreateOrderPayload{
		OrderID:       orderID,
		UserID:        intent.UserID,
		Items:         items,
		Shipping:      shipping,
		PaymentMethod: method,
		Subtotal:      intent.Subtotal,
		Discount:      intent.Discount,
		FinalTotal:    intent.FinalTotal,
	}

	if intent.Coupon != nil {
		id := intent.Coupon.ID
		payload.UserCouponsID = &id
	}

	return payload
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*models.OrderIntent, error)
}

type checkoutService struct {
	sessions  *SessionManager
	assembler *CheckoutAssembler
}

func NewCheckoutService(sessions *SessionManager, assembler *CheckoutAssembler) CheckoutService {
	return &checkoutService{sessions: sessions, assembler: assembler}
}

// Checkout freezes the current selection into the session's pending intent.
// The applied coupon is re-checked first: a coupon that expired while the
// cart sat idle is dropped and the error returned so the shopper can review.
func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID) (*models.OrderIntent, error) {
	logger := middleware.LoggerFromContext(ctx)

	sess, err := s.sessions.acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	// a flash-sale window may have opened or closed since the last recompute
	repriced := sess.reprice()
	selection := sess.state.Selected()

	if sess.coupon != nil {
		if err := sess.validator.Recheck(sess.coupon, selection); err != nil {
			sess.notice = noticeFor(sess.coupon.Code, err)
			sess.coupon = nil
			sess.couponGen++
			sess.recompute()

			return nil, err
		}
	}

	if repriced {
		sess.snapshot = sess.pricing.Price(selection, sess.coupon)
	}

	intent, err := s.assembler.Assemble(userID, selection, sess.coupon)
	if err != nil {
		return nil, err
	}

	sess.intent = intent
	metrics.IncCheckoutIntents()

	logger.Info("Order intent assembled",
		slog.String("intent_id", intent.ID.String()),
		slog.Int("lines", len(intent.Lines)),
		slog.Int64("final_total", intent.FinalTotal.Int64()))

	return intent.Clone(), nil
}
