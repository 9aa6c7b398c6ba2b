package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/cache"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/sendgrid"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/stripe"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, email string, req *models.PlaceOrderRequest) (*models.OrderConfirmation, error)
}

type orderService struct {
	sessions *SessionManager
	orders   repository.OrderRepository
	carts    repository.CartRepository
	payments stripe.Client
	mailer   sendgrid.EmailService
	cache    cache.Cache
	currency money.Currency
	policy   *bluemonday.Policy
	tracer   trace.Tracer
	now      func() time.Time
}

// NewOrderService wires order placement. payments, mailer and cache may be
// nil: card orders are then refused, and email and cache steps are skipped.
func NewOrderService(sessions *SessionManager, orders repository.OrderRepository, carts repository.CartRepository,
	payments stripe.Client, mailer sendgrid.EmailService, c cache.Cache, currency money.Currency) OrderService {
	return &orderService{
		sessions: sessions,
		orders:   orders,
		carts:    carts,
		payments: payments,
		mailer:   mailer,
		cache:    c,
		currency: currency,
		policy:   bluemonday.StrictPolicy(),
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
}

// PlaceOrder submits the session's pending intent. The intent ID in the
// request must be the latest one assembled; anything else means the cart
// changed after checkout.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, email string, req *models.PlaceOrderRequest) (*models.OrderConfirmation, error) {
	logger := middleware.LoggerFromContext(ctx)

	ctx, span := s.tracer.Start(ctx, "order.place", trace.WithAttributes(
		attribute.String("order.intent_id", req.IntentID.String()),
		attribute.String("order.payment_method", string(req.PaymentMethod)),
	))
	defer span.End()

	confirmation, err := s.place(ctx, userID, email, req)
	metrics.ObserveOrderPlaced(resultOf(err))

	if err != nil {
		span.SetStatus(codes.Error, resultOf(err))
		logger.Warn("Order placement failed", slog.String("reason", resultOf(err)))

		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", confirmation.OrderID.String()))

	return confirmation, nil
}

func (s *orderService) place(ctx context.Context, userID uuid.UUID, email string, req *models.PlaceOrderRequest) (*models.OrderConfirmation, error) {
	logger := middleware.LoggerFromContext(ctx)

	if req.PaymentMethod == models.PaymentCard && s.payments == nil {
		return nil, errors.BadRequestError("Card payments are not available")
	}

	shipping, err := s.sanitize(req.Shipping)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.intent == nil || sess.intent.ID != req.IntentID {
		return nil, errors.IntentStaleError()
	}

	intent := sess.intent.Clone()
	orderID := uuid.New()

	if err := s.orders.CreateOrder(ctx, Payload(intent, orderID, shipping, req.PaymentMethod)); err != nil {
		return nil, s.rejected(ctx, sess, intent, err)
	}

	logger.Info("Order created",
		slog.String("order_id", orderID.String()),
		slog.Int64("final_total", intent.FinalTotal.Int64()))

	s.clearOrdered(sess, intent)
	s.invalidateProducts(ctx, intent)

	confirmation := &models.OrderConfirmation{
		OrderID:       orderID,
		IntentID:      intent.ID,
		FinalTotal:    intent.FinalTotal,
		DisplayTotal:  s.currency.Format(intent.FinalTotal),
		PaymentMethod: req.PaymentMethod,
		PlacedAt:      s.now().UTC(),
	}

	if req.PaymentMethod == models.PaymentCard {
		if err := s.attachPayment(ctx, confirmation); err != nil {
			return nil, err
		}
	}

	s.sendConfirmation(ctx, email, shipping, intent, confirmation)

	return confirmation, nil
}

// rejected maps an order-service failure. The session keeps its lines and
// coupon; a stock rejection refreshes the lines and drops the intent.
func (s *orderService) rejected(ctx context.Context, sess *Session, intent *models.OrderIntent, err error) error {
	logger := middleware.LoggerFromContext(ctx)

	switch {
	case stdErrors.Is(err, repository.ErrStockChanged):
		if lines, listErr := s.carts.ListLines(ctx, sess.userID); listErr == nil {
			sess.state.ReplaceLines(lines)
		} else {
			logger.Warn("Failed to refresh cart lines", slog.String("error", listErr.Error()))
		}

		sess.intent = nil

		return errors.StockChangedError("Some items changed since checkout, please review your cart").WithError(err)

	case stdErrors.Is(err, repository.ErrCouponUnavailable):
		code := ""
		if intent.Coupon != nil {
			code = intent.Coupon.Code
		}

		couponErr := errors.CouponUsageExhaustedError(code).WithError(err)
		sess.notice = noticeFor(code, couponErr)
		sess.coupon = nil
		sess.couponGen++
		sess.recompute()

		return couponErr

	case repository.IsUnavailable(err):
		return errors.ExternalServiceError("Order service is unavailable, please try again").WithError(err)

	default:
		logger.Error("Failed to create order", slog.String("error", err.Error()))

		return errors.DatabaseError("Failed to create order").WithError(err)
	}
}

// clearOrdered removes the ordered lines and the spent coupon from the session.
func (s *orderService) clearOrdered(sess *Session, intent *models.OrderIntent) {
	sess.coupon = nil
	sess.notice = nil
	sess.couponGen++

	for _, line := range intent.Lines {
		sess.state.RemoveLine(line.CartID)
	}

	sess.recompute()
}

// invalidateProducts drops cached feed records whose stock just changed.
func (s *orderService) invalidateProducts(ctx context.Context, intent *models.OrderIntent) {
	if s.cache == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx)

	keys := make([]string, 0, len(intent.Lines))
	seen := make(map[uuid.UUID]struct{}, len(intent.Lines))

	for _, line := range intent.Lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}

		seen[line.ProductID] = struct{}{}
		keys = append(keys, cache.Key(cache.ProductPriceKeyPrefix, line.ProductID.String()))
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("Failed to invalidate product cache", slog.String("error", err.Error()))
	}

	if _, err := s.cache.DeletePrefix(ctx, cache.FlashSalePageKeyPrefix); err != nil {
		logger.Warn("Failed to invalidate flash sale pages", slog.String("error", err.Error()))
	}
}

// attachPayment opens a Stripe payment intent for the order total. The order
// already exists at this point, so a Stripe failure is reported with the
// order ID for the shopper to retry payment.
func (s *orderService) attachPayment(ctx context.Context, confirmation *models.OrderConfirmation) error {
	logger := middleware.LoggerFromContext(ctx)
	orderID := confirmation.OrderID.String()

	pi, err := s.payments.CreatePaymentIntent(ctx, confirmation.FinalTotal.Int64(), s.currency.Code, orderID)
	if err != nil {
		logger.Error("Failed to create payment intent", slog.String("order_id", orderID), slog.String("error", err.Error()))

		return errors.ThirdPartyError("Failed to start card payment").WithDetail(orderID).WithError(err)
	}

	confirmation.PaymentIntent = pi.ID
	confirmation.ClientSecret = pi.ClientSecret

	if err := s.orders.SetPaymentIntent(ctx, orderID, pi.ID); err != nil {
		logger.Warn("Failed to record payment intent", slog.String("order_id", orderID), slog.String("error", err.Error()))
	}

	return nil
}

func (s *orderService) sendConfirmation(ctx context.Context, email string, shipping models.ShippingAddress, intent *models.OrderIntent, confirmation *models.OrderConfirmation) {
	if s.mailer == nil || email == "" {
		return
	}

	var text, rows strings.Builder

	for _, line := range intent.Lines {
		fmt.Fprintf(&text, "%d x %s  %s\n", line.Quantity, line.Name, s.currency.Format(line.Subtotal))
		fmt.Fprintf(&rows, "<tr><td>%d</td><td>%s</td><td>%s</td></tr>",
			line.Quantity, html.EscapeString(line.Name), html.EscapeString(s.currency.Format(line.Subtotal)))
	}

	fmt.Fprintf(&text, "Discount: %s\nTotal: %s\n", s.currency.Format(intent.Discount), confirmation.DisplayTotal)

	req := &models.EmailNotificationRequest{
		To:      email,
		ToName:  shipping.FullName,
		Subject: "Your order " + confirmation.OrderID.String() + " is confirmed",
		Content: text.String(),
		HTMLContent: fmt.Sprintf("<table>%s</table><p>Discount: %s</p><p><strong>Total: %s</strong></p>",
			rows.String(), html.EscapeString(s.currency.Format(intent.Discount)), html.EscapeString(confirmation.DisplayTotal)),
		Metadata: map[string]string{"order_id": confirmation.OrderID.String()},
	}

	if err := s.mailer.Send(ctx, req); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to send order confirmation",
			slog.String("order_id", confirmation.OrderID.String()),
			slog.String("error", err.Error()))
	}
}

// sanitize strips markup from the free-text shipping fields.
func (s *orderService) sanitize(in models.ShippingAddress) (models.ShippingAddress, error) {
	clean := func(v string) string {
		return strings.TrimSpace(s.policy.Sanitize(v))
	}

	out := models.ShippingAddress{
		FullName:   clean(in.FullName),
		Phone:      clean(in.Phone),
		Street:     clean(in.Street),
		Ward:       clean(in.Ward),
		District:   clean(in.District),
		City:       clean(in.City),
		Note:       clean(in.Note),
		PostalCode: clean(in.PostalCode),
	}

	required := []struct{ field, value string }{
		{"full_name", out.FullName},
		{"phone", out.Phone},
		{"street", out.Street},
		{"city", out.City},
	}

	for _, r := range required {
		if r.value == "" {
			return models.ShippingAddress{}, errors.AddValidationError("shipping."+r.field, "must not be empty")
		}
	}

	return out, nil
}
