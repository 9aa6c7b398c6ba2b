package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/stripe"
	stripeSDK "github.com/stripe/stripe-go/v81"
)

type PaymentService interface {
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripeSDK.Event, error)
}

type paymentService struct {
	orders       repository.OrderRepository
	stripeClient stripe.Client
}

func NewPaymentService(orders repository.OrderRepository, stripeClient stripe.Client) PaymentService {
	return &paymentService{orders: orders, stripeClient: stripeClient}
}

var webhookStatuses = map[stripeSDK.EventType]models.OrderStatus{
	stripeSDK.EventTypePaymentIntentSucceeded:     models.OrderStatusPaid,
	stripeSDK.EventTypePaymentIntentPaymentFailed: models.OrderStatusPaymentFailed,
}

// ProcessWebhook settles the payment status of card orders. Events other
// than payment intent success or failure are acknowledged and ignored.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripeSDK.Event, error) {
	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return stripeSDK.Event{}, errors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	status, ok := webhookStatuses[event.Type]
	if !ok {
		logger.Debug("Ignoring webhook event", slog.String("type", string(event.Type)))

		return event, nil
	}

	paymentIntentID, _ := event.Data.Object["id"].(string)
	if paymentIntentID == "" {
		return event, errors.BadRequestError("Missing payment intent ID in webhook")
	}

	if err := s.orders.UpdatePaymentStatus(ctx, paymentIntentID, status); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			// already settled, or an intent this service never opened
			logger.Warn("No pending order for payment intent", slog.String("paymentIntentId", paymentIntentID))

			return event, nil
		}

		return event, errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	logger.Info("Order payment settled",
		slog.String("paymentIntentId", paymentIntentID),
		slog.String("status", string(status)))

	return event, nil
}
