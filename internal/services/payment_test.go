package service_test

import (
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/apparel-storefront/internal/services"
	stripeMocks "github.com/aaravmahajanofficial/apparel-storefront/pkg/stripe/mocks"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

func paymentEvent(eventType stripe.EventType, paymentIntentID string) stripe.Event {
	return stripe.Event{
		ID:   "evt_1",
		Type: eventType,
		Data: &stripe.EventData{Object: map[string]any{"id": paymentIntentID}},
	}
}

func TestPaymentService_ProcessWebhook(t *testing.T) {
	payload := []byte(`{}`)

	tests := []struct {
		name       string
		event      stripe.Event
		verifyErr  error
		status     models.OrderStatus
		repoErr    error
		expectCode string
	}{
		{
			name:   "Success - Payment succeeded marks order paid",
			event:  paymentEvent(stripe.EventTypePaymentIntentSucceeded, "pi_1"),
			status: models.OrderStatusPaid,
		},
		{
			name:   "Success - Payment failed marks order",
			event:  paymentEvent(stripe.EventTypePaymentIntentPaymentFailed, "pi_1"),
			status: models.OrderStatusPaymentFailed,
		},
		{
			name:  "Success - Unrelated event is ignored",
			event: paymentEvent("customer.created", "cus_1"),
		},
		{
			name:    "Success - Replayed event for a settled order",
			event:   paymentEvent(stripe.EventTypePaymentIntentSucceeded, "pi_1"),
			status:  models.OrderStatusPaid,
			repoErr: sql.ErrNoRows,
		},
		{
			name:       "Failure - Bad signature",
			verifyErr:  errors.New("no valid signature"),
			expectCode: appErrors.ErrCodeBadRequest,
		},
		{
			name:       "Failure - Event without payment intent",
			event:      paymentEvent(stripe.EventTypePaymentIntentSucceeded, ""),
			expectCode: appErrors.ErrCodeBadRequest,
		},
		{
			name:       "Failure - Order store unavailable",
			event:      paymentEvent(stripe.EventTypePaymentIntentSucceeded, "pi_1"),
			status:     models.OrderStatusPaid,
			repoErr:    gobreaker.ErrOpenState,
			expectCode: appErrors.ErrCodeDatabaseError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			orders := mocks.NewMockOrderRepository(t)
			client := stripeMocks.NewMockClient(t)
			paymentService := service.NewPaymentService(orders, client)

			client.On("VerifyWebhookSignature", payload, "sig").Return(tc.event, tc.verifyErr).Once()
			if tc.status != "" {
				orders.On("UpdatePaymentStatus", mock.Anything, "pi_1", tc.status).Return(tc.repoErr).Once()
			}

			// Act
			_, err := paymentService.ProcessWebhook(t.Context(), payload, "sig")

			// Assert
			if tc.expectCode == "" {
				require.NoError(t, err)

				return
			}

			assert.True(t, appErrors.HasCode(err, tc.expectCode), "got %v", err)
		})
	}
}
