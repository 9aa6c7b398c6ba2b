package stripe

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Client opens payment intents for card orders. Amounts are integer minor
// units of the order currency, which is what Stripe expects.
type Client interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string, orderID string) (*stripe.PaymentIntent, error)
	VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error)
}

type stripeClient struct {
	intents       *paymentintent.Client
	webhookSecret string
}

func NewStripeClient(apiKey, webhookSecret string) Client {
	return NewStripeClientWithBackend(apiKey, webhookSecret, stripe.GetBackend(stripe.APIBackend))
}

// NewStripeClientWithBackend points the client at a specific API backend.
func NewStripeClientWithBackend(apiKey, webhookSecret string, backend stripe.Backend) Client {
	return &stripeClient{
		intents:       &paymentintent.Client{B: backend, Key: apiKey},
		webhookSecret: webhookSecret,
	}
}

// CreatePaymentIntent is idempotent per order, so a retried placement never
// opens a second intent.
func (s *stripeClient) CreatePaymentIntent(ctx context.Context, amount int64, currency string, orderID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String("Order " + orderID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("order-" + orderID)
	params.AddMetadata("order_id", orderID)

	return s.intents.New(params)
}

// VerifyWebhookSignature checks the Stripe-Signature header against the
// endpoint secret and decodes the event. Events from dashboards pinned to an
// older API version are accepted; only the payment intent ID is read.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
