package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
)

// MockClient is a mock type for the Client type.
type MockClient struct {
	mock.Mock
}

func (_m *MockClient) CreatePaymentIntent(ctx context.Context, amount int64, currency string, orderID string) (*stripe.PaymentIntent, error) {
	ret := _m.Called(ctx, amount, currency, orderID)

	var r0 *stripe.PaymentIntent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*stripe.PaymentIntent)
	}

	return r0, ret.Error(1)
}

func (_m *MockClient) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	ret := _m.Called(payload, signature)

	return ret.Get(0).(stripe.Event), ret.Error(1)
}

func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
