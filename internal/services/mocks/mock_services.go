package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func cartView(ret mock.Arguments) *models.CartView {
	if v := ret.Get(0); v != nil {
		return v.(*models.CartView)
	}

	return nil
}

// MockCartService is a mock type for the CartService type.
type MockCartService struct {
	mock.Mock
}

func (_m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	ret := _m.Called(ctx, userID)

	return cartView(ret), ret.Error(1)
}

func (_m *MockCartService) SetQuantity(ctx context.Context, userID uuid.UUID, cartID string, quantity int) (*models.CartView, error) {
	ret := _m.Called(ctx, userID, cartID, quantity)

	return cartView(ret), ret.Error(1)
}

func (_m *MockCartService) RemoveLine(ctx context.Context, userID uuid.UUID, cartID string) (*models.CartView, error) {
	ret := _m.Called(ctx, userID, cartID)

	return cartView(ret), ret.Error(1)
}

func (_m *MockCartService) ToggleSelect(ctx context.Context, userID uuid.UUID, cartID string) (*models.CartView, error) {
	ret := _m.Called(ctx, userID, cartID)

	return cartView(ret), ret.Error(1)
}

func (_m *MockCartService) SelectAll(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	ret := _m.Called(ctx, userID)

	return cartView(ret), ret.Error(1)
}

func (_m *MockCartService) ClearAll(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	ret := _m.Called(ctx, userID)

	return cartView(ret), ret.Error(1)
}

func (_m *MockCartService) EndSession(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)

	return ret.Error(0)
}

func NewMockCartService(t testingT) *MockCartService {
	m := &MockCartService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockCouponService is a mock type for the CouponService type.
type MockCouponService struct {
	mock.Mock
}

func (_m *MockCouponService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*models.CartView, error) {
	ret := _m.Called(ctx, userID, code)

	return cartView(ret), ret.Error(1)
}

func (_m *MockCouponService) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	ret := _m.Called(ctx, userID)

	return cartView(ret), ret.Error(1)
}

func NewMockCouponService(t testingT) *MockCouponService {
	m := &MockCouponService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockCheckoutService is a mock type for the CheckoutService type.
type MockCheckoutService struct {
	mock.Mock
}

func (_m *MockCheckoutService) Checkout(ctx context.Context, userID uuid.UUID) (*models.OrderIntent, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.OrderIntent
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.OrderIntent)
	}

	return r0, ret.Error(1)
}

func NewMockCheckoutService(t testingT) *MockCheckoutService {
	m := &MockCheckoutService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockOrderService is a mock type for the OrderService type.
type MockOrderService struct {
	mock.Mock
}

func (_m *MockOrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, email string, req *models.PlaceOrderRequest) (*models.OrderConfirmation, error) {
	ret := _m.Called(ctx, userID, email, req)

	var r0 *models.OrderConfirmation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.OrderConfirmation)
	}

	return r0, ret.Error(1)
}

func NewMockOrderService(t testingT) *MockOrderService {
	m := &MockOrderService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockCatalogService is a mock type for the CatalogService type.
type MockCatalogService struct {
	mock.Mock
}

func (_m *MockCatalogService) FlashSaleState(ctx context.Context) models.FlashSaleState {
	ret := _m.Called(ctx)

	return ret.Get(0).(models.FlashSaleState)
}

func (_m *MockCatalogService) FlashSaleGrid(ctx context.Context, page int, size int) (*models.FlashSaleGrid, error) {
	ret := _m.Called(ctx, page, size)

	var r0 *models.FlashSaleGrid
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.FlashSaleGrid)
	}

	return r0, ret.Error(1)
}

func (_m *MockCatalogService) ProductPrice(ctx context.Context, productID uuid.UUID) (*models.PricedProduct, error) {
	ret := _m.Called(ctx, productID)

	var r0 *models.PricedProduct
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PricedProduct)
	}

	return r0, ret.Error(1)
}

func NewMockCatalogService(t testingT) *MockCatalogService {
	m := &MockCatalogService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockPaymentService is a mock type for the PaymentService type.
type MockPaymentService struct {
	mock.Mock
}

func (_m *MockPaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	ret := _m.Called(ctx, payload, signature)

	return ret.Get(0).(stripe.Event), ret.Error(1)
}

func NewMockPaymentService(t testingT) *MockPaymentService {
	m := &MockPaymentService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
