package mocks

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock type for the CartRepository type.
type MockCartRepository struct {
	mock.Mock
}

func (_m *MockCartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	ret := _m.Called(ctx, userID)

	var r0 []models.CartLine
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []models.CartLine); ok {
		r0 = rf(ctx, userID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.CartLine)
	}

	return r0, ret.Error(1)
}

func (_m *MockCartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, cartID string, quantity int) error {
	ret := _m.Called(ctx, userID, cartID, quantity)

	return ret.Error(0)
}

func (_m *MockCartRepository) RemoveLine(ctx context.Context, userID uuid.UUID, cartID string) error {
	ret := _m.Called(ctx, userID, cartID)

	return ret.Error(0)
}

func NewMockCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockCouponRepository is a mock type for the CouponRepository type.
type MockCouponRepository struct {
	mock.Mock
}

func (_m *MockCouponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	ret := _m.Called(ctx, code)

	var r0 *models.Coupon
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Coupon); ok {
		r0 = rf(ctx, code)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Coupon)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, code)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func NewMockCouponRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCouponRepository {
	m := &MockCouponRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockProductRepository is a mock type for the ProductRepository type.
type MockProductRepository struct {
	mock.Mock
}

func (_m *MockProductRepository) GetProductPrice(ctx context.Context, id uuid.UUID) (*models.ProductPrice, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.ProductPrice
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.ProductPrice)
	}

	return r0, ret.Error(1)
}

func (_m *MockProductRepository) ListFlashSaleProducts(ctx context.Context, page int, size int) ([]models.ProductPrice, int, error) {
	ret := _m.Called(ctx, page, size)

	var r0 []models.ProductPrice
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.ProductPrice)
	}

	return r0, ret.Int(1), ret.Error(2)
}

func NewMockProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockOrderRepository is a mock type for the OrderRepository type.
type MockOrderRepository struct {
	mock.Mock
}

func (_m *MockOrderRepository) CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) error {
	ret := _m.Called(ctx, payload)

	return ret.Error(0)
}

func (_m *MockOrderRepository) SetPaymentIntent(ctx context.Context, orderID string, paymentIntentID string) error {
	ret := _m.Called(ctx, orderID, paymentIntentID)

	return ret.Error(0)
}

func (_m *MockOrderRepository) UpdatePaymentStatus(ctx context.Context, paymentIntentID string, status models.OrderStatus) error {
	ret := _m.Called(ctx, paymentIntentID, status)

	return ret.Error(0)
}

func NewMockOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockSessionRepository is a mock type for the SessionRepository type.
type MockSessionRepository struct {
	mock.Mock
}

func (_m *MockSessionRepository) Load(ctx context.Context, userID uuid.UUID) (*models.SessionSnapshot, error) {
	ret := _m.Called(ctx, userID)

	var r0 *models.SessionSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.SessionSnapshot)
	}

	return r0, ret.Error(1)
}

func (_m *MockSessionRepository) Save(ctx context.Context, snapshot *models.SessionSnapshot) error {
	ret := _m.Called(ctx, snapshot)

	return ret.Error(0)
}

func (_m *MockSessionRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)

	return ret.Error(0)
}

func NewMockSessionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockAttemptLimiter is a mock type for the AttemptLimiter type.
type MockAttemptLimiter struct {
	mock.Mock
}

func (_m *MockAttemptLimiter) Allow(ctx context.Context, userID uuid.UUID) (bool, time.Duration, error) {
	ret := _m.Called(ctx, userID)

	return ret.Bool(0), ret.Get(1).(time.Duration), ret.Error(2)
}

func NewMockAttemptLimiter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAttemptLimiter {
	m := &MockAttemptLimiter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
