package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCache is a mock type for the Cache type.
type MockCache struct {
	mock.Mock
}

func (_m *MockCache) Get(ctx context.Context, key string, value any) (bool, error) {
	ret := _m.Called(ctx, key, value)

	return ret.Bool(0), ret.Error(1)
}

func (_m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	ret := _m.Called(ctx, key, value, ttl)

	return ret.Error(0)
}

func (_m *MockCache) Delete(ctx context.Context, keys ...string) error {
	ret := _m.Called(ctx, keys)

	return ret.Error(0)
}

func (_m *MockCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	ret := _m.Called(ctx, prefix)

	return ret.Int(0), ret.Error(1)
}

func (_m *MockCache) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

func NewMockCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
