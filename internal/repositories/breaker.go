package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/config"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/sony/gobreaker/v2"
)

// BreakerSettings trips after FailureThreshold consecutive infrastructure
// failures. Business outcomes (unknown or malformed coupon, stock conflicts)
// never count.
func BreakerSettings(name string, cfg config.Breaker, onChange func(name string, from, to gobreaker.State)) gobreaker.Settings {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))

			if onChange != nil {
				onChange(name, from, to)
			}
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, sql.ErrNoRows) ||
				errors.Is(err, ErrStockChanged) ||
				errors.Is(err, ErrCouponUnavailable) ||
				errors.Is(err, models.ErrInvalidDiscount) ||
				errors.Is(err, context.Canceled)
		},
	}
}

type breakerCouponRepository struct {
	next CouponRepository
	cb   *gobreaker.CircuitBreaker[*models.Coupon]
}

// NewBreakerCouponRepo guards coupon lookups; an open breaker fails fast with gobreaker.ErrOpenState.
func NewBreakerCouponRepo(next CouponRepository, st gobreaker.Settings) CouponRepository {
	return &breakerCouponRepository{next: next, cb: gobreaker.NewCircuitBreaker[*models.Coupon](st)}
}

func (r *breakerCouponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return r.cb.Execute(func() (*models.Coupon, error) {
		return r.next.GetCouponByCode(ctx, code)
	})
}

type breakerOrderRepository struct {
	next OrderRepository
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerOrderRepo(next OrderRepository, st gobreaker.Settings) OrderRepository {
	return &breakerOrderRepository{next: next, cb: gobreaker.NewCircuitBreaker[struct{}](st)}
}

func (r *breakerOrderRepository) CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) error {
	_, err := r.cb.Execute(func() (struct{}, error) {
		return struct{}{}, r.next.CreateOrder(ctx, payload)
	})

	return err
}

func (r *breakerOrderRepository) UpdatePaymentStatus(ctx context.Context, paymentIntentID string, status models.OrderStatus) error {
	_, err := r.cb.Execute(func() (struct{}, error) {
		return struct{}{}, r.next.UpdatePaymentStatus(ctx, paymentIntentID, status)
	})

	return err
}

func (r *breakerOrderRepository) SetPaymentIntent(ctx context.Context, orderID string, paymentIntentID string) error {
	_, err := r.cb.Execute(func() (struct{}, error) {
		return struct{}{}, r.next.SetPaymentIntent(ctx, orderID, paymentIntentID)
	})

	return err
}

// IsUnavailable reports whether err came from an open or saturated breaker.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
