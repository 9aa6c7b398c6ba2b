package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const tracerName = "github.com/aaravmahajanofficial/apparel-storefront/internal/services"

type CouponService interface {
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*models.CartView, error)
	RemoveCoupon(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
}

type couponService struct {
	sessions  *SessionManager
	validator *CouponValidator
	limiter   repository.AttemptLimiter
	currency  money.Currency
	lookups   singleflight.Group
	tracer    trace.Tracer
}

func NewCouponService(sessions *SessionManager, validator *CouponValidator, limiter repository.AttemptLimiter, currency money.Currency) CouponService {
	return &couponService{
		sessions:  sessions,
		validator: validator,
		limiter:   limiter,
		currency:  currency,
		tracer:    otel.Tracer(tracerName),
	}
}

// ApplyCoupon validates code against the current selection. The lookup runs
// outside the session lock; when it returns, the result is kept only if no
// newer apply or remove happened meanwhile. A failed attempt leaves the
// previously applied coupon in place.
func (s *couponService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*models.CartView, error) {
	logger := middleware.LoggerFromContext(ctx)
	code = models.NormalizeCouponCode(code)

	if err := s.allow(ctx, userID); err != nil {
		metrics.ObserveCouponValidation(resultOf(err))

		return nil, err
	}

	sess, err := s.sessions.acquire(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.couponGen++
	gen := sess.couponGen
	selection := sess.state.Selected()
	selectedIDs := sess.state.SelectedIDs()
	sess.lookups++
	sess.mu.Unlock()

	coupon, err := s.lookup(ctx, userID, code, selection, selectedIDs)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lookups--

	// ended here means an explicit End ran while the lookup was out
	if sess.ended || sess.couponGen != gen {
		logger.Info("Discarding superseded coupon result", slog.String("code", code))
		metrics.ObserveCouponValidation(errors.ErrCodeCouponSuperseded)

		return nil, errors.CouponSupersededError(code)
	}

	// the cart may have changed while the lookup was in flight
	if err == nil {
		err = s.validator.Recheck(coupon, sess.state.Selected())
	}

	metrics.ObserveCouponValidation(resultOf(err))

	if err != nil {
		logger.Info("Coupon rejected", slog.String("code", code), slog.String("reason", resultOf(err)))

		return nil, err
	}

	sess.coupon = coupon
	sess.notice = nil
	sess.recompute()

	logger.Info("Coupon applied",
		slog.String("code", coupon.Code),
		slog.Int64("discount", sess.snapshot.Discount.Int64()))

	return sess.view(s.currency), nil
}

func (s *couponService) allow(ctx context.Context, userID uuid.UUID) error {
	if s.limiter == nil {
		return nil
	}

	allowed, retryAfter, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Coupon attempt limiter unavailable", slog.String("error", err.Error()))

		return nil
	}

	if !allowed {
		return errors.TooManyRequestsError("Too many coupon attempts, please try again later").
			WithDetail(fmt.Sprintf("retry after %s", retryAfter.Round(time.Second)))
	}

	return nil
}

// lookup shares one validation between identical submissions in flight.
func (s *couponService) lookup(ctx context.Context, userID uuid.UUID, code string, selection []models.CartLine, selectedIDs []string) (*models.Coupon, error) {
	ctx, span := s.tracer.Start(ctx, "coupon.validate", trace.WithAttributes(
		attribute.String("coupon.code", code),
		attribute.Int("cart.selected_lines", len(selection)),
	))
	defer span.End()

	key := userID.String() + "|" + code + "|" + strings.Join(selectedIDs, ",")

	// The shared validation runs detached from the caller that started it;
	// the validator's lookup timeout bounds it. Each caller waits on its own ctx.
	ch := s.lookups.DoChan(key, func() (any, error) {
		return s.validator.Validate(context.WithoutCancel(ctx), code, selection)
	})

	var res singleflight.Result

	select {
	case res = <-ch:
	case <-ctx.Done():
		span.SetStatus(codes.Error, "caller_gone")

		return nil, errors.ExternalServiceError("Coupon check was interrupted").WithError(ctx.Err())
	}

	span.SetAttributes(attribute.Bool("coupon.shared_lookup", res.Shared))

	if res.Err != nil {
		span.SetStatus(codes.Error, resultOf(res.Err))

		return nil, res.Err
	}

	coupon := *res.Val.(*models.Coupon)
	coupon.AppliedCategories = append([]int64(nil), coupon.AppliedCategories...)

	return &coupon, nil
}

func (s *couponService) RemoveCoupon(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	sess, err := s.sessions.acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	sess.couponGen++
	sess.coupon = nil
	sess.notice = nil
	sess.recompute()

	return sess.view(s.currency), nil
}
