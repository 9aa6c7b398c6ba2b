package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/errors"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/apparel-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
)

// CouponValidator checks a code against a selection. Checks run in a fixed
// order and the first failure is returned.
type CouponValidator struct {
	repo     repository.CouponRepository
	pricing  *PricingCalculator
	currency money.Currency
	timeout  time.Duration
	now      func() time.Time
}

func NewCouponValidator(repo repository.CouponRepository, pricing *PricingCalculator, currency money.Currency, timeout time.Duration) *CouponValidator {
	return &CouponValidator{
		repo:     repo,
		pricing:  pricing,
		currency: currency,
		timeout:  timeout,
		now:      time.Now,
	}
}

// WithClock replaces the validator's time source.
func (v *CouponValidator) WithClock(now func() time.Time) *CouponValidator {
	v.now = now

	return v
}

func (v *CouponValidator) Validate(ctx context.Context, code string, selection []models.CartLine) (*models.Coupon, error) {
	code = models.NormalizeCouponCode(code)
	if code == "" {
		return nil, errors.CouponCodeRequiredError()
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	coupon, err := v.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.CouponNotFoundError(code)
		}

		if stdErrors.Is(err, models.ErrInvalidDiscount) {
			middleware.LoggerFromContext(ctx).Warn("Coupon record has an unusable discount rule",
				slog.String("code", code), slog.String("error", err.Error()))

			return nil, errors.CouponNotFoundError(code).WithError(err)
		}

		return nil, errors.ExternalServiceError("Coupon service is unavailable, please try again").WithError(err)
	}

	if err := v.Check(coupon, selection); err != nil {
		return nil, err
	}

	return coupon, nil
}

// Check runs every rule against an already fetched coupon.
func (v *CouponValidator) Check(coupon *models.Coupon, selection []models.CartLine) error {
	if coupon == nil || coupon.Status != models.CouponActive {
		code := ""
		if coupon != nil {
			code = coupon.Code
		}

		return errors.CouponNotFoundError(code)
	}

	return v.Recheck(coupon, selection)
}

// Recheck runs the rules that depend on time and on the selection, without
// a lookup. It is used when the cart changes under an applied coupon.
func (v *CouponValidator) Recheck(coupon *models.Coupon, selection []models.CartLine) error {
	if !v.now().Before(coupon.ExpiryDate) {
		return errors.CouponExpiredError(coupon.Code)
	}

	if coupon.UsageLeft <= 0 {
		return errors.CouponUsageExhaustedError(coupon.Code)
	}

	if v.pricing.Subtotal(selection) < coupon.MinOrderValue {
		return errors.CouponMinOrderNotMetError(v.currency.Format(coupon.MinOrderValue))
	}

	if len(selection) < coupon.MinimumQuantity {
		return errors.CouponMinQuantityNotMetError(coupon.MinimumQuantity)
	}

	if coupon.Scoped() && len(v.pricing.EligibleCategories(selection, coupon)) == 0 {
		return errors.CouponCategoryMismatchError(coupon.Code)
	}

	return nil
}
