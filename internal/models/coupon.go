package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponInactive CouponStatus = "inactive"
)

// Coupon is a redeemable discount rule as returned by the coupon service.
// DiscountValue is a whole percent (0-100) for percentage coupons and a
// minor-unit amount for fixed coupons. A zero MaxDiscountAmount means no cap.
type Coupon struct {
	ID                uuid.UUID    `json:"id"`
	Code              string       `json:"code"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     int64        `json:"discount_value"`
	MaxDiscountAmount money.Money  `json:"max_discount_amount"`
	MinOrderValue     money.Money  `json:"min_order_value"`
	MinimumQuantity   int          `json:"minimum_quantity"`
	AppliedCategories []int64      `json:"applied_categories"`
	UsageLeft         int          `json:"usage_left"`
	ExpiryDate        time.Time    `json:"expiry_date"`
	Status            CouponStatus `json:"status"`
}

func (c *Coupon) HasMaxDiscount() bool {
	return c.MaxDiscountAmount > 0
}

// Scoped reports whether the coupon is limited to specific categories.
func (c *Coupon) Scoped() bool {
	return len(c.AppliedCategories) > 0
}

// ErrInvalidDiscount marks a stored coupon whose discount rule cannot be priced.
var ErrInvalidDiscount = errors.New("invalid coupon discount rule")

// CheckRule rejects a percentage outside 0-100, negative amounts and unknown types.
func (c *Coupon) CheckRule() error {
	switch c.DiscountType {
	case DiscountPercentage:
		if c.DiscountValue < 0 || c.DiscountValue > 100 {
			return fmt.Errorf("%w: %s percentage %d", ErrInvalidDiscount, c.Code, c.DiscountValue)
		}
	case DiscountFixed:
		if c.DiscountValue < 0 {
			return fmt.Errorf("%w: %s amount %d", ErrInvalidDiscount, c.Code, c.DiscountValue)
		}
	default:
		return fmt.Errorf("%w: %s type %q", ErrInvalidDiscount, c.Code, c.DiscountType)
	}

	if c.MaxDiscountAmount < 0 || c.MinOrderValue < 0 {
		return fmt.Errorf("%w: %s negative limits", ErrInvalidDiscount, c.Code)
	}

	return nil
}

// NormalizeCouponCode is the form codes are keyed, looked up and reported in.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,min=1,max=64"`
}

// CouponNotice tells the shopper why a previously applied coupon was dropped.
type CouponNotice struct {
	Code    string `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}
