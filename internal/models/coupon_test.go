package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCoupon_CheckRule(t *testing.T) {
	tests := []struct {
		name    string
		coupon  models.Coupon
		invalid bool
	}{
		{name: "Success - Percentage within range", coupon: models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 100}},
		{name: "Success - Fixed amount", coupon: models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: 50_000}},
		{name: "Failure - Percentage above 100", coupon: models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: 101}, invalid: true},
		{name: "Failure - Negative percentage", coupon: models.Coupon{DiscountType: models.DiscountPercentage, DiscountValue: -1}, invalid: true},
		{name: "Failure - Negative fixed amount", coupon: models.Coupon{DiscountType: models.DiscountFixed, DiscountValue: -10}, invalid: true},
		{name: "Failure - Unknown type", coupon: models.Coupon{DiscountType: "bogo", DiscountValue: 1}, invalid: true},
		{name: "Failure - Negative cap", coupon: models.Coupon{DiscountType: models.DiscountFixed, MaxDiscountAmount: -1}, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coupon.CheckRule()

			if tc.invalid {
				assert.ErrorIs(t, err, models.ErrInvalidDiscount)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SUMMER10", models.NormalizeCouponCode("  summer10 "))
	assert.Equal(t, "", models.NormalizeCouponCode("   "))
}
