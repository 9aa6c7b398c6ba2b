package service_test

import (
	"io"
	"log/slog"
	"time"
	_ "time/tzdata"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func cartLine(id string, category int64, price money.Money, quantity, stock int) models.CartLine {
	return models.CartLine{
		CartID:            id,
		SKU:               "SKU-" + id,
		ProductID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)),
		Name:              "Item " + id,
		CategoryID:        category,
		UnitPrice:         price,
		OriginalUnitPrice: price,
		Quantity:          quantity,
		Stock:             stock,
		IsActive:          true,
	}
}

// flashLine is a category 3 line under a flash-sale promotion.
func flashLine(id string, original money.Money, pct int64) models.CartLine {
	line := cartLine(id, 3, original, 1, 5)
	line.FlashSale = true
	line.DiscountPercent = decimal.NewFromInt(pct)

	return line
}

func percentCoupon(pct int64, maxDiscount money.Money, categories ...int64) *models.Coupon {
	return &models.Coupon{
		ID:                uuid.New(),
		Code:              "SALE",
		DiscountType:      models.DiscountPercentage,
		DiscountValue:     pct,
		MaxDiscountAmount: maxDiscount,
		AppliedCategories: categories,
		UsageLeft:         10,
		ExpiryDate:        fixedNow.Add(24 * time.Hour),
		Status:            models.CouponActive,
	}
}

func fixedCoupon(value money.Money, categories ...int64) *models.Coupon {
	c := percentCoupon(0, 0, categories...)
	c.Code = "FLAT"
	c.DiscountType = models.DiscountFixed
	c.DiscountValue = value.Int64()

	return c
}

var fixedNow = time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
