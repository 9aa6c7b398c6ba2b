package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils"
	"github.com/lib/pq"
)

type CouponRepository interface {
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

// GetCouponByCode expects a code already in models.NormalizeCouponCode form
// and returns sql.ErrNoRows for unknown codes. Inactive coupons are returned
// as stored; a record whose discount rule is out of range fails with
// models.ErrInvalidDiscount.
func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.code, c.discount_type, c.discount_value, c.max_discount_amount, c.min_order_value,
		       c.minimum_quantity, c.usage_left, c.expiry_date, c.status,
		       COALESCE(array_agg(cc.category_id ORDER BY cc.category_id) FILTER (WHERE cc.category_id IS NOT NULL), '{}')
		FROM coupons c
		LEFT JOIN coupon_categories cc ON cc.coupon_id = c.id
		WHERE UPPER(c.code) = $1
		GROUP BY c.id
	`

	coupon := &models.Coupon{}

	var categories pq.Int64Array

	err := r.DB.QueryRowContext(dbCtx, query, code).Scan(&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue,
		&coupon.MaxDiscountAmount, &coupon.MinOrderValue, &coupon.MinimumQuantity, &coupon.UsageLeft, &coupon.ExpiryDate,
		&coupon.Status, &categories)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying coupon: %w", err)
	}

	coupon.AppliedCategories = []int64(categories)

	if err := coupon.CheckRule(); err != nil {
		return nil, err
	}

	return coupon, nil
}
