package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils"
	"github.com/lib/pq"
)

var (
	// ErrStockChanged rejects an order whose SKUs no longer have enough stock.
	ErrStockChanged = errors.New("stock changed since checkout")
	// ErrCouponUnavailable rejects an order whose coupon ran out of uses.
	ErrCouponUnavailable = errors.New("coupon no longer has uses left")
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) error
	SetPaymentIntent(ctx context.Context, orderID string, paymentIntentID string) error
	UpdatePaymentStatus(ctx context.Context, paymentIntentID string, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// CreateOrder reserves stock, spends one coupon use, records the order and
// clears the ordered cart lines in one transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) (err error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	shippingAddress, err := json.Marshal(payload.Shipping)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cartIDs := make([]string, 0, len(payload.Items))

	for _, item := range payload.Items {
		result, err := tx.ExecContext(dbCtx, `UPDATE product_skus SET stock = stock - $1 WHERE sku = $2 AND stock >= $1`,
			item.Quantity, item.SKU)
		if err != nil {
			return fmt.Errorf("failed to reserve stock for %s: %w", item.SKU, err)
		}

		reserved, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get updated rows: %w", err)
		}

		if reserved == 0 {
			return fmt.Errorf("%w: %s", ErrStockChanged, item.SKU)
		}

		cartIDs = append(cartIDs, item.CartID)
	}

	if payload.UserCouponsID != nil {
		result, err := tx.ExecContext(dbCtx, `UPDATE coupons SET usage_left = usage_left - 1 WHERE id = $1 AND usage_left > 0`,
			*payload.UserCouponsID)
		if err != nil {
			return fmt.Errorf("failed to spend coupon use: %w", err)
		}

		spent, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get updated rows: %w", err)
		}

		if spent == 0 {
			return ErrCouponUnavailable
		}
	}

	query := `
		INSERT INTO orders (id, user_id, subtotal, discount, final_total, payment_method, user_coupons_id, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err = tx.ExecContext(dbCtx, query, payload.OrderID, payload.UserID, payload.Subtotal, payload.Discount,
		payload.FinalTotal, payload.PaymentMethod, payload.UserCouponsID, shippingAddress)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range payload.Items {
		_, err = tx.ExecContext(dbCtx, `INSERT INTO order_items (order_id, sku, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
			payload.OrderID, item.SKU, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	_, err = tx.ExecContext(dbCtx, `DELETE FROM cart_lines WHERE user_id = $1 AND id::text = ANY($2)`,
		payload.UserID, pq.Array(cartIDs))
	if err != nil {
		return fmt.Errorf("failed to clear ordered cart lines: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) SetPaymentIntent(ctx context.Context, orderID string, paymentIntentID string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE orders SET payment_intent_id = $1 WHERE id = $2`, paymentIntentID, orderID)
	if err != nil {
		return fmt.Errorf("failed to record payment intent: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UpdatePaymentStatus moves the order holding paymentIntentID to status.
// Only pending orders move, so a replayed webhook is a no-op rather than
// flipping a paid order back.
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, paymentIntentID string, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1
		WHERE payment_intent_id = $2 AND status IN ($3, $1)
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, paymentIntentID, models.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
