package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/apparel-storefront/internal/models"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/utils"
	"github.com/google/uuid"
)

// ErrStockConflict means the stored stock no longer covers the requested quantity.
var ErrStockConflict = errors.New("stock does not cover requested quantity")

type CartRepository interface {
	ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, cartID string, quantity int) error
	RemoveLine(ctx context.Context, userID uuid.UUID, cartID string) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT cl.id, cl.sku, p.id, p.name, p.category_id, p.image_url,
		       s.price, s.original_price, COALESCE(pr.discount_percent, 0), COALESCE(pr.flash_sale, FALSE),
		       cl.quantity, s.stock, s.color, s.size, p.is_active
		FROM cart_lines cl
		JOIN product_skus s ON s.sku = cl.sku
		JOIN products p ON p.id = s.product_id
		LEFT JOIN promotions pr ON pr.product_id = p.id
		WHERE cl.user_id = $1
		ORDER BY cl.created_at, cl.id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	lines := make([]models.CartLine, 0)

	for rows.Next() {
		var line models.CartLine

		err := rows.Scan(&line.CartID, &line.SKU, &line.ProductID, &line.Name, &line.CategoryID, &line.ImageURL,
			&line.UnitPrice, &line.OriginalUnitPrice, &line.DiscountPercent, &line.FlashSale,
			&line.Quantity, &line.Stock, &line.Color, &line.Size, &line.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}

// UpdateQuantity only writes when the SKU still has enough stock; otherwise it
// returns ErrStockConflict, or sql.ErrNoRows when the line is gone.
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, cartID string, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_lines cl
		SET quantity = $1
		FROM product_skus s
		WHERE cl.id = $2 AND cl.user_id = $3 AND s.sku = cl.sku AND s.stock >= $1
	`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, cartID, userID)
	if err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows > 0 {
		return nil
	}

	var exists bool

	err = r.DB.QueryRowContext(dbCtx, `SELECT EXISTS(SELECT 1 FROM cart_lines WHERE id = $1 AND user_id = $2)`, cartID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check cart line: %w", err)
	}

	if !exists {
		return sql.ErrNoRows
	}

	return ErrStockConflict
}

// RemoveLine succeeds when the line is already absent.
func (r *cartRepository) RemoveLine(ctx context.Context, userID uuid.UUID, cartID string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, cartID, userID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	return nil
}
