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

// ProductRepository is the product/promotion feed.
type ProductRepository interface {
	GetProductPrice(ctx context.Context, id uuid.UUID) (*models.ProductPrice, error)
	ListFlashSaleProducts(ctx context.Context, page, size int) ([]models.ProductPrice, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productPriceColumns = `
	p.id, p.name, p.category_id, p.image_url, p.price,
	COALESCE(pr.discount_percent, 0), COALESCE(pr.flash_sale, FALSE), p.stock, p.is_active`

func scanProductPrice(row interface{ Scan(dest ...any) error }, p *models.ProductPrice) error {
	return row.Scan(&p.ProductID, &p.Name, &p.CategoryID, &p.ImageURL, &p.OriginalPrice,
		&p.DiscountPercent, &p.FlashSale, &p.Stock, &p.IsActive)
}

func (r *productRepository) GetProductPrice(ctx context.Context, id uuid.UUID) (*models.ProductPrice, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT` + productPriceColumns + `
		FROM products p
		LEFT JOIN promotions pr ON pr.product_id = p.id
		WHERE p.id = $1
	`

	product := &models.ProductPrice{}

	if err := scanProductPrice(r.DB.QueryRowContext(dbCtx, query, id), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

// page is 1-based; size is the number of products per page.
func (r *productRepository) ListFlashSaleProducts(ctx context.Context, page, size int) ([]models.ProductPrice, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `
		SELECT COUNT(*)
		FROM products p
		JOIN promotions pr ON pr.product_id = p.id
		WHERE pr.flash_sale AND p.is_active
	`

	if err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting flash sale products: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT` + productPriceColumns + `
		FROM products p
		JOIN promotions pr ON pr.product_id = p.id
		WHERE pr.flash_sale AND p.is_active
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing flash sale products: %w", err)
	}
	defer rows.Close()

	products := make([]models.ProductPrice, 0, size)

	for rows.Next() {
		var p models.ProductPrice
		if err := scanProductPrice(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, total, nil
}
