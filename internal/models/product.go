package models

import (
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductPrice is one record of the product/promotion feed.
type ProductPrice struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	CategoryID      int64           `json:"category_id"`
	ImageURL        string          `json:"image_url,omitempty"`
	OriginalPrice   money.Money     `json:"original_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	FlashSale       bool            `json:"flash_sale"`
	Stock           int             `json:"stock"`
	IsActive        bool            `json:"is_active"`
}

// PricedProduct is a feed record with the price currently in force.
type PricedProduct struct {
	ProductPrice
	EffectivePrice  money.Money `json:"effective_price"`
	DisplayPrice    string      `json:"display_price"`
	DisplayOriginal string      `json:"display_original_price"`
	DiscountApplied bool        `json:"discount_applied"`
}

type FlashSaleGrid struct {
	State    FlashSaleState  `json:"flash_sale"`
	Products []PricedProduct `json:"products"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}
