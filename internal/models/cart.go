package models

import (
	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one SKU in a user's cart as returned by the cart service.
// For flash-sale lines UnitPrice follows the scheduler: it is derived from
// OriginalUnitPrice and DiscountPercent on every recompute.
type CartLine struct {
	CartID            string          `json:"cart_id"`
	SKU               string          `json:"sku"`
	ProductID         uuid.UUID       `json:"product_id"`
	Name              string          `json:"name"`
	CategoryID        int64           `json:"category_id"`
	ImageURL          string          `json:"image_url,omitempty"`
	UnitPrice         money.Money     `json:"unit_price"`
	OriginalUnitPrice money.Money     `json:"original_unit_price"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	FlashSale         bool            `json:"flash_sale"`
	Quantity          int             `json:"quantity"`
	Stock             int             `json:"stock"`
	Color             string          `json:"color,omitempty"`
	Size              string          `json:"size,omitempty"`
	IsActive          bool            `json:"is_active"`
}

func (l CartLine) Subtotal() money.Money {
	return l.UnitPrice.Times(l.Quantity)
}

// Selectable reports whether the line may join the checkout selection.
func (l CartLine) Selectable() bool {
	return l.IsActive && l.Stock > 0
}

type CartLineView struct {
	CartLine
	Selected          bool   `json:"selected"`
	SubtotalAmount    int64  `json:"subtotal"`
	DisplayUnitPrice  string `json:"display_unit_price"`
	DisplayOriginal   string `json:"display_original_unit_price"`
	DisplaySubtotal   string `json:"display_subtotal"`
	SelectionDisabled bool   `json:"selection_disabled"`
}

// CartView is what the storefront renders for the cart page.
type CartView struct {
	UserID        uuid.UUID        `json:"user_id"`
	Lines         []CartLineView   `json:"lines"`
	SelectedIDs   []string         `json:"selected_ids"`
	BadgeCount    int              `json:"badge_count"`
	Pricing       PricingSnapshot  `json:"pricing"`
	Display       PricingDisplay   `json:"display"`
	Coupon        *Coupon          `json:"coupon,omitempty"`
	CouponNotice  *CouponNotice    `json:"coupon_notice,omitempty"`
	PendingIntent *OrderIntentInfo `json:"pending_intent,omitempty"`
}

type OrderIntentInfo struct {
	ID uuid.UUID `json:"id"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// SessionSnapshot is the part of a session persisted across its end/start boundary.
type SessionSnapshot struct {
	UserID      uuid.UUID `json:"user_id"`
	SelectedIDs []string  `json:"selected_ids"`
}
