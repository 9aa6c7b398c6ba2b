package models

import "github.com/aaravmahajanofficial/apparel-storefront/pkg/money"

type LinePricing struct {
	CartID    string      `json:"cart_id"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
	Subtotal  money.Money `json:"subtotal"`
	Eligible  bool        `json:"eligible"`
	Discount  money.Money `json:"discount"`
}

// PricingSnapshot is the complete result of one pricing pass over a selection.
type PricingSnapshot struct {
	Subtotal         money.Money   `json:"subtotal"`
	EligibleSubtotal money.Money   `json:"eligible_subtotal"`
	Discount         money.Money   `json:"discount"`
	FinalTotal       money.Money   `json:"final_total"`
	TotalQuantity    int           `json:"total_quantity"`
	CouponCode       string        `json:"coupon_code,omitempty"`
	Lines            []LinePricing `json:"lines"`
}

type PricingDisplay struct {
	Currency   string `json:"currency"`
	Subtotal   string `json:"subtotal"`
	Discount   string `json:"discount"`
	FinalTotal string `json:"final_total"`
}
