package models

import (
	"time"

	"github.com/aaravmahajanofficial/apparel-storefront/pkg/money"
	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

// OrderStatus tracks payment progress of a placed order.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusPaid          OrderStatus = "paid"
	OrderStatusPaymentFailed OrderStatus = "payment_failed"
)

type OrderIntentLine struct {
	CartID    string      `json:"cart_id"`
	SKU       string      `json:"sku"`
	ProductID uuid.UUID   `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
	Subtotal  money.Money `json:"subtotal"`
	Discount  money.Money `json:"discount"`
}

type CouponRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// OrderIntent is the frozen, priced selection handed to the order service.
// It is never modified after assembly; callers receive copies.
type OrderIntent struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	Lines         []OrderIntentLine `json:"lines"`
	Subtotal      money.Money       `json:"subtotal"`
	Discount      money.Money       `json:"discount"`
	FinalTotal    money.Money       `json:"final_total"`
	Coupon        *CouponRef        `json:"coupon"`
	TotalQuantity int               `json:"total_quantity"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (o *OrderIntent) Clone() *OrderIntent {
	if o == nil {
		return nil
	}

	out := *o
	out.Lines = append([]OrderIntentLine(nil), o.Lines...)

	if o.Coupon != nil {
		ref := *o.Coupon
		out.Coupon = &ref
	}

	return &out
}

type ShippingAddress struct {
	FullName   string `json:"full_name" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,min=8,max=20"`
	Street     string `json:"street" validate:"required,max=255"`
	Ward       string `json:"ward,omitempty" validate:"max=120"`
	District   string `json:"district,omitempty" validate:"max=120"`
	City       string `json:"city" validate:"required,max=120"`
	Note       string `json:"note,omitempty" validate:"max=500"`
	PostalCode string `json:"postal_code,omitempty" validate:"max=20"`
}

type PlaceOrderRequest struct {
	IntentID      uuid.UUID       `json:"intent_id" validate:"required"`
	Shipping      ShippingAddress `json:"shipping" validate:"required"`
	PaymentMethod PaymentMethod   `json:"payment_method" validate:"required,oneof=cod card"`
}

type OrderItemPayload struct {
	SKU       string      `json:"sku"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
	CartID    string      `json:"cart_id"`
}

// CreateOrderPayload is what the order-creation service accepts.
type CreateOrderPayload struct {
	OrderID       uuid.UUID          `json:"order_id"`
	UserID        uuid.UUID          `json:"user_id"`
	Items         []OrderItemPayload `json:"items"`
	Shipping      ShippingAddress    `json:"shipping"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	UserCouponsID *uuid.UUID         `json:"user_coupons_id"`
	Subtotal      money.Money        `json:"subtotal"`
	Discount      money.Money        `json:"discount"`
	FinalTotal    money.Money        `json:"final_total"`
}

type OrderConfirmation struct {
	OrderID       uuid.UUID     `json:"order_id"`
	IntentID      uuid.UUID     `json:"intent_id"`
	FinalTotal    money.Money   `json:"final_total"`
	DisplayTotal  string        `json:"display_total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentIntent string        `json:"payment_intent_id,omitempty"`
	ClientSecret  string        `json:"client_secret,omitempty"`
	PlacedAt      time.Time     `json:"placed_at"`
}
