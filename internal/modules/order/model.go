package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. DRAFT orders are
// freely editable; CONFIRMED and CANCELLED are terminal.
type OrderStatus string

const (
	StatusDraft     OrderStatus = "DRAFT"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// SalesChannel indicates where the sale happened.
type SalesChannel string

const (
	ChannelStand       SalesChannel = "STAND"
	ChannelSite        SalesChannel = "SITE"
	ChannelPrecommande SalesChannel = "PRECOMMANDE"
	ChannelInstagram   SalesChannel = "INSTAGRAM"
	ChannelWhatsapp    SalesChannel = "WHATSAPP"
	ChannelEnSalle     SalesChannel = "EN_SALLE"
	ChannelAutre       SalesChannel = "AUTRE"
)

// PaymentMethod is how the order was paid.
type PaymentMethod string

const (
	PaymentTwint PaymentMethod = "TWINT"
	PaymentCash  PaymentMethod = "CASH"
	PaymentAutre PaymentMethod = "AUTRE"
)

// Order is a sale. Customer contact is snapshotted at creation so the
// record survives edits or deletion of the customer itself.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	CustomerID       *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    *string         `json:"customer_email,omitempty"`
	CustomerPhone    *string         `json:"customer_phone,omitempty"`
	CustomerAddress  *string         `json:"customer_address,omitempty"`
	SalesChannel     SalesChannel    `json:"sales_channel"`
	Status           OrderStatus     `json:"status"`
	PaymentMethod    *PaymentMethod  `json:"payment_method,omitempty"`
	Date             time.Time       `json:"date"`
	Tags             *string         `json:"tags,omitempty"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	GiftCardCode     *string         `json:"gift_card_code,omitempty"`
	GiftCardDiscount decimal.Decimal `json:"gift_card_discount"`
	Items            []*OrderItem    `json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderItem is one line of an order. Unit and cost price are copied
// from the variant at sale time so later price changes do not rewrite
// historical margins.
type OrderItem struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          uuid.UUID       `json:"order_id"`
	ProductVariantID uuid.UUID       `json:"product_variant_id"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	CostPriceAtSale  decimal.Decimal `json:"cost_price_at_sale"`
	LineTotal        decimal.Decimal `json:"line_total"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ItemInput describes a line item in create/update payloads.
type ItemInput struct {
	ProductVariantID string          `json:"product_variant_id" validate:"required,uuid"`
	Quantity         int             `json:"quantity" validate:"required,min=1"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	CostPriceAtSale  decimal.Decimal `json:"cost_price_at_sale"`
}

// CreateOrderRequest is the payload for creating a draft order.
type CreateOrderRequest struct {
	CustomerID       *string         `json:"customer_id" validate:"omitempty,uuid"`
	CustomerName     string          `json:"customer_name" validate:"required"`
	CustomerEmail    *string         `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone    *string         `json:"customer_phone"`
	CustomerAddress  *string         `json:"customer_address"`
	SalesChannel     string          `json:"sales_channel" validate:"required,oneof=STAND SITE PRECOMMANDE INSTAGRAM WHATSAPP EN_SALLE AUTRE"`
	PaymentMethod    *string         `json:"payment_method" validate:"omitempty,oneof=TWINT CASH AUTRE"`
	Date             string          `json:"date" validate:"required"`
	Tags             *string         `json:"tags"`
	GiftCardCode     *string         `json:"gift_card_code"`
	GiftCardDiscount decimal.Decimal `json:"gift_card_discount"`
	Items            []ItemInput     `json:"items" validate:"min=1,dive"`
}

// UpdateOrderRequest is a partial update of a draft order. Supplying
// items replaces the full item list and recomputes the total. Status
// can only move to CANCELLED here; confirmation goes through the
// dedicated endpoint so stock is committed exactly once.
type UpdateOrderRequest struct {
	CustomerID      *string      `json:"customer_id" validate:"omitempty,uuid"`
	CustomerName    *string      `json:"customer_name"`
	CustomerEmail   *string      `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   *string      `json:"customer_phone"`
	CustomerAddress *string      `json:"customer_address"`
	SalesChannel    *string      `json:"sales_channel" validate:"omitempty,oneof=STAND SITE PRECOMMANDE INSTAGRAM WHATSAPP EN_SALLE AUTRE"`
	PaymentMethod   *string      `json:"payment_method" validate:"omitempty,oneof=TWINT CASH AUTRE"`
	Status          *string      `json:"status" validate:"omitempty,oneof=CANCELLED"`
	Date            *string      `json:"date"`
	Tags            *string      `json:"tags"`
	Items           *[]ItemInput `json:"items" validate:"omitempty,dive"`
}
