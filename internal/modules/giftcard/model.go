package giftcard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a gift card. EXPIRED is derived at validation time from
// ExpirationDate; the stored status only flips between ACTIVE and USED.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusUsed    Status = "USED"
	StatusExpired Status = "EXPIRED"
)

type GiftCard struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	InitialAmount    decimal.Decimal `json:"initial_amount"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	Status           Status          `json:"status"`
	RecipientName    *string         `json:"recipient_name,omitempty"`
	RecipientEmail   *string         `json:"recipient_email,omitempty"`
	PurchasedByName  *string         `json:"purchased_by_name,omitempty"`
	PurchasedByEmail *string         `json:"purchased_by_email,omitempty"`
	PurchasedByPhone *string         `json:"purchased_by_phone,omitempty"`
	ExpirationDate   *time.Time      `json:"expiration_date,omitempty"`
	PurchaseOrderID  *uuid.UUID      `json:"purchase_order_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PurchaseOrder is the confirmed order row recorded when a card is
// sold, so the sale shows up in revenue like any other order. Contact
// fields come from the purchaser; CustomerID links the buyer's
// customer record when one was given.
type PurchaseOrder struct {
	ID            uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	PaymentMethod *string
	Date          time.Time
	Tags          string
	TotalAmount   decimal.Decimal
}

type CreateGiftCardRequest struct {
	// Code is optional; a random one is generated when absent.
	Code             *string         `json:"code" validate:"omitempty,min=8"`
	InitialAmount    decimal.Decimal `json:"initial_amount"`
	RecipientName    *string         `json:"recipient_name"`
	RecipientEmail   *string         `json:"recipient_email" validate:"omitempty,email"`
	PurchasedByName  *string         `json:"purchased_by_name"`
	PurchasedByEmail *string         `json:"purchased_by_email" validate:"omitempty,email"`
	PurchasedByPhone *string         `json:"purchased_by_phone"`
	ExpirationDate   *string         `json:"expiration_date"`
	CustomerID       *string         `json:"customer_id" validate:"omitempty,uuid"`
	PaymentMethod    *string         `json:"payment_method" validate:"omitempty,oneof=TWINT CASH AUTRE"`
}

type UpdateGiftCardRequest struct {
	RecipientName    *string `json:"recipient_name"`
	RecipientEmail   *string `json:"recipient_email" validate:"omitempty,email"`
	PurchasedByName  *string `json:"purchased_by_name"`
	PurchasedByEmail *string `json:"purchased_by_email" validate:"omitempty,email"`
	PurchasedByPhone *string `json:"purchased_by_phone"`
	ExpirationDate   *string `json:"expiration_date"`
	Status           *string `json:"status" validate:"omitempty,oneof=ACTIVE USED EXPIRED"`
}

// PatchGiftCardRequest covers the partial update: contact and
// expiration fields only. Code, amounts and status are untouchable
// here; status only moves through settlement or the full update.
type PatchGiftCardRequest struct {
	RecipientName    *string `json:"recipient_name"`
	RecipientEmail   *string `json:"recipient_email" validate:"omitempty,email"`
	PurchasedByName  *string `json:"purchased_by_name"`
	PurchasedByEmail *string `json:"purchased_by_email" validate:"omitempty,email"`
	PurchasedByPhone *string `json:"purchased_by_phone"`
	ExpirationDate   *string `json:"expiration_date"`
}

type ValidateRequest struct {
	Code        string          `json:"code" validate:"required"`
	OrderAmount decimal.Decimal `json:"order_amount"`
}

// ValidationResult is returned by the validate endpoint. Discount is
// the amount the card can cover for the given order, never more than
// either the card balance or the order amount. NewRemainingAmount is
// the balance the card would hold after settlement.
type ValidationResult struct {
	Valid              bool            `json:"valid"`
	Reason             string          `json:"reason,omitempty"`
	Code               string          `json:"code"`
	InitialAmount      decimal.Decimal `json:"initial_amount"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	Discount           decimal.Decimal `json:"discount"`
	NewRemainingAmount decimal.Decimal `json:"new_remaining_amount"`
}
