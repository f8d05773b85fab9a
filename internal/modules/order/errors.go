package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrAlreadyConfirmed  = errors.New("order already confirmed")
	ErrNotDraft          = errors.New("only draft orders can be confirmed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNegativeAmount    = errors.New("prices must be zero or positive")
	ErrInvalidDate       = errors.New("date must be RFC 3339 or YYYY-MM-DD")
	ErrInvalidVariantID  = errors.New("product_variant_id must be a valid UUID")
)

// StockError reports which line item cannot be fulfilled. It unwraps to
// ErrInsufficientStock so handlers can classify it.
type StockError struct {
	VariantID uuid.UUID
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %s: requested %d, available %d",
		e.VariantID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
