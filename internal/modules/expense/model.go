package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category buckets an expense for the dashboard breakdown. The list
// mirrors the vendors the shop actually buys from.
type Category string

const (
	CategoryProduction Category = "PRODUCTION"
	CategoryLogistique Category = "LOGISTIQUE"
	CategoryMarketing  Category = "MARKETING"
	CategoryStand      Category = "STAND"
	CategoryAgivaSport Category = "AGIVA_SPORT"
	CategoryPandacola  Category = "PANDACOLA"
	CategoryAutre      Category = "AUTRE"
)

type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	InvoiceURL  *string         `json:"invoice_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CreateExpenseRequest struct {
	Date        string          `json:"date" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"required,oneof=PRODUCTION LOGISTIQUE MARKETING STAND AGIVA_SPORT PANDACOLA AUTRE"`
	Description string          `json:"description" validate:"required"`
	ProductID   *string         `json:"product_id" validate:"omitempty,uuid"`
	InvoiceURL  *string         `json:"invoice_url"`
}

type UpdateExpenseRequest struct {
	Date        *string          `json:"date"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" validate:"omitempty,oneof=PRODUCTION LOGISTIQUE MARKETING STAND AGIVA_SPORT PANDACOLA AUTRE"`
	Description *string          `json:"description"`
	ProductID   *string          `json:"product_id" validate:"omitempty,uuid"`
	InvoiceURL  *string          `json:"invoice_url"`
}

// ImportResult summarizes a spreadsheet import. Rows that fail keep
// their original spreadsheet row number so the user can fix them.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
