package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository fetches the raw slices the aggregations fold over.
type Repository interface {
	// ConfirmedOrders returns confirmed orders with their items,
	// optionally bounded by date.
	ConfirmedOrders(ctx context.Context, from, to *time.Time) ([]*OrderData, error)
	// ExpenseTotal sums expense amounts in the same range.
	ExpenseTotal(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	// AllVariants returns every variant regardless of date.
	AllVariants(ctx context.Context) ([]*VariantData, error)
}
