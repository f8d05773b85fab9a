package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines expense persistence.
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpenseByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, from, to *time.Time, category string) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}
