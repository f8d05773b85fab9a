package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// List returns customers alphabetically, optionally filtered by a
	// substring over name, email, or phone, capped at limit rows.
	List(ctx context.Context, search string, limit int) ([]*Customer, error)

	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
