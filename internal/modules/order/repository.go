package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder persists a new order and its items atomically.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items.
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListOrders returns all orders with items, by order date descending.
	ListOrders(ctx context.Context) ([]*Order, error)

	// UpdateOrder rewrites the order row; when replaceItems is set the
	// existing items are deleted and o.Items inserted in their place.
	UpdateOrder(ctx context.Context, o *Order, replaceItems bool) error

	DeleteOrder(ctx context.Context, id uuid.UUID) error

	// VariantStock reports the current stock of a variant. found is
	// false when the variant does not exist.
	VariantStock(ctx context.Context, variantID uuid.UUID) (stock int, found bool, err error)

	// ConfirmOrder runs the confirmation transaction: re-checks the
	// order is still DRAFT under a row lock, decrements stock for every
	// item (failing if any variant would go negative), marks the order
	// CONFIRMED, and settles the gift card balance if one was applied.
	// Everything commits together or not at all.
	ConfirmOrder(ctx context.Context, o *Order) error
}
