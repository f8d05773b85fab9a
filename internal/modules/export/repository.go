package export

import "context"

// Repository fetches the denormalized slices for the dump.
type Repository interface {
	Products(ctx context.Context) ([]*Product, error)
	Orders(ctx context.Context) ([]*Order, error)
	Customers(ctx context.Context) ([]*Customer, error)
	Expenses(ctx context.Context) ([]*Expense, error)
	GiftCards(ctx context.Context) ([]*GiftCard, error)
}
