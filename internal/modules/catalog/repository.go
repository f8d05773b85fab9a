package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for products and their variants.
type Repository interface {
	// CreateProduct persists a product and any inline variants atomically.
	CreateProduct(ctx context.Context, p *Product) error

	// GetProduct retrieves a product with its variants.
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)

	// ListProducts returns all products with variants, newest first.
	ListProducts(ctx context.Context) ([]*Product, error)

	// UpdateProduct rewrites the product row (not its variants).
	UpdateProduct(ctx context.Context, p *Product) error

	// DeleteProduct removes a product; variants cascade at the database.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// SearchProducts matches name or SKU case-insensitively, sorted by name.
	SearchProducts(ctx context.Context, query string) ([]*Product, error)

	CreateVariant(ctx context.Context, v *ProductVariant) error
	UpdateVariant(ctx context.Context, v *ProductVariant) error
	GetVariant(ctx context.Context, id uuid.UUID) (*ProductVariant, error)
	DeleteVariant(ctx context.Context, id uuid.UUID) error

	// ListProductSales returns every order item that sold one of the
	// product's variants, most recent order first.
	ListProductSales(ctx context.Context, productID uuid.UUID) ([]*OrderHistoryEntry, error)
}
