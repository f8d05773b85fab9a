package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock and prices live on the variants;
// the product itself only carries identity and grouping.
type Product struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Category  string            `json:"category"`
	SKU       string            `json:"sku"`
	IsActive  bool              `json:"is_active"`
	Variants  []*ProductVariant `json:"variants,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ProductVariant is a size of a product, the unit that actually carries
// stock and price. Stock never goes negative; the order confirmation
// transaction enforces that.
type ProductVariant struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Size         string          `json:"size"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// VariantInput describes a variant in create/update payloads.
type VariantInput struct {
	Size         string          `json:"size" validate:"required"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Stock        int             `json:"stock" validate:"gte=0"`
	MinStock     int             `json:"min_stock" validate:"gte=0"`
}

// CreateProductRequest is the payload for creating a product, with
// optional inline variants.
type CreateProductRequest struct {
	Name     string         `json:"name" validate:"required"`
	Category string         `json:"category" validate:"required"`
	SKU      string         `json:"sku" validate:"required"`
	IsActive *bool          `json:"is_active"`
	Variants []VariantInput `json:"variants" validate:"dive"`
}

// CreateVariantRequest is the payload for adding a variant to an
// existing product.
type CreateVariantRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	VariantInput
}

// SearchResult is a product with stock figures rolled up across its
// variants, returned by the name/SKU search.
type SearchResult struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	SKU          string            `json:"sku"`
	Category     string            `json:"category"`
	IsActive     bool              `json:"is_active"`
	TotalStock   int               `json:"total_stock"`
	VariantCount int               `json:"variant_count"`
	Variants     []*ProductVariant `json:"variants"`
}

// OrderHistoryEntry is one past order that included the product.
type OrderHistoryEntry struct {
	OrderID      uuid.UUID       `json:"order_id"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// OrderHistory aggregates every sale of a product across its variants.
type OrderHistory struct {
	ProductID         uuid.UUID            `json:"product_id"`
	ProductName       string               `json:"product_name"`
	TotalQuantitySold int                  `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal      `json:"total_revenue"`
	Entries           []*OrderHistoryEntry `json:"entries"`
}
