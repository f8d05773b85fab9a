package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrDuplicateSKU    = errors.New("a product with this SKU already exists")
	ErrDuplicateSize   = errors.New("this variant already exists")
	ErrNegativePrice   = errors.New("prices must be zero or positive")
	ErrEmptyQuery      = errors.New("search query is required")
)
