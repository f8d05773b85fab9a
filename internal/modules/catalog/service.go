package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, query string) ([]*SearchResult, error)

	CreateVariant(ctx context.Context, req CreateVariantRequest) (*ProductVariant, error)
	UpdateVariant(ctx context.Context, id string, req VariantInput) (*ProductVariant, error)
	DeleteVariant(ctx context.Context, id string) error

	// ProductOrders returns the sales history of a product with
	// cumulative quantity and revenue figures.
	ProductOrders(ctx context.Context, id string) (*OrderHistory, error)
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p := &Product{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: req.Category,
		SKU:      req.SKU,
		IsActive: active,
	}

	for _, vi := range req.Variants {
		if vi.SellingPrice.IsNegative() || vi.CostPrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		p.Variants = append(p.Variants, &ProductVariant{
			ID:           uuid.New(),
			ProductID:    p.ID,
			Size:         vi.Size,
			SellingPrice: vi.SellingPrice,
			CostPrice:    vi.CostPrice,
			Stock:        vi.Stock,
			MinStock:     vi.MinStock,
		})
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return s.repo.GetProduct(ctx, pid)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	p, err := s.repo.GetProduct(ctx, pid)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Category = req.Category
	p.SKU = req.SKU
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return ErrProductNotFound
	}
	return s.repo.DeleteProduct(ctx, pid)
}

func (s *service) SearchProducts(ctx context.Context, query string) ([]*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	products, err := s.repo.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]*SearchResult, 0, len(products))
	for _, p := range products {
		total := 0
		for _, v := range p.Variants {
			total += v.Stock
		}
		results = append(results, &SearchResult{
			ID:           p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			Category:     p.Category,
			IsActive:     p.IsActive,
			TotalStock:   total,
			VariantCount: len(p.Variants),
			Variants:     p.Variants,
		})
	}
	return results, nil
}

func (s *service) CreateVariant(ctx context.Context, req CreateVariantRequest) (*ProductVariant, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if req.SellingPrice.IsNegative() || req.CostPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	// Parent must exist before inserting; gives a clean 404 instead of
	// surfacing the FK violation.
	if _, err := s.repo.GetProduct(ctx, pid); err != nil {
		return nil, err
	}

	v := &ProductVariant{
		ID:           uuid.New(),
		ProductID:    pid,
		Size:         req.Size,
		SellingPrice: req.SellingPrice,
		CostPrice:    req.CostPrice,
		Stock:        req.Stock,
		MinStock:     req.MinStock,
	}
	if err := s.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) UpdateVariant(ctx context.Context, id string, req VariantInput) (*ProductVariant, error) {
	vid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrVariantNotFound
	}
	if req.SellingPrice.IsNegative() || req.CostPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	v, err := s.repo.GetVariant(ctx, vid)
	if err != nil {
		return nil, err
	}

	v.Size = req.Size
	v.SellingPrice = req.SellingPrice
	v.CostPrice = req.CostPrice
	v.Stock = req.Stock
	v.MinStock = req.MinStock

	if err := s.repo.UpdateVariant(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) DeleteVariant(ctx context.Context, id string) error {
	vid, err := uuid.Parse(id)
	if err != nil {
		return ErrVariantNotFound
	}
	return s.repo.DeleteVariant(ctx, vid)
}

func (s *service) ProductOrders(ctx context.Context, id string) (*OrderHistory, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	p, err := s.repo.GetProduct(ctx, pid)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListProductSales(ctx, pid)
	if err != nil {
		return nil, err
	}

	history := &OrderHistory{
		ProductID:   p.ID,
		ProductName: p.Name,
		Entries:     entries,
	}
	for _, e := range entries {
		history.TotalQuantitySold += e.Quantity
		history.TotalRevenue = history.TotalRevenue.Add(e.LineTotal)
	}
	return history, nil
}
