package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const uniqueViolation = "23505"

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, category, sku, is_active)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Category, p.SKU, p.IsActive)
	if err != nil {
		if isUnique(err) {
			return ErrDuplicateSKU
		}
		return fmt.Errorf("insert product: %w", err)
	}

	for _, v := range p.Variants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_variants (id, product_id, size, selling_price, cost_price, stock, min_stock)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			v.ID, v.ProductID, v.Size, v.SellingPrice, v.CostPrice, v.Stock, v.MinStock)
		if err != nil {
			if isUnique(err) {
				return ErrDuplicateSize
			}
			return fmt.Errorf("insert variant: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	p := &Product{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, sku, is_active, created_at, updated_at
		FROM products WHERE id=$1`, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.SKU, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Variants, err = r.listVariants(ctx, `WHERE product_id=$1`, id)
	return p, err
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx, `
		SELECT id, name, category, sku, is_active, created_at, updated_at
		FROM products ORDER BY created_at DESC`)
}

func (r *postgresRepo) SearchProducts(ctx context.Context, query string) ([]*Product, error) {
	return r.queryProducts(ctx, `
		SELECT id, name, category, sku, is_active, created_at, updated_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%'
		ORDER BY name ASC`, query)
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET name=$1, category=$2, sku=$3, is_active=$4, updated_at=now()
		WHERE id=$5`,
		p.Name, p.Category, p.SKU, p.IsActive, p.ID)
	if err != nil {
		if isUnique(err) {
			return ErrDuplicateSKU
		}
		return err
	}
	return notFoundIfZero(res, ErrProductNotFound)
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrProductNotFound)
}

func (r *postgresRepo) CreateVariant(ctx context.Context, v *ProductVariant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO product_variants (id, product_id, size, selling_price, cost_price, stock, min_stock)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		v.ID, v.ProductID, v.Size, v.SellingPrice, v.CostPrice, v.Stock, v.MinStock)
	if isUnique(err) {
		return ErrDuplicateSize
	}
	return err
}

func (r *postgresRepo) GetVariant(ctx context.Context, id uuid.UUID) (*ProductVariant, error) {
	v := &ProductVariant{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product_id, size, selling_price, cost_price, stock, min_stock, created_at, updated_at
		FROM product_variants WHERE id=$1`, id).Scan(
		&v.ID, &v.ProductID, &v.Size, &v.SellingPrice, &v.CostPrice,
		&v.Stock, &v.MinStock, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *postgresRepo) UpdateVariant(ctx context.Context, v *ProductVariant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE product_variants
		SET size=$1, selling_price=$2, cost_price=$3, stock=$4, min_stock=$5, updated_at=now()
		WHERE id=$6`,
		v.Size, v.SellingPrice, v.CostPrice, v.Stock, v.MinStock, v.ID)
	if err != nil {
		if isUnique(err) {
			return ErrDuplicateSize
		}
		return err
	}
	return notFoundIfZero(res, ErrVariantNotFound)
}

func (r *postgresRepo) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_variants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrVariantNotFound)
}

func (r *postgresRepo) ListProductSales(ctx context.Context, productID uuid.UUID) ([]*OrderHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.date, o.customer_name, o.status, v.size, i.quantity, i.unit_price, i.line_total
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN product_variants v ON v.id = i.product_variant_id
		WHERE v.product_id = $1
		ORDER BY o.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*OrderHistoryEntry
	for rows.Next() {
		e := &OrderHistoryEntry{}
		if err := rows.Scan(&e.OrderID, &e.Date, &e.CustomerName, &e.Status,
			&e.Size, &e.Quantity, &e.UnitPrice, &e.LineTotal); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	byID := map[uuid.UUID]*Product{}
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.SKU, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	variants, err := r.listVariants(ctx, `WHERE product_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, v := range variants {
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	return products, nil
}

func (r *postgresRepo) listVariants(ctx context.Context, where string, arg interface{}) ([]*ProductVariant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, size, selling_price, cost_price, stock, min_stock, created_at, updated_at
		FROM product_variants `+where+` ORDER BY size ASC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*ProductVariant
	for rows.Next() {
		v := &ProductVariant{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.SellingPrice, &v.CostPrice,
			&v.Stock, &v.MinStock, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func isUnique(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func notFoundIfZero(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
