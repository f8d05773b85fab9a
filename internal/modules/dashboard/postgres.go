package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL dashboard repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ConfirmedOrders(ctx context.Context, from, to *time.Time) ([]*OrderData, error) {
	query := `SELECT id, sales_channel, total_amount FROM orders WHERE status='CONFIRMED'`
	args := []interface{}{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*OrderData{}
	byID := map[uuid.UUID]*OrderData{}
	for rows.Next() {
		o := &OrderData{Items: []ItemData{}}
		if err := rows.Scan(&o.ID, &o.SalesChannel, &o.TotalAmount); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, pv.product_id, p.name, oi.quantity, oi.cost_price_at_sale, oi.line_total
		FROM order_items oi
		JOIN product_variants pv ON pv.id = oi.product_variant_id
		JOIN products p ON p.id = pv.product_id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID uuid.UUID
		var item ItemData
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.CostPriceAtSale, &item.LineTotal); err != nil {
			return nil, err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *postgresRepo) ExpenseTotal(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE 1=1`
	args := []interface{}{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *postgresRepo) AllVariants(ctx context.Context) ([]*VariantData, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pv.id, pv.product_id, p.name, pv.size, pv.stock, pv.min_stock,
		       pv.selling_price, pv.cost_price
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		ORDER BY p.name, pv.size`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []*VariantData{}
	for rows.Next() {
		v := &VariantData{}
		if err := rows.Scan(&v.VariantID, &v.ProductID, &v.ProductName, &v.Size,
			&v.Stock, &v.MinStock, &v.SellingPrice, &v.CostPrice); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
