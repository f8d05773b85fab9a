package export

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL export repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Products(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, sku, is_active
		FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	byID := map[uuid.UUID]*Product{}
	for rows.Next() {
		p := &Product{Variants: []*Variant{}}
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.SKU, &p.IsActive); err != nil {
			return nil, err
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	variantRows, err := r.db.QueryContext(ctx, `
		SELECT product_id, id, size, selling_price, cost_price, stock, min_stock
		FROM product_variants ORDER BY size`)
	if err != nil {
		return nil, err
	}
	defer variantRows.Close()

	for variantRows.Next() {
		var productID uuid.UUID
		v := &Variant{}
		if err := variantRows.Scan(&productID, &v.ID, &v.Size,
			&v.SellingPrice, &v.CostPrice, &v.Stock, &v.MinStock); err != nil {
			return nil, err
		}
		if p, ok := byID[productID]; ok {
			p.Variants = append(p.Variants, v)
			p.VariantCount++
			p.TotalStock += v.Stock
		}
	}
	return products, variantRows.Err()
}

func (r *postgresRepo) Orders(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, sales_channel, status, payment_method, date,
		       tags, total_amount, gift_card_code, gift_card_discount
		FROM orders ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	byID := map[uuid.UUID]*Order{}
	for rows.Next() {
		o := &Order{Items: []*OrderItem{}}
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.SalesChannel, &o.Status,
			&o.PaymentMethod, &o.Date, &o.Tags, &o.TotalAmount,
			&o.GiftCardCode, &o.GiftCardDiscount); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, p.name, pv.size, oi.quantity, oi.unit_price, oi.line_total
		FROM order_items oi
		JOIN product_variants pv ON pv.id = oi.product_variant_id
		JOIN products p ON p.id = pv.product_id
		ORDER BY oi.created_at`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID uuid.UUID
		item := &OrderItem{}
		if err := itemRows.Scan(&orderID, &item.ProductName, &item.Size,
			&item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *postgresRepo) Customers(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.email, c.phone, c.address,
		       COUNT(o.id), COALESCE(SUM(o.total_amount), 0)
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id AND o.status = 'CONFIRMED'
		GROUP BY c.id
		ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*Customer{}
	for rows.Next() {
		c := &Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.TotalOrders, &c.TotalSpent); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) Expenses(ctx context.Context) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount, category, description, invoice_url
		FROM expenses ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*Expense{}
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category,
			&e.Description, &e.InvoiceURL); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *postgresRepo) GiftCards(ctx context.Context) ([]*GiftCard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, initial_amount, remaining_amount, status,
		       recipient_name, purchased_by_name, expiration_date, created_at
		FROM gift_cards ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []*GiftCard{}
	for rows.Next() {
		g := &GiftCard{}
		if err := rows.Scan(&g.ID, &g.Code, &g.InitialAmount, &g.RemainingAmount,
			&g.Status, &g.RecipientName, &g.PurchasedByName,
			&g.ExpirationDate, &g.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, g)
	}
	return cards, rows.Err()
}
