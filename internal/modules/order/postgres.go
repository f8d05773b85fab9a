package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, customer_id, customer_name, customer_email, customer_phone, customer_address,
	sales_channel, status, payment_method, date, tags, total_amount,
	gift_card_code, gift_card_discount, created_at, updated_at`

func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, customer_id, customer_name, customer_email, customer_phone, customer_address,
		   sales_channel, status, payment_method, date, tags, total_amount,
		   gift_card_code, gift_card_discount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
		o.SalesChannel, o.Status, o.PaymentMethod, o.Date, o.Tags, o.TotalAmount,
		o.GiftCardCode, o.GiftCardDiscount)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListOrders(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	byID := map[uuid.UUID]*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		o.Items = []*OrderItem{}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_variant_id, quantity, unit_price, cost_price_at_sale, line_total, created_at
		FROM order_items ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item := &OrderItem{}
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductVariantID,
			&item.Quantity, &item.UnitPrice, &item.CostPriceAtSale, &item.LineTotal,
			&item.CreatedAt); err != nil {
			return nil, err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *postgresRepo) UpdateOrder(ctx context.Context, o *Order, replaceItems bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET
		  customer_id=$1, customer_name=$2, customer_email=$3, customer_phone=$4,
		  customer_address=$5, sales_channel=$6, status=$7, payment_method=$8,
		  date=$9, tags=$10, total_amount=$11, updated_at=now()
		WHERE id=$12`,
		o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.CustomerAddress, o.SalesChannel, o.Status, o.PaymentMethod,
		o.Date, o.Tags, o.TotalAmount, o.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrOrderNotFound
	}

	if replaceItems {
		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
			return err
		}
		if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *postgresRepo) VariantStock(ctx context.Context, variantID uuid.UUID) (int, bool, error) {
	var stock int
	err := r.db.QueryRowContext(ctx,
		`SELECT stock FROM product_variants WHERE id=$1`, variantID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return stock, true, nil
}

// ConfirmOrder is the one multi-step write in the system. The order row
// is locked for the duration so racing confirmations serialize: the
// loser sees a non-DRAFT status and gets a conflict instead of a second
// stock decrement.
func (r *postgresRepo) ConfirmOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id=$1 FOR UPDATE`, o.ID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	switch status {
	case StatusConfirmed:
		return ErrAlreadyConfirmed
	case StatusCancelled:
		return ErrNotDraft
	}

	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE product_variants
			SET stock = stock - $1, updated_at = now()
			WHERE id = $2 AND stock >= $1`,
			item.Quantity, item.ProductVariantID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// Stock moved between the pre-check and the lock.
			var available int
			_ = tx.QueryRowContext(ctx,
				`SELECT stock FROM product_variants WHERE id=$1`,
				item.ProductVariantID).Scan(&available)
			return &StockError{
				VariantID: item.ProductVariantID,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=now() WHERE id=$2`,
		StatusConfirmed, o.ID); err != nil {
		return err
	}

	if o.GiftCardCode != nil && o.GiftCardDiscount.IsPositive() {
		if err := settleGiftCardTx(ctx, tx, *o.GiftCardCode, o.GiftCardDiscount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// settleGiftCardTx deducts the discount from the card inside the
// confirmation transaction. A missing card is skipped, matching the
// behaviour of order creation which stores the code without a FK.
func settleGiftCardTx(ctx context.Context, tx *sql.Tx, code string, discount decimal.Decimal) error {
	var id uuid.UUID
	var remaining decimal.Decimal
	err := tx.QueryRowContext(ctx,
		`SELECT id, remaining_amount FROM gift_cards WHERE code=$1 FOR UPDATE`, code).
		Scan(&id, &remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	newRemaining, used := settleGiftCard(remaining, discount)
	status := "ACTIVE"
	if used {
		status = "USED"
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE gift_cards SET remaining_amount=$1, status=$2, updated_at=now() WHERE id=$3`,
		newRemaining, status, id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.CustomerAddress, &o.SalesChannel, &o.Status, &o.PaymentMethod, &o.Date,
		&o.Tags, &o.TotalAmount, &o.GiftCardCode, &o.GiftCardDiscount,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_variant_id, quantity, unit_price, cost_price_at_sale, line_total, created_at
		FROM order_items WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*OrderItem{}
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductVariantID,
			&item.Quantity, &item.UnitPrice, &item.CostPriceAtSale, &item.LineTotal,
			&item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID uuid.UUID, items []*OrderItem) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, product_variant_id, quantity, unit_price, cost_price_at_sale, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			item.ID, orderID, item.ProductVariantID,
			item.Quantity, item.UnitPrice, item.CostPriceAtSale, item.LineTotal)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}
	return nil
}
