package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL expense repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const expenseColumns = `id, date, amount, category, description, product_id, invoice_url, created_at`

func (r *postgresRepo) CreateExpense(ctx context.Context, e *Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, date, amount, category, description, product_id, invoice_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.Date, e.Amount, e.Category, e.Description, e.ProductID, e.InvoiceURL)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetExpenseByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	e := &Expense{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id=$1`, id).
		Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Description,
			&e.ProductID, &e.InvoiceURL, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *postgresRepo) ListExpenses(ctx context.Context, from, to *time.Time, category string) ([]*Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE 1=1`
	args := []interface{}{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*Expense{}
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Description,
			&e.ProductID, &e.InvoiceURL, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *postgresRepo) UpdateExpense(ctx context.Context, e *Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET
		  date=$1, amount=$2, category=$3, description=$4, product_id=$5, invoice_url=$6
		WHERE id=$7`,
		e.Date, e.Amount, e.Category, e.Description, e.ProductID, e.InvoiceURL, e.ID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func (r *postgresRepo) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func notFoundIfZero(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
