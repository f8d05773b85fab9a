package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL customer repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, address)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	c := &Customer{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM customers WHERE id=$1`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, search string, limit int) ([]*Customer, error) {
	query := `
		SELECT id, name, email, phone, address, created_at, updated_at
		FROM customers`
	args := []interface{}{}
	if search != "" {
		query += `
		WHERE name ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		   OR phone ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY name ASC LIMIT ` + limitPlaceholder(len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c := &Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=$1, email=$2, phone=$3, address=$4, updated_at=now()
		WHERE id=$5`,
		c.Name, c.Email, c.Phone, c.Address, c.ID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func limitPlaceholder(n int) string {
	if n == 1 {
		return "$1"
	}
	return "$2"
}

func notFoundIfZero(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
