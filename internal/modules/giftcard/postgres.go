package giftcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL gift card repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const cardColumns = `id, code, initial_amount, remaining_amount, status,
	recipient_name, recipient_email, purchased_by_name, purchased_by_email,
	purchased_by_phone, expiration_date, purchase_order_id, created_at, updated_at`

func (r *postgresRepo) CreateGiftCard(ctx context.Context, card *GiftCard, purchase *PurchaseOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The sale is booked as a confirmed order so revenue picks it up.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, customer_id, customer_name, customer_email, customer_phone,
		   sales_channel, status, payment_method, date, tags, total_amount, gift_card_discount)
		VALUES ($1,$2,$3,$4,$5,'AUTRE','CONFIRMED',$6,$7,$8,$9,0)`,
		purchase.ID, purchase.CustomerID, purchase.CustomerName, purchase.CustomerEmail,
		purchase.CustomerPhone, purchase.PaymentMethod, purchase.Date, purchase.Tags,
		purchase.TotalAmount)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}

	card.PurchaseOrderID = &purchase.ID
	_, err = tx.ExecContext(ctx, `
		INSERT INTO gift_cards
		  (id, code, initial_amount, remaining_amount, status,
		   recipient_name, recipient_email, purchased_by_name, purchased_by_email,
		   purchased_by_phone, expiration_date, purchase_order_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		card.ID, card.Code, card.InitialAmount, card.RemainingAmount, card.Status,
		card.RecipientName, card.RecipientEmail, card.PurchasedByName, card.PurchasedByEmail,
		card.PurchasedByPhone, card.ExpirationDate, card.PurchaseOrderID)
	if err != nil {
		if isUnique(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("insert gift card: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetGiftCardByID(ctx context.Context, id uuid.UUID) (*GiftCard, error) {
	return scanCard(r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM gift_cards WHERE id=$1`, id))
}

func (r *postgresRepo) GetGiftCardByCode(ctx context.Context, code string) (*GiftCard, error) {
	return scanCard(r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM gift_cards WHERE code=$1`, code))
}

func (r *postgresRepo) ListGiftCards(ctx context.Context, status, search string) ([]*GiftCard, error) {
	query := `SELECT ` + cardColumns + ` FROM gift_cards WHERE 1=1`
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (code ILIKE $%d OR recipient_name ILIKE $%d OR purchased_by_name ILIKE $%d)`,
			len(args), len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []*GiftCard{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *postgresRepo) UpdateGiftCard(ctx context.Context, card *GiftCard) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE gift_cards SET
		  recipient_name=$1, recipient_email=$2, purchased_by_name=$3,
		  purchased_by_email=$4, purchased_by_phone=$5, expiration_date=$6,
		  status=$7, updated_at=now()
		WHERE id=$8`,
		card.RecipientName, card.RecipientEmail, card.PurchasedByName,
		card.PurchasedByEmail, card.PurchasedByPhone, card.ExpirationDate,
		card.Status, card.ID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func (r *postgresRepo) DeleteGiftCard(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gift_cards WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res)
}

func (r *postgresRepo) CountRedemptions(ctx context.Context, card *GiftCard) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE gift_card_code=$1 AND ($2::uuid IS NULL OR id <> $2)`,
		card.Code, card.PurchaseOrderID).Scan(&n)
	return n, err
}

func (r *postgresRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM gift_cards WHERE code=$1)`, code).Scan(&exists)
	return exists, err
}

func scanCard(row interface{ Scan(dest ...interface{}) error }) (*GiftCard, error) {
	card := &GiftCard{}
	err := row.Scan(
		&card.ID, &card.Code, &card.InitialAmount, &card.RemainingAmount, &card.Status,
		&card.RecipientName, &card.RecipientEmail, &card.PurchasedByName,
		&card.PurchasedByEmail, &card.PurchasedByPhone, &card.ExpirationDate,
		&card.PurchaseOrderID, &card.CreatedAt, &card.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGiftCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

func notFoundIfZero(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGiftCardNotFound
	}
	return nil
}

func isUnique(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
