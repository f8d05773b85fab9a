package giftcard

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines gift card persistence. CreateGiftCard also
// records the purchase as a confirmed order in the same transaction.
type Repository interface {
	CreateGiftCard(ctx context.Context, card *GiftCard, purchase *PurchaseOrder) error
	GetGiftCardByID(ctx context.Context, id uuid.UUID) (*GiftCard, error)
	GetGiftCardByCode(ctx context.Context, code string) (*GiftCard, error)
	ListGiftCards(ctx context.Context, status, search string) ([]*GiftCard, error)
	UpdateGiftCard(ctx context.Context, card *GiftCard) error
	DeleteGiftCard(ctx context.Context, id uuid.UUID) error

	// CountRedemptions reports how many orders reference the code.
	// The purchase order itself is excluded.
	CountRedemptions(ctx context.Context, card *GiftCard) (int, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}
