package giftcard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepo struct {
	createGiftCard    func(ctx context.Context, card *GiftCard, purchase *PurchaseOrder) error
	getGiftCardByID   func(ctx context.Context, id uuid.UUID) (*GiftCard, error)
	getGiftCardByCode func(ctx context.Context, code string) (*GiftCard, error)
	listGiftCards     func(ctx context.Context, status, search string) ([]*GiftCard, error)
	updateGiftCard    func(ctx context.Context, card *GiftCard) error
	deleteGiftCard    func(ctx context.Context, id uuid.UUID) error
	countRedemptions  func(ctx context.Context, card *GiftCard) (int, error)
	codeExists        func(ctx context.Context, code string) (bool, error)
}

func (m *mockRepo) CreateGiftCard(ctx context.Context, card *GiftCard, purchase *PurchaseOrder) error {
	return m.createGiftCard(ctx, card, purchase)
}
func (m *mockRepo) GetGiftCardByID(ctx context.Context, id uuid.UUID) (*GiftCard, error) {
	return m.getGiftCardByID(ctx, id)
}
func (m *mockRepo) GetGiftCardByCode(ctx context.Context, code string) (*GiftCard, error) {
	return m.getGiftCardByCode(ctx, code)
}
func (m *mockRepo) ListGiftCards(ctx context.Context, status, search string) ([]*GiftCard, error) {
	return m.listGiftCards(ctx, status, search)
}
func (m *mockRepo) UpdateGiftCard(ctx context.Context, card *GiftCard) error {
	return m.updateGiftCard(ctx, card)
}
func (m *mockRepo) DeleteGiftCard(ctx context.Context, id uuid.UUID) error {
	return m.deleteGiftCard(ctx, id)
}
func (m *mockRepo) CountRedemptions(ctx context.Context, card *GiftCard) (int, error) {
	return m.countRedemptions(ctx, card)
}
func (m *mockRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	return m.codeExists(ctx, code)
}

func newTestService(repo Repository, now time.Time) Service {
	s := NewService(repo, zap.NewNop()).(*service)
	s.now = func() time.Time { return now }
	return s
}

func TestCreateGiftCard(t *testing.T) {
	now := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)

	t.Run("records the sale as a confirmed purchase order", func(t *testing.T) {
		var savedCard *GiftCard
		var savedPurchase *PurchaseOrder
		repo := &mockRepo{
			codeExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
			createGiftCard: func(_ context.Context, card *GiftCard, purchase *PurchaseOrder) error {
				savedCard, savedPurchase = card, purchase
				return nil
			},
		}
		buyer := "Julie Favre"

		card, err := newTestService(repo, now).CreateGiftCard(context.Background(), CreateGiftCardRequest{
			InitialAmount:   decimal.NewFromInt(50),
			PurchasedByName: &buyer,
		})
		require.NoError(t, err)

		assert.Equal(t, StatusActive, card.Status)
		assert.True(t, card.RemainingAmount.Equal(card.InitialAmount))
		require.NotNil(t, savedPurchase)
		assert.Equal(t, "Julie Favre", savedPurchase.CustomerName)
		assert.True(t, savedPurchase.TotalAmount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "Bon cadeau: "+savedCard.Code, savedPurchase.Tags)
	})

	t.Run("anonymous buyer gets the default name", func(t *testing.T) {
		var savedPurchase *PurchaseOrder
		repo := &mockRepo{
			codeExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
			createGiftCard: func(_ context.Context, _ *GiftCard, purchase *PurchaseOrder) error {
				savedPurchase = purchase
				return nil
			},
		}

		_, err := newTestService(repo, now).CreateGiftCard(context.Background(), CreateGiftCardRequest{
			InitialAmount: decimal.NewFromInt(30),
		})
		require.NoError(t, err)
		assert.Equal(t, "Achat bon cadeau", savedPurchase.CustomerName)
	})

	t.Run("carries purchaser contact and customer link onto the order", func(t *testing.T) {
		var savedPurchase *PurchaseOrder
		repo := &mockRepo{
			codeExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
			createGiftCard: func(_ context.Context, _ *GiftCard, purchase *PurchaseOrder) error {
				savedPurchase = purchase
				return nil
			},
		}
		customerID := uuid.New()
		customerIDStr := customerID.String()
		email := "julie@example.com"
		phone := "+41791234567"
		payment := "TWINT"

		_, err := newTestService(repo, now).CreateGiftCard(context.Background(), CreateGiftCardRequest{
			InitialAmount:    decimal.NewFromInt(50),
			PurchasedByEmail: &email,
			PurchasedByPhone: &phone,
			CustomerID:       &customerIDStr,
			PaymentMethod:    &payment,
		})
		require.NoError(t, err)
		require.NotNil(t, savedPurchase)
		require.NotNil(t, savedPurchase.CustomerID)
		assert.Equal(t, customerID, *savedPurchase.CustomerID)
		assert.Equal(t, "julie@example.com", *savedPurchase.CustomerEmail)
		assert.Equal(t, "+41791234567", *savedPurchase.CustomerPhone)
		assert.Equal(t, "TWINT", *savedPurchase.PaymentMethod)
	})

	t.Run("rejects a malformed customer id", func(t *testing.T) {
		repo := &mockRepo{
			codeExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		}
		bad := "not-a-uuid"

		_, err := newTestService(repo, now).CreateGiftCard(context.Background(), CreateGiftCardRequest{
			InitialAmount: decimal.NewFromInt(50),
			CustomerID:    &bad,
		})
		assert.ErrorIs(t, err, ErrInvalidCustomerID)
	})

	t.Run("rejects amounts below one", func(t *testing.T) {
		_, err := newTestService(&mockRepo{}, now).CreateGiftCard(context.Background(), CreateGiftCardRequest{
			InitialAmount: decimal.NewFromFloat(0.5),
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)

	card := func() *GiftCard {
		return &GiftCard{
			Code:            "GIFT-ABCD2345",
			Status:          StatusActive,
			InitialAmount:   decimal.NewFromInt(50),
			RemainingAmount: decimal.NewFromInt(30),
		}
	}
	withCard := func(c *GiftCard) *mockRepo {
		return &mockRepo{
			getGiftCardByCode: func(_ context.Context, _ string) (*GiftCard, error) { return c, nil },
		}
	}

	t.Run("discount bounded by balance", func(t *testing.T) {
		result, err := newTestService(withCard(card()), now).Validate(context.Background(), ValidateRequest{
			Code: "GIFT-ABCD2345", OrderAmount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.True(t, result.Discount.Equal(decimal.NewFromInt(30)))
		assert.True(t, result.NewRemainingAmount.IsZero())
	})

	t.Run("discount bounded by order amount", func(t *testing.T) {
		result, err := newTestService(withCard(card()), now).Validate(context.Background(), ValidateRequest{
			Code: "GIFT-ABCD2345", OrderAmount: decimal.NewFromInt(20),
		})
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.True(t, result.Discount.Equal(decimal.NewFromInt(20)))
		assert.True(t, result.InitialAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, result.NewRemainingAmount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects a negative order amount", func(t *testing.T) {
		_, err := newTestService(withCard(card()), now).Validate(context.Background(), ValidateRequest{
			Code: "GIFT-ABCD2345", OrderAmount: decimal.NewFromInt(-5),
		})
		assert.ErrorIs(t, err, ErrNegativeOrder)
	})

	t.Run("used card is invalid", func(t *testing.T) {
		c := card()
		c.Status = StatusUsed
		result, err := newTestService(withCard(c), now).Validate(context.Background(), ValidateRequest{
			Code: c.Code, OrderAmount: decimal.NewFromInt(20),
		})
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.True(t, result.Discount.IsZero())
		assert.True(t, result.NewRemainingAmount.Equal(c.RemainingAmount))
	})

	t.Run("expired card is invalid", func(t *testing.T) {
		c := card()
		past := now.Add(-24 * time.Hour)
		c.ExpirationDate = &past
		result, err := newTestService(withCard(c), now).Validate(context.Background(), ValidateRequest{
			Code: c.Code, OrderAmount: decimal.NewFromInt(20),
		})
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, ErrCardExpired.Error(), result.Reason)
	})

	t.Run("depleted card is invalid", func(t *testing.T) {
		c := card()
		c.RemainingAmount = decimal.Zero
		result, err := newTestService(withCard(c), now).Validate(context.Background(), ValidateRequest{
			Code: c.Code, OrderAmount: decimal.NewFromInt(20),
		})
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, ErrCardDepleted.Error(), result.Reason)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := &mockRepo{
			getGiftCardByCode: func(_ context.Context, _ string) (*GiftCard, error) {
				return nil, ErrGiftCardNotFound
			},
		}
		_, err := newTestService(repo, now).Validate(context.Background(), ValidateRequest{
			Code: "GIFT-MISSING1", OrderAmount: decimal.NewFromInt(20),
		})
		assert.ErrorIs(t, err, ErrGiftCardNotFound)
	})
}

func TestGenerateCode(t *testing.T) {
	now := time.Now()

	t.Run("shape", func(t *testing.T) {
		repo := &mockRepo{
			codeExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		}
		code, err := newTestService(repo, now).GenerateCode(context.Background())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(code, "GIFT-"))
		assert.Len(t, code, len("GIFT-")+8)
		for _, r := range strings.TrimPrefix(code, "GIFT-") {
			assert.Contains(t, codeAlphabet, string(r))
		}
	})

	t.Run("retries on collision", func(t *testing.T) {
		calls := 0
		repo := &mockRepo{
			codeExists: func(_ context.Context, _ string) (bool, error) {
				calls++
				return calls < 3, nil
			},
		}
		_, err := newTestService(repo, now).GenerateCode(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after ten attempts", func(t *testing.T) {
		calls := 0
		repo := &mockRepo{
			codeExists: func(_ context.Context, _ string) (bool, error) {
				calls++
				return true, nil
			},
		}
		_, err := newTestService(repo, now).GenerateCode(context.Background())
		assert.ErrorIs(t, err, ErrCodeGeneration)
		assert.Equal(t, 10, calls)
	})
}

func TestPatchGiftCard(t *testing.T) {
	now := time.Now()
	id := uuid.New()

	stored := func() *GiftCard {
		return &GiftCard{
			ID:              id,
			Code:            "GIFT-ABCD2345",
			Status:          StatusActive,
			InitialAmount:   decimal.NewFromInt(50),
			RemainingAmount: decimal.NewFromInt(50),
		}
	}

	t.Run("updates contact fields only", func(t *testing.T) {
		var saved *GiftCard
		repo := &mockRepo{
			getGiftCardByID: func(_ context.Context, _ uuid.UUID) (*GiftCard, error) { return stored(), nil },
			updateGiftCard:  func(_ context.Context, c *GiftCard) error { saved = c; return nil },
		}
		recipient := "Camille"
		expiry := "2026-12-31"

		card, err := newTestService(repo, now).PatchGiftCard(context.Background(), id.String(), PatchGiftCardRequest{
			RecipientName:  &recipient,
			ExpirationDate: &expiry,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "Camille", *card.RecipientName)
		assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), *card.ExpirationDate)
		assert.Equal(t, StatusActive, card.Status)
		assert.True(t, card.RemainingAmount.Equal(decimal.NewFromInt(50)))
	})

	t.Run("clears the expiration with an empty string", func(t *testing.T) {
		c := stored()
		past := now.Add(24 * time.Hour)
		c.ExpirationDate = &past
		repo := &mockRepo{
			getGiftCardByID: func(_ context.Context, _ uuid.UUID) (*GiftCard, error) { return c, nil },
			updateGiftCard:  func(_ context.Context, _ *GiftCard) error { return nil },
		}
		empty := ""

		card, err := newTestService(repo, now).PatchGiftCard(context.Background(), id.String(), PatchGiftCardRequest{
			ExpirationDate: &empty,
		})
		require.NoError(t, err)
		assert.Nil(t, card.ExpirationDate)
	})

	t.Run("rejects an unparseable date", func(t *testing.T) {
		repo := &mockRepo{
			getGiftCardByID: func(_ context.Context, _ uuid.UUID) (*GiftCard, error) { return stored(), nil },
		}
		bad := "31/12/2026"

		_, err := newTestService(repo, now).PatchGiftCard(context.Background(), id.String(), PatchGiftCardRequest{
			ExpirationDate: &bad,
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestDeleteGiftCard(t *testing.T) {
	now := time.Now()
	id := uuid.New()
	card := &GiftCard{ID: id, Code: "GIFT-ABCD2345"}

	t.Run("redeemed card cannot be deleted", func(t *testing.T) {
		repo := &mockRepo{
			getGiftCardByID:  func(_ context.Context, _ uuid.UUID) (*GiftCard, error) { return card, nil },
			countRedemptions: func(_ context.Context, _ *GiftCard) (int, error) { return 2, nil },
		}
		err := newTestService(repo, now).DeleteGiftCard(context.Background(), id.String())
		assert.ErrorIs(t, err, ErrCardRedeemed)
	})

	t.Run("unused card deletes", func(t *testing.T) {
		deleted := false
		repo := &mockRepo{
			getGiftCardByID:  func(_ context.Context, _ uuid.UUID) (*GiftCard, error) { return card, nil },
			countRedemptions: func(_ context.Context, _ *GiftCard) (int, error) { return 0, nil },
			deleteGiftCard:   func(_ context.Context, _ uuid.UUID) error { deleted = true; return nil },
		}
		err := newTestService(repo, now).DeleteGiftCard(context.Background(), id.String())
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}
