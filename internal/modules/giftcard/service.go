package giftcard

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines gift card business logic.
type Service interface {
	CreateGiftCard(ctx context.Context, req CreateGiftCardRequest) (*GiftCard, error)
	GetGiftCard(ctx context.Context, id string) (*GiftCard, error)
	ListGiftCards(ctx context.Context, status, search string) ([]*GiftCard, error)
	UpdateGiftCard(ctx context.Context, id string, req UpdateGiftCardRequest) (*GiftCard, error)
	PatchGiftCard(ctx context.Context, id string, req PatchGiftCardRequest) (*GiftCard, error)
	DeleteGiftCard(ctx context.Context, id string) error

	// Validate checks whether a card can pay towards an order and
	// computes the applicable discount. It never mutates the card;
	// settlement happens when the order is confirmed.
	Validate(ctx context.Context, req ValidateRequest) (*ValidationResult, error)
	GenerateCode(ctx context.Context) (string, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// NewService creates a new gift card service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log, now: time.Now}
}

func (s *service) CreateGiftCard(ctx context.Context, req CreateGiftCardRequest) (*GiftCard, error) {
	if req.InitialAmount.LessThan(decimal.NewFromInt(1)) {
		return nil, ErrInvalidAmount
	}

	var code string
	if req.Code != nil && *req.Code != "" {
		code = *req.Code
	} else {
		generated, err := s.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	var expirationDate *time.Time
	if req.ExpirationDate != nil && *req.ExpirationDate != "" {
		t, err := parseDate(*req.ExpirationDate)
		if err != nil {
			return nil, err
		}
		expirationDate = &t
	}

	card := &GiftCard{
		ID:               uuid.New(),
		Code:             code,
		InitialAmount:    req.InitialAmount,
		RemainingAmount:  req.InitialAmount,
		Status:           StatusActive,
		RecipientName:    req.RecipientName,
		RecipientEmail:   req.RecipientEmail,
		PurchasedByName:  req.PurchasedByName,
		PurchasedByEmail: req.PurchasedByEmail,
		PurchasedByPhone: req.PurchasedByPhone,
		ExpirationDate:   expirationDate,
	}

	customerName := "Achat bon cadeau"
	if req.PurchasedByName != nil && *req.PurchasedByName != "" {
		customerName = *req.PurchasedByName
	}
	purchase := &PurchaseOrder{
		ID:            uuid.New(),
		CustomerName:  customerName,
		CustomerEmail: req.PurchasedByEmail,
		CustomerPhone: req.PurchasedByPhone,
		PaymentMethod: req.PaymentMethod,
		Date:          s.now(),
		Tags:          "Bon cadeau: " + code,
		TotalAmount:   req.InitialAmount,
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrInvalidCustomerID
		}
		purchase.CustomerID = &customerID
	}

	if err := s.repo.CreateGiftCard(ctx, card, purchase); err != nil {
		if err != ErrDuplicateCode {
			s.log.Error("create gift card", zap.Error(err))
		}
		return nil, err
	}
	return card, nil
}

func (s *service) GetGiftCard(ctx context.Context, id string) (*GiftCard, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrGiftCardNotFound
	}
	return s.repo.GetGiftCardByID(ctx, cid)
}

func (s *service) ListGiftCards(ctx context.Context, status, search string) ([]*GiftCard, error) {
	return s.repo.ListGiftCards(ctx, status, search)
}

func (s *service) UpdateGiftCard(ctx context.Context, id string, req UpdateGiftCardRequest) (*GiftCard, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrGiftCardNotFound
	}

	card, err := s.repo.GetGiftCardByID(ctx, cid)
	if err != nil {
		return nil, err
	}

	patch := PatchGiftCardRequest{
		RecipientName:    req.RecipientName,
		RecipientEmail:   req.RecipientEmail,
		PurchasedByName:  req.PurchasedByName,
		PurchasedByEmail: req.PurchasedByEmail,
		PurchasedByPhone: req.PurchasedByPhone,
		ExpirationDate:   req.ExpirationDate,
	}
	if err := applyContactFields(card, patch); err != nil {
		return nil, err
	}
	if req.Status != nil {
		card.Status = Status(*req.Status)
	}

	if err := s.repo.UpdateGiftCard(ctx, card); err != nil {
		s.log.Error("update gift card", zap.String("gift_card_id", id), zap.Error(err))
		return nil, err
	}
	return card, nil
}

func (s *service) PatchGiftCard(ctx context.Context, id string, req PatchGiftCardRequest) (*GiftCard, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrGiftCardNotFound
	}

	card, err := s.repo.GetGiftCardByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if err := applyContactFields(card, req); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateGiftCard(ctx, card); err != nil {
		s.log.Error("patch gift card", zap.String("gift_card_id", id), zap.Error(err))
		return nil, err
	}
	return card, nil
}

func applyContactFields(card *GiftCard, req PatchGiftCardRequest) error {
	if req.RecipientName != nil {
		card.RecipientName = req.RecipientName
	}
	if req.RecipientEmail != nil {
		card.RecipientEmail = req.RecipientEmail
	}
	if req.PurchasedByName != nil {
		card.PurchasedByName = req.PurchasedByName
	}
	if req.PurchasedByEmail != nil {
		card.PurchasedByEmail = req.PurchasedByEmail
	}
	if req.PurchasedByPhone != nil {
		card.PurchasedByPhone = req.PurchasedByPhone
	}
	if req.ExpirationDate != nil {
		if *req.ExpirationDate == "" {
			card.ExpirationDate = nil
		} else {
			t, err := parseDate(*req.ExpirationDate)
			if err != nil {
				return err
			}
			card.ExpirationDate = &t
		}
	}
	return nil
}

func (s *service) DeleteGiftCard(ctx context.Context, id string) error {
	cid, err := uuid.Parse(id)
	if err != nil {
		return ErrGiftCardNotFound
	}

	card, err := s.repo.GetGiftCardByID(ctx, cid)
	if err != nil {
		return err
	}
	n, err := s.repo.CountRedemptions(ctx, card)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCardRedeemed
	}
	return s.repo.DeleteGiftCard(ctx, cid)
}

func (s *service) Validate(ctx context.Context, req ValidateRequest) (*ValidationResult, error) {
	if req.OrderAmount.IsNegative() {
		return nil, ErrNegativeOrder
	}

	card, err := s.repo.GetGiftCardByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{
		Code:               card.Code,
		InitialAmount:      card.InitialAmount,
		RemainingAmount:    card.RemainingAmount,
		Discount:           decimal.Zero,
		NewRemainingAmount: card.RemainingAmount,
	}
	switch {
	case card.Status != StatusActive:
		result.Reason = ErrCardNotActive.Error()
	case card.ExpirationDate != nil && card.ExpirationDate.Before(s.now()):
		result.Reason = ErrCardExpired.Error()
	case !card.RemainingAmount.IsPositive():
		result.Reason = ErrCardDepleted.Error()
	default:
		result.Valid = true
		result.Discount = decimal.Min(card.RemainingAmount, req.OrderAmount)
		result.NewRemainingAmount = card.RemainingAmount.Sub(result.Discount)
	}
	return result, nil
}

const codePrefix = "GIFT-"
const codeLength = 8

// codeAlphabet omits 0/O/1/I to keep handwritten codes unambiguous.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func (s *service) GenerateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return codePrefix + string(buf), nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
