package expense

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines expense business logic.
type Service interface {
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error)
	GetExpense(ctx context.Context, id string) (*Expense, error)
	ListExpenses(ctx context.Context, from, to, category string) ([]*Expense, error)
	UpdateExpense(ctx context.Context, id string, req UpdateExpenseRequest) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	// ImportSpreadsheet reads an xlsx export and creates one expense
	// per valid row. Invalid rows are reported, not fatal.
	ImportSpreadsheet(ctx context.Context, file io.Reader) (*ImportResult, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new expense service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	e := &Expense{
		ID:          uuid.New(),
		Date:        date,
		Amount:      req.Amount,
		Category:    Category(req.Category),
		Description: req.Description,
		InvoiceURL:  req.InvoiceURL,
	}
	if req.ProductID != nil && *req.ProductID != "" {
		pid, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, ErrExpenseNotFound
		}
		e.ProductID = &pid
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		s.log.Error("create expense", zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *service) GetExpense(ctx context.Context, id string) (*Expense, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}
	return s.repo.GetExpenseByID(ctx, eid)
}

func (s *service) ListExpenses(ctx context.Context, from, to, category string) ([]*Expense, error) {
	var fromT, toT *time.Time
	if from != "" {
		t, err := parseDate(from)
		if err != nil {
			return nil, err
		}
		fromT = &t
	}
	if to != "" {
		t, err := parseDate(to)
		if err != nil {
			return nil, err
		}
		end := endOfDay(t)
		toT = &end
	}
	return s.repo.ListExpenses(ctx, fromT, toT, category)
}

func (s *service) UpdateExpense(ctx context.Context, id string, req UpdateExpenseRequest) (*Expense, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	e, err := s.repo.GetExpenseByID(ctx, eid)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		e.Date = date
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
		e.Amount = *req.Amount
	}
	if req.Category != nil {
		e.Category = Category(*req.Category)
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.ProductID != nil {
		if *req.ProductID == "" {
			e.ProductID = nil
		} else {
			pid, err := uuid.Parse(*req.ProductID)
			if err != nil {
				return nil, ErrExpenseNotFound
			}
			e.ProductID = &pid
		}
	}
	if req.InvoiceURL != nil {
		e.InvoiceURL = req.InvoiceURL
	}

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		s.log.Error("update expense", zap.String("expense_id", id), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *service) DeleteExpense(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return ErrExpenseNotFound
	}
	return s.repo.DeleteExpense(ctx, eid)
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

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}
