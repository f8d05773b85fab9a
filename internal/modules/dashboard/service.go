package dashboard

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidDate is returned for unparseable startDate/endDate filters.
var ErrInvalidDate = errors.New("date must be RFC 3339 or YYYY-MM-DD")

// Service defines the dashboard aggregations.
type Service interface {
	Stats(ctx context.Context, startDate, endDate string) (*Stats, error)
	Analytics(ctx context.Context, startDate, endDate string) (*Analytics, error)
}

type service struct{ repo Repository }

// NewService creates a new dashboard service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Stats(ctx context.Context, startDate, endDate string) (*Stats, error) {
	from, to, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ConfirmedOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.repo.ExpenseTotal(ctx, from, to)
	if err != nil {
		return nil, err
	}
	variants, err := s.repo.AllVariants(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeStats(orders, variants, totalExpenses), nil
}

func (s *service) Analytics(ctx context.Context, startDate, endDate string) (*Analytics, error) {
	from, to, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ConfirmedOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return ComputeAnalytics(orders), nil
}

// parseRange parses the optional filters. The end date is pushed to the
// end of its day so a single-day range covers the whole day.
func parseRange(startDate, endDate string) (from, to *time.Time, err error) {
	if startDate != "" {
		t, err := parseDate(startDate)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if endDate != "" {
		t, err := parseDate(endDate)
		if err != nil {
			return nil, nil, err
		}
		end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
		to = &end
	}
	return from, to, nil
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
