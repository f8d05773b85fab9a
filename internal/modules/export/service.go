package export

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service assembles the full database dump.
type Service interface {
	Dump(ctx context.Context) (*Data, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// NewService creates a new export service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log, now: time.Now}
}

func (s *service) Dump(ctx context.Context) (*Data, error) {
	products, err := s.repo.Products(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.Orders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.Customers(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.Expenses(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := s.repo.GiftCards(ctx)
	if err != nil {
		return nil, err
	}

	data := &Data{
		ExportedAt: s.now(),
		Products:   products,
		Orders:     orders,
		Customers:  customers,
		Expenses:   expenses,
		GiftCards:  cards,
		Stats:      computeStats(products, orders, customers, expenses, cards),
	}
	s.log.Info("database export",
		zap.Int("products", len(products)),
		zap.Int("orders", len(orders)),
		zap.Int("customers", len(customers)))
	return data, nil
}

func computeStats(products []*Product, orders []*Order, customers []*Customer,
	expenses []*Expense, cards []*GiftCard) Stats {

	stats := Stats{
		OrderCount:             len(orders),
		ProductCount:           len(products),
		CustomerCount:          len(customers),
		GiftCardCount:          len(cards),
		TotalRevenue:           decimal.Zero,
		TotalExpenses:          decimal.Zero,
		OutstandingCardBalance: decimal.Zero,
	}
	for _, o := range orders {
		if o.Status == "CONFIRMED" {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		}
	}
	for _, e := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(e.Amount)
	}
	for _, g := range cards {
		if g.Status == "ACTIVE" {
			stats.OutstandingCardBalance = stats.OutstandingCardBalance.Add(g.RemainingAmount)
		}
	}
	stats.NetProfit = stats.TotalRevenue.Sub(stats.TotalExpenses)
	return stats
}
