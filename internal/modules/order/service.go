package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines order business logic.
type Service interface {
	// CreateOrder validates the payload, computes line totals and the
	// order total (minus any gift-card discount), and persists a DRAFT.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error

	// ConfirmOrder moves a DRAFT order to CONFIRMED, committing stock
	// and settling the gift card in one transaction.
	ConfirmOrder(ctx context.Context, id string) (*Order, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log, now: time.Now}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.GiftCardDiscount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	o := &Order{
		ID:               uuid.New(),
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		CustomerAddress:  req.CustomerAddress,
		SalesChannel:     SalesChannel(req.SalesChannel),
		Status:           StatusDraft,
		Date:             date,
		Tags:             req.Tags,
		GiftCardCode:     req.GiftCardCode,
		GiftCardDiscount: req.GiftCardDiscount,
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrOrderNotFound
		}
		o.CustomerID = &cid
	}
	if req.PaymentMethod != nil {
		pm := PaymentMethod(*req.PaymentMethod)
		o.PaymentMethod = &pm
	}

	items, subtotal, err := buildItems(o.ID, req.Items)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.TotalAmount = subtotal.Sub(req.GiftCardDiscount)

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		s.log.Error("create order", zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetOrderByID(ctx, oid)
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *service) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.repo.GetOrderByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if *req.CustomerID == "" {
			o.CustomerID = nil
		} else {
			cid, err := uuid.Parse(*req.CustomerID)
			if err != nil {
				return nil, ErrOrderNotFound
			}
			o.CustomerID = &cid
		}
	}
	if req.CustomerName != nil {
		o.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		o.CustomerEmail = req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		o.CustomerPhone = req.CustomerPhone
	}
	if req.CustomerAddress != nil {
		o.CustomerAddress = req.CustomerAddress
	}
	if req.SalesChannel != nil {
		o.SalesChannel = SalesChannel(*req.SalesChannel)
	}
	if req.PaymentMethod != nil {
		pm := PaymentMethod(*req.PaymentMethod)
		o.PaymentMethod = &pm
	}
	if req.Status != nil {
		o.Status = OrderStatus(*req.Status)
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		o.Date = date
	}
	if req.Tags != nil {
		o.Tags = req.Tags
	}

	replaceItems := req.Items != nil
	if replaceItems {
		items, subtotal, err := buildItems(o.ID, *req.Items)
		if err != nil {
			return nil, err
		}
		o.Items = items
		o.TotalAmount = subtotal.Sub(o.GiftCardDiscount)
	}

	if err := s.repo.UpdateOrder(ctx, o, replaceItems); err != nil {
		s.log.Error("update order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	oid, err := uuid.Parse(id)
	if err != nil {
		return ErrOrderNotFound
	}
	return s.repo.DeleteOrder(ctx, oid)
}

func (s *service) ConfirmOrder(ctx context.Context, id string) (*Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.repo.GetOrderByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	switch o.Status {
	case StatusConfirmed:
		return nil, ErrAlreadyConfirmed
	case StatusCancelled:
		return nil, ErrNotDraft
	}

	// Pre-check so a shortage is reported before any write. The
	// transaction re-checks under lock; this pass only exists to name
	// the offending item without opening a transaction.
	for _, item := range o.Items {
		available, found, err := s.repo.VariantStock(ctx, item.ProductVariantID)
		if err != nil {
			return nil, err
		}
		if !found || available < item.Quantity {
			return nil, &StockError{
				VariantID: item.ProductVariantID,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}

	if err := s.repo.ConfirmOrder(ctx, o); err != nil {
		if _, ok := err.(*StockError); !ok {
			s.log.Error("confirm order", zap.String("order_id", id), zap.Error(err))
		}
		return nil, err
	}

	return s.repo.GetOrderByID(ctx, oid)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func buildItems(orderID uuid.UUID, inputs []ItemInput) ([]*OrderItem, decimal.Decimal, error) {
	var items []*OrderItem
	subtotal := decimal.Zero

	for _, in := range inputs {
		if in.UnitPrice.IsNegative() || in.CostPriceAtSale.IsNegative() {
			return nil, decimal.Zero, ErrNegativeAmount
		}
		vid, err := uuid.Parse(in.ProductVariantID)
		if err != nil {
			return nil, decimal.Zero, ErrInvalidVariantID
		}

		lineTotal := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		items = append(items, &OrderItem{
			ID:               uuid.New(),
			OrderID:          orderID,
			ProductVariantID: vid,
			Quantity:         in.Quantity,
			UnitPrice:        in.UnitPrice,
			CostPriceAtSale:  in.CostPriceAtSale,
			LineTotal:        lineTotal,
		})
	}
	return items, subtotal, nil
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
