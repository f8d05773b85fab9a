package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepo struct {
	createOrder  func(ctx context.Context, o *Order) error
	getOrderByID func(ctx context.Context, id uuid.UUID) (*Order, error)
	listOrders   func(ctx context.Context) ([]*Order, error)
	updateOrder  func(ctx context.Context, o *Order, replaceItems bool) error
	deleteOrder  func(ctx context.Context, id uuid.UUID) error
	variantStock func(ctx context.Context, variantID uuid.UUID) (int, bool, error)
	confirmOrder func(ctx context.Context, o *Order) error
}

func (m *mockRepo) CreateOrder(ctx context.Context, o *Order) error { return m.createOrder(ctx, o) }
func (m *mockRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	return m.getOrderByID(ctx, id)
}
func (m *mockRepo) ListOrders(ctx context.Context) ([]*Order, error) { return m.listOrders(ctx) }
func (m *mockRepo) UpdateOrder(ctx context.Context, o *Order, replaceItems bool) error {
	return m.updateOrder(ctx, o, replaceItems)
}
func (m *mockRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.deleteOrder(ctx, id)
}
func (m *mockRepo) VariantStock(ctx context.Context, variantID uuid.UUID) (int, bool, error) {
	return m.variantStock(ctx, variantID)
}
func (m *mockRepo) ConfirmOrder(ctx context.Context, o *Order) error { return m.confirmOrder(ctx, o) }

func newTestService(repo Repository) Service {
	return NewService(repo, zap.NewNop())
}

func TestCreateOrder(t *testing.T) {
	variantID := uuid.New()

	t.Run("computes line totals and order total", func(t *testing.T) {
		var saved *Order
		repo := &mockRepo{
			createOrder: func(_ context.Context, o *Order) error { saved = o; return nil },
		}

		o, err := newTestService(repo).CreateOrder(context.Background(), CreateOrderRequest{
			CustomerName:     "Léa Martin",
			SalesChannel:     "STAND",
			Date:             "2025-06-14",
			GiftCardDiscount: decimal.NewFromInt(10),
			Items: []ItemInput{
				{ProductVariantID: variantID.String(), Quantity: 2, UnitPrice: decimal.NewFromInt(30), CostPriceAtSale: decimal.NewFromInt(12)},
				{ProductVariantID: variantID.String(), Quantity: 1, UnitPrice: decimal.NewFromInt(25), CostPriceAtSale: decimal.NewFromInt(10)},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, saved)

		assert.Equal(t, StatusDraft, o.Status)
		assert.True(t, o.Items[0].LineTotal.Equal(decimal.NewFromInt(60)))
		assert.True(t, o.Items[1].LineTotal.Equal(decimal.NewFromInt(25)))
		// 85 subtotal minus the 10 gift card discount
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(75)))
	})

	t.Run("rejects unparseable date", func(t *testing.T) {
		_, err := newTestService(&mockRepo{}).CreateOrder(context.Background(), CreateOrderRequest{
			CustomerName: "x", SalesChannel: "STAND", Date: "14/06/2025",
			Items: []ItemInput{{ProductVariantID: variantID.String(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := newTestService(&mockRepo{}).CreateOrder(context.Background(), CreateOrderRequest{
			CustomerName: "x", SalesChannel: "STAND", Date: "2025-06-14",
			GiftCardDiscount: decimal.NewFromInt(-1),
			Items:            []ItemInput{{ProductVariantID: variantID.String(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("rejects malformed variant id", func(t *testing.T) {
		_, err := newTestService(&mockRepo{}).CreateOrder(context.Background(), CreateOrderRequest{
			CustomerName: "x", SalesChannel: "STAND", Date: "2025-06-14",
			Items: []ItemInput{{ProductVariantID: "not-a-uuid", Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrInvalidVariantID)
	})
}

func TestConfirmOrder(t *testing.T) {
	orderID := uuid.New()
	variantID := uuid.New()

	draft := func() *Order {
		return &Order{
			ID:     orderID,
			Status: StatusDraft,
			Items: []*OrderItem{
				{ProductVariantID: variantID, Quantity: 2},
			},
		}
	}

	t.Run("success", func(t *testing.T) {
		confirmed := false
		repo := &mockRepo{
			getOrderByID: func(_ context.Context, id uuid.UUID) (*Order, error) {
				o := draft()
				if confirmed {
					o.Status = StatusConfirmed
				}
				return o, nil
			},
			variantStock: func(_ context.Context, _ uuid.UUID) (int, bool, error) { return 5, true, nil },
			confirmOrder: func(_ context.Context, _ *Order) error { confirmed = true; return nil },
		}

		o, err := newTestService(repo).ConfirmOrder(context.Background(), orderID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		repo := &mockRepo{
			getOrderByID: func(_ context.Context, _ uuid.UUID) (*Order, error) {
				return nil, ErrOrderNotFound
			},
		}
		_, err := newTestService(repo).ConfirmOrder(context.Background(), orderID.String())
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := newTestService(&mockRepo{}).ConfirmOrder(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("already confirmed", func(t *testing.T) {
		repo := &mockRepo{
			getOrderByID: func(_ context.Context, _ uuid.UUID) (*Order, error) {
				o := draft()
				o.Status = StatusConfirmed
				return o, nil
			},
		}
		_, err := newTestService(repo).ConfirmOrder(context.Background(), orderID.String())
		assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	})

	t.Run("cancelled order", func(t *testing.T) {
		repo := &mockRepo{
			getOrderByID: func(_ context.Context, _ uuid.UUID) (*Order, error) {
				o := draft()
				o.Status = StatusCancelled
				return o, nil
			},
		}
		_, err := newTestService(repo).ConfirmOrder(context.Background(), orderID.String())
		assert.ErrorIs(t, err, ErrNotDraft)
	})

	t.Run("insufficient stock names the variant and writes nothing", func(t *testing.T) {
		confirmCalled := false
		repo := &mockRepo{
			getOrderByID: func(_ context.Context, _ uuid.UUID) (*Order, error) { return draft(), nil },
			variantStock: func(_ context.Context, _ uuid.UUID) (int, bool, error) { return 1, true, nil },
			confirmOrder: func(_ context.Context, _ *Order) error { confirmCalled = true; return nil },
		}

		_, err := newTestService(repo).ConfirmOrder(context.Background(), orderID.String())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientStock)

		var stockErr *StockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, variantID, stockErr.VariantID)
		assert.Equal(t, 2, stockErr.Requested)
		assert.Equal(t, 1, stockErr.Available)
		assert.False(t, confirmCalled)
	})

	t.Run("missing variant reported as shortage", func(t *testing.T) {
		repo := &mockRepo{
			getOrderByID: func(_ context.Context, _ uuid.UUID) (*Order, error) { return draft(), nil },
			variantStock: func(_ context.Context, _ uuid.UUID) (int, bool, error) { return 0, false, nil },
		}
		_, err := newTestService(repo).ConfirmOrder(context.Background(), orderID.String())
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})
}

// fakeRepo mimics the transactional behaviour of the real store so the
// full lifecycle can be exercised in memory.
type fakeRepo struct {
	orders map[uuid.UUID]*Order
	stock  map[uuid.UUID]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: map[uuid.UUID]*Order{}, stock: map[uuid.UUID]int{}}
}

func (f *fakeRepo) CreateOrder(_ context.Context, o *Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeRepo) ListOrders(_ context.Context) ([]*Order, error) {
	orders := make([]*Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (f *fakeRepo) UpdateOrder(_ context.Context, o *Order, _ bool) error {
	if _, ok := f.orders[o.ID]; !ok {
		return ErrOrderNotFound
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	if _, ok := f.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeRepo) VariantStock(_ context.Context, variantID uuid.UUID) (int, bool, error) {
	stock, ok := f.stock[variantID]
	return stock, ok, nil
}

func (f *fakeRepo) ConfirmOrder(_ context.Context, o *Order) error {
	stored, ok := f.orders[o.ID]
	if !ok {
		return ErrOrderNotFound
	}
	switch stored.Status {
	case StatusConfirmed:
		return ErrAlreadyConfirmed
	case StatusCancelled:
		return ErrNotDraft
	}
	for _, item := range o.Items {
		if f.stock[item.ProductVariantID] < item.Quantity {
			return &StockError{
				VariantID: item.ProductVariantID,
				Requested: item.Quantity,
				Available: f.stock[item.ProductVariantID],
			}
		}
	}
	for _, item := range o.Items {
		f.stock[item.ProductVariantID] -= item.Quantity
	}
	stored.Status = StatusConfirmed
	return nil
}

func TestOrderLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	variantID := uuid.New()
	repo.stock[variantID] = 5

	o, err := svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerName: "Client Stand",
		SalesChannel: "STAND",
		Date:         "2025-06-14",
		Items: []ItemInput{
			{ProductVariantID: variantID.String(), Quantity: 2, UnitPrice: decimal.NewFromInt(35), CostPriceAtSale: decimal.NewFromInt(14)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, o.Status)
	assert.Equal(t, 5, repo.stock[variantID], "draft must not touch stock")

	confirmed, err := svc.ConfirmOrder(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	assert.Equal(t, 3, repo.stock[variantID])

	// Confirming again is rejected and does not decrement twice.
	_, err = svc.ConfirmOrder(ctx, o.ID.String())
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Equal(t, 3, repo.stock[variantID])
}

func TestConfirmOrderShortageLeavesStock(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	available := uuid.New()
	scarce := uuid.New()
	repo.stock[available] = 10
	repo.stock[scarce] = 1

	o, err := svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerName: "Client Site",
		SalesChannel: "SITE",
		Date:         "2025-06-14",
		Items: []ItemInput{
			{ProductVariantID: available.String(), Quantity: 3, UnitPrice: decimal.NewFromInt(20)},
			{ProductVariantID: scarce.String(), Quantity: 2, UnitPrice: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)

	_, err = svc.ConfirmOrder(ctx, o.ID.String())
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing moved: not even the fulfillable line.
	assert.Equal(t, 10, repo.stock[available])
	assert.Equal(t, 1, repo.stock[scarce])

	stored, err := svc.GetOrder(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, stored.Status)
}
