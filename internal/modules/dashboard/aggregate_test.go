package dashboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal    { return decimal.NewFromInt(v) }
func df(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
func eq(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestComputeStats(t *testing.T) {
	hoodie := uuid.New()
	tee := uuid.New()

	orders := []*OrderData{
		{
			ID: uuid.New(), SalesChannel: "STAND", TotalAmount: d(100),
			Items: []ItemData{
				{ProductID: hoodie, ProductName: "Hoodie", Quantity: 2, CostPriceAtSale: d(15), LineTotal: d(80)},
				{ProductID: tee, ProductName: "T-shirt", Quantity: 1, CostPriceAtSale: d(8), LineTotal: d(20)},
			},
		},
		{
			ID: uuid.New(), SalesChannel: "SITE", TotalAmount: d(40),
			Items: []ItemData{
				{ProductID: tee, ProductName: "T-shirt", Quantity: 2, CostPriceAtSale: d(9), LineTotal: d(40)},
			},
		},
	}

	stats := ComputeStats(orders, nil, d(56))

	eq(t, d(140), stats.TotalRevenue)
	// 2×15 + 1×8 + 2×9
	eq(t, d(56), stats.TotalCost)
	eq(t, d(56), stats.TotalExpenses)
	// profit is revenue minus expenses; cost of goods is informational
	eq(t, d(84), stats.Profit)
	assert.Equal(t, 2, stats.OrderCount)
}

func TestComputeStatsPotentialFigures(t *testing.T) {
	orders := []*OrderData{
		{ID: uuid.New(), SalesChannel: "STAND", TotalAmount: d(100)},
	}
	variants := []*VariantData{
		{VariantID: uuid.New(), ProductName: "Hoodie", Size: "M", Stock: 3, MinStock: 1, SellingPrice: d(40), CostPrice: d(15)},
		{VariantID: uuid.New(), ProductName: "Hoodie", Size: "L", Stock: 0, MinStock: 2, SellingPrice: d(40), CostPrice: d(15)},
	}

	stats := ComputeStats(orders, variants, d(10))

	// Potential spans every variant regardless of the date filter.
	eq(t, d(120), stats.PotentialRevenue)
	eq(t, d(45), stats.PotentialCost)
	eq(t, d(110), stats.PotentialProfit)
	eq(t, d(220), stats.GlobalRevenue)
	eq(t, d(210), stats.GlobalProfit)

	require.Len(t, stats.LowStockVariants, 1)
	assert.Equal(t, "L", stats.LowStockVariants[0].Size)
	assert.Equal(t, 0, stats.LowStockVariants[0].Stock)
}

func TestComputeStatsTopProducts(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	names := []string{"Casquette", "Hoodie", "T-shirt"}
	quantities := []int{5, 10, 2}

	orders := []*OrderData{}
	for i, id := range ids {
		orders = append(orders, &OrderData{
			ID: uuid.New(), SalesChannel: "STAND", TotalAmount: d(10),
			Items: []ItemData{
				{ProductID: id, ProductName: names[i], Quantity: quantities[i], LineTotal: d(10)},
			},
		})
	}

	stats := ComputeStats(orders, nil, decimal.Zero)

	require.Len(t, stats.TopProducts, 3)
	assert.Equal(t, []int{10, 5, 2}, []int{
		stats.TopProducts[0].Quantity,
		stats.TopProducts[1].Quantity,
		stats.TopProducts[2].Quantity,
	})
	assert.Equal(t, "Hoodie", stats.TopProducts[0].Name)
}

func TestComputeStatsTopProductsCap(t *testing.T) {
	orders := []*OrderData{}
	for i := 0; i < 7; i++ {
		orders = append(orders, &OrderData{
			ID: uuid.New(), SalesChannel: "STAND", TotalAmount: d(10),
			Items: []ItemData{
				{ProductID: uuid.New(), ProductName: "P", Quantity: i + 1, LineTotal: d(10)},
			},
		})
	}
	stats := ComputeStats(orders, nil, decimal.Zero)
	assert.Len(t, stats.TopProducts, 5)
	assert.Equal(t, 7, stats.TopProducts[0].Quantity)
}

func TestComputeAnalytics(t *testing.T) {
	hoodie := uuid.New()
	tee := uuid.New()

	orders := []*OrderData{
		{
			ID: uuid.New(), SalesChannel: "STAND", TotalAmount: d(100),
			Items: []ItemData{
				{ProductID: hoodie, ProductName: "Hoodie", Quantity: 2, CostPriceAtSale: d(15), LineTotal: d(80)},
			},
		},
		{
			ID: uuid.New(), SalesChannel: "STAND", TotalAmount: d(60),
			Items: []ItemData{
				{ProductID: tee, ProductName: "T-shirt", Quantity: 3, CostPriceAtSale: d(8), LineTotal: d(60)},
			},
		},
		{
			ID: uuid.New(), SalesChannel: "SITE", TotalAmount: d(40),
			Items: []ItemData{
				{ProductID: tee, ProductName: "T-shirt", Quantity: 2, CostPriceAtSale: d(8), LineTotal: d(40)},
			},
		},
	}

	analytics := ComputeAnalytics(orders)

	t.Run("most profitable products", func(t *testing.T) {
		require.Len(t, analytics.MostProfitableProducts, 2)
		top := analytics.MostProfitableProducts[0]
		// T-shirt: revenue 100, cost 40, profit 60 beats Hoodie's 50
		assert.Equal(t, "T-shirt", top.Name)
		eq(t, d(60), top.Profit)
		eq(t, d(12), top.UnitMargin)

		hoodieRow := analytics.MostProfitableProducts[1]
		eq(t, d(50), hoodieRow.Profit)
		eq(t, d(25), hoodieRow.UnitMargin)
	})

	t.Run("channels sorted by revenue", func(t *testing.T) {
		require.Len(t, analytics.BestPerformingChannels, 2)
		stand := analytics.BestPerformingChannels[0]
		assert.Equal(t, "STAND", stand.Channel)
		assert.Equal(t, 2, stand.OrderCount)
		eq(t, d(160), stand.Revenue)
		eq(t, d(54), stand.Cost)
		eq(t, d(106), stand.Profit)
		eq(t, df(66.25), stand.ProfitMargin)
	})

	t.Run("average basket sorted descending", func(t *testing.T) {
		require.Len(t, analytics.AverageCartByChannel, 2)
		// STAND averages 80, SITE 40
		assert.Equal(t, "STAND", analytics.AverageCartByChannel[0].Channel)
		eq(t, d(80), analytics.AverageCartByChannel[0].AverageCart)
		eq(t, d(40), analytics.AverageCartByChannel[1].AverageCart)
	})
}

func TestComputeAnalyticsZeroRevenueChannel(t *testing.T) {
	orders := []*OrderData{
		{ID: uuid.New(), SalesChannel: "AUTRE", TotalAmount: decimal.Zero},
	}
	analytics := ComputeAnalytics(orders)
	require.Len(t, analytics.BestPerformingChannels, 1)
	eq(t, decimal.Zero, analytics.BestPerformingChannels[0].ProfitMargin)
}

func TestComputeEmpty(t *testing.T) {
	stats := ComputeStats(nil, nil, decimal.Zero)
	eq(t, decimal.Zero, stats.TotalRevenue)
	assert.Empty(t, stats.TopProducts)
	assert.Empty(t, stats.LowStockVariants)

	analytics := ComputeAnalytics(nil)
	assert.Empty(t, analytics.MostProfitableProducts)
	assert.Empty(t, analytics.BestPerformingChannels)
}
