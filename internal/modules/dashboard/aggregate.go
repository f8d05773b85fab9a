package dashboard

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topProductLimit = 5

var hundred = decimal.NewFromInt(100)

// ComputeStats folds confirmed orders, the full variant list and the
// expense total into the dashboard figures. Profit deliberately ignores
// cost of goods sold: the money already left through expenses, TotalCost
// is shown for information only.
func ComputeStats(orders []*OrderData, variants []*VariantData, totalExpenses decimal.Decimal) *Stats {
	stats := &Stats{
		TotalRevenue:     decimal.Zero,
		TotalCost:        decimal.Zero,
		TotalExpenses:    totalExpenses,
		PotentialRevenue: decimal.Zero,
		PotentialCost:    decimal.Zero,
		OrderCount:       len(orders),
		TopProducts:      []TopProduct{},
		LowStockVariants: []LowStockVariant{},
	}

	quantities := map[uuid.UUID]*TopProduct{}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		for _, item := range o.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			stats.TotalCost = stats.TotalCost.Add(item.CostPriceAtSale.Mul(qty))

			tp, ok := quantities[item.ProductID]
			if !ok {
				tp = &TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				quantities[item.ProductID] = tp
			}
			tp.Quantity += item.Quantity
		}
	}

	for _, v := range variants {
		stock := decimal.NewFromInt(int64(v.Stock))
		stats.PotentialRevenue = stats.PotentialRevenue.Add(v.SellingPrice.Mul(stock))
		stats.PotentialCost = stats.PotentialCost.Add(v.CostPrice.Mul(stock))
		if v.Stock < v.MinStock {
			stats.LowStockVariants = append(stats.LowStockVariants, LowStockVariant{
				VariantID:   v.VariantID,
				ProductName: v.ProductName,
				Size:        v.Size,
				Stock:       v.Stock,
				MinStock:    v.MinStock,
			})
		}
	}

	stats.Profit = stats.TotalRevenue.Sub(totalExpenses)
	stats.PotentialProfit = stats.PotentialRevenue.Sub(totalExpenses)
	stats.GlobalRevenue = stats.TotalRevenue.Add(stats.PotentialRevenue)
	stats.GlobalCost = stats.TotalCost.Add(stats.PotentialCost)
	stats.GlobalProfit = stats.GlobalRevenue.Sub(totalExpenses)

	for _, tp := range quantities {
		stats.TopProducts = append(stats.TopProducts, *tp)
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		if stats.TopProducts[i].Quantity != stats.TopProducts[j].Quantity {
			return stats.TopProducts[i].Quantity > stats.TopProducts[j].Quantity
		}
		return stats.TopProducts[i].Name < stats.TopProducts[j].Name
	})
	if len(stats.TopProducts) > topProductLimit {
		stats.TopProducts = stats.TopProducts[:topProductLimit]
	}

	return stats
}

// ComputeAnalytics derives product profitability and channel
// performance from confirmed orders.
func ComputeAnalytics(orders []*OrderData) *Analytics {
	products := map[uuid.UUID]*ProductProfit{}
	channels := map[string]*ChannelStats{}

	for _, o := range orders {
		ch, ok := channels[o.SalesChannel]
		if !ok {
			ch = &ChannelStats{
				Channel: o.SalesChannel,
				Revenue: decimal.Zero, Cost: decimal.Zero,
			}
			channels[o.SalesChannel] = ch
		}
		ch.OrderCount++
		ch.Revenue = ch.Revenue.Add(o.TotalAmount)

		for _, item := range o.Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			cost := item.CostPriceAtSale.Mul(qty)
			ch.Cost = ch.Cost.Add(cost)

			p, ok := products[item.ProductID]
			if !ok {
				p = &ProductProfit{
					ProductID: item.ProductID, Name: item.ProductName,
					Revenue: decimal.Zero, Cost: decimal.Zero,
				}
				products[item.ProductID] = p
			}
			p.Quantity += item.Quantity
			p.Revenue = p.Revenue.Add(item.LineTotal)
			p.Cost = p.Cost.Add(cost)
		}
	}

	result := &Analytics{
		MostProfitableProducts: []ProductProfit{},
		BestPerformingChannels: []ChannelStats{},
		AverageCartByChannel:   []ChannelAverage{},
	}

	for _, p := range products {
		p.Profit = p.Revenue.Sub(p.Cost)
		if p.Quantity > 0 {
			p.UnitMargin = p.Profit.Div(decimal.NewFromInt(int64(p.Quantity)))
		} else {
			p.UnitMargin = decimal.Zero
		}
		result.MostProfitableProducts = append(result.MostProfitableProducts, *p)
	}
	sort.Slice(result.MostProfitableProducts, func(i, j int) bool {
		a, b := result.MostProfitableProducts[i], result.MostProfitableProducts[j]
		if !a.Profit.Equal(b.Profit) {
			return a.Profit.GreaterThan(b.Profit)
		}
		return a.Name < b.Name
	})
	if len(result.MostProfitableProducts) > topProductLimit {
		result.MostProfitableProducts = result.MostProfitableProducts[:topProductLimit]
	}

	for _, ch := range channels {
		ch.Profit = ch.Revenue.Sub(ch.Cost)
		if ch.Revenue.IsPositive() {
			ch.ProfitMargin = ch.Profit.Div(ch.Revenue).Mul(hundred)
		} else {
			ch.ProfitMargin = decimal.Zero
		}
		result.BestPerformingChannels = append(result.BestPerformingChannels, *ch)

		avg := decimal.Zero
		if ch.OrderCount > 0 {
			avg = ch.Revenue.Div(decimal.NewFromInt(int64(ch.OrderCount)))
		}
		result.AverageCartByChannel = append(result.AverageCartByChannel, ChannelAverage{
			Channel:     ch.Channel,
			OrderCount:  ch.OrderCount,
			AverageCart: avg,
		})
	}
	sort.Slice(result.BestPerformingChannels, func(i, j int) bool {
		a, b := result.BestPerformingChannels[i], result.BestPerformingChannels[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Channel < b.Channel
	})
	sort.Slice(result.AverageCartByChannel, func(i, j int) bool {
		a, b := result.AverageCartByChannel[i], result.AverageCartByChannel[j]
		if !a.AverageCart.Equal(b.AverageCart) {
			return a.AverageCart.GreaterThan(b.AverageCart)
		}
		return a.Channel < b.Channel
	})

	return result
}
