package dashboard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderData is a confirmed order flattened for aggregation.
type OrderData struct {
	ID           uuid.UUID
	SalesChannel string
	TotalAmount  decimal.Decimal
	Items        []ItemData
}

type ItemData struct {
	ProductID       uuid.UUID
	ProductName     string
	Quantity        int
	CostPriceAtSale decimal.Decimal
	LineTotal       decimal.Decimal
}

// VariantData carries the stock and price figures used for the
// potential revenue projection and the low stock list.
type VariantData struct {
	VariantID    uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	Size         string
	Stock        int
	MinStock     int
	SellingPrice decimal.Decimal
	CostPrice    decimal.Decimal
}

type Stats struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Profit        decimal.Decimal `json:"profit"`
	OrderCount    int             `json:"order_count"`

	PotentialRevenue decimal.Decimal `json:"potential_revenue"`
	PotentialCost    decimal.Decimal `json:"potential_cost"`
	PotentialProfit  decimal.Decimal `json:"potential_profit"`
	GlobalRevenue    decimal.Decimal `json:"global_revenue"`
	GlobalCost       decimal.Decimal `json:"global_cost"`
	GlobalProfit     decimal.Decimal `json:"global_profit"`

	TopProducts      []TopProduct      `json:"top_products"`
	LowStockVariants []LowStockVariant `json:"low_stock_variants"`
}

type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

type LowStockVariant struct {
	VariantID   uuid.UUID `json:"variant_id"`
	ProductName string    `json:"product_name"`
	Size        string    `json:"size"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"min_stock"`
}

type Analytics struct {
	MostProfitableProducts []ProductProfit  `json:"most_profitable_products"`
	BestPerformingChannels []ChannelStats   `json:"best_performing_channels"`
	AverageCartByChannel   []ChannelAverage `json:"average_cart_by_channel"`
}

type ProductProfit struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
	UnitMargin decimal.Decimal `json:"unit_margin"`
}

type ChannelStats struct {
	Channel      string          `json:"channel"`
	OrderCount   int             `json:"order_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

type ChannelAverage struct {
	Channel     string          `json:"channel"`
	OrderCount  int             `json:"order_count"`
	AverageCart decimal.Decimal `json:"average_cart"`
}
