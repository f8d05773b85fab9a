package export

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Data is the denormalized dump of the whole database, the shape the
// JSON endpoint returns and the spreadsheet writers consume.
type Data struct {
	ExportedAt time.Time   `json:"exported_at"`
	Products   []*Product  `json:"products"`
	Orders     []*Order    `json:"orders"`
	Customers  []*Customer `json:"customers"`
	Expenses   []*Expense  `json:"expenses"`
	GiftCards  []*GiftCard `json:"gift_cards"`
	Stats      Stats       `json:"stats"`
}

type Product struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	SKU          string     `json:"sku"`
	IsActive     bool       `json:"is_active"`
	VariantCount int        `json:"variant_count"`
	TotalStock   int        `json:"total_stock"`
	Variants     []*Variant `json:"variants"`
}

type Variant struct {
	ID           uuid.UUID       `json:"id"`
	Size         string          `json:"size"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Stock        int             `json:"stock"`
	MinStock     int             `json:"min_stock"`
}

type Order struct {
	ID               uuid.UUID       `json:"id"`
	CustomerName     string          `json:"customer_name"`
	SalesChannel     string          `json:"sales_channel"`
	Status           string          `json:"status"`
	PaymentMethod    *string         `json:"payment_method,omitempty"`
	Date             time.Time       `json:"date"`
	Tags             *string         `json:"tags,omitempty"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	GiftCardCode     *string         `json:"gift_card_code,omitempty"`
	GiftCardDiscount decimal.Decimal `json:"gift_card_discount"`
	Items            []*OrderItem    `json:"items"`
}

type OrderItem struct {
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Customer struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       *string         `json:"email,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	Address     *string         `json:"address,omitempty"`
	TotalOrders int             `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	InvoiceURL  *string         `json:"invoice_url,omitempty"`
}

type GiftCard struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	InitialAmount   decimal.Decimal `json:"initial_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	RecipientName   *string         `json:"recipient_name,omitempty"`
	PurchasedByName *string         `json:"purchased_by_name,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type Stats struct {
	OrderCount             int             `json:"order_count"`
	ProductCount           int             `json:"product_count"`
	CustomerCount          int             `json:"customer_count"`
	GiftCardCount          int             `json:"gift_card_count"`
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	TotalExpenses          decimal.Decimal `json:"total_expenses"`
	NetProfit              decimal.Decimal `json:"net_profit"`
	OutstandingCardBalance decimal.Decimal `json:"outstanding_card_balance"`
}
