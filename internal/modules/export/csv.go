package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteOrdersCSV renders orders as a flat CSV, one row per line item so
// the file loads straight into a pivot table.
func WriteOrdersCSV(w io.Writer, orders []*Order) error {
	cw := csv.NewWriter(w)
	header := []string{
		"orderId", "date", "customerName", "salesChannel", "status", "paymentMethod",
		"productName", "size", "quantity", "unitPrice", "lineTotal",
		"totalAmount", "giftCardCode", "giftCardDiscount",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, o := range orders {
		base := []string{
			o.ID.String(), o.Date.Format("2006-01-02"), o.CustomerName,
			o.SalesChannel, o.Status, strOrEmpty(o.PaymentMethod),
		}
		tail := []string{
			o.TotalAmount.String(), strOrEmpty(o.GiftCardCode), o.GiftCardDiscount.String(),
		}
		if len(o.Items) == 0 {
			record := append(append(append([]string{}, base...), "", "", "", "", ""), tail...)
			if err := cw.Write(record); err != nil {
				return err
			}
			continue
		}
		for _, item := range o.Items {
			record := append(append(append([]string{}, base...),
				item.ProductName, item.Size, strconv.Itoa(item.Quantity),
				item.UnitPrice.String(), item.LineTotal.String()), tail...)
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
