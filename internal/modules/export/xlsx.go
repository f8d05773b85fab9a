package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the dump as a workbook, one sheet per entity plus a
// statistics sheet. Sheet and column names are in French to match the
// shop's accounting spreadsheets.
func WriteXLSX(w io.Writer, data *Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeProductSheet(f, data.Products); err != nil {
		return err
	}
	if err := writeOrderSheet(f, data.Orders); err != nil {
		return err
	}
	if err := writeCustomerSheet(f, data.Customers); err != nil {
		return err
	}
	if err := writeExpenseSheet(f, data.Expenses); err != nil {
		return err
	}
	if err := writeGiftCardSheet(f, data.GiftCards); err != nil {
		return err
	}
	if err := writeStatsSheet(f, data); err != nil {
		return err
	}

	// The default sheet only exists because excelize requires one.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.Write(w)
}

func writeProductSheet(f *excelize.File, products []*Product) error {
	const sheet = "Produits"
	rows := [][]interface{}{
		{"Nom", "Catégorie", "SKU", "Actif", "Taille", "Prix de vente", "Prix de revient", "Stock", "Stock minimum"},
	}
	for _, p := range products {
		for _, v := range p.Variants {
			rows = append(rows, []interface{}{
				p.Name, p.Category, p.SKU, p.IsActive, v.Size,
				v.SellingPrice.InexactFloat64(), v.CostPrice.InexactFloat64(),
				v.Stock, v.MinStock,
			})
		}
		if len(p.Variants) == 0 {
			rows = append(rows, []interface{}{p.Name, p.Category, p.SKU, p.IsActive})
		}
	}
	return writeSheet(f, sheet, rows)
}

func writeOrderSheet(f *excelize.File, orders []*Order) error {
	const sheet = "Commandes"
	rows := [][]interface{}{
		{"Date", "Client", "Canal", "Statut", "Paiement", "Articles", "Total", "Bon cadeau", "Remise"},
	}
	for _, o := range orders {
		parts := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			parts = append(parts, fmt.Sprintf("%dx %s (%s)", item.Quantity, item.ProductName, item.Size))
		}
		rows = append(rows, []interface{}{
			o.Date.Format("2006-01-02"), o.CustomerName, o.SalesChannel, o.Status,
			strOrEmpty(o.PaymentMethod), strings.Join(parts, ", "),
			o.TotalAmount.InexactFloat64(), strOrEmpty(o.GiftCardCode),
			o.GiftCardDiscount.InexactFloat64(),
		})
	}
	return writeSheet(f, sheet, rows)
}

func writeCustomerSheet(f *excelize.File, customers []*Customer) error {
	const sheet = "Clients"
	rows := [][]interface{}{
		{"Nom", "Email", "Téléphone", "Adresse", "Commandes", "Total dépensé"},
	}
	for _, c := range customers {
		rows = append(rows, []interface{}{
			c.Name, strOrEmpty(c.Email), strOrEmpty(c.Phone), strOrEmpty(c.Address),
			c.TotalOrders, c.TotalSpent.InexactFloat64(),
		})
	}
	return writeSheet(f, sheet, rows)
}

func writeExpenseSheet(f *excelize.File, expenses []*Expense) error {
	const sheet = "Dépenses"
	rows := [][]interface{}{
		{"Date", "Montant", "Catégorie", "Description", "Lien de la facture"},
	}
	for _, e := range expenses {
		rows = append(rows, []interface{}{
			e.Date.Format("2006-01-02"), e.Amount.InexactFloat64(),
			e.Category, e.Description, strOrEmpty(e.InvoiceURL),
		})
	}
	return writeSheet(f, sheet, rows)
}

func writeGiftCardSheet(f *excelize.File, cards []*GiftCard) error {
	const sheet = "Bons cadeaux"
	rows := [][]interface{}{
		{"Code", "Montant initial", "Solde", "Statut", "Bénéficiaire", "Acheté par", "Expiration"},
	}
	for _, g := range cards {
		expiration := ""
		if g.ExpirationDate != nil {
			expiration = g.ExpirationDate.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			g.Code, g.InitialAmount.InexactFloat64(), g.RemainingAmount.InexactFloat64(),
			g.Status, strOrEmpty(g.RecipientName), strOrEmpty(g.PurchasedByName), expiration,
		})
	}
	return writeSheet(f, sheet, rows)
}

func writeStatsSheet(f *excelize.File, data *Data) error {
	const sheet = "Statistiques"
	rows := [][]interface{}{
		{"Exporté le", data.ExportedAt.Format("2006-01-02 15:04")},
		{"Commandes", data.Stats.OrderCount},
		{"Produits", data.Stats.ProductCount},
		{"Clients", data.Stats.CustomerCount},
		{"Bons cadeaux", data.Stats.GiftCardCount},
		{"Chiffre d'affaires", data.Stats.TotalRevenue.InexactFloat64()},
		{"Dépenses", data.Stats.TotalExpenses.InexactFloat64()},
		{"Bénéfice net", data.Stats.NetProfit.InexactFloat64()},
		{"Solde bons cadeaux", data.Stats.OutstandingCardBalance.InexactFloat64()},
	}
	return writeSheet(f, sheet, rows)
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
