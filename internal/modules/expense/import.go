package expense

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column headings as they appear in the shop's accounting spreadsheet,
// with the variants seen in older exports.
var (
	dateHeaders        = []string{"Date", "date", "DATE"}
	amountHeaders      = []string{"Coût total", "Cout total", "Montant", "montant"}
	vendorHeaders      = []string{"Entreprise", "entreprise", "Catégorie", "categorie"}
	descriptionHeaders = []string{"Description", "description"}
	invoiceHeaders     = []string{"Lien de la facture", "Facture", "Lien"}
	notesHeaders       = []string{"Notes", "notes"}
)

func (s *service) ImportSpreadsheet(ctx context.Context, file io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, ErrInvalidFile
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, ErrInvalidFile
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	header := rows[0]
	dateCol := findColumn(header, dateHeaders)
	amountCol := findColumn(header, amountHeaders)
	vendorCol := findColumn(header, vendorHeaders)
	descCol := findColumn(header, descriptionHeaders)
	invoiceCol := findColumn(header, invoiceHeaders)
	notesCol := findColumn(header, notesHeaders)
	if dateCol < 0 || amountCol < 0 {
		return nil, ErrInvalidFile
	}

	result := &ImportResult{Errors: []ImportError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2 // spreadsheet rows are 1-based and row 1 is the header

		e, err := parseRow(row, dateCol, amountCol, vendorCol, descCol, invoiceCol, notesCol)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Message: err.Error()})
			continue
		}
		if err := s.repo.CreateExpense(ctx, e); err != nil {
			s.log.Error("import expense row", zap.Int("row", rowNum), zap.Error(err))
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: rowNum, Message: "could not save row"})
			continue
		}
		result.Imported++
	}
	return result, nil
}

func parseRow(row []string, dateCol, amountCol, vendorCol, descCol, invoiceCol, notesCol int) (*Expense, error) {
	date, err := parseCellDate(cell(row, dateCol))
	if err != nil {
		return nil, err
	}
	amount, err := parseCellAmount(cell(row, amountCol))
	if err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}

	vendor := cell(row, vendorCol)
	description := cell(row, descCol)
	if description == "" {
		description = vendor
	}
	if description == "" {
		return nil, fmt.Errorf("missing description")
	}
	if notes := cell(row, notesCol); notes != "" {
		description += " - " + notes
	}

	e := &Expense{
		ID:          uuid.New(),
		Date:        date,
		Amount:      amount,
		Category:    CategoryForVendor(vendor),
		Description: description,
	}
	if invoice := cell(row, invoiceCol); invoice != "" {
		e.InvoiceURL = &invoice
	}
	return e, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, name := range names {
			if strings.EqualFold(h, name) {
				return i
			}
		}
	}
	return -1
}

func parseCellDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02.01.2006", "01-02-06", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// excelize renders date cells as serial numbers when no style applies
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseCellAmount strips currency symbols and thousands separators,
// e.g. "CHF 1'234.50" or "120,50 €".
func parseCellAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("missing amount")
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		case r == ',':
			return '.'
		default:
			return -1
		}
	}, s)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unrecognized amount %q", s)
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return amount, nil
}
