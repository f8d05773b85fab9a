package expense

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type mockRepo struct {
	createExpense  func(ctx context.Context, e *Expense) error
	getExpenseByID func(ctx context.Context, id uuid.UUID) (*Expense, error)
	listExpenses   func(ctx context.Context, from, to *time.Time, category string) ([]*Expense, error)
	updateExpense  func(ctx context.Context, e *Expense) error
	deleteExpense  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepo) CreateExpense(ctx context.Context, e *Expense) error {
	return m.createExpense(ctx, e)
}
func (m *mockRepo) GetExpenseByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return m.getExpenseByID(ctx, id)
}
func (m *mockRepo) ListExpenses(ctx context.Context, from, to *time.Time, category string) ([]*Expense, error) {
	return m.listExpenses(ctx, from, to, category)
}
func (m *mockRepo) UpdateExpense(ctx context.Context, e *Expense) error {
	return m.updateExpense(ctx, e)
}
func (m *mockRepo) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return m.deleteExpense(ctx, id)
}

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestImportSpreadsheet(t *testing.T) {
	t.Run("imports valid rows", func(t *testing.T) {
		var saved []*Expense
		repo := &mockRepo{
			createExpense: func(_ context.Context, e *Expense) error {
				saved = append(saved, e)
				return nil
			},
		}
		svc := NewService(repo, zap.NewNop())

		buf := buildSheet(t, [][]interface{}{
			{"Date", "Coût total", "Entreprise", "Description", "Lien de la facture", "Notes"},
			{"2025-03-01", "CHF 120.50", "Agiva Sport", "Lot de t-shirts", "https://inv.example/1", "commande mars"},
			{"2025-03-05", "45", "Pandacola", "Étiquettes", "", ""},
		})

		result, err := svc.ImportSpreadsheet(context.Background(), buf)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, 0, result.Skipped)
		assert.Empty(t, result.Errors)

		require.Len(t, saved, 2)
		first := saved[0]
		assert.True(t, first.Amount.Equal(decimal.NewFromFloat(120.50)))
		assert.Equal(t, CategoryAgivaSport, first.Category)
		assert.Equal(t, "Lot de t-shirts - commande mars", first.Description)
		require.NotNil(t, first.InvoiceURL)
		assert.Equal(t, "https://inv.example/1", *first.InvoiceURL)

		assert.Equal(t, CategoryPandacola, saved[1].Category)
		assert.Equal(t, "Étiquettes", saved[1].Description)
	})

	t.Run("collects row errors and keeps going", func(t *testing.T) {
		var saved []*Expense
		repo := &mockRepo{
			createExpense: func(_ context.Context, e *Expense) error {
				saved = append(saved, e)
				return nil
			},
		}
		svc := NewService(repo, zap.NewNop())

		buf := buildSheet(t, [][]interface{}{
			{"Date", "Montant", "Entreprise", "Description"},
			{"2025-03-01", "50", "Agiva", "Valide"},
			{"", "50", "Agiva", "Sans date"},
			{"2025-03-03", "0", "Agiva", "Montant nul"},
			{"2025-03-04", "60", "", ""},
			{"2025-03-05", "70", "Pandacola", "Encore valide"},
		})

		result, err := svc.ImportSpreadsheet(context.Background(), buf)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, 3, result.Skipped)
		require.Len(t, result.Errors, 3)

		// Row numbers are spreadsheet rows, header included.
		assert.Equal(t, 3, result.Errors[0].Row)
		assert.Equal(t, 4, result.Errors[1].Row)
		assert.Equal(t, 5, result.Errors[2].Row)
		assert.Len(t, saved, 2)
	})

	t.Run("vendor stands in for a missing description column", func(t *testing.T) {
		var saved *Expense
		repo := &mockRepo{
			createExpense: func(_ context.Context, e *Expense) error { saved = e; return nil },
		}
		svc := NewService(repo, zap.NewNop())

		buf := buildSheet(t, [][]interface{}{
			{"Date", "Montant", "Catégorie"},
			{"2025-03-01", "30", "Douane Genève"},
		})

		result, err := svc.ImportSpreadsheet(context.Background(), buf)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		require.NotNil(t, saved)
		assert.Equal(t, "Douane Genève", saved.Description)
		assert.Equal(t, CategoryLogistique, saved.Category)
	})

	t.Run("rejects files without the required columns", func(t *testing.T) {
		svc := NewService(&mockRepo{}, zap.NewNop())
		buf := buildSheet(t, [][]interface{}{
			{"Colonne", "Mystère"},
			{"a", "b"},
		})
		_, err := svc.ImportSpreadsheet(context.Background(), buf)
		assert.ErrorIs(t, err, ErrInvalidFile)
	})

	t.Run("rejects empty sheets", func(t *testing.T) {
		svc := NewService(&mockRepo{}, zap.NewNop())
		buf := buildSheet(t, [][]interface{}{
			{"Date", "Montant"},
		})
		_, err := svc.ImportSpreadsheet(context.Background(), buf)
		assert.ErrorIs(t, err, ErrNoRows)
	})

	t.Run("rejects garbage bytes", func(t *testing.T) {
		svc := NewService(&mockRepo{}, zap.NewNop())
		_, err := svc.ImportSpreadsheet(context.Background(), bytes.NewBufferString("not a spreadsheet"))
		assert.ErrorIs(t, err, ErrInvalidFile)
	})
}

func TestParseCellAmount(t *testing.T) {
	cases := []struct {
		in   string
		want decimal.Decimal
	}{
		{"120.50", decimal.NewFromFloat(120.50)},
		{"CHF 120.50", decimal.NewFromFloat(120.50)},
		{"1'234.50", decimal.NewFromFloat(1234.50)},
		{"45,90", decimal.NewFromFloat(45.90)},
		{"60 €", decimal.NewFromInt(60)},
	}
	for _, tc := range cases {
		got, err := parseCellAmount(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.True(t, tc.want.Equal(got), "input %q: want %s, got %s", tc.in, tc.want, got)
	}

	_, err := parseCellAmount("")
	assert.Error(t, err)
	_, err = parseCellAmount("-10")
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
