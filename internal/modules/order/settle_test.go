package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSettleGiftCard(t *testing.T) {
	t.Run("partial use keeps card active", func(t *testing.T) {
		remaining, used := settleGiftCard(decimal.NewFromInt(50), decimal.NewFromInt(20))
		assert.True(t, remaining.Equal(decimal.NewFromInt(30)))
		assert.False(t, used)
	})

	t.Run("exact use depletes card", func(t *testing.T) {
		remaining, used := settleGiftCard(decimal.NewFromInt(50), decimal.NewFromInt(50))
		assert.True(t, remaining.IsZero())
		assert.True(t, used)
	})

	t.Run("overdraw clamps at zero", func(t *testing.T) {
		remaining, used := settleGiftCard(decimal.NewFromInt(30), decimal.NewFromInt(50))
		assert.True(t, remaining.IsZero())
		assert.True(t, used)
	})

	t.Run("balance never increases", func(t *testing.T) {
		start := decimal.NewFromFloat(42.50)
		for _, discount := range []decimal.Decimal{
			decimal.Zero, decimal.NewFromFloat(0.01), decimal.NewFromInt(10), decimal.NewFromInt(100),
		} {
			remaining, _ := settleGiftCard(start, discount)
			assert.True(t, remaining.LessThanOrEqual(start))
			assert.False(t, remaining.IsNegative())
		}
	})
}
