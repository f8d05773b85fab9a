package order

import "github.com/shopspring/decimal"

// settleGiftCard computes a card's balance after a discount is
// deducted. The balance is clamped at zero, and used reports whether
// the card is now fully consumed (its status flips to USED).
func settleGiftCard(remaining, discount decimal.Decimal) (newRemaining decimal.Decimal, used bool) {
	newRemaining = remaining.Sub(discount)
	if newRemaining.IsNegative() {
		newRemaining = decimal.Zero
	}
	return newRemaining, !newRemaining.IsPositive()
}
