package services

import (
	"github.com/shopspring/decimal"

	"github.com/mwhitfield/pocketbook-backend/internal/models"
)

// Balances persist as float64 but all arithmetic on them goes through
// decimal so repeated increments can't accumulate binary-float drift.

// signedAmount converts a transaction's positive magnitude into the delta
// it applies to a wallet balance: income adds, expense and transfer
// subtract. Transfers are deliberately folded into the expense side; there
// is no destination wallet in this model.
func signedAmount(t models.TransactionType, amount float64) decimal.Decimal {
	d := decimal.NewFromFloat(amount)
	if t == models.TransactionIncome {
		return d
	}
	return d.Neg()
}

func applyDelta(balance float64, delta decimal.Decimal) float64 {
	return decimal.NewFromFloat(balance).Add(delta).InexactFloat64()
}

func lessThan(balance, amount float64) bool {
	return decimal.NewFromFloat(balance).LessThan(decimal.NewFromFloat(amount))
}
