package settle

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/KTee1986/mahjong-tracker/internal/ledger"
	"github.com/KTee1986/mahjong-tracker/internal/models"
)

// UnknownCurrency is reported when the ledger sends no currency code.
const UnknownCurrency = "N/A"

// roundingEpsilon nudges amounts upward before rounding so values like
// 12.005, which binary floats represent as 12.00499..., still round to
// 12.01 under half-away-from-zero.
var roundingEpsilon = decimal.New(1, -9) // 1e-9

// NormalizeDebts turns the ledger's raw directional balances into
// display-ready debts: member ids resolved to names (with an explicit
// "Unknown (<id>)" fallback), amounts parsed and rounded to 2 decimal
// places, missing currency codes defaulted. Entries whose amount is not
// numeric are dropped with a warning. Input order is preserved.
func NormalizeDebts(raw []ledger.RawDebt, names map[string]string) []models.Debt {
	debts := make([]models.Debt, 0, len(raw))
	for _, rd := range raw {
		amount, err := decimal.NewFromString(rd.Amount)
		if err != nil {
			slog.Warn("dropping debt with non-numeric amount",
				"from", rd.From, "to", rd.To, "amount", rd.Amount)
			continue
		}

		currency := rd.CurrencyCode
		if currency == "" {
			currency = UnknownCurrency
		}

		debts = append(debts, models.Debt{
			FromMemberID: rd.From,
			FromName:     resolveName(names, rd.From),
			ToMemberID:   rd.To,
			ToName:       resolveName(names, rd.To),
			Amount:       roundCurrency(amount),
			Currency:     currency,
		})
	}
	return debts
}

// resolveName looks up a member id in the directory, falling back to a
// recognizable placeholder so incomplete directories stay renderable.
func resolveName(names map[string]string, memberID string) string {
	if name, ok := names[memberID]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Unknown (%s)", memberID)
}

// roundCurrency rounds to 2 decimal places, half away from zero, after
// applying the representation-error epsilon toward the amount's sign.
func roundCurrency(amount decimal.Decimal) float64 {
	if amount.IsNegative() {
		amount = amount.Sub(roundingEpsilon)
	} else {
		amount = amount.Add(roundingEpsilon)
	}
	v, _ := amount.Round(2).Float64()
	return v
}
