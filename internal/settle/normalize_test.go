package settle

import (
	"math"
	"testing"

	"github.com/KTee1986/mahjong-tracker/internal/ledger"
)

func TestNormalizeDebts(t *testing.T) {
	names := map[string]string{"x": "Alice", "z": "Bob"}

	raw := []ledger.RawDebt{
		{From: "x", To: "y", Amount: "12.005", CurrencyCode: ""},
		{From: "z", To: "x", Amount: "3.50", CurrencyCode: "EUR"},
		{From: "x", To: "z", Amount: "not-a-number", CurrencyCode: "EUR"},
	}

	debts := NormalizeDebts(raw, names)
	if len(debts) != 2 {
		t.Fatalf("got %d debts, want 2 (non-numeric entry dropped)", len(debts))
	}

	first := debts[0]
	if first.FromName != "Alice" {
		t.Errorf("from name = %q, want Alice", first.FromName)
	}
	if first.ToName != "Unknown (y)" {
		t.Errorf("to name = %q, want Unknown (y)", first.ToName)
	}
	if math.Abs(first.Amount-12.01) > 1e-9 {
		t.Errorf("amount = %v, want 12.01 (half away from zero)", first.Amount)
	}
	if first.Currency != UnknownCurrency {
		t.Errorf("currency = %q, want %q", first.Currency, UnknownCurrency)
	}

	// Order preserved: the EUR debt stays second.
	if debts[1].FromName != "Bob" || debts[1].Currency != "EUR" {
		t.Errorf("second debt = %+v, want Bob's EUR entry", debts[1])
	}
}

func TestNormalizeDebtsRounding(t *testing.T) {
	tests := []struct {
		amount string
		want   float64
	}{
		{"12.005", 12.01},
		{"12.004", 12.00},
		{"0.125", 0.13},
		{"-4.505", -4.51},
		{"7", 7.00},
	}
	for _, tt := range tests {
		raw := []ledger.RawDebt{{From: "a", To: "b", Amount: tt.amount}}
		debts := NormalizeDebts(raw, nil)
		if len(debts) != 1 {
			t.Fatalf("amount %q: dropped unexpectedly", tt.amount)
		}
		if math.Abs(debts[0].Amount-tt.want) > 1e-9 {
			t.Errorf("amount %q rounds to %v, want %v", tt.amount, debts[0].Amount, tt.want)
		}
	}
}

func TestNormalizeDebtsEmpty(t *testing.T) {
	if got := NormalizeDebts(nil, nil); len(got) != 0 {
		t.Errorf("NormalizeDebts(nil) = %v, want empty", got)
	}
}
