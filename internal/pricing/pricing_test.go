package pricing

import (
	"testing"

	"github.com/storefront-next/storefront/internal/models"

	"github.com/shopspring/decimal"
)

func money(amount float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

func TestCalcTotalsScenario(t *testing.T) {
	totals, err := CalcTotals([]Line{{UnitPrice: money(25.00), Quantity: 3}})
	if err != nil {
		t.Fatalf("CalcTotals error: %v", err)
	}
	if got := totals.ItemsPrice.String(); got != "75" {
		t.Fatalf("items price want 75 got %s", got)
	}
	if got := totals.ShippingPrice.String(); got != "10" {
		t.Fatalf("shipping price want 10 got %s", got)
	}
	if got := totals.TaxPrice.String(); got != "11.25" {
		t.Fatalf("tax price want 11.25 got %s", got)
	}
	if got := totals.TotalPrice.String(); got != "96.25" {
		t.Fatalf("total price want 96.25 got %s", got)
	}
}

func TestCalcTotalsIdempotent(t *testing.T) {
	lines := []Line{
		{UnitPrice: money(19.99), Quantity: 2},
		{UnitPrice: money(3.33), Quantity: 7},
	}
	first, err := CalcTotals(lines)
	if err != nil {
		t.Fatalf("CalcTotals error: %v", err)
	}
	second, err := CalcTotals(lines)
	if err != nil {
		t.Fatalf("CalcTotals error: %v", err)
	}
	if first.TotalPrice.String() != second.TotalPrice.String() ||
		first.ItemsPrice.String() != second.ItemsPrice.String() {
		t.Fatalf("repeated calculation differs: %+v vs %+v", first, second)
	}
}

func TestCalcTotalsRoundTrip(t *testing.T) {
	cases := [][]Line{
		nil,
		{{UnitPrice: money(0.10), Quantity: 3}},
		{{UnitPrice: money(33.33), Quantity: 3}, {UnitPrice: money(0.01), Quantity: 1}},
		{{UnitPrice: money(199.99), Quantity: 5}},
	}
	for i, lines := range cases {
		totals, err := CalcTotals(lines)
		if err != nil {
			t.Fatalf("case %d: CalcTotals error: %v", i, err)
		}
		sum := totals.ItemsPrice.Decimal.
			Add(totals.ShippingPrice.Decimal).
			Add(totals.TaxPrice.Decimal).
			Round(2)
		if !totals.TotalPrice.Decimal.Equal(sum) {
			t.Fatalf("case %d: total %s != items+shipping+tax %s", i, totals.TotalPrice, sum.StringFixed(2))
		}
	}
}

func TestCalcTotalsEmptyList(t *testing.T) {
	totals, err := CalcTotals(nil)
	if err != nil {
		t.Fatalf("CalcTotals error: %v", err)
	}
	if got := totals.ItemsPrice.String(); got != "0" {
		t.Fatalf("empty items price want 0 got %s", got)
	}
	if got := totals.ShippingPrice.String(); got != "10" {
		t.Fatalf("empty cart still carries flat shipping, got %s", got)
	}
	if got := totals.TaxPrice.String(); got != "0" {
		t.Fatalf("empty tax want 0 got %s", got)
	}
}

func TestCalcTotalsFreeShippingBoundary(t *testing.T) {
	cases := []struct {
		items    float64
		shipping string
	}{
		{99.99, "10"},
		{100.00, "10"}, // 恰好等于阈值不免运费
		{100.01, "0"},
	}
	for _, tc := range cases {
		totals, err := CalcTotals([]Line{{UnitPrice: money(tc.items), Quantity: 1}})
		if err != nil {
			t.Fatalf("CalcTotals error: %v", err)
		}
		if got := totals.ShippingPrice.String(); got != tc.shipping {
			t.Fatalf("items %.2f: shipping want %s got %s", tc.items, tc.shipping, got)
		}
	}
}

func TestCalcTotalsInvalidQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		if _, err := CalcTotals([]Line{{UnitPrice: money(1.00), Quantity: qty}}); err != ErrInvalidQuantity {
			t.Fatalf("quantity %d: want ErrInvalidQuantity got %v", qty, err)
		}
	}
}

func TestCalcTotalsRoundsAtFinalStepOnly(t *testing.T) {
	// 两行各 0.005 截尾误差不得在行级放大
	totals, err := CalcTotals([]Line{
		{UnitPrice: money(0.33), Quantity: 5}, // 1.65
		{UnitPrice: money(0.07), Quantity: 5}, // 0.35
	})
	if err != nil {
		t.Fatalf("CalcTotals error: %v", err)
	}
	if got := totals.ItemsPrice.String(); got != "2" {
		t.Fatalf("items price want 2 got %s", got)
	}
	if got := totals.TaxPrice.String(); got != "0.3" {
		t.Fatalf("tax price want 0.3 got %s", got)
	}
}
