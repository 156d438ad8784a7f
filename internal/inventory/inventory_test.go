package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestApplyReceiptWeightedAverage(t *testing.T) {
	item := &Item{QuantityOnHand: d("10"), AverageCost: d("100")}
	applyReceipt(item, d("10"), d("200"))
	if !item.QuantityOnHand.Equal(d("20")) {
		t.Fatalf("expected quantity 20, got %s", item.QuantityOnHand)
	}
	if !item.AverageCost.Equal(d("150")) {
		t.Fatalf("expected average cost 150, got %s", item.AverageCost)
	}
}

func TestApplyReceiptOnEmptyItem(t *testing.T) {
	item := &Item{QuantityOnHand: decimal.Zero, AverageCost: decimal.Zero}
	applyReceipt(item, d("5"), d("40"))
	if !item.QuantityOnHand.Equal(d("5")) {
		t.Fatalf("expected quantity 5, got %s", item.QuantityOnHand)
	}
	if !item.AverageCost.Equal(d("40")) {
		t.Fatalf("expected average cost 40, got %s", item.AverageCost)
	}
}
