package variants

import "testing"

func TestDiscountPercentage(t *testing.T) {
	cases := []struct {
		price, compareAt int64
		want             int
	}{
		{8000, 10000, 20},
		{80, 100, 20},
		{10000, 10000, 0},
		{12000, 10000, 0},
		{101, 200, 50}, // 49.5 rounds away from zero
		{1, 3, 67},
		{2, 3, 33},
		{0, 1000, 100},
		{999, 1000, 0},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := DiscountPercentage(tc.price, tc.compareAt); got != tc.want {
			t.Fatalf("price=%d compareAt=%d: expected %d, got %d", tc.price, tc.compareAt, tc.want, got)
		}
	}
}

func TestComputePriceSummaryUsesMatchingVariant(t *testing.T) {
	p := tshirt()
	v := &Variant{ID: "v", PriceCents: 8000, CompareAtCents: 10000}

	got := ComputePriceSummary(p, v)
	if got.PriceCents != 8000 || got.CompareAtCents != 10000 || got.DiscountPercentage != 20 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if !got.HasDiscount() {
		t.Fatalf("expected discount to be shown")
	}
}

func TestComputePriceSummaryIgnoresCompareAtNotAbovePrice(t *testing.T) {
	for _, compareAt := range []int64{0, 500, 1000} {
		got := ComputePriceSummary(nil, &Variant{PriceCents: 1000, CompareAtCents: compareAt})
		if got.HasDiscount() || got.CompareAtCents != 0 || got.DiscountPercentage != 0 {
			t.Fatalf("compareAt=%d: expected no discount, got %+v", compareAt, got)
		}
		if got.PriceCents != 1000 {
			t.Fatalf("expected price 1000, got %d", got.PriceCents)
		}
	}
}

func TestComputePriceSummaryFallsBackToProduct(t *testing.T) {
	p := tshirt()
	p.CompareAtCents = 2000

	got := ComputePriceSummary(p, ResolveMatchingVariant(p, Selection{"Color": "Red"}))
	if got.PriceCents != 1000 || got.CompareAtCents != 2000 || got.DiscountPercentage != 50 {
		t.Fatalf("unexpected fallback summary %+v", got)
	}
}
