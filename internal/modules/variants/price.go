package variants

// PriceSummary is the price shown for the current selection.
// CompareAtCents is 0 when there is no discount to show.
type PriceSummary struct {
	PriceCents         int64
	CompareAtCents     int64
	DiscountPercentage int
}

// HasDiscount reports whether a compare-at price and discount apply.
func (s PriceSummary) HasDiscount() bool { return s.CompareAtCents > s.PriceCents }

// ComputePriceSummary prices the matching variant, falling back to the
// product's base price when nothing matches yet.
func ComputePriceSummary(p *Product, v *Variant) PriceSummary {
	var price, compareAt int64
	switch {
	case v != nil:
		price, compareAt = v.PriceCents, v.CompareAtCents
	case p != nil:
		price, compareAt = p.PriceCents, p.CompareAtCents
	default:
		return PriceSummary{}
	}

	s := PriceSummary{PriceCents: price}
	if compareAt > price {
		s.CompareAtCents = compareAt
		s.DiscountPercentage = DiscountPercentage(price, compareAt)
	}
	return s
}

// DiscountPercentage returns round(100*(compareAt-price)/compareAt),
// rounding halves away from zero. It is 0 when compareAt <= price.
func DiscountPercentage(price, compareAt int64) int {
	if compareAt <= price || compareAt <= 0 {
		return 0
	}
	n := 100 * (compareAt - price)
	// price >= 0 so n/compareAt is in [0, 100]; integer half-up is exact here.
	return int((2*n + compareAt) / (2 * compareAt))
}
