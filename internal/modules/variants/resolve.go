package variants

// ResolveMatchingVariant returns the variant whose option values equal sel
// exactly, or nil. Incomplete selections never match. A product without
// options always resolves to its implicit variant.
func ResolveMatchingVariant(p *Product, sel Selection) *Variant {
	if p == nil || len(p.Variants) == 0 {
		return nil
	}
	if len(p.Options) == 0 {
		return &p.Variants[0]
	}
	if len(sel) != len(p.Options) || !sel.Complete(p) {
		return nil
	}
	for i := range p.Variants {
		if matchesExactly(&p.Variants[i], sel) {
			return &p.Variants[i]
		}
	}
	return nil
}

// IsOptionValueAvailable reports whether choosing value for option name,
// on top of everything already selected, can still reach an in-stock
// variant. Axes that are still unset are treated as free.
func IsOptionValueAvailable(p *Product, sel Selection, name, value string) bool {
	if p == nil {
		return false
	}
	hypothetical := sel.With(name, value)
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.InStock() && consistentWith(v, hypothetical) {
			return true
		}
	}
	return false
}

// CanAddToCart reports whether sel identifies an in-stock variant.
func CanAddToCart(p *Product, sel Selection) bool {
	if p == nil {
		return false
	}
	if len(p.Options) > 0 && !sel.Complete(p) {
		return false
	}
	return ResolveMatchingVariant(p, sel).InStock()
}

// InStock reports whether the current selection is, or can still become,
// an in-stock variant. With a matching variant this is its own stock.
func InStock(p *Product, sel Selection) bool {
	if p == nil {
		return false
	}
	if v := ResolveMatchingVariant(p, sel); v != nil {
		return v.InStock()
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.InStock() && consistentWith(v, sel) {
			return true
		}
	}
	return false
}

// consistentWith: every axis set in sel has the same value on v.
func consistentWith(v *Variant, sel Selection) bool {
	for name, want := range sel {
		got, ok := v.OptionValues[name]
		if !ok || got != want {
			return false
		}
	}
	return true
}

func matchesExactly(v *Variant, sel Selection) bool {
	return len(v.OptionValues) == len(sel) && consistentWith(v, sel)
}
