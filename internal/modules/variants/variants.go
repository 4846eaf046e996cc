// Package variants resolves a shopper's option selection against the
// concrete variants of a product: which variant matches, which option
// values can still lead to an in-stock variant, what the selection costs
// and whether it can be added to the cart.
//
// Everything here is pure computation over read-only catalog data. The
// only mutable state is the Selection held by a Resolver, and a Resolver
// belongs to exactly one product view.
package variants

import "strings"

// Option is one axis of variation, e.g. "Color" or "Size".
type Option struct {
	Name     string
	Values   []string
	Swatches map[string]string // value -> color token, only for color options
}

// IsColor reports whether the option's swatches should be shown.
func (o Option) IsColor() bool { return strings.EqualFold(o.Name, "color") }

// Swatch returns the color token for value, or "" for non-color options.
func (o Option) Swatch(value string) string {
	if !o.IsColor() {
		return ""
	}
	return o.Swatches[value]
}

func (o Option) has(value string) bool {
	for _, v := range o.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Variant is one purchasable combination of option values.
// CompareAtCents == 0 means no compare-at price.
type Variant struct {
	ID                string
	SKU               string
	Image             string
	OptionValues      map[string]string
	PriceCents        int64
	CompareAtCents    int64
	InventoryQuantity int
}

// InStock reports whether the variant can be purchased at all.
func (v *Variant) InStock() bool { return v != nil && v.InventoryQuantity > 0 }

// Product is the resolver's view of a catalog product. A product without
// options carries exactly one implicit variant.
type Product struct {
	ID             string
	Slug           string
	Title          string
	Description    string
	Featured       bool
	Currency       string
	Options        []Option
	Variants       []Variant
	PriceCents     int64
	CompareAtCents int64
	Images         []string
}

// HasVariants reports whether the shopper has anything to choose.
func (p *Product) HasVariants() bool { return p != nil && len(p.Options) > 0 }

// Option looks up an option axis by name.
func (p *Product) Option(name string) (Option, bool) {
	if p == nil {
		return Option{}, false
	}
	for _, o := range p.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Selection maps option name to chosen value. It may be partial or empty.
type Selection map[string]string

// Clone returns an independent copy; a nil selection clones to an empty one.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With returns a copy of s with name set to value. Other axes are kept.
func (s Selection) With(name, value string) Selection {
	out := s.Clone()
	out[name] = value
	return out
}

// Complete reports whether every option of p has a selected value.
func (s Selection) Complete(p *Product) bool {
	if p == nil {
		return false
	}
	for _, o := range p.Options {
		if _, ok := s[o.Name]; !ok {
			return false
		}
	}
	return true
}
