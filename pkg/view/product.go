package view

import "pehlione.com/storefront/internal/modules/variants"

type OptionValue struct {
	Value     string `json:"value"`
	Swatch    string `json:"swatch,omitempty"`
	Selected  bool   `json:"selected"`
	Available bool   `json:"available"`
}

type ProductOption struct {
	Name   string        `json:"name"`
	Values []OptionValue `json:"values"`
}

type ProductVariant struct {
	ID         string            `json:"id"`
	SKU        string            `json:"sku,omitempty"`
	Options    map[string]string `json:"options"`
	Stock      int               `json:"stock"`
	PriceCents int64             `json:"price_cents"`
}

type Price struct {
	Cents              int64  `json:"cents"`
	Formatted          string `json:"formatted"`
	CompareAtCents     int64  `json:"compare_at_cents,omitempty"`
	CompareAt          string `json:"compare_at,omitempty"`
	DiscountPercentage *int   `json:"discount_percentage,omitempty"`
}

// ProductPage is the product detail read model for one selection.
type ProductPage struct {
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Featured        bool              `json:"featured"`
	Currency        string            `json:"currency"`
	Images          []string          `json:"images"`
	CurrentImage    string            `json:"current_image,omitempty"`
	HasVariants     bool              `json:"has_variants"`
	Options         []ProductOption   `json:"options"`
	Selection       map[string]string `json:"selection"`
	SelectionState  string            `json:"selection_state"`
	MatchingVariant *ProductVariant   `json:"matching_variant"`
	Price           Price             `json:"price"`
	InStock         bool              `json:"in_stock"`
	CanAddToCart    bool              `json:"can_add_to_cart"`
}

// ProductCard is the listing tile. Its options only list values that are
// still available, so a shopper can pick a variant and add it from the
// listing.
type ProductCard struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	ImageURL     string            `json:"image_url,omitempty"`
	Featured     bool              `json:"featured"`
	HasVariants  bool              `json:"has_variants"`
	Options      []ProductOption   `json:"options"`
	Selection    map[string]string `json:"selection"`
	Price        Price             `json:"price"`
	InStock      bool              `json:"in_stock"`
	CanAddToCart bool              `json:"can_add_to_cart"`
}

func NewPrice(s variants.PriceSummary, currency string) Price {
	out := Price{Cents: s.PriceCents, Formatted: FormatMoney(s.PriceCents, currency)}
	if s.HasDiscount() {
		d := s.DiscountPercentage
		out.CompareAtCents = s.CompareAtCents
		out.CompareAt = FormatMoney(s.CompareAtCents, currency)
		out.DiscountPercentage = &d
	}
	return out
}

// NewProductPage maps a resolver view. fallbackCurrency is used when the
// product carries none.
func NewProductPage(v variants.View, fallbackCurrency string) ProductPage {
	p := v.Product
	if p == nil {
		return ProductPage{}
	}
	currency := p.Currency
	if currency == "" {
		currency = fallbackCurrency
	}

	page := ProductPage{
		ID:             p.ID,
		Slug:           p.Slug,
		Title:          p.Title,
		Description:    p.Description,
		Featured:       p.Featured,
		Currency:       currency,
		Images:         append([]string{}, p.Images...),
		CurrentImage:   v.CurrentImage,
		HasVariants:    p.HasVariants(),
		Options:        make([]ProductOption, 0, len(v.Options)),
		Selection:      map[string]string(v.Selection),
		SelectionState: v.State.String(),
		Price:          NewPrice(v.Price, currency),
		InStock:        v.InStock,
		CanAddToCart:   v.CanAddToCart,
	}
	if page.Selection == nil {
		page.Selection = map[string]string{}
	}

	for _, o := range v.Options {
		po := ProductOption{Name: o.Name, Values: make([]OptionValue, 0, len(o.Values))}
		for _, val := range o.Values {
			po.Values = append(po.Values, OptionValue{
				Value:     val.Value,
				Swatch:    val.Swatch,
				Selected:  val.Selected,
				Available: val.Available,
			})
		}
		page.Options = append(page.Options, po)
	}

	if mv := v.MatchingVariant; mv != nil {
		page.MatchingVariant = &ProductVariant{
			ID:         mv.ID,
			SKU:        mv.SKU,
			Options:    mv.OptionValues,
			Stock:      mv.InventoryQuantity,
			PriceCents: mv.PriceCents,
		}
	}
	return page
}

func NewProductCard(v variants.View, fallbackCurrency string) ProductCard {
	page := NewProductPage(v, fallbackCurrency)
	card := ProductCard{
		ID:           page.ID,
		Slug:         page.Slug,
		Title:        page.Title,
		Description:  page.Description,
		ImageURL:     page.CurrentImage,
		Featured:     page.Featured,
		HasVariants:  page.HasVariants,
		Options:      make([]ProductOption, 0, len(page.Options)),
		Selection:    page.Selection,
		Price:        page.Price,
		InStock:      page.InStock,
		CanAddToCart: page.CanAddToCart,
	}
	for _, o := range page.Options {
		co := ProductOption{Name: o.Name, Values: make([]OptionValue, 0, len(o.Values))}
		for _, val := range o.Values {
			if val.Available {
				co.Values = append(co.Values, val)
			}
		}
		card.Options = append(card.Options, co)
	}
	return card
}
