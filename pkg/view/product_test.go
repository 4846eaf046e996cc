package view

import (
	"testing"

	"pehlione.com/storefront/internal/modules/variants"
)

func sneaker() *variants.Product {
	return &variants.Product{
		ID:             "p-1",
		Slug:           "sneaker",
		Title:          "Sneaker",
		PriceCents:     8000,
		CompareAtCents: 10000,
		Images:         []string{"/uploads/sneaker.jpg"},
		Options: []variants.Option{
			{Name: "Color", Values: []string{"White", "Black"}, Swatches: map[string]string{"White": "#fff", "Black": "#000"}},
		},
		Variants: []variants.Variant{
			{ID: "w", SKU: "SN-W", OptionValues: map[string]string{"Color": "White"}, PriceCents: 8000, CompareAtCents: 10000, InventoryQuantity: 3},
			{ID: "b", SKU: "SN-B", OptionValues: map[string]string{"Color": "Black"}, PriceCents: 9000, CompareAtCents: 9000, InventoryQuantity: 0},
		},
	}
}

func TestNewProductPageWithoutSelection(t *testing.T) {
	page := NewProductPage(variants.New(sneaker()).View(), "EUR")

	if page.Currency != "EUR" || page.SelectionState != "empty" {
		t.Fatalf("unexpected page header %+v", page)
	}
	if page.Price.Formatted != "€80.00" || page.Price.CompareAt != "€100.00" {
		t.Fatalf("unexpected price %+v", page.Price)
	}
	if page.Price.DiscountPercentage == nil || *page.Price.DiscountPercentage != 20 {
		t.Fatalf("expected 20%% discount, got %v", page.Price.DiscountPercentage)
	}
	if page.MatchingVariant != nil || page.CanAddToCart {
		t.Fatalf("expected nothing selected yet")
	}
	if !page.InStock {
		t.Fatalf("expected in stock badge while white is available")
	}
	if len(page.Options) != 1 || page.Options[0].Values[1].Available {
		t.Fatalf("expected black to be unavailable, got %+v", page.Options)
	}
	if page.Options[0].Values[0].Swatch != "#fff" {
		t.Fatalf("expected swatch on color option")
	}
	if page.Selection == nil {
		t.Fatalf("expected non-nil selection map for json")
	}
}

func TestNewProductPageWithMatchingVariant(t *testing.T) {
	r := variants.New(sneaker())
	r.HandleOptionChange("Color", "Black")
	page := NewProductPage(r.View(), "EUR")

	if page.MatchingVariant == nil || page.MatchingVariant.SKU != "SN-B" || page.MatchingVariant.Stock != 0 {
		t.Fatalf("unexpected matching variant %+v", page.MatchingVariant)
	}
	if page.Price.Formatted != "€90.00" || page.Price.DiscountPercentage != nil || page.Price.CompareAt != "" {
		t.Fatalf("expected plain price without discount, got %+v", page.Price)
	}
	if page.InStock || page.CanAddToCart {
		t.Fatalf("expected sold out variant")
	}
}

func TestNewProductCard(t *testing.T) {
	p := sneaker()
	p.Currency = "USD"
	p.Description = "Leather low-top."
	card := NewProductCard(variants.New(p).View(), "EUR")
	if card.Price.Formatted != "$80.00" || card.ImageURL != "/uploads/sneaker.jpg" || !card.HasVariants {
		t.Fatalf("unexpected card %+v", card)
	}
	if card.Description != "Leather low-top." {
		t.Fatalf("expected description on card, got %q", card.Description)
	}
	// black is sold out and left off the card
	if len(card.Options) != 1 || len(card.Options[0].Values) != 1 {
		t.Fatalf("expected only available values, got %+v", card.Options)
	}
	if v := card.Options[0].Values[0]; v.Value != "White" || v.Swatch != "#fff" || !v.Available {
		t.Fatalf("unexpected card value %+v", v)
	}
	if card.Selection == nil {
		t.Fatalf("expected non-nil selection map for json")
	}
}

func TestNewProductCardMarksSelectedValue(t *testing.T) {
	r := variants.New(sneaker())
	r.HandleOptionChange("Color", "White")
	card := NewProductCard(r.View(), "EUR")
	if len(card.Options[0].Values) != 1 || !card.Options[0].Values[0].Selected || !card.CanAddToCart {
		t.Fatalf("expected selected white value, got %+v", card.Options)
	}
}

func TestNewProductPageNilProduct(t *testing.T) {
	if page := NewProductPage(variants.New(nil).View(), "EUR"); page.ID != "" {
		t.Fatalf("expected empty page, got %+v", page)
	}
}
