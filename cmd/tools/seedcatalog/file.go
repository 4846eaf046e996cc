package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pehlione.com/storefront/internal/modules/variants"
	"pehlione.com/storefront/internal/shared/slug"
)

type catalogFile struct {
	Currency string        `yaml:"currency"`
	Products []productSeed `yaml:"products"`
}

type productSeed struct {
	Slug           string        `yaml:"slug"`
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	Status         string        `yaml:"status"`
	Featured       bool          `yaml:"featured"`
	PriceCents     int           `yaml:"price_cents"`
	CompareAtCents int           `yaml:"compare_at_cents"`
	Currency       string        `yaml:"currency"`
	Options        []optionSeed  `yaml:"options"`
	Variants       []variantSeed `yaml:"variants"`
	Images         []imageSeed   `yaml:"images"`
}

type optionSeed struct {
	Name     string            `yaml:"name"`
	Values   []string          `yaml:"values"`
	Swatches map[string]string `yaml:"swatches"`
}

type variantSeed struct {
	SKU            string            `yaml:"sku"`
	Options        map[string]string `yaml:"options"`
	PriceCents     int               `yaml:"price_cents"`
	CompareAtCents int               `yaml:"compare_at_cents"`
	Stock          int               `yaml:"stock"`
	Image          string            `yaml:"image"`
}

// imageSeed is either a local file to upload or an external URL.
type imageSeed struct {
	File string `yaml:"file"`
	URL  string `yaml:"url"`
}

func loadCatalogFile(path string) (catalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalogFile{}, err
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (catalogFile, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return catalogFile{}, fmt.Errorf("parse catalog: %w", err)
	}
	f.Currency = strings.ToUpper(strings.TrimSpace(f.Currency))
	if f.Currency == "" {
		f.Currency = "EUR"
	}

	var errs []error
	seen := map[string]bool{}
	for i := range f.Products {
		p := &f.Products[i]
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("products[%d]: name is required", i))
			continue
		}
		p.Slug = strings.TrimSpace(p.Slug)
		if p.Slug == "" {
			p.Slug = slug.FromName(p.Name)
		}
		if seen[p.Slug] {
			errs = append(errs, fmt.Errorf("products[%d]: duplicate slug %q", i, p.Slug))
		}
		seen[p.Slug] = true
		if p.Currency == "" {
			p.Currency = f.Currency
		}
		p.Currency = strings.ToUpper(p.Currency)
	}
	return f, errors.Join(errs...)
}

// preview runs a seed product through the same validation the storefront
// applies when it loads the rows back.
func (p productSeed) preview() (variants.Product, []error) {
	out := variants.Product{
		ID:             p.Slug,
		Slug:           p.Slug,
		Title:          p.Name,
		Currency:       p.Currency,
		PriceCents:     int64(p.PriceCents),
		CompareAtCents: int64(p.CompareAtCents),
	}
	for _, o := range p.Options {
		out.Options = append(out.Options, variants.Option{Name: o.Name, Values: o.Values, Swatches: o.Swatches})
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, variants.Variant{
			ID:                v.SKU,
			SKU:               v.SKU,
			OptionValues:      v.Options,
			PriceCents:        int64(v.PriceCents),
			CompareAtCents:    int64(v.CompareAtCents),
			InventoryQuantity: v.Stock,
		})
	}
	return variants.Normalize(out)
}
