package products

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"pehlione.com/storefront/internal/modules/variants"
)

// ImageURLFunc turns a stored image key into a URL the browser can load.
type ImageURLFunc func(key string) string

// ToCatalog converts a loaded product row into the resolver's model and
// validates it. Rows that cannot be used are skipped and reported; they
// never make the whole product fail.
func ToCatalog(p Product, imageURL ImageURLFunc) (variants.Product, []error) {
	if imageURL == nil {
		imageURL = func(key string) string { return key }
	}

	var issues []error
	report := func(kind error, record, reason string) {
		issues = append(issues, &variants.IntegrityError{ProductID: p.ID, Record: record, Reason: reason, Kind: kind})
	}

	out := variants.Product{
		ID:             p.ID,
		Slug:           p.Slug,
		Title:          p.Name,
		Description:    strings.TrimSpace(p.Description),
		Featured:       p.Featured,
		Currency:       strings.ToUpper(strings.TrimSpace(p.Currency)),
		PriceCents:     int64(p.PriceCents),
		CompareAtCents: int64(p.CompareAtCents),
	}

	for _, o := range p.Options {
		opt := variants.Option{Name: o.Name}
		if err := decodeJSON(o.Values, &opt.Values); err != nil {
			report(variants.ErrMalformedOption, o.Name, fmt.Sprintf("values_json: %v", err))
			continue
		}
		if err := decodeJSON(o.Swatches, &opt.Swatches); err != nil {
			// swatches are cosmetic: keep the option
			report(variants.ErrMalformedOption, o.Name, fmt.Sprintf("swatches_json: %v", err))
			opt.Swatches = nil
		}
		out.Options = append(out.Options, opt)
	}

	rawOpts := make([]map[string]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		var vals map[string]string
		if err := decodeJSON(v.Options, &vals); err != nil {
			report(variants.ErrMalformedVariant, v.ID, fmt.Sprintf("options_json: %v", err))
			continue
		}
		if vals == nil {
			vals = map[string]string{}
		}
		rawOpts = append(rawOpts, vals)

		var image string
		if v.ImageKey != "" {
			image = imageURL(v.ImageKey)
		}
		out.Variants = append(out.Variants, variants.Variant{
			ID:                v.ID,
			SKU:               v.SKU,
			Image:             image,
			OptionValues:      vals,
			PriceCents:        int64(v.PriceCents),
			CompareAtCents:    int64(v.CompareAtCents),
			InventoryQuantity: v.Stock,
		})
		if out.Currency == "" && v.Currency != "" {
			out.Currency = strings.ToUpper(strings.TrimSpace(v.Currency))
		}
	}

	// Older rows have no product_options: the axes only live in the
	// variants' options_json.
	if len(out.Options) == 0 {
		out.Options = deriveOptions(rawOpts)
	}
	canonicalizeKeys(out.Options, out.Variants)

	// Fiyat yoksa ilk varyanttan al
	if out.PriceCents == 0 && len(out.Variants) > 0 {
		out.PriceCents = out.Variants[0].PriceCents
		out.CompareAtCents = out.Variants[0].CompareAtCents
	}

	for _, im := range p.Images {
		switch {
		case im.URL != "":
			out.Images = append(out.Images, im.URL)
		case im.StorageKey != "":
			out.Images = append(out.Images, imageURL(im.StorageKey))
		}
	}

	normalized, more := variants.Normalize(out)
	return normalized, append(issues, more...)
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func deriveOptions(rows []map[string]string) []variants.Option {
	seenName := map[string]bool{}
	var names []string
	for _, r := range rows {
		for k := range r {
			if !seenName[k] {
				seenName[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)

	opts := make([]variants.Option, 0, len(names))
	for _, n := range names {
		opt := variants.Option{Name: n}
		seen := map[string]bool{}
		for _, r := range rows {
			if v, ok := r[n]; ok && v != "" && !seen[v] {
				seen[v] = true
				opt.Values = append(opt.Values, v)
			}
		}
		opts = append(opts, opt)
	}
	return opts
}

// canonicalizeKeys rewrites variant keys that differ from the option
// name only by case ("color" vs "Color").
func canonicalizeKeys(opts []variants.Option, vs []variants.Variant) {
	for i := range vs {
		for _, o := range opts {
			if _, ok := vs[i].OptionValues[o.Name]; ok {
				continue
			}
			for k, val := range vs[i].OptionValues {
				if strings.EqualFold(k, o.Name) {
					delete(vs[i].OptionValues, k)
					vs[i].OptionValues[o.Name] = val
					break
				}
			}
		}
	}
}
