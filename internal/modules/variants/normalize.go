package variants

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMalformedOption  = errors.New("malformed option")
	ErrMalformedVariant = errors.New("malformed variant")
)

// IntegrityError describes a catalog record that was skipped during
// Normalize. It is a data problem to report, not a reason to fail.
type IntegrityError struct {
	ProductID string
	Record    string // option name or variant id
	Reason    string
	Kind      error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%v: product=%s record=%s: %s", e.Kind, e.ProductID, e.Record, e.Reason)
}

func (e *IntegrityError) Unwrap() error { return e.Kind }

// Normalize validates p once at ingestion and returns a copy containing
// only well-formed options and variants. Every dropped record is reported.
func Normalize(p Product) (Product, []error) {
	var issues []error
	report := func(kind error, record, reason string) {
		issues = append(issues, &IntegrityError{ProductID: p.ID, Record: record, Reason: reason, Kind: kind})
	}

	out := p
	out.Options = make([]Option, 0, len(p.Options))
	seenOpt := make(map[string]bool, len(p.Options))
	for _, o := range p.Options {
		name := strings.TrimSpace(o.Name)
		switch {
		case name == "":
			report(ErrMalformedOption, o.Name, "empty option name")
			continue
		case seenOpt[name]:
			report(ErrMalformedOption, name, "duplicate option name")
			continue
		}
		seenOpt[name] = true

		clean := Option{Name: name, Swatches: o.Swatches}
		seenVal := make(map[string]bool, len(o.Values))
		for _, v := range o.Values {
			if seenVal[v] {
				report(ErrMalformedOption, name, fmt.Sprintf("duplicate value %q", v))
				continue
			}
			seenVal[v] = true
			clean.Values = append(clean.Values, v)
		}
		if len(clean.Values) == 0 {
			report(ErrMalformedOption, name, "option has no values")
			delete(seenOpt, name)
			continue
		}
		out.Options = append(out.Options, clean)
	}

	out.Variants = make([]Variant, 0, len(p.Variants))
	seenCombo := make(map[string]bool, len(p.Variants))
	for _, v := range p.Variants {
		if reason := variantProblem(out.Options, v); reason != "" {
			report(ErrMalformedVariant, v.ID, reason)
			continue
		}
		key := comboKey(out.Options, v.OptionValues)
		if seenCombo[key] {
			report(ErrMalformedVariant, v.ID, "duplicate option combination")
			continue
		}
		seenCombo[key] = true
		out.Variants = append(out.Variants, v)
	}

	if len(out.Options) == 0 {
		switch len(out.Variants) {
		case 0:
			// stok bilgisi yok: satılamaz
			out.Variants = []Variant{{
				ID:             p.ID,
				OptionValues:   map[string]string{},
				PriceCents:     p.PriceCents,
				CompareAtCents: p.CompareAtCents,
			}}
		case 1:
		default:
			for _, extra := range out.Variants[1:] {
				report(ErrMalformedVariant, extra.ID, "product without options has more than one variant")
			}
			out.Variants = out.Variants[:1]
		}
	}

	return out, issues
}

func variantProblem(opts []Option, v Variant) string {
	if v.PriceCents < 0 {
		return "negative price"
	}
	if v.InventoryQuantity < 0 {
		return "negative inventory"
	}
	if len(v.OptionValues) != len(opts) {
		var extra []string
		for k := range v.OptionValues {
			if !hasOption(opts, k) {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		if len(extra) > 0 {
			return fmt.Sprintf("unknown option axes %v", extra)
		}
	}
	for _, o := range opts {
		val, ok := v.OptionValues[o.Name]
		if !ok {
			return fmt.Sprintf("missing value for option %q", o.Name)
		}
		if !o.has(val) {
			return fmt.Sprintf("value %q not offered by option %q", val, o.Name)
		}
	}
	return ""
}

func hasOption(opts []Option, name string) bool {
	for _, o := range opts {
		if o.Name == name {
			return true
		}
	}
	return false
}

// comboKey encodes values in option order as len:value pairs, so no
// value content can make two combinations collide.
func comboKey(opts []Option, values map[string]string) string {
	var b strings.Builder
	for _, o := range opts {
		v := values[o.Name]
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}
