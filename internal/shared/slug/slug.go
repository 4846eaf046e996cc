package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Türkçe ve Almanca karakterler ASCII karşılığına çevrilir
var fold = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	"ä", "a", "ß", "ss", "é", "e", "è", "e", "à", "a",
)

// FromName derives a URL slug from a product name: "Çanta Büyük" becomes
// "canta-buyuk". An empty result falls back to "product".
func FromName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = fold.Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "product"
	}
	return s
}
