package features

import (
	"strings"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
)

// BrandCategories maps canonical brand names (lowercased) onto their market
// classification. Brands outside the table classify as Unknown; the table
// is a curated lookup, not a heuristic.
func BrandCategories() map[string]string {
	return map[string]string{
		"public goods":        domain.BrandEcoFocused,
		"blueland":            domain.BrandEcoFocused,
		"grove collaborative": domain.BrandEcoFocused,
		"package free":        domain.BrandEcoFocused,
		"ecoroots":            domain.BrandEcoFocused,
		"earthhero":           domain.BrandEcoFocused,
		"earth breeze":        domain.BrandEmerging,
		"who gives a crap":    domain.BrandEmerging,
		"well earth goods":    domain.BrandEmerging,
		"the good fill":       domain.BrandEmerging,
		"seventh generation":  domain.BrandEstablished,
		"method":              domain.BrandEstablished,
		"mrs. meyer's":        domain.BrandEstablished,
	}
}

// brandCategory resolves a brand name against the classification table.
func brandCategory(table map[string]string, brand string) string {
	if c, ok := table[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return c
	}
	return domain.BrandUnknown
}
