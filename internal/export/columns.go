// Package export writes the cleaned dataset and its run artifacts to disk.
package export

import (
	"strconv"
	"strings"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/features"
)

// Header returns the output column order: the base columns, the derived
// columns, then one has_<tag> flag per dictionary tag. The order is fixed
// so diffs between runs stay meaningful.
func Header() []string {
	cols := make([]string, 0, len(domain.ExpectedColumns)+12+15)
	cols = append(cols, domain.ExpectedColumns...)
	cols = append(cols,
		"on_sale",
		"discount_pct",
		"price_ratio",
		"price_tier",
		"review_score",
		"has_credible_reviews",
		"attributes_cleaned",
		"name_length",
		"description_length",
		"has_description",
		"brand_category",
	)
	for _, tag := range features.TagNames() {
		cols = append(cols, "has_"+tag)
	}
	return cols
}

// Record renders one product in Header order.
func Record(p *domain.Product) []string {
	rec := []string{
		p.Name,
		p.Brand,
		p.Category,
		money(p.Price),
		money(p.SalePrice),
		strconv.FormatFloat(p.Rating, 'f', 2, 64),
		strconv.Itoa(p.ReviewCount),
		p.Description,
		p.Website,
		p.DateCollected,
		p.Attributes,
		boolean(p.OnSale),
		strconv.FormatFloat(p.DiscountPct, 'f', 1, 64),
		strconv.FormatFloat(p.PriceRatio, 'f', 3, 64),
		p.PriceTier,
		strconv.FormatFloat(p.ReviewScore, 'f', 2, 64),
		boolean(p.HasCredibleReviews),
		strings.Join(p.AttributesCleaned, ", "),
		strconv.Itoa(p.NameLength),
		strconv.Itoa(p.DescLength),
		boolean(p.HasDescription),
		p.BrandCategory,
	}
	for _, tag := range features.TagNames() {
		rec = append(rec, boolean(p.HasTag(tag)))
	}
	return rec
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func boolean(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
