package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/features"
)

// ColumnDoc describes one output column for the data dictionary.
type ColumnDoc struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Source      string `json:"source"` // "input" or "derived"
	Description string `json:"description"`
}

// Dictionary returns the documentation for every output column, in Header
// order.
func Dictionary() []ColumnDoc {
	docs := []ColumnDoc{
		{"product_name", "string", "input", "Listing title, title-cased and cleaned of markup artifacts."},
		{"brand", "string", "input", "Brand name after canonical spelling correction."},
		{"category", "string", "input", "Standardized category from the keyword decision table."},
		{"price", "float", "input", "List price in dollars, capped to the valid range and interquartile fences."},
		{"sale_price", "float", "input", "Current selling price, never above price."},
		{"rating", "float", "input", "Average customer rating on the 1 to 5 scale."},
		{"review_count", "int", "input", "Number of customer reviews, zero when missing."},
		{"description", "string", "input", "Cleaned listing description, truncated with an ellipsis when long."},
		{"website", "string", "input", "Standardized retailer name."},
		{"date_collected", "string", "input", "Date the listing was scraped, as provided."},
		{"attributes", "string", "input", "Raw attribute text from the listing."},
		{"on_sale", "bool", "derived", "True when sale_price is below price."},
		{"discount_pct", "float", "derived", "Discount as a percentage of price, one decimal, zero when not on sale."},
		{"price_ratio", "float", "derived", "sale_price divided by price."},
		{"price_tier", "string", "derived", "Budget, Mid-Range, Premium or Luxury by this run's price quartiles."},
		{"review_score", "float", "derived", "Bayesian average rating shrunk toward the dataset mean for low review counts."},
		{"has_credible_reviews", "bool", "derived", "True when review_count meets the credibility threshold."},
		{"attributes_cleaned", "string", "derived", "Sustainability tags found in the listing, comma separated."},
		{"name_length", "int", "derived", "Length of product_name in characters."},
		{"description_length", "int", "derived", "Length of description in characters."},
		{"has_description", "bool", "derived", "True when the listing has a non-empty description."},
		{"brand_category", "string", "derived", "Eco-Focused, Emerging, Established or Unknown from the brand table."},
	}
	for _, tag := range features.TagNames() {
		docs = append(docs, ColumnDoc{
			Name:        "has_" + tag,
			Type:        "bool",
			Source:      "derived",
			Description: fmt.Sprintf("True when the %q sustainability tag was detected.", tag),
		})
	}
	return docs
}

// WriteDictionary writes the data dictionary as indented JSON.
func WriteDictionary(path string) error {
	data, err := json.MarshalIndent(Dictionary(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dictionary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
