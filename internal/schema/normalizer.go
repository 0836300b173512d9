// Package schema normalizes raw tabular input into the canonical product
// table: header canonicalization, alternative column names, creation of
// missing expected columns, and numeric parsing.
package schema

import (
	"strconv"
	"strings"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// StageName identifies this stage in the cleaning log.
const StageName = "schema_normalizer"

// aliases maps alternative source column names onto canonical names.
var aliases = map[string]string{
	"name":                domain.ColProductName,
	"title":               domain.ColProductName,
	"manufacturer":        domain.ColBrand,
	"main_category":       domain.ColCategory,
	"discounted_price":    domain.ColSalePrice,
	"average_rating":      domain.ColRating,
	"number_of_reviews":   domain.ColReviewCount,
	"reviews":             domain.ColReviewCount,
	"product_description": domain.ColDescription,
	"site":                domain.ColWebsite,
	"source":              domain.ColWebsite,
	"scrape_date":         domain.ColDateCollected,
	"features":            domain.ColAttributes,
}

// dropColumns lists source columns the pipeline discards.
var dropColumns = map[string]bool{
	"unnamed:_0": true,
	"index":      true,
	"id":         true,
	"asin":       true,
	"product_id": true,
	"url":        true,
}

// Normalizer builds the canonical product table from a raw header and rows.
type Normalizer struct {
	logger logging.Logger
}

// New creates a schema normalizer.
func New(logger logging.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// CanonicalName lowercases a header and replaces spaces and dashes with
// underscores.
func CanonicalName(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// Normalize constructs one Product per raw row. Rows with non-numeric text
// in numeric cells are marked invalid; the validator excludes them later.
// An input without any header columns is a fatal SchemaError.
func (n *Normalizer) Normalize(header []string, rows [][]string) (*domain.Table, domain.StageStats, error) {
	stats := domain.NewStageStats(StageName)
	stats.RowsIn = len(rows)

	if len(header) == 0 {
		return nil, stats, domain.NewSchemaError("", "input has no header row")
	}

	// Resolve each header to a canonical column; first occurrence wins.
	colIdx := make(map[string]int, len(header))
	renamed := 0
	for i, raw := range header {
		name := CanonicalName(raw)
		if dropColumns[name] {
			continue
		}
		if canon, ok := aliases[name]; ok {
			name = canon
			renamed++
		}
		if _, exists := colIdx[name]; !exists {
			colIdx[name] = i
		}
	}

	created := make([]string, 0)
	for _, col := range domain.ExpectedColumns {
		if _, ok := colIdx[col]; !ok {
			created = append(created, col)
		}
	}
	if len(created) > 0 {
		n.logger.Warn("expected columns absent from input, created empty",
			logging.Strings("columns", created))
		stats.Warnings = append(stats.Warnings,
			"created empty columns: "+strings.Join(created, ", "))
	}

	cell := func(row []string, col string) (string, bool) {
		idx, ok := colIdx[col]
		if !ok || idx >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[idx]), true
	}

	tbl := &domain.Table{Products: make([]*domain.Product, 0, len(rows))}
	for i, row := range rows {
		p := &domain.Product{RowIndex: i}

		setString(p, row, cell)
		n.parseNumeric(p, row, cell)

		tbl.Products = append(tbl.Products, p)
	}

	stats.RowsOut = len(tbl.Products)
	stats.RowsAffected = renamed
	n.logger.Info("schema normalized",
		logging.Int("rows", len(tbl.Products)),
		logging.Int("renamed_columns", renamed),
		logging.Int("created_columns", len(created)))

	return tbl, stats, nil
}

type cellFn func(row []string, col string) (string, bool)

// setString fills the text columns, marking empty cells as missing.
func setString(p *domain.Product, row []string, cell cellFn) {
	fields := []struct {
		col string
		dst *string
	}{
		{domain.ColProductName, &p.Name},
		{domain.ColBrand, &p.Brand},
		{domain.ColCategory, &p.Category},
		{domain.ColDescription, &p.Description},
		{domain.ColWebsite, &p.Website},
		{domain.ColDateCollected, &p.DateCollected},
		{domain.ColAttributes, &p.Attributes},
	}
	for _, f := range fields {
		v, _ := cell(row, f.col)
		if isNA(v) {
			p.SetMissing(f.col)
			continue
		}
		*f.dst = v
	}
}

// isNA reports whether a cell holds one of the textual not-available
// sentinels scrapers emit.
func isNA(v string) bool {
	return v == "" ||
		strings.EqualFold(v, "nan") ||
		strings.EqualFold(v, "none") ||
		strings.EqualFold(v, "null") ||
		strings.EqualFold(v, "n/a")
}

// parseNumeric fills the numeric columns. Empty cells become missing;
// unparseable cells flag the whole record as invalid.
func (n *Normalizer) parseNumeric(p *domain.Product, row []string, cell cellFn) {
	floats := []struct {
		col string
		dst *float64
	}{
		{domain.ColPrice, &p.Price},
		{domain.ColSalePrice, &p.SalePrice},
		{domain.ColRating, &p.Rating},
	}
	for _, f := range floats {
		v, _ := cell(row, f.col)
		if isNA(v) {
			p.SetMissing(f.col)
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.InvalidReason = "non-numeric " + f.col + ": " + v
			n.logger.Warn("unparseable numeric cell",
				logging.Int("row", p.RowIndex),
				logging.String("column", f.col),
				logging.String("value", v))
			continue
		}
		*f.dst = parsed
	}

	v, _ := cell(row, domain.ColReviewCount)
	switch {
	case isNA(v):
		p.SetMissing(domain.ColReviewCount)
	default:
		// Review counts sometimes arrive as floats ("12.0").
		// Negative values are repairable and left to the validator.
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.InvalidReason = "non-numeric " + domain.ColReviewCount + ": " + v
			n.logger.Warn("unparseable numeric cell",
				logging.Int("row", p.RowIndex),
				logging.String("column", domain.ColReviewCount),
				logging.String("value", v))
			return
		}
		p.ReviewCount = int(parsed)
	}
}
