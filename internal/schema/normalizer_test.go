package schema

import (
	"errors"
	"testing"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Product Name", "product_name"},
		{"  Sale-Price ", "sale_price"},
		{"REVIEW_COUNT", "review_count"},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeResolvesAliases(t *testing.T) {
	header := []string{"Title", "Manufacturer", "Price", "Discounted Price", "Average Rating", "Reviews"}
	rows := [][]string{
		{"Bamboo Brush", "EcoRoots", "9.99", "7.99", "4.5", "120"},
	}

	tbl, stats, err := New(logging.NewNop()).Normalize(header, rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("table len = %d, want 1", tbl.Len())
	}

	p := tbl.Products[0]
	if p.Name != "Bamboo Brush" {
		t.Errorf("name = %q via Title alias, want %q", p.Name, "Bamboo Brush")
	}
	if p.Brand != "EcoRoots" {
		t.Errorf("brand = %q via Manufacturer alias", p.Brand)
	}
	if p.SalePrice != 7.99 {
		t.Errorf("sale_price = %v via Discounted Price alias, want 7.99", p.SalePrice)
	}
	if p.Rating != 4.5 {
		t.Errorf("rating = %v via Average Rating alias, want 4.5", p.Rating)
	}
	if p.ReviewCount != 120 {
		t.Errorf("review_count = %d via Reviews alias, want 120", p.ReviewCount)
	}
	if stats.RowsAffected == 0 {
		t.Error("no renamed columns recorded")
	}
}

func TestNormalizeCreatesMissingColumns(t *testing.T) {
	header := []string{"product_name", "price"}
	rows := [][]string{{"Brush", "5.00"}}

	tbl, stats, err := New(logging.NewNop()).Normalize(header, rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(stats.Warnings) == 0 {
		t.Error("expected a created-columns warning")
	}
	if !tbl.Products[0].IsMissing(domain.ColBrand) {
		t.Error("brand not marked missing for an absent column")
	}
}

func TestNormalizeMarksEmptyAndSentinelCellsMissing(t *testing.T) {
	header := []string{"product_name", "brand", "price", "rating"}
	rows := [][]string{
		{"Brush", "NaN", "", "none"},
	}

	tbl, _, err := New(logging.NewNop()).Normalize(header, rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	p := tbl.Products[0]
	if !p.IsMissing(domain.ColBrand) {
		t.Error("brand \"NaN\" not marked missing")
	}
	if !p.IsMissing(domain.ColPrice) {
		t.Error("empty price not marked missing")
	}
	if !p.IsMissing(domain.ColRating) {
		t.Error("rating \"none\" parsed instead of marked missing")
	}
}

func TestNormalizeFlagsNonNumericCells(t *testing.T) {
	header := []string{"product_name", "price"}
	rows := [][]string{
		{"Good", "9.99"},
		{"Bad", "Contact us"},
	}

	tbl, _, err := New(logging.NewNop()).Normalize(header, rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if tbl.Products[0].InvalidReason != "" {
		t.Errorf("valid row flagged: %q", tbl.Products[0].InvalidReason)
	}
	if tbl.Products[1].InvalidReason == "" {
		t.Error("non-numeric price not flagged invalid")
	}
}

func TestNormalizeAcceptsFloatReviewCounts(t *testing.T) {
	header := []string{"product_name", "review_count"}
	rows := [][]string{{"Brush", "12.0"}}

	tbl, _, err := New(logging.NewNop()).Normalize(header, rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got := tbl.Products[0].ReviewCount; got != 12 {
		t.Errorf("review_count = %d, want 12", got)
	}
}

func TestNormalizeRejectsEmptyHeader(t *testing.T) {
	_, _, err := New(logging.NewNop()).Normalize(nil, nil)
	if err == nil {
		t.Fatal("Normalize() accepted an empty header")
	}
	var serr *domain.SchemaError
	if !errors.As(err, &serr) {
		t.Errorf("error type = %T, want *domain.SchemaError", err)
	}
}

func TestNormalizeToleratesRaggedRows(t *testing.T) {
	header := []string{"product_name", "brand", "price"}
	rows := [][]string{
		{"Short Row"},
		{"Full Row", "Blueland", "4.99", "extra cell"},
	}

	tbl, _, err := New(logging.NewNop()).Normalize(header, rows)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("table len = %d, want 2", tbl.Len())
	}
	if !tbl.Products[0].IsMissing(domain.ColBrand) {
		t.Error("short row's brand not marked missing")
	}
	if tbl.Products[1].Price != 4.99 {
		t.Errorf("price = %v, want 4.99", tbl.Products[1].Price)
	}
}
