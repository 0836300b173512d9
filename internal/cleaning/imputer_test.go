package cleaning

import (
	"context"
	"errors"
	"testing"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

func testCleaningConfig() config.CleaningConfig {
	return config.CleaningConfig{
		PriceMin:         config.DefaultPriceMin,
		PriceMax:         config.DefaultPriceMax,
		RatingMin:        config.DefaultRatingMin,
		RatingMax:        config.DefaultRatingMax,
		IQRMultiplier:    config.DefaultIQRMultiplier,
		ReviewPrior:      config.DefaultReviewPrior,
		CredibleReviews:  config.DefaultCredibleReviews,
		NearDupThreshold: config.DefaultNearDupThreshold,
		MaxDescription:   config.DefaultMaxDescription,
	}
}

func missingProduct(row int, cols ...string) *domain.Product {
	p := &domain.Product{RowIndex: row}
	for _, c := range cols {
		p.SetMissing(c)
	}
	return p
}

func TestImputerFillsConstantName(t *testing.T) {
	tbl := &domain.Table{Products: []*domain.Product{
		missingProduct(0, domain.ColProductName),
		{RowIndex: 1, Name: "Bamboo Brush"},
	}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	stats, err := im.Run(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := tbl.Products[0].Name; got != "Unknown Product" {
		t.Errorf("imputed name = %q, want %q", got, "Unknown Product")
	}
	if tbl.Products[1].Name != "Bamboo Brush" {
		t.Error("observed name was overwritten")
	}
	if stats.ValuesImputed[domain.ColProductName] != 1 {
		t.Errorf("ValuesImputed[product_name] = %d, want 1", stats.ValuesImputed[domain.ColProductName])
	}
}

func TestImputerBrandModeWithFallback(t *testing.T) {
	tbl := &domain.Table{Products: []*domain.Product{
		{RowIndex: 0, Brand: "Blueland"},
		{RowIndex: 1, Brand: "Blueland"},
		{RowIndex: 2, Brand: "Method"},
		missingProduct(3, domain.ColBrand),
	}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	if _, err := im.Run(context.Background(), tbl); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := tbl.Products[3].Brand; got != "Blueland" {
		t.Errorf("imputed brand = %q, want mode %q", got, "Blueland")
	}

	// No observed brands at all falls back to the constant.
	empty := &domain.Table{Products: []*domain.Product{missingProduct(0, domain.ColBrand)}}
	if _, err := im.Run(context.Background(), empty); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := empty.Products[0].Brand; got != "Unknown Brand" {
		t.Errorf("fallback brand = %q, want %q", got, "Unknown Brand")
	}
}

func TestImputerGroupedMedianPrice(t *testing.T) {
	tbl := &domain.Table{Products: []*domain.Product{
		{RowIndex: 0, Category: "Kitchen", Price: 10, SalePrice: 10},
		{RowIndex: 1, Category: "Kitchen", Price: 20, SalePrice: 20},
		{RowIndex: 2, Category: "Kitchen", Price: 30, SalePrice: 30},
		func() *domain.Product {
			p := missingProduct(3, domain.ColPrice)
			p.Category = "Kitchen"
			p.SalePrice = 5
			return p
		}(),
	}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	stats, err := im.Run(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := tbl.Products[3].Price; got != 20 {
		t.Errorf("imputed price = %v, want group median 20", got)
	}
	if !tbl.Products[3].WasImputed(domain.ColPrice) {
		t.Error("price not marked imputed")
	}
	if len(stats.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", stats.Warnings)
	}
}

func TestImputerGroupedMedianFallsBackToGlobal(t *testing.T) {
	tbl := &domain.Table{Products: []*domain.Product{
		{RowIndex: 0, Category: "Kitchen", Price: 10, SalePrice: 10},
		{RowIndex: 1, Category: "Kitchen", Price: 30, SalePrice: 30},
		func() *domain.Product {
			p := missingProduct(2, domain.ColPrice)
			p.Category = "Laundry"
			p.SalePrice = 5
			return p
		}(),
	}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	stats, err := im.Run(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := tbl.Products[2].Price; got != 20 {
		t.Errorf("imputed price = %v, want global median 20", got)
	}
	if len(stats.Warnings) == 0 {
		t.Error("expected a global-fallback warning")
	}
}

func TestImputerSalePriceCopiesPrice(t *testing.T) {
	p := missingProduct(0, domain.ColSalePrice)
	p.Price = 12.50
	tbl := &domain.Table{Products: []*domain.Product{p}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	if _, err := im.Run(context.Background(), tbl); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if p.SalePrice != 12.50 {
		t.Errorf("sale_price = %v, want copied price 12.50", p.SalePrice)
	}
}

func TestImputerRatingClippedToScale(t *testing.T) {
	tbl := &domain.Table{Products: []*domain.Product{
		{RowIndex: 0, Category: "Kitchen", Rating: 4.5},
		func() *domain.Product {
			p := missingProduct(1, domain.ColRating)
			p.Category = "Kitchen"
			return p
		}(),
	}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	if _, err := im.Run(context.Background(), tbl); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := tbl.Products[1].Rating
	if got < 1 || got > 5 {
		t.Errorf("imputed rating %v outside [1, 5]", got)
	}
	if got != 4.5 {
		t.Errorf("imputed rating = %v, want group mean 4.5", got)
	}
}

func TestImputerZeroReviewCount(t *testing.T) {
	p := missingProduct(0, domain.ColReviewCount)
	tbl := &domain.Table{Products: []*domain.Product{p}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	if _, err := im.Run(context.Background(), tbl); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if p.ReviewCount != 0 {
		t.Errorf("review_count = %d, want 0", p.ReviewCount)
	}
	if !p.WasImputed(domain.ColReviewCount) {
		t.Error("review_count not marked imputed")
	}
}

func TestImputerSkipsInvalidRecords(t *testing.T) {
	p := missingProduct(0, domain.ColProductName)
	p.InvalidReason = "non-numeric price: abc"
	tbl := &domain.Table{Products: []*domain.Product{p}}

	im := NewImputer(testCleaningConfig(), logging.NewNop())
	stats, err := im.Run(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if p.Name != "" {
		t.Errorf("invalid record was imputed: name = %q", p.Name)
	}
	if stats.TotalImputed() != 0 {
		t.Errorf("TotalImputed = %d, want 0", stats.TotalImputed())
	}
}

func TestImputerRejectsUnknownColumn(t *testing.T) {
	im := &Imputer{
		strategies: []Strategy{{Column: "typo_column", Kind: StrategyZero}},
		logger:     logging.NewNop(),
	}
	_, err := im.Run(context.Background(), &domain.Table{})
	if err == nil {
		t.Fatal("Run() accepted a strategy for an unknown column")
	}
	var serr *domain.SchemaError
	if !errors.As(err, &serr) {
		t.Errorf("error type = %T, want *domain.SchemaError", err)
	}
}
