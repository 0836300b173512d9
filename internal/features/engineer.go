package features

import (
	"context"
	"unicode/utf8"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/cleaning"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// StageName identifies the feature engineering stage in reports.
const StageName = "feature_engineer"

// Engineer populates every derived column. It runs after validation so all
// numeric inputs are already inside their domain ranges.
type Engineer struct {
	cfg    config.CleaningConfig
	tags   *TagExtractor
	brands map[string]string
	logger logging.Logger
}

// NewEngineer builds the stage with a compiled tag dictionary.
func NewEngineer(cfg config.CleaningConfig, logger logging.Logger) *Engineer {
	return &Engineer{
		cfg:    cfg,
		tags:   NewTagExtractor(),
		brands: BrandCategories(),
		logger: logger,
	}
}

// Name implements pipeline.Stage.
func (e *Engineer) Name() string { return StageName }

// Run derives the computed columns for every record in place.
//
// Table-level aggregates (price quartiles for tiers, the global mean rating
// for the Bayesian review score) are computed in a first pass so that row
// order cannot influence any derived value.
func (e *Engineer) Run(ctx context.Context, tbl *domain.Table) (domain.StageStats, error) {
	stats := domain.NewStageStats(StageName)
	stats.RowsIn = tbl.Len()
	stats.RowsOut = tbl.Len()
	if tbl.Len() == 0 {
		return stats, nil
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	prices := make([]float64, 0, tbl.Len())
	ratings := make([]float64, 0, tbl.Len())
	for _, p := range tbl.Products {
		prices = append(prices, p.Price)
		ratings = append(ratings, p.Rating)
	}
	q1 := cleaning.Quantile(prices, 0.25)
	q2 := cleaning.Quantile(prices, 0.50)
	q3 := cleaning.Quantile(prices, 0.75)
	meanRating := cleaning.Mean(ratings)

	for _, p := range tbl.Products {
		p.OnSale = p.SalePrice < p.Price
		if p.OnSale {
			p.DiscountPct = cleaning.Round1(100 * (p.Price - p.SalePrice) / p.Price)
		} else {
			p.DiscountPct = 0
		}
		p.PriceRatio = p.SalePrice / p.Price
		p.PriceTier = priceTier(p.Price, q1, q2, q3)

		v := float64(p.ReviewCount)
		p.ReviewScore = (e.cfg.ReviewPrior*meanRating + v*p.Rating) / (e.cfg.ReviewPrior + v)
		p.HasCredibleReviews = p.ReviewCount >= e.cfg.CredibleReviews

		p.AttributesCleaned = e.tags.Extract(p.Attributes + " " + p.Description)
		p.NameLength = utf8.RuneCountInString(p.Name)
		p.DescLength = utf8.RuneCountInString(p.Description)
		p.HasDescription = p.Description != ""
		p.BrandCategory = brandCategory(e.brands, p.Brand)
	}

	stats.RowsAffected = tbl.Len()
	e.logger.Debug("derived columns computed",
		logging.Int("rows", tbl.Len()),
		logging.Float64("q1", q1),
		logging.Float64("q2", q2),
		logging.Float64("q3", q3),
		logging.Float64("mean_rating", meanRating))
	return stats, nil
}

// priceTier buckets a price by the table's own quartiles. Boundaries are
// half-open on the left so a price equal to a quartile lands in the upper
// tier.
func priceTier(price, q1, q2, q3 float64) string {
	switch {
	case price < q1:
		return domain.TierBudget
	case price < q2:
		return domain.TierMidRange
	case price < q3:
		return domain.TierPremium
	default:
		return domain.TierLuxury
	}
}
