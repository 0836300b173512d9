package cleaning

import (
	"context"
	"fmt"
	"math"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// ValidatorStage identifies the validator in the cleaning log.
const ValidatorStage = "validator_outlier_capper"

// Validator enforces the numeric domain invariants and winsorizes
// statistical outliers. Domain clipping runs before IQR capping so that
// impossible values cannot skew the quartile computation.
type Validator struct {
	cfg    config.CleaningConfig
	logger logging.Logger
}

// NewValidator creates a validator.
func NewValidator(cfg config.CleaningConfig, logger logging.Logger) *Validator {
	return &Validator{cfg: cfg, logger: logger}
}

// Name implements pipeline.Stage.
func (v *Validator) Name() string { return ValidatorStage }

// Run excludes unrepairable records, clips values to their domain bounds,
// and caps IQR outliers to the nearer fence.
func (v *Validator) Run(ctx context.Context, tbl *domain.Table) (domain.StageStats, error) {
	stats := domain.NewStageStats(ValidatorStage)
	stats.RowsIn = tbl.Len()

	v.excludeInvalid(tbl, &stats)

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	v.clipDomains(tbl, &stats)
	v.capOutliers(tbl, &stats)

	// Capping price and sale_price independently can reintroduce
	// sale_price > price; repair once more so on_sale stays consistent.
	for _, p := range tbl.Products {
		if p.SalePrice > p.Price {
			p.SalePrice = p.Price
			stats.ValuesCapped[domain.ColSalePrice]++
		}
	}

	stats.RowsOut = tbl.Len()
	v.logger.Info("validation complete",
		logging.Int("rows_excluded", stats.RowsDropped),
		logging.Int("values_capped", stats.TotalCapped()))
	return stats, nil
}

// excludeInvalid removes records the schema normalizer flagged as holding
// unrepairable cells. Per-record errors never abort the run.
func (v *Validator) excludeInvalid(tbl *domain.Table, stats *domain.StageStats) {
	kept := make([]*domain.Product, 0, tbl.Len())
	for _, p := range tbl.Products {
		if p.InvalidReason == "" {
			kept = append(kept, p)
			continue
		}
		verr := domain.NewValidationError(p.RowIndex, "", "", p.InvalidReason)
		v.logger.Warn("record excluded", logging.Error(verr))
		tbl.Excluded = append(tbl.Excluded, domain.Exclusion{
			RowIndex: p.RowIndex,
			Name:     p.Name,
			Reason:   p.InvalidReason,
		})
		stats.RowsDropped++
		stats.Reasons = append(stats.Reasons,
			fmt.Sprintf("row %d: %s", p.RowIndex, p.InvalidReason))
	}
	tbl.Products = kept
}

// clipDomains clips rating and prices to their declared bounds and floors
// review counts at zero.
func (v *Validator) clipDomains(tbl *domain.Table, stats *domain.StageStats) {
	for _, p := range tbl.Products {
		if c := Clamp(p.Rating, v.cfg.RatingMin, v.cfg.RatingMax); c != p.Rating {
			p.Rating = c
			stats.ValuesCapped[domain.ColRating]++
		}
		if c := Clamp(p.Price, v.cfg.PriceMin, v.cfg.PriceMax); c != p.Price {
			p.Price = c
			stats.ValuesCapped[domain.ColPrice]++
		}
		if c := Clamp(p.SalePrice, v.cfg.PriceMin, v.cfg.PriceMax); c != p.SalePrice {
			p.SalePrice = c
			stats.ValuesCapped[domain.ColSalePrice]++
		}
		if p.SalePrice > p.Price {
			p.SalePrice = p.Price
			stats.ValuesCapped[domain.ColSalePrice]++
		}
		if p.ReviewCount < 0 {
			p.ReviewCount = 0
			stats.ValuesCapped[domain.ColReviewCount]++
		}
	}
}

// capOutliers winsorizes price, sale_price and review_count using the IQR
// fences computed over the domain-clipped distribution. Each column is a
// two-phase reduce-then-map: fences first, row-wise capping second.
func (v *Validator) capOutliers(tbl *domain.Table, stats *domain.StageStats) {
	if tbl.Len() < 4 {
		// Quartiles over fewer than four rows cap nothing meaningful.
		return
	}

	capColumn := func(col string, get func(*domain.Product) float64, set func(*domain.Product, float64)) {
		values := make([]float64, 0, tbl.Len())
		for _, p := range tbl.Products {
			values = append(values, get(p))
		}
		lower, upper := IQRBounds(values, v.cfg.IQRMultiplier)
		capped := 0
		for _, p := range tbl.Products {
			switch {
			case get(p) < lower:
				set(p, lower)
				capped++
			case get(p) > upper:
				set(p, upper)
				capped++
			}
		}
		if capped > 0 {
			stats.ValuesCapped[col] += capped
			v.logger.Info("outliers capped",
				logging.String("column", col),
				logging.Int("count", capped),
				logging.Float64("lower", lower),
				logging.Float64("upper", upper))
		}
	}

	capColumn(domain.ColPrice,
		func(p *domain.Product) float64 { return p.Price },
		func(p *domain.Product, x float64) { p.Price = Round2(Clamp(x, v.cfg.PriceMin, v.cfg.PriceMax)) })
	capColumn(domain.ColSalePrice,
		func(p *domain.Product) float64 { return p.SalePrice },
		func(p *domain.Product, x float64) { p.SalePrice = Round2(Clamp(x, v.cfg.PriceMin, v.cfg.PriceMax)) })
	capColumn(domain.ColReviewCount,
		func(p *domain.Product) float64 { return float64(p.ReviewCount) },
		func(p *domain.Product, x float64) { p.ReviewCount = int(math.Max(0, math.Round(x))) })
}
