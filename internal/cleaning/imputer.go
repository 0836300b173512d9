package cleaning

import (
	"context"
	"fmt"
	"sort"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// ImputerStage identifies the missing-value imputer in the cleaning log.
const ImputerStage = "missing_value_imputer"

// StrategyKind enumerates the supported imputation strategies.
type StrategyKind string

// Imputation strategies, in the order they are documented in the data
// dictionary.
const (
	StrategyConstant      StrategyKind = "constant"
	StrategyMode          StrategyKind = "mode"
	StrategyGroupedMedian StrategyKind = "grouped_median"
	StrategyGroupedMean   StrategyKind = "grouped_mean"
	StrategyCopyColumn    StrategyKind = "copy_column"
	StrategyZero          StrategyKind = "zero"
)

// Strategy declares how one column's missing values are filled.
type Strategy struct {
	Column string
	Kind   StrategyKind

	// Constant is the fill value for StrategyConstant and the fallback
	// for StrategyMode when the column has no observed values.
	Constant string
	// GroupBy names the column whose groups scope the statistic for
	// grouped strategies.
	GroupBy string
	// Source names the column copied by StrategyCopyColumn.
	Source string
	// Clip, when set, bounds the imputed value to [Clip[0], Clip[1]].
	Clip *[2]float64
}

// DefaultStrategies returns the per-column strategy table. Order matters:
// price is imputed before sale_price copies it.
func DefaultStrategies(cfg config.CleaningConfig) []Strategy {
	ratingClip := [2]float64{cfg.RatingMin, cfg.RatingMax}
	return []Strategy{
		{Column: domain.ColProductName, Kind: StrategyConstant, Constant: "Unknown Product"},
		{Column: domain.ColBrand, Kind: StrategyMode, Constant: "Unknown Brand"},
		{Column: domain.ColWebsite, Kind: StrategyMode, Constant: domain.WebsiteAmazon},
		{Column: domain.ColPrice, Kind: StrategyGroupedMedian, GroupBy: domain.ColCategory},
		{Column: domain.ColSalePrice, Kind: StrategyCopyColumn, Source: domain.ColPrice},
		{Column: domain.ColRating, Kind: StrategyGroupedMean, GroupBy: domain.ColCategory, Clip: &ratingClip},
		{Column: domain.ColReviewCount, Kind: StrategyZero},
	}
}

// Imputer fills missing values according to a per-column strategy table.
// Missing category is deliberately not in the table: the categorical mapper
// infers it from the product text.
type Imputer struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewImputer creates an imputer with the default strategy table.
func NewImputer(cfg config.CleaningConfig, logger logging.Logger) *Imputer {
	return &Imputer{strategies: DefaultStrategies(cfg), logger: logger}
}

// Name implements pipeline.Stage.
func (im *Imputer) Name() string { return ImputerStage }

// Run fills every missing cell covered by the strategy table. A strategy
// that references a column outside the canonical schema is a fatal
// SchemaError.
func (im *Imputer) Run(ctx context.Context, tbl *domain.Table) (domain.StageStats, error) {
	stats := domain.NewStageStats(ImputerStage)
	stats.RowsIn = tbl.Len()
	stats.RowsOut = tbl.Len()

	if err := im.validateStrategies(); err != nil {
		return stats, err
	}

	for _, s := range im.strategies {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		filled, warnings, err := im.apply(s, tbl)
		if err != nil {
			return stats, err
		}
		if filled > 0 {
			stats.ValuesImputed[s.Column] += filled
		}
		stats.Warnings = append(stats.Warnings, warnings...)
	}
	for _, p := range tbl.Products {
		for _, s := range im.strategies {
			if p.WasImputed(s.Column) {
				stats.RowsAffected++
				break
			}
		}
	}

	im.logger.Info("missing values imputed",
		logging.Int("values", stats.TotalImputed()),
		logging.Int("rows_affected", stats.RowsAffected))
	return stats, nil
}

func (im *Imputer) validateStrategies() error {
	known := make(map[string]bool, len(domain.ExpectedColumns))
	for _, c := range domain.ExpectedColumns {
		known[c] = true
	}
	for _, s := range im.strategies {
		if !known[s.Column] {
			return domain.NewSchemaError(s.Column, "imputation strategy references unknown column")
		}
		if s.GroupBy != "" && !known[s.GroupBy] {
			return domain.NewSchemaError(s.GroupBy, "imputation group-by references unknown column")
		}
		if s.Source != "" && !known[s.Source] {
			return domain.NewSchemaError(s.Source, "imputation source references unknown column")
		}
	}
	return nil
}

func (im *Imputer) apply(s Strategy, tbl *domain.Table) (int, []string, error) {
	switch s.Kind {
	case StrategyConstant:
		return im.fillConstant(s, tbl), nil, nil
	case StrategyMode:
		return im.fillMode(s, tbl), nil, nil
	case StrategyGroupedMedian:
		filled, warnings := im.fillGrouped(s, tbl, Median)
		return filled, warnings, nil
	case StrategyGroupedMean:
		filled, warnings := im.fillGrouped(s, tbl, Mean)
		return filled, warnings, nil
	case StrategyCopyColumn:
		return im.fillCopy(s, tbl), nil, nil
	case StrategyZero:
		return im.fillZero(s, tbl), nil, nil
	default:
		return 0, nil, fmt.Errorf("unknown imputation strategy %q for column %q", s.Kind, s.Column)
	}
}

func (im *Imputer) fillConstant(s Strategy, tbl *domain.Table) int {
	filled := 0
	for _, p := range tbl.Products {
		if p.InvalidReason != "" || !p.IsMissing(s.Column) {
			continue
		}
		setStringColumn(p, s.Column, s.Constant)
		p.MarkImputed(s.Column)
		filled++
	}
	return filled
}

func (im *Imputer) fillMode(s Strategy, tbl *domain.Table) int {
	observed := make([]string, 0, tbl.Len())
	for _, p := range tbl.Products {
		if p.InvalidReason == "" && !p.IsMissing(s.Column) {
			observed = append(observed, stringColumn(p, s.Column))
		}
	}
	fill, ok := Mode(observed)
	if !ok {
		fill = s.Constant
	}
	filled := 0
	for _, p := range tbl.Products {
		if p.InvalidReason != "" || !p.IsMissing(s.Column) {
			continue
		}
		setStringColumn(p, s.Column, fill)
		p.MarkImputed(s.Column)
		filled++
	}
	return filled
}

// fillGrouped is a two-phase reduce-then-map: phase one builds an immutable
// group -> statistic lookup plus the global fallback, phase two fills each
// missing cell from the lookup.
func (im *Imputer) fillGrouped(s Strategy, tbl *domain.Table, stat func([]float64) float64) (int, []string) {
	groups := make(map[string][]float64)
	global := make([]float64, 0, tbl.Len())
	for _, p := range tbl.Products {
		if p.InvalidReason != "" || p.IsMissing(s.Column) {
			continue
		}
		v := floatColumn(p, s.Column)
		groups[stringColumn(p, s.GroupBy)] = append(groups[stringColumn(p, s.GroupBy)], v)
		global = append(global, v)
	}
	lookup := make(map[string]float64, len(groups))
	for g, vs := range groups {
		lookup[g] = stat(vs)
	}
	globalStat := stat(global)

	filled := 0
	fallbackGroups := make(map[string]bool)
	for _, p := range tbl.Products {
		if p.InvalidReason != "" || !p.IsMissing(s.Column) {
			continue
		}
		group := stringColumn(p, s.GroupBy)
		v, ok := lookup[group]
		if !ok {
			v = globalStat
			fallbackGroups[group] = true
		}
		if s.Clip != nil {
			v = Clamp(v, s.Clip[0], s.Clip[1])
		}
		setFloatColumn(p, s.Column, v)
		p.MarkImputed(s.Column)
		filled++
	}

	warnings := make([]string, 0, len(fallbackGroups))
	groupNames := make([]string, 0, len(fallbackGroups))
	for g := range fallbackGroups {
		groupNames = append(groupNames, g)
	}
	sort.Strings(groupNames)
	for _, g := range groupNames {
		msg := fmt.Sprintf("%s: no %s data for group %q, used global %s",
			s.Column, s.GroupBy, g, s.Kind)
		warnings = append(warnings, msg)
		im.logger.Warn("imputation fallback to global statistic",
			logging.String("column", s.Column),
			logging.String("group", g))
	}
	return filled, warnings
}

func (im *Imputer) fillCopy(s Strategy, tbl *domain.Table) int {
	filled := 0
	for _, p := range tbl.Products {
		if p.InvalidReason != "" || !p.IsMissing(s.Column) {
			continue
		}
		// The source column may itself still be missing; leave the cell
		// for the validator in that case.
		if p.IsMissing(s.Source) {
			continue
		}
		setFloatColumn(p, s.Column, floatColumn(p, s.Source))
		p.MarkImputed(s.Column)
		filled++
	}
	return filled
}

func (im *Imputer) fillZero(s Strategy, tbl *domain.Table) int {
	filled := 0
	for _, p := range tbl.Products {
		if p.InvalidReason != "" || !p.IsMissing(s.Column) {
			continue
		}
		setFloatColumn(p, s.Column, 0)
		p.MarkImputed(s.Column)
		filled++
	}
	return filled
}

func stringColumn(p *domain.Product, col string) string {
	switch col {
	case domain.ColProductName:
		return p.Name
	case domain.ColBrand:
		return p.Brand
	case domain.ColCategory:
		return p.Category
	case domain.ColDescription:
		return p.Description
	case domain.ColWebsite:
		return p.Website
	case domain.ColDateCollected:
		return p.DateCollected
	case domain.ColAttributes:
		return p.Attributes
	}
	return ""
}

func setStringColumn(p *domain.Product, col, v string) {
	switch col {
	case domain.ColProductName:
		p.Name = v
	case domain.ColBrand:
		p.Brand = v
	case domain.ColCategory:
		p.Category = v
	case domain.ColDescription:
		p.Description = v
	case domain.ColWebsite:
		p.Website = v
	case domain.ColDateCollected:
		p.DateCollected = v
	case domain.ColAttributes:
		p.Attributes = v
	}
}

func floatColumn(p *domain.Product, col string) float64 {
	switch col {
	case domain.ColPrice:
		return p.Price
	case domain.ColSalePrice:
		return p.SalePrice
	case domain.ColRating:
		return p.Rating
	case domain.ColReviewCount:
		return float64(p.ReviewCount)
	}
	return 0
}

func setFloatColumn(p *domain.Product, col string, v float64) {
	switch col {
	case domain.ColPrice:
		p.Price = v
	case domain.ColSalePrice:
		p.SalePrice = v
	case domain.ColRating:
		p.Rating = v
	case domain.ColReviewCount:
		p.ReviewCount = int(v)
	}
}
