// Package pipeline wires the cleaning stages into one ordered run over a
// raw dataset.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/cleaning"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/classify"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/dedupe"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/features"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/schema"
)

// Stage is one table transformation. Stages mutate the table in place and
// report what they changed.
type Stage interface {
	Name() string
	Run(ctx context.Context, tbl *domain.Table) (domain.StageStats, error)
}

// Pipeline runs schema normalization followed by the fixed stage order.
type Pipeline struct {
	normalizer *schema.Normalizer
	stages     []Stage
	logger     logging.Logger
}

// New wires the standard stage order from the configuration.
func New(cfg *config.Config, logger logging.Logger) *Pipeline {
	return &Pipeline{
		normalizer: schema.New(logger),
		stages: []Stage{
			cleaning.NewImputer(cfg.Cleaning, logger),
			cleaning.NewValidator(cfg.Cleaning, logger),
			classify.NewMapper(logger),
			cleaning.NewTextNormalizer(cfg.Cleaning, logger),
			features.NewEngineer(cfg.Cleaning, logger),
			dedupe.New(cfg.Cleaning, logger),
		},
		logger: logger,
	}
}

// Run cleans a raw dataset end to end. The header and rows come straight
// from the reader; the returned table holds the surviving records and the
// report holds per-stage accounting. The first stage error aborts the run.
func (pl *Pipeline) Run(ctx context.Context, inputFile string, header []string, rows [][]string) (*domain.Report, *domain.Table, error) {
	report := &domain.Report{
		RunID:     uuid.NewString(),
		InputFile: inputFile,
		StartedAt: time.Now().UTC(),
		InputRows: len(rows),
	}

	tbl, stats, err := pl.normalizer.Normalize(header, rows)
	if err != nil {
		return report, nil, fmt.Errorf("schema normalization: %w", err)
	}
	report.Stages = append(report.Stages, stats)
	pl.logStage(stats)

	for _, stage := range pl.stages {
		if err := ctx.Err(); err != nil {
			return report, nil, err
		}
		stats, err := stage.Run(ctx, tbl)
		report.Stages = append(report.Stages, stats)
		if err != nil {
			return report, nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		pl.logStage(stats)
	}

	report.FinishedAt = time.Now().UTC()
	report.OutputRows = tbl.Len()
	report.Excluded = tbl.Excluded
	pl.logger.Info("pipeline complete",
		logging.String("run_id", report.RunID),
		logging.Int("rows_in", report.InputRows),
		logging.Int("rows_out", report.OutputRows),
		logging.Int("rows_dropped", report.RowsDropped()))
	return report, tbl, nil
}

func (pl *Pipeline) logStage(stats domain.StageStats) {
	pl.logger.Info("stage complete",
		logging.String("stage", stats.Stage),
		logging.Int("rows_in", stats.RowsIn),
		logging.Int("rows_out", stats.RowsOut),
		logging.Int("rows_affected", stats.RowsAffected),
		logging.Int("values_imputed", stats.TotalImputed()),
		logging.Int("values_capped", stats.TotalCapped()),
		logging.Int("rows_dropped", stats.RowsDropped))
}
