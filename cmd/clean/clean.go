// Package clean implements the command that runs the cleaning pipeline
// end to end and writes its artifacts.
package clean

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/export"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/history"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/ingest"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/pipeline"
)

// Output artifact file names.
const (
	CleanedCSV     = "cleaned_data.csv"
	CleanedXLSX    = "cleaned_data.xlsx"
	SampleCSV      = "sample_cleaned_data.csv"
	DictionaryJSON = "data_dictionary.json"
	CleaningLog    = "cleaning_log.json"
)

// Command returns the clean command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Run the cleaning pipeline over a raw dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}
	cmd.Flags().String("input", "", "raw dataset to clean (overrides input.file)")
	cmd.Flags().String("output", "", "artifact directory (overrides output.dir)")
	return cmd
}

func run(cmd *cobra.Command) error {
	v := viper.GetViper()
	if f, _ := cmd.Flags().GetString("input"); f != "" {
		v.Set("input.file", f)
	}
	if d, _ := cmd.Flags().GetString("output"); d != "" {
		v.Set("output.dir", d)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	header, rows, err := ingest.NewReader(logger).ReadCSV(cfg.Input.File)
	if err != nil {
		return err
	}

	report, tbl, err := pipeline.New(cfg, logger).Run(ctx, cfg.Input.File, header, rows)
	if err != nil {
		return err
	}

	if err := writeArtifacts(cfg, logger, report, tbl); err != nil {
		return err
	}

	if cfg.History.Enabled {
		if err := saveHistory(cmd, cfg, report); err != nil {
			// A broken history database should not fail the run itself.
			logger.Warn("could not save run history", logging.Error(err))
		}
	}

	printSummary(report)
	return nil
}

func writeArtifacts(cfg *config.Config, logger logging.Logger, report *domain.Report, tbl *domain.Table) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	csvw := export.NewCSVWriter(logger)
	if err := csvw.WriteTable(filepath.Join(cfg.Output.Dir, CleanedCSV), tbl); err != nil {
		return err
	}
	if err := csvw.WriteSample(filepath.Join(cfg.Output.Dir, SampleCSV), tbl, cfg.Output.SampleSize); err != nil {
		return err
	}
	if cfg.Output.Excel {
		if err := export.NewExcelWriter(logger).WriteTable(filepath.Join(cfg.Output.Dir, CleanedXLSX), tbl); err != nil {
			return err
		}
	}
	if err := export.WriteDictionary(filepath.Join(cfg.Output.Dir, DictionaryJSON)); err != nil {
		return err
	}
	return export.WriteReport(filepath.Join(cfg.Output.Dir, CleaningLog), report)
}

func saveHistory(cmd *cobra.Command, cfg *config.Config, report *domain.Report) error {
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	return history.NewRepository(db).Save(cmd.Context(), report)
}

// printSummary renders the per-stage accounting for the terminal.
func printSummary(report *domain.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Stage", "Rows In", "Rows Out", "Affected", "Imputed", "Capped", "Dropped"})
	for _, s := range report.Stages {
		t.AppendRow(table.Row{
			s.Stage, s.RowsIn, s.RowsOut, s.RowsAffected,
			s.TotalImputed(), s.TotalCapped(), s.RowsDropped,
		})
	}
	t.AppendFooter(table.Row{
		"total", report.InputRows, report.OutputRows, "",
		report.ValuesImputed(), report.ValuesCapped(), report.RowsDropped(),
	})
	t.Render()
}
