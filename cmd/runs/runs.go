// Package runs implements the command that lists past cleaning runs.
package runs

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/history"
)

// Command returns the runs command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent cleaning runs from the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return run(cmd, limit)
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of runs to list")
	return cmd
}

func run(cmd *cobra.Command, limit int) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := history.NewRepository(db).Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run", "Input", "Started", "Rows In", "Rows Out", "Dropped", "Imputed", "Capped"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID[:8], r.InputFile, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.InputRows, r.OutputRows, r.RowsDropped, r.ValuesImputed, r.ValuesCapped,
		})
	}
	t.Render()
	return nil
}
