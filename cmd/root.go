// Package cmd implements the command-line interface for the product data
// cleaning pipeline.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/cmd/clean"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/cmd/runs"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug forces debug-level logging regardless of configuration.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "ecoclean",
		Short: "Clean and enrich eco-friendly product listings",
		Long: `ecoclean normalizes scraped product listings: it repairs the schema,
imputes missing values, caps outliers, standardizes categories and brands,
derives pricing and review features, and removes duplicate listings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are visible to viper.
	_ = godotenv.Load()

	// Parse flags early so --config and --debug are known before viper
	// reads the config file.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ecoclean.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(clean.Command())
	rootCmd.AddCommand(runs.Command())
}

// initConfig points viper at the config file. The file is optional; values
// fall back to ECOCLEAN_* environment variables and defaults.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ecoclean")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if debug {
		viper.Set("logging.level", "debug")
	}
	return nil
}
