// Package config loads and validates pipeline configuration from defaults,
// an optional YAML config file, and ECOCLEAN_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultInputFile        = "phase1_collected_data.csv"
	DefaultOutputDir        = "output"
	DefaultSampleSize       = 100
	DefaultHistoryDB        = "cleaning_history.db"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultPriceMin         = 0.01
	DefaultPriceMax         = 1000.00
	DefaultRatingMin        = 1.0
	DefaultRatingMax        = 5.0
	DefaultIQRMultiplier    = 1.5
	DefaultReviewPrior      = 10.0
	DefaultCredibleReviews  = 10
	DefaultNearDupThreshold = 0.9
	DefaultMaxDescription   = 500
)

// Config holds all configuration for the cleaning pipeline.
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Cleaning CleaningConfig `mapstructure:"cleaning"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// InputConfig describes the raw source file.
type InputConfig struct {
	File string `mapstructure:"file"`
}

// OutputConfig describes where cleaned artifacts are written.
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`
	SampleSize int    `mapstructure:"sample_size"`
	Excel      bool   `mapstructure:"excel"`
}

// CleaningConfig holds the tunable constants of the cleaning stages.
type CleaningConfig struct {
	PriceMin      float64 `mapstructure:"price_min"`
	PriceMax      float64 `mapstructure:"price_max"`
	RatingMin     float64 `mapstructure:"rating_min"`
	RatingMax     float64 `mapstructure:"rating_max"`
	IQRMultiplier float64 `mapstructure:"iqr_multiplier"`

	// ReviewPrior is the Bayesian prior weight C in the review score
	// (C*m + v*R)/(C+v). It doubles as the minimum-votes prior.
	ReviewPrior float64 `mapstructure:"review_prior"`
	// CredibleReviews is the review count at or above which a record is
	// flagged has_credible_reviews.
	CredibleReviews int `mapstructure:"credible_reviews"`

	// NearDupThreshold is the token-overlap ratio at or above which two
	// normalized names are treated as the same product.
	NearDupThreshold float64 `mapstructure:"near_dup_threshold"`

	// MaxDescription is the maximum description length in runes after
	// normalization; longer text is truncated at a word boundary.
	MaxDescription int `mapstructure:"max_description"`
}

// HistoryConfig controls the run-history store.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default value on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input.file", DefaultInputFile)
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.sample_size", DefaultSampleSize)
	v.SetDefault("output.excel", true)
	v.SetDefault("cleaning.price_min", DefaultPriceMin)
	v.SetDefault("cleaning.price_max", DefaultPriceMax)
	v.SetDefault("cleaning.rating_min", DefaultRatingMin)
	v.SetDefault("cleaning.rating_max", DefaultRatingMax)
	v.SetDefault("cleaning.iqr_multiplier", DefaultIQRMultiplier)
	v.SetDefault("cleaning.review_prior", DefaultReviewPrior)
	v.SetDefault("cleaning.credible_reviews", DefaultCredibleReviews)
	v.SetDefault("cleaning.near_dup_threshold", DefaultNearDupThreshold)
	v.SetDefault("cleaning.max_description", DefaultMaxDescription)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", DefaultHistoryDB)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Load builds a Config from the given viper instance and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("ECOCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return fmt.Errorf("input.file must be set")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must be set")
	}
	if c.Output.SampleSize < 0 {
		return fmt.Errorf("output.sample_size must be non-negative, got %d", c.Output.SampleSize)
	}
	if c.Cleaning.PriceMin <= 0 || c.Cleaning.PriceMax <= c.Cleaning.PriceMin {
		return fmt.Errorf("invalid price bounds [%v, %v]", c.Cleaning.PriceMin, c.Cleaning.PriceMax)
	}
	if c.Cleaning.RatingMax <= c.Cleaning.RatingMin {
		return fmt.Errorf("invalid rating bounds [%v, %v]", c.Cleaning.RatingMin, c.Cleaning.RatingMax)
	}
	if c.Cleaning.IQRMultiplier <= 0 {
		return fmt.Errorf("cleaning.iqr_multiplier must be positive, got %v", c.Cleaning.IQRMultiplier)
	}
	if c.Cleaning.ReviewPrior <= 0 {
		return fmt.Errorf("cleaning.review_prior must be positive, got %v", c.Cleaning.ReviewPrior)
	}
	if c.Cleaning.CredibleReviews < 0 {
		return fmt.Errorf("cleaning.credible_reviews must be non-negative, got %d", c.Cleaning.CredibleReviews)
	}
	if c.Cleaning.NearDupThreshold <= 0 || c.Cleaning.NearDupThreshold > 1 {
		return fmt.Errorf("cleaning.near_dup_threshold must be in (0, 1], got %v", c.Cleaning.NearDupThreshold)
	}
	if c.Cleaning.MaxDescription < 10 {
		return fmt.Errorf("cleaning.max_description must be at least 10, got %d", c.Cleaning.MaxDescription)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}
	return nil
}
