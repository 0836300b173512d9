package cleaning

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// TextNormalizerStage identifies the text normalizer in the cleaning log.
const TextNormalizerStage = "text_normalizer"

// ellipsis marks a truncated description.
const ellipsis = "..."

// mojibake repairs the UTF-8-decoded-as-Latin-1 artifacts that show up in
// scraped listings.
var mojibake = strings.NewReplacer(
	"Ã©", "é",
	"Ã¨", "è",
	"Ã¢", "â",
)

// TextNormalizer cleans product_name and description: whitespace collapse,
// encoding repair, character allow-listing, title casing for names, and
// bounded description length. Normalization is idempotent.
type TextNormalizer struct {
	maxDescription int
	title          cases.Caser
	logger         logging.Logger
}

// NewTextNormalizer creates a text normalizer.
func NewTextNormalizer(cfg config.CleaningConfig, logger logging.Logger) *TextNormalizer {
	return &TextNormalizer{
		maxDescription: cfg.MaxDescription,
		title:          cases.Title(language.English),
		logger:         logger,
	}
}

// Name implements pipeline.Stage.
func (t *TextNormalizer) Name() string { return TextNormalizerStage }

// Run normalizes the text fields of every record.
func (t *TextNormalizer) Run(ctx context.Context, tbl *domain.Table) (domain.StageStats, error) {
	stats := domain.NewStageStats(TextNormalizerStage)
	stats.RowsIn = tbl.Len()
	stats.RowsOut = tbl.Len()

	for _, p := range tbl.Products {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		name := t.NormalizeName(p.Name)
		desc := t.NormalizeDescription(p.Description)
		if name != p.Name || desc != p.Description {
			stats.RowsAffected++
		}
		p.Name = name
		p.Description = desc
	}

	t.logger.Info("text fields normalized",
		logging.Int("rows_affected", stats.RowsAffected))
	return stats, nil
}

// NormalizeName cleans and title-cases a product name.
func (t *TextNormalizer) NormalizeName(s string) string {
	return t.title.String(cleanText(s))
}

// NormalizeDescription cleans a description and truncates it to the
// configured maximum length at a word boundary.
func (t *TextNormalizer) NormalizeDescription(s string) string {
	return truncate(cleanText(s), t.maxDescription)
}

// cleanText trims, repairs encoding artifacts, strips characters outside
// the allow-list (letters, digits, space, -.,&'), and collapses whitespace
// runs.
func cleanText(s string) string {
	s = mojibake.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case r == '-' || r == '.' || r == ',' || r == '&' || r == '\'':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// truncate cuts s to at most max runes, breaking at a word boundary and
// appending an ellipsis. Already-truncated text passes through unchanged.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	limit := max - len(ellipsis)
	cut := limit
	for i := limit; i > 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	head := strings.TrimRight(string(runes[:cut]), " .,")
	return head + ellipsis
}
