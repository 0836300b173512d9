package classify

import (
	"context"
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// StageName identifies the categorical mapper in the cleaning log.
const StageName = "categorical_mapper"

// decisionTable is an ordered rule list compiled into a single Aho-Corasick
// automaton so a record's text is scanned once regardless of keyword count.
type decisionTable struct {
	rules    []Rule
	matcher  *ahocorasick.Matcher
	ruleIdx  []int // keyword position -> rule position
	fallback string
}

func newDecisionTable(rules []Rule, fallback string) *decisionTable {
	t := &decisionTable{rules: rules, fallback: fallback}
	keywords := make([]string, 0, len(rules)*8)
	for ri, rule := range rules {
		for _, kw := range rule.Keywords {
			normalized := normalizeMatchText(kw)
			if normalized == "" {
				continue
			}
			keywords = append(keywords, normalized)
			t.ruleIdx = append(t.ruleIdx, ri)
		}
	}
	if len(keywords) > 0 {
		t.matcher = ahocorasick.NewStringMatcher(keywords)
	}
	return t
}

// classify returns the target of the earliest-declared rule with a keyword
// hit, or the fallback when nothing matches. Rule order alone decides ties,
// never hit position, so mapping is identical on every run.
func (t *decisionTable) classify(text string) string {
	if t.matcher == nil {
		return t.fallback
	}
	hits := t.matcher.Match([]byte(normalizeMatchText(text)))
	best := -1
	for _, h := range hits {
		if h >= len(t.ruleIdx) {
			continue
		}
		if ri := t.ruleIdx[h]; best == -1 || ri < best {
			best = ri
		}
	}
	if best == -1 {
		return t.fallback
	}
	return t.rules[best].Target
}

// normalizeMatchText lowercases, replaces non-alphanumerics with spaces,
// and collapses whitespace runs so keywords match across punctuation
// variants ("plastic-free" vs "plastic free").
func normalizeMatchText(text string) string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Mapper maps category, website, and brand strings onto their closed
// enumerations.
type Mapper struct {
	categories *decisionTable
	websites   *decisionTable
	brands     map[string]string // normalized variant -> canonical
	logger     logging.Logger
}

// NewMapper creates a mapper with the default rule tables.
func NewMapper(logger logging.Logger) *Mapper {
	brands := make(map[string]string)
	for _, c := range BrandCorrections() {
		brands[strings.ToLower(c.Canonical)] = c.Canonical
		for _, v := range c.Variants {
			brands[strings.ToLower(v)] = c.Canonical
		}
	}
	return &Mapper{
		categories: newDecisionTable(CategoryRules(), domain.CategoryOther),
		websites:   newDecisionTable(WebsiteRules(), domain.WebsiteOther),
		brands:     brands,
		logger:     logger,
	}
}

// Name implements pipeline.Stage.
func (m *Mapper) Name() string { return StageName }

// Run rewrites category and website onto their enumerations and
// canonicalizes known brand variants. The raw category string is matched
// first; only when it yields nothing are the product name and description
// consulted, which also covers records whose category was missing
// entirely.
func (m *Mapper) Run(ctx context.Context, tbl *domain.Table) (domain.StageStats, error) {
	stats := domain.NewStageStats(StageName)
	stats.RowsIn = tbl.Len()
	stats.RowsOut = tbl.Len()

	for _, p := range tbl.Products {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		changed := false

		if canonical, ok := m.brands[strings.ToLower(strings.TrimSpace(p.Brand))]; ok && canonical != p.Brand {
			p.Brand = canonical
			changed = true
		}

		category := m.categories.classify(p.Category)
		if category == domain.CategoryOther {
			category = m.categories.classify(p.Name + " " + p.Description)
		}
		if category != p.Category {
			p.Category = category
			changed = true
		}

		website := m.websites.classify(p.Website)
		if website != p.Website {
			p.Website = website
			changed = true
		}

		if changed {
			stats.RowsAffected++
		}
	}

	m.logger.Info("categorical fields mapped",
		logging.Int("rows_affected", stats.RowsAffected))
	return stats, nil
}
