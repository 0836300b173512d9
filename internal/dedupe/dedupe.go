// Package dedupe removes exact and near duplicate listings from the
// product table.
package dedupe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/config"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/domain"
	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/internal/logging"
)

// StageName identifies the deduplication stage in reports.
const StageName = "deduplicator"

// Exclusion reasons recorded for dropped rows.
const (
	ReasonExactDuplicate = "exact duplicate"
	ReasonNearDuplicate  = "near duplicate"
)

// Deduplicator drops exact duplicates first, then near duplicates within
// brand and category buckets. The survivor is always the record with the
// lowest source row index, so a second run over the output removes nothing.
type Deduplicator struct {
	threshold float64
	logger    logging.Logger
}

// New builds the stage from the cleaning configuration.
func New(cfg config.CleaningConfig, logger logging.Logger) *Deduplicator {
	return &Deduplicator{threshold: cfg.NearDupThreshold, logger: logger}
}

// Name implements pipeline.Stage.
func (d *Deduplicator) Name() string { return StageName }

// Run implements pipeline.Stage.
func (d *Deduplicator) Run(ctx context.Context, tbl *domain.Table) (domain.StageStats, error) {
	stats := domain.NewStageStats(StageName)
	stats.RowsIn = tbl.Len()
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	exact := d.exactDuplicates(tbl)
	if len(exact) > 0 {
		tbl.Exclude(exact, ReasonExactDuplicate)
		stats.Reasons = append(stats.Reasons,
			fmt.Sprintf("%s: %d rows", ReasonExactDuplicate, len(exact)))
	}

	near := d.nearDuplicates(tbl)
	if len(near) > 0 {
		tbl.Exclude(near, ReasonNearDuplicate)
		stats.Reasons = append(stats.Reasons,
			fmt.Sprintf("%s: %d rows", ReasonNearDuplicate, len(near)))
	}

	stats.RowsDropped = len(exact) + len(near)
	stats.RowsAffected = stats.RowsDropped
	stats.RowsOut = tbl.Len()
	return stats, nil
}

// exactDuplicates returns the slice positions of every record whose
// name, brand and price key was already seen at a lower position.
func (d *Deduplicator) exactDuplicates(tbl *domain.Table) []int {
	seen := make(map[string]int, tbl.Len())
	var dupes []int
	for i, p := range tbl.Products {
		key := fmt.Sprintf("%s|%s|%.2f", strings.ToLower(p.Name), strings.ToLower(p.Brand), p.Price)
		if first, ok := seen[key]; ok {
			d.logger.Debug("exact duplicate dropped",
				logging.String("name", p.Name),
				logging.Int("row", p.RowIndex),
				logging.Int("kept_row", tbl.Products[first].RowIndex))
			dupes = append(dupes, i)
			continue
		}
		seen[key] = i
	}
	return dupes
}

// nearDuplicates compares name token sets pairwise inside brand and
// category buckets and returns the slice positions of the later record of
// every pair whose overlap meets the threshold.
func (d *Deduplicator) nearDuplicates(tbl *domain.Table) []int {
	type entry struct {
		pos    int
		tokens map[string]bool
	}
	buckets := make(map[string][]entry)
	for i, p := range tbl.Products {
		key := strings.ToLower(p.Brand) + "|" + strings.ToLower(p.Category)
		buckets[key] = append(buckets[key], entry{pos: i, tokens: tokenize(p.Name)})
	}

	dropped := make(map[int]bool)
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		entries := buckets[k]
		for i := 0; i < len(entries); i++ {
			if dropped[entries[i].pos] {
				continue
			}
			for j := i + 1; j < len(entries); j++ {
				if dropped[entries[j].pos] {
					continue
				}
				if jaccard(entries[i].tokens, entries[j].tokens) >= d.threshold {
					p := tbl.Products[entries[j].pos]
					d.logger.Debug("near duplicate dropped",
						logging.String("name", p.Name),
						logging.Int("row", p.RowIndex),
						logging.Int("kept_row", tbl.Products[entries[i].pos].RowIndex))
					dropped[entries[j].pos] = true
				}
			}
		}
	}

	out := make([]int, 0, len(dropped))
	for pos := range dropped {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

// tokenize lowercases a name, strips punctuation and returns its word set.
func tokenize(name string) map[string]bool {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	set := make(map[string]bool)
	for _, w := range strings.Fields(b.String()) {
		set[w] = true
	}
	return set
}

// jaccard is the intersection over union of two token sets. Two empty sets
// do not count as similar.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
