package app

import (
	"sort"
	"strings"

	"github.com/corey/chara/internal/domain/roster"
	"github.com/corey/chara/internal/ports"
)

// LegacyDetector is the fallback pipeline: plain case-insensitive substring
// search over the raw variant list. No tiers, no cache, no conflict
// scoring — it exists so a roster that cannot compile still produces
// usable answers instead of none.
type LegacyDetector struct {
	patterns []legacyPattern
}

type legacyPattern struct {
	text      string // lowercased alias
	character string
	series    string
	category  ports.VariantCategory
	weight    float64
}

// NewLegacyDetector builds the fallback from a roster snapshot.
func NewLegacyDetector(set *roster.PatternSet) *LegacyDetector {
	d := &LegacyDetector{}
	if set == nil {
		return d
	}
	for _, p := range set.Patterns {
		text := strings.ToLower(strings.TrimSpace(p.Text))
		if text == "" {
			continue
		}
		d.patterns = append(d.patterns, legacyPattern{
			text:      text,
			character: p.Character,
			series:    p.Series,
			category:  p.Category,
			weight:    p.Weight,
		})
	}
	return d
}

// Analyze scans every pattern against the lowercased title. O(patterns ×
// title) — acceptable for a fallback that should never be the normal path.
// One result per character, ordered by first occurrence.
func (d *LegacyDetector) Analyze(title string) []ports.DetectionResult {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return nil
	}

	type hit struct {
		pos int
		res ports.DetectionResult
	}
	best := make(map[string]hit)

	for _, p := range d.patterns {
		pos := strings.Index(title, p.text)
		if pos < 0 {
			continue
		}
		cur, seen := best[p.character]
		if !seen || pos < cur.pos {
			best[p.character] = hit{
				pos: pos,
				res: ports.DetectionResult{
					Character:  p.character,
					Series:     p.series,
					Confidence: p.weight,
					Category:   p.category,
				},
			}
		}
	}

	if len(best) == 0 {
		return nil
	}
	hits := make([]hit, 0, len(best))
	for _, h := range best {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		return hits[i].res.Character < hits[j].res.Character
	})

	out := make([]ports.DetectionResult, len(hits))
	for i, h := range hits {
		out[i] = h.res
	}
	return out
}

// PatternCount returns the number of loaded fallback patterns.
func (d *LegacyDetector) PatternCount() int { return len(d.patterns) }
