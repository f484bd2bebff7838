package detect

import (
	"strings"

	"github.com/corey/chara/internal/ports"
)

// Weights holds the tunable confidence constants. The tier base
// multipliers are fixed on ports.VariantCategory; these knobs only shape
// the bonuses on top.
type Weights struct {
	// LengthBonus scales the matched-length/title-length ratio.
	LengthBonus float64
	// HintBonus is added per distinct context hint found in the title.
	HintBonus float64
	// HintBonusCap bounds the total context contribution.
	HintBonusCap float64
	// Threshold drops final results below this confidence (resolver).
	Threshold float64
}

// DefaultWeights are the documented defaults:
//
//	raw = weight*tierMultiplier + 0.05*matchLen/titleLen
//	      + 0.05*distinctHints (capped at 0.15), clamped to [0,1]
func DefaultWeights() Weights {
	return Weights{
		LengthBonus:  0.05,
		HintBonus:    0.05,
		HintBonusCap: 0.15,
		Threshold:    0.5,
	}
}

// Candidate is an unresolved match: one automaton hit with its span in the
// normalized title and raw confidence. Ephemeral — produced per scan,
// consumed by Resolve.
type Candidate struct {
	Pattern    *ports.Pattern
	Start, End int // byte offsets into the normalized title
	Matched    string
	Confidence float64
}

// Detector scans normalized titles against a compiled index. Stateless and
// safe for concurrent use; it never mutates the index.
type Detector struct {
	weights Weights
}

// NewDetector creates a detector with the given confidence weights.
func NewDetector(w Weights) *Detector {
	return &Detector{weights: w}
}

type spanClaim struct {
	character  string
	start, end int
}

// Scan normalizes the title and runs every tier's automaton over it in
// priority order, collecting candidates. A span already claimed for a
// character by a higher tier is skipped in lower tiers — the resolver
// would discard it anyway, so the work is saved here.
//
// Malformed or empty input is not an error: the result is simply empty.
func (d *Detector) Scan(title string, index ports.CompiledIndex) []Candidate {
	return d.ScanNormalized(Normalize(title), index)
}

// ScanNormalized is Scan for input that already went through Normalize.
// The engine normalizes once for the cache key and reuses the text here.
func (d *Detector) ScanNormalized(text string, index ports.CompiledIndex) []Candidate {
	if index == nil || text == "" {
		return nil
	}

	claimed := make(map[spanClaim]bool)
	var out []Candidate

	for tier := ports.VariantCategory(0); tier < ports.CategoryCount; tier++ {
		for _, span := range index.ScanTier(tier, text) {
			p := index.PatternAt(tier, span.PatternIndex)
			if p == nil {
				continue
			}
			claim := spanClaim{p.Character, span.Start, span.End}
			if claimed[claim] {
				continue
			}
			claimed[claim] = true

			out = append(out, Candidate{
				Pattern:    p,
				Start:      span.Start,
				End:        span.End,
				Matched:    text[span.Start:span.End],
				Confidence: d.confidence(p, span.Start, span.End, text),
			})
		}
	}
	return out
}

// confidence computes raw confidence for one match, clamped to [0,1].
// Hints count only when they appear outside the matched span — the match
// cannot vouch for itself.
func (d *Detector) confidence(p *ports.Pattern, start, end int, title string) float64 {
	c := p.Weight * p.Category.Multiplier()

	if len(title) > 0 {
		c += d.weights.LengthBonus * float64(end-start) / float64(len(title))
	}

	rest := title[:start] + title[end:]
	bonus := 0.0
	for _, h := range distinct(p.Hints) {
		if strings.Contains(rest, h) {
			bonus += d.weights.HintBonus
		}
	}
	if bonus > d.weights.HintBonusCap {
		bonus = d.weights.HintBonusCap
	}
	c += bonus

	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return c
}

func distinct(ss []string) []string {
	if len(ss) < 2 {
		return ss
	}
	seen := make(map[string]bool, len(ss))
	out := ss[:0:0]
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
