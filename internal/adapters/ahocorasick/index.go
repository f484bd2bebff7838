// Package ahocorasick compiles roster pattern sets into tier-partitioned
// Aho-Corasick automata using petar-dambovaliev/aho-corasick. One DFA per
// variant tier keeps scanning O(n + m + z) in title length regardless of
// pattern count, and lets the detector walk tiers in priority order.
package ahocorasick

import (
	"fmt"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/chara/internal/domain/detect"
	"github.com/corey/chara/internal/domain/roster"
	"github.com/corey/chara/internal/ports"
)

// tierIndex is one tier's automaton plus the patterns behind it.
// patterns[i] corresponds to automaton pattern i.
type tierIndex struct {
	automaton aho.AhoCorasick
	patterns  []ports.Pattern
}

// CompiledIndex implements ports.CompiledIndex. Immutable after Compile —
// the engine publishes it via an atomic pointer swap and readers share it
// without locks.
type CompiledIndex struct {
	version uint64
	tiers   [ports.CategoryCount]tierIndex
	total   int
}

// Compile normalizes every pattern in the set and builds the per-tier
// automata. Pattern text goes through detect.Normalize, the same function
// titles go through at scan time. Patterns that normalize to the empty
// string are rejected — an empty pattern would match everywhere.
//
// A set with no patterns is valid and compiles to an index that matches
// nothing: removing the last character must still publish a fresh index.
func Compile(set *roster.PatternSet) (*CompiledIndex, error) {
	if set == nil {
		return nil, fmt.Errorf("compile: nil pattern set")
	}

	idx := &CompiledIndex{version: set.Version}

	var texts [ports.CategoryCount][]string
	for _, p := range set.Patterns {
		if p.Category < 0 || p.Category >= ports.CategoryCount {
			return nil, fmt.Errorf("compile: pattern %q: invalid category %d", p.Text, p.Category)
		}
		text := detect.Normalize(p.Text)
		if text == "" {
			return nil, fmt.Errorf("compile: pattern for %s/%s normalizes to empty", p.Series, p.Character)
		}

		normHints := make([]string, 0, len(p.Hints))
		for _, h := range p.Hints {
			if n := detect.Normalize(h); n != "" {
				normHints = append(normHints, n)
			}
		}

		compiled := p
		compiled.Text = text
		compiled.Hints = normHints

		texts[p.Category] = append(texts[p.Category], text)
		idx.tiers[p.Category].patterns = append(idx.tiers[p.Category].patterns, compiled)
		idx.total++
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	for tier := range idx.tiers {
		if len(texts[tier]) == 0 {
			continue
		}
		idx.tiers[tier].automaton = builder.Build(texts[tier])
	}

	return idx, nil
}

// ScanTier returns every match of the tier's automaton in text, including
// overlapping matches, with byte offsets.
func (idx *CompiledIndex) ScanTier(tier ports.VariantCategory, text string) []ports.Span {
	if tier < 0 || tier >= ports.CategoryCount || len(idx.tiers[tier].patterns) == 0 || text == "" {
		return nil
	}

	iter := idx.tiers[tier].automaton.IterOverlappingByte([]byte(text))
	var spans []ports.Span
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		spans = append(spans, ports.Span{
			PatternIndex: m.Pattern(),
			Start:        m.Start(),
			End:          m.End(),
		})
	}
	return spans
}

// PatternAt resolves a tier-local pattern index. Returns nil out of range.
func (idx *CompiledIndex) PatternAt(tier ports.VariantCategory, i int) *ports.Pattern {
	if tier < 0 || tier >= ports.CategoryCount {
		return nil
	}
	ps := idx.tiers[tier].patterns
	if i < 0 || i >= len(ps) {
		return nil
	}
	return &ps[i]
}

// TierCounts reports patterns per tier.
func (idx *CompiledIndex) TierCounts() [ports.CategoryCount]int {
	var counts [ports.CategoryCount]int
	for tier := range idx.tiers {
		counts[tier] = len(idx.tiers[tier].patterns)
	}
	return counts
}

// PatternCount is the total pattern count across tiers.
func (idx *CompiledIndex) PatternCount() int { return idx.total }

// Version is the roster version this index was compiled from.
func (idx *CompiledIndex) Version() uint64 { return idx.version }
