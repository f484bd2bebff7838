package ports

// Analyzer is the single public entry point for title analysis. Both the
// optimized engine and the legacy fallback implement it; callers depend
// only on this interface and never learn which one they got.
//
// Analyze never returns an error: empty, malformed, or unmatched input
// yields an empty (nil) result list.
type Analyzer interface {
	Analyze(title string) []DetectionResult
}

// Span is a single automaton match: byte offsets into the normalized title
// plus the index of the pattern that matched.
type Span struct {
	PatternIndex int
	Start        int // inclusive
	End          int // exclusive
}

// CompiledIndex is the tier-partitioned multi-pattern search structure
// built from a roster snapshot. Implementations must be immutable after
// construction — the engine shares one instance across all reader
// goroutines and replaces it wholesale on rebuild (copy-on-write swap).
type CompiledIndex interface {
	// ScanTier runs the tier's automaton over text and returns every match,
	// including overlapping ones. Scanning cost is linear in len(text)
	// regardless of pattern count.
	ScanTier(tier VariantCategory, text string) []Span

	// PatternAt resolves a Span's PatternIndex within a tier back to its
	// pattern. Returns nil if the index is out of range.
	PatternAt(tier VariantCategory, idx int) *Pattern

	// TierCounts reports the number of patterns compiled into each tier.
	TierCounts() [CategoryCount]int

	// PatternCount is the total across all tiers.
	PatternCount() int
}
