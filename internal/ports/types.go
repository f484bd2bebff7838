// Package ports defines the shared types and interfaces that connect the
// domain packages (roster, detect, cache) to their adapters (ahocorasick,
// bbolt, fsnotify). Domain code imports ports, never adapters.
package ports

import "fmt"

// VariantCategory is the priority tier an alias belongs to. Lower numeric
// value means higher priority: exact > native > joined > common > abbreviation.
// The ordering is total and fixed — conflict resolution depends on it.
type VariantCategory int

const (
	CategoryExact VariantCategory = iota
	CategoryNative
	CategoryJoined
	CategoryCommon
	CategoryAbbreviation

	CategoryCount
)

// categoryNames is indexed by VariantCategory.
var categoryNames = [CategoryCount]string{"exact", "native", "joined", "common", "abbreviation"}

// categoryMultipliers is the fixed base-weight multiplier per tier.
// A character's detection weight is scaled by its matched tier's multiplier
// before length/context bonuses are applied.
var categoryMultipliers = [CategoryCount]float64{1.00, 0.95, 0.85, 0.70, 0.55}

func (c VariantCategory) String() string {
	if c < 0 || c >= CategoryCount {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Multiplier returns the tier's base-weight multiplier.
func (c VariantCategory) Multiplier() float64 {
	if c < 0 || c >= CategoryCount {
		return 0
	}
	return categoryMultipliers[c]
}

// ParseCategory converts a roster-file category name to a VariantCategory.
func ParseCategory(s string) (VariantCategory, error) {
	for i, name := range categoryNames {
		if s == name {
			return VariantCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variant category %q", s)
}

// Pattern is one compiled alias: the normalized variant text plus a
// back-reference to its character. Patterns are derived from the roster
// snapshot and rebuilt whenever it changes; they are never edited directly.
type Pattern struct {
	Text      string // normalized alias, never empty
	Character string // canonical character name
	Series    string // owning series ID
	Category  VariantCategory
	Weight    float64  // the character's detection weight (0..1)
	Hints     []string // normalized context hint words, shared across the character's patterns
}

// DetectionResult is the externally visible output of an analysis:
// one per distinct character per title, ordered by first occurrence.
type DetectionResult struct {
	Character  string          `json:"character"`
	Series     string          `json:"series"`
	Confidence float64         `json:"confidence"`
	Category   VariantCategory `json:"-"`
}

// CategoryName is the serialized form of Category for callers that
// marshal results (the engine itself never serializes).
func (r DetectionResult) CategoryName() string { return r.Category.String() }

// CreatorMapping links an uploader/creator ID to a character they are known
// to feature. The table is append-only and advisory — consumed by host
// application heuristics, never by the detector itself.
type CreatorMapping struct {
	CreatorID  string  `json:"creator_id"`
	Character  string  `json:"character"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"` // "manual" or "auto"
	CreatedAt  int64   `json:"created_at"` // unix seconds
}

// Report is the flat metrics record exposed to the host application.
// Serialization (JSON for a dashboard, table for the CLI) is the caller's job.
type Report struct {
	AvgLatencyMs     float64
	CallsPerSecond   float64
	CacheHitRate     float64
	PatternCount     int
	TierDistribution [CategoryCount]int // patterns per tier
	FallbackActive   bool
}
