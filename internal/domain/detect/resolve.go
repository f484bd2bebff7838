package detect

import (
	"sort"

	"github.com/corey/chara/internal/ports"
)

// Resolve reduces raw candidates to the final ranked result list:
//
//  1. Identical spans claimed by different characters go to the higher
//     tier; the losing candidate is dropped entirely, not merged.
//  2. Within a character: highest tier, then longest match, then earliest
//     position wins — at most one result per character per title.
//  3. Results below threshold are filtered as likely false positives.
//  4. Output is ordered by first occurrence in the title.
//
// All ties break deterministically (tier, confidence, character name), so
// repeated calls over the same candidates return identical lists.
func Resolve(cands []Candidate, threshold float64) []ports.DetectionResult {
	if len(cands) == 0 {
		return nil
	}

	survivors := dropContestedSpans(cands)

	// Best candidate per character.
	best := make(map[string]Candidate)
	for _, c := range survivors {
		cur, ok := best[c.Pattern.Character]
		if !ok || betterForCharacter(c, cur) {
			best[c.Pattern.Character] = c
		}
	}

	final := make([]Candidate, 0, len(best))
	for _, c := range best {
		if c.Confidence >= threshold {
			final = append(final, c)
		}
	}

	// First-seen position, then name for full determinism.
	sort.Slice(final, func(i, j int) bool {
		if final[i].Start != final[j].Start {
			return final[i].Start < final[j].Start
		}
		return final[i].Pattern.Character < final[j].Pattern.Character
	})

	out := make([]ports.DetectionResult, len(final))
	for i, c := range final {
		out[i] = ports.DetectionResult{
			Character:  c.Pattern.Character,
			Series:     c.Pattern.Series,
			Confidence: c.Confidence,
			Category:   c.Pattern.Category,
		}
	}
	return out
}

// dropContestedSpans removes candidates that lose an identical-span contest
// to a different character's higher-tier claim.
func dropContestedSpans(cands []Candidate) []Candidate {
	type span struct{ start, end int }

	winner := make(map[span]Candidate)
	for _, c := range cands {
		sp := span{c.Start, c.End}
		cur, ok := winner[sp]
		if !ok || betterClaim(c, cur) {
			winner[sp] = c
		}
	}

	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		w := winner[span{c.Start, c.End}]
		if w.Pattern.Character == c.Pattern.Character {
			out = append(out, c)
		}
	}
	return out
}

// betterClaim orders identical-span contenders: higher tier first, then
// higher confidence, then lexicographic character name.
func betterClaim(a, b Candidate) bool {
	if a.Pattern.Category != b.Pattern.Category {
		return a.Pattern.Category < b.Pattern.Category
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.Pattern.Character < b.Pattern.Character
}

// betterForCharacter orders a character's own candidates: higher tier,
// then longer match, then earlier position.
func betterForCharacter(a, b Candidate) bool {
	if a.Pattern.Category != b.Pattern.Category {
		return a.Pattern.Category < b.Pattern.Category
	}
	if la, lb := a.End-a.Start, b.End-b.Start; la != lb {
		return la > lb
	}
	return a.Start < b.Start
}
