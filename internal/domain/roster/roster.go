// Package roster implements the in-memory pattern database: every known
// series, its characters, and their alias variants grouped by tier.
//
// The DB itself is mutable behind a mutex, but consumers never read it
// directly — they take a Snapshot(), an immutable flattened pattern set
// that the compiler turns into a CompiledIndex. Mutations bump the version
// and fire the change hook so the owner can rebuild off the hot path.
package roster

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/corey/chara/internal/ports"
)

// ConfigError reports a malformed or missing roster source at load time.
// Individual bad character entries are skipped with a warning instead;
// this error means the whole source was unusable.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("roster config: %s: %v", e.Reason, e.Err)
	}
	return "roster config: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError reports invalid administrative input (empty name,
// duplicate character). The mutation is rejected whole — no partial state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// character is the internal record for one entity.
type character struct {
	name     string
	seriesID string
	weight   float64
	hints    []string
	variants [ports.CategoryCount][]string
}

func (c *character) variantCount() int {
	n := 0
	for _, vs := range c.variants {
		n += len(vs)
	}
	return n
}

// PatternSet is an immutable snapshot of the database: the flattened
// pattern list plus the version it was taken at. Never mutated after
// Snapshot returns it.
type PatternSet struct {
	Version  uint64
	Patterns []ports.Pattern
}

// DB is the pattern database. Safe for concurrent use.
type DB struct {
	mu       sync.RWMutex
	series   map[string]string     // series ID -> display name
	chars    map[string]*character // "seriesID/name" -> record
	version  uint64
	onChange func() // fired after every successful mutation, outside the lock

	log *slog.Logger
}

// New creates an empty database. logger may be nil.
func New(logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.Default()
	}
	return &DB{
		series: make(map[string]string),
		chars:  make(map[string]*character),
		log:    logger,
	}
}

// SetChangeHook registers a callback fired after every successful mutation
// (add/remove/load). The engine uses it to schedule an async recompile.
func (db *DB) SetChangeHook(fn func()) {
	db.mu.Lock()
	db.onChange = fn
	db.mu.Unlock()
}

func charKey(seriesID, name string) string { return seriesID + "/" + name }

// Load replaces the database contents from a parsed roster document.
// Characters with no variants, empty names, or duplicate (series, name)
// pairs are skipped with a logged warning — a few bad records never fail
// the whole load. A nil document or one with no series is a ConfigError.
func (db *DB) Load(doc *ports.RosterDoc) error {
	if doc == nil || len(doc.Series) == 0 {
		return &ConfigError{Reason: "empty roster document"}
	}

	series := make(map[string]string)
	chars := make(map[string]*character)

	for _, s := range doc.Series {
		if s.ID == "" {
			db.log.Warn("skipping series with empty id")
			continue
		}
		series[s.ID] = s.Name

		for _, cd := range s.Characters {
			c, err := buildCharacter(s.ID, cd)
			if err != nil {
				db.log.Warn("skipping character", "series", s.ID, "name", cd.Name, "reason", err)
				continue
			}
			key := charKey(s.ID, c.name)
			if _, dup := chars[key]; dup {
				db.log.Warn("skipping duplicate character", "series", s.ID, "name", c.name)
				continue
			}
			chars[key] = c
		}
	}

	if len(chars) == 0 {
		return &ConfigError{Reason: "no usable characters in roster"}
	}

	db.mu.Lock()
	db.series = series
	db.chars = chars
	db.version++
	hook := db.onChange
	db.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

// buildCharacter validates one document record into an internal record.
func buildCharacter(seriesID string, cd ports.CharacterDoc) (*character, error) {
	name := strings.TrimSpace(cd.Name)
	if name == "" {
		return nil, fmt.Errorf("empty name")
	}
	weight := cd.Weight
	if weight <= 0 || weight > 1 {
		return nil, fmt.Errorf("weight %v out of (0,1]", weight)
	}

	c := &character{name: name, seriesID: seriesID, weight: weight}
	for _, h := range cd.Hints {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			c.hints = append(c.hints, h)
		}
	}

	for catName, aliases := range cd.Variants {
		cat, err := ports.ParseCategory(catName)
		if err != nil {
			return nil, err
		}
		for _, a := range aliases {
			a = strings.TrimSpace(a)
			if a == "" {
				continue
			}
			c.variants[cat] = append(c.variants[cat], a)
		}
	}

	if c.variantCount() == 0 {
		return nil, fmt.Errorf("no variants")
	}
	return c, nil
}

// AddCharacter registers a new character. Rejects empty names and duplicate
// (series, name) pairs with a ValidationError; nothing is mutated on
// rejection. On success the change hook fires (async rebuild + cache
// invalidation are the owner's job).
func (db *DB) AddCharacter(seriesID, name string, weight float64, hints []string, variants map[string][]string) error {
	if strings.TrimSpace(seriesID) == "" {
		return &ValidationError{Reason: "empty series id"}
	}
	cd := ports.CharacterDoc{Name: name, Weight: weight, Hints: hints, Variants: variants}
	c, err := buildCharacter(seriesID, cd)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	key := charKey(seriesID, c.name)

	db.mu.Lock()
	if _, dup := db.chars[key]; dup {
		db.mu.Unlock()
		return &ValidationError{Reason: fmt.Sprintf("character %q already exists in series %q", c.name, seriesID)}
	}
	if _, ok := db.series[seriesID]; !ok {
		db.series[seriesID] = seriesID
	}
	db.chars[key] = c
	db.version++
	hook := db.onChange
	db.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

// RemoveCharacter deletes every character with the given canonical name,
// across all series. Returns true if anything was removed.
func (db *DB) RemoveCharacter(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	db.mu.Lock()
	removed := false
	for key, c := range db.chars {
		if c.name == name {
			delete(db.chars, key)
			removed = true
		}
	}
	var hook func()
	if removed {
		db.version++
		hook = db.onChange
	}
	db.mu.Unlock()

	if hook != nil {
		hook()
	}
	return removed
}

// CharacterCount returns the number of registered characters.
func (db *DB) CharacterCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.chars)
}

// Version returns the current mutation counter.
func (db *DB) Version() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.version
}

// Snapshot flattens the database into an immutable pattern set.
// Order is deterministic: series, then character, then tier, then alias.
func (db *DB) Snapshot() *PatternSet {
	db.mu.RLock()
	defer db.mu.RUnlock()

	keys := make([]string, 0, len(db.chars))
	for k := range db.chars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := &PatternSet{Version: db.version}
	for _, k := range keys {
		c := db.chars[k]
		hints := append([]string(nil), c.hints...)
		for cat := ports.VariantCategory(0); cat < ports.CategoryCount; cat++ {
			for _, alias := range c.variants[cat] {
				set.Patterns = append(set.Patterns, ports.Pattern{
					Text:      alias,
					Character: c.name,
					Series:    c.seriesID,
					Category:  cat,
					Weight:    c.weight,
					Hints:     hints,
				})
			}
		}
	}
	return set
}

// Export produces the roster document form of the database. Loading the
// exported document yields the identical (character, category, variant)
// triples. Output ordering is deterministic.
func (db *DB) Export() *ports.RosterDoc {
	db.mu.RLock()
	defer db.mu.RUnlock()

	seriesIDs := make([]string, 0, len(db.series))
	for id := range db.series {
		seriesIDs = append(seriesIDs, id)
	}
	sort.Strings(seriesIDs)

	doc := &ports.RosterDoc{Version: 1}
	for _, sid := range seriesIDs {
		sd := ports.SeriesDoc{ID: sid, Name: db.series[sid]}

		var names []string
		for _, c := range db.chars {
			if c.seriesID == sid {
				names = append(names, c.name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			c := db.chars[charKey(sid, name)]
			if c == nil {
				continue
			}
			cd := ports.CharacterDoc{
				Name:     c.name,
				Weight:   c.weight,
				Hints:    append([]string(nil), c.hints...),
				Variants: make(map[string][]string),
			}
			for cat := ports.VariantCategory(0); cat < ports.CategoryCount; cat++ {
				if len(c.variants[cat]) > 0 {
					vs := append([]string(nil), c.variants[cat]...)
					sort.Strings(vs)
					cd.Variants[cat.String()] = vs
				}
			}
			sd.Characters = append(sd.Characters, cd)
		}
		if len(sd.Characters) > 0 {
			doc.Series = append(doc.Series, sd)
		}
	}
	return doc
}
