package ports

// RosterDoc is the on-disk form of the pattern database: the hierarchical
// character definition handed to roster.Load and produced by roster export.
// Export followed by Load yields the identical set of
// (character, category, variant) triples.
type RosterDoc struct {
	Version int         `json:"version"`
	Series  []SeriesDoc `json:"series"`
}

// SeriesDoc is one game/series and the characters it owns.
type SeriesDoc struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Characters []CharacterDoc `json:"characters"`
}

// CharacterDoc is one character record. Variants maps category name
// ("exact", "native", "joined", "common", "abbreviation") to alias strings.
type CharacterDoc struct {
	Name     string              `json:"name"`
	Weight   float64             `json:"weight"`
	Hints    []string            `json:"hints,omitempty"`
	Variants map[string][]string `json:"variants"`
}

// Storage persists the auxiliary creator-mapping table and roster snapshots.
// It is never touched on the analysis hot path. Writes are transactional —
// a crash mid-write cannot corrupt previously committed data.
type Storage interface {
	// AppendCreatorMapping adds one mapping to the append-only table.
	AppendCreatorMapping(m CreatorMapping) error

	// CreatorMappings returns all mappings recorded for a creator,
	// oldest first. Returns nil when none exist.
	CreatorMappings(creatorID string) ([]CreatorMapping, error)

	// SaveRoster stores a roster snapshot, replacing any previous one.
	SaveRoster(doc *RosterDoc) error

	// LoadRoster returns the stored snapshot, or (nil, nil) when none exists.
	LoadRoster() (*RosterDoc, error)

	Close() error
}
