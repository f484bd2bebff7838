package roster

import (
	"encoding/json"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/corey/chara/internal/ports"
)

// LoadFS reads every *.json roster file under dir in the given filesystem
// (normally the embedded default roster), merges them into one document,
// and loads it. Files are read in sorted name order for determinism.
func (db *DB) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return &ConfigError{Reason: "read roster dir " + dir, Err: err}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	merged := &ports.RosterDoc{Version: 1}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return &ConfigError{Reason: "read " + path, Err: err}
		}
		var doc ports.RosterDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return &ConfigError{Reason: "parse " + path, Err: err}
		}
		merged.Series = append(merged.Series, doc.Series...)
	}

	return db.Load(merged)
}

// LoadFile reads a single roster JSON file from disk and loads it.
// Used for user-supplied rosters that override the embedded default.
func (db *DB) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Reason: "read " + path, Err: err}
	}
	var doc ports.RosterDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ConfigError{Reason: "parse " + path, Err: err}
	}
	return db.Load(&doc)
}
