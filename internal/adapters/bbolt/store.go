// Package bbolt implements ports.Storage using bbolt (embedded B+ tree).
// The "creators" bucket holds the append-only creator-mapping table keyed
// by "<creatorID>/<seq>"; the "roster" bucket holds the latest exported
// roster snapshot. Writes are transactional — a crash mid-write cannot
// corrupt previously committed data. Nothing here runs on the analysis
// hot path.
package bbolt

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/chara/internal/ports"
)

// Bucket and key names.
var (
	bucketCreators = []byte("creators")
	bucketRoster   = []byte("roster")
	keySnapshot    = []byte("snapshot")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCreators); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketRoster)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// creatorKey builds "<creatorID>/<seq>" with a big-endian sequence suffix
// so bbolt's byte-ordered iteration returns mappings oldest first.
func creatorKey(creatorID string, seq uint64) []byte {
	key := make([]byte, 0, len(creatorID)+9)
	key = append(key, creatorID...)
	key = append(key, '/')
	key = binary.BigEndian.AppendUint64(key, seq)
	return key
}

// AppendCreatorMapping adds one mapping to the append-only table.
func (s *Store) AppendCreatorMapping(m ports.CreatorMapping) error {
	if m.CreatorID == "" || m.Character == "" {
		return fmt.Errorf("creator mapping: empty creator id or character")
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = time.Now().Unix()
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("creator mapping encode: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCreators)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(creatorKey(m.CreatorID, seq), data)
	})
}

// CreatorMappings returns every mapping for a creator, oldest first.
func (s *Store) CreatorMappings(creatorID string) ([]ports.CreatorMapping, error) {
	prefix := append([]byte(creatorID), '/')

	var out []ports.CreatorMapping
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketCreators).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var m ports.CreatorMapping
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("creator mapping decode: %w", err)
			}
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveRoster stores a roster snapshot, replacing any previous one.
func (s *Store) SaveRoster(doc *ports.RosterDoc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("roster encode: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRoster).Put(keySnapshot, data)
	})
}

// LoadRoster returns the stored snapshot, or (nil, nil) when none exists.
func (s *Store) LoadRoster() (*ports.RosterDoc, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketRoster).Get(keySnapshot); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var doc ports.RosterDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("roster decode: %w", err)
	}
	return &doc, nil
}
