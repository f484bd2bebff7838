package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/chara/internal/ports"
	rosterdata "github.com/corey/chara/roster"
)

func testDoc() *ports.RosterDoc {
	return &ports.RosterDoc{
		Version: 1,
		Series: []ports.SeriesDoc{
			{
				ID:   "genshin_impact",
				Name: "Genshin Impact",
				Characters: []ports.CharacterDoc{
					{
						Name:   "Hutao",
						Weight: 0.95,
						Hints:  []string{"genshin", "MMD"},
						Variants: map[string][]string{
							"exact":  {"Hu Tao"},
							"native": {"胡桃"},
							"common": {"tao tao"},
						},
					},
					{
						Name:   "Ganyu",
						Weight: 0.9,
						Variants: map[string][]string{
							"exact": {"Ganyu"},
						},
					},
				},
			},
		},
	}
}

func TestLoad_Valid(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))
	assert.Equal(t, 2, db.CharacterCount())
	assert.Equal(t, uint64(1), db.Version())
}

func TestLoad_EmptyDocument(t *testing.T) {
	db := New(nil)
	err := db.Load(nil)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	err = db.Load(&ports.RosterDoc{})
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoad_SkipsBadCharacters(t *testing.T) {
	// A character with no variants, an empty name, and a bad weight are all
	// skipped with a warning; the load itself succeeds.
	doc := testDoc()
	doc.Series[0].Characters = append(doc.Series[0].Characters,
		ports.CharacterDoc{Name: "NoVariants", Weight: 0.9, Variants: map[string][]string{}},
		ports.CharacterDoc{Name: "", Weight: 0.9, Variants: map[string][]string{"exact": {"x"}}},
		ports.CharacterDoc{Name: "BadWeight", Weight: 1.5, Variants: map[string][]string{"exact": {"y"}}},
	)

	db := New(nil)
	require.NoError(t, db.Load(doc))
	assert.Equal(t, 2, db.CharacterCount())
}

func TestLoad_SkipsDuplicateInDocument(t *testing.T) {
	doc := testDoc()
	doc.Series[0].Characters = append(doc.Series[0].Characters, doc.Series[0].Characters[0])

	db := New(nil)
	require.NoError(t, db.Load(doc))
	assert.Equal(t, 2, db.CharacterCount())
}

func TestLoad_AllBadCharactersIsConfigError(t *testing.T) {
	doc := &ports.RosterDoc{Series: []ports.SeriesDoc{{
		ID:         "s",
		Characters: []ports.CharacterDoc{{Name: "x", Weight: 0.9, Variants: nil}},
	}}}
	db := New(nil)
	var cfgErr *ConfigError
	require.ErrorAs(t, db.Load(doc), &cfgErr)
}

func TestAddCharacter_Validation(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))

	var valErr *ValidationError

	// Empty name
	err := db.AddCharacter("genshin_impact", "", 0.9, nil, map[string][]string{"exact": {"x"}})
	require.ErrorAs(t, err, &valErr)

	// Duplicate (series, name)
	err = db.AddCharacter("genshin_impact", "Hutao", 0.9, nil, map[string][]string{"exact": {"x"}})
	require.ErrorAs(t, err, &valErr)

	// No variants
	err = db.AddCharacter("genshin_impact", "New", 0.9, nil, nil)
	require.ErrorAs(t, err, &valErr)

	// Unknown category
	err = db.AddCharacter("genshin_impact", "New", 0.9, nil, map[string][]string{"bogus": {"x"}})
	require.ErrorAs(t, err, &valErr)

	// Nothing was mutated
	assert.Equal(t, 2, db.CharacterCount())
	assert.Equal(t, uint64(1), db.Version())
}

func TestAddCharacter_SameNameDifferentSeries(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))
	err := db.AddCharacter("other_series", "Hutao", 0.8, nil, map[string][]string{"exact": {"Hu Tao"}})
	require.NoError(t, err)
	assert.Equal(t, 3, db.CharacterCount())
}

func TestAddCharacter_FiresChangeHook(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))

	fired := 0
	db.SetChangeHook(func() { fired++ })

	require.NoError(t, db.AddCharacter("vocaloid", "HatsuneMiku", 0.95, nil,
		map[string][]string{"exact": {"Hatsune Miku"}}))
	assert.Equal(t, 1, fired)
	assert.Equal(t, uint64(2), db.Version())
}

func TestRemoveCharacter(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))

	fired := 0
	db.SetChangeHook(func() { fired++ })

	assert.True(t, db.RemoveCharacter("Hutao"))
	assert.Equal(t, 1, db.CharacterCount())
	assert.Equal(t, 1, fired)

	// Removing a missing character reports false and fires nothing.
	assert.False(t, db.RemoveCharacter("Hutao"))
	assert.False(t, db.RemoveCharacter(""))
	assert.Equal(t, 1, fired)
}

func TestRemoveCharacter_AllSeries(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))
	require.NoError(t, db.AddCharacter("other", "Hutao", 0.8, nil, map[string][]string{"exact": {"Hu Tao"}}))

	assert.True(t, db.RemoveCharacter("Hutao"))
	assert.Equal(t, 1, db.CharacterCount(), "removed from every series")
}

func TestSnapshot_Deterministic(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))

	a := db.Snapshot()
	b := db.Snapshot()
	require.Equal(t, a.Patterns, b.Patterns)
	assert.Equal(t, a.Version, b.Version)

	// Tiers appear in priority order within a character.
	assert.Equal(t, 4, len(a.Patterns), "Ganyu(1) + Hutao(3)")
}

func TestSnapshot_HintsLowercased(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))

	for _, p := range db.Snapshot().Patterns {
		if p.Character == "Hutao" {
			assert.Contains(t, p.Hints, "mmd")
		}
	}
}

// Round-trip: Export then Load yields the identical
// (character, category, variant) triples.
func TestExport_RoundTrip(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.Load(testDoc()))
	require.NoError(t, db.AddCharacter("vocaloid", "HatsuneMiku", 0.95, []string{"vocaloid"},
		map[string][]string{"exact": {"Hatsune Miku"}, "common": {"miku"}}))

	exported := db.Export()

	db2 := New(nil)
	require.NoError(t, db2.Load(exported))

	assert.Equal(t, triples(db), triples(db2))
	assert.Equal(t, exported, db2.Export(), "export is a fixed point")
}

// triples flattens a database to its (character, category, variant) set.
func triples(db *DB) map[[3]string]bool {
	out := make(map[[3]string]bool)
	for _, p := range db.Snapshot().Patterns {
		out[[3]string{p.Character, p.Category.String(), p.Text}] = true
	}
	return out
}

func TestLoadFS_EmbeddedDefault(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.LoadFS(rosterdata.FS, "v1"))
	assert.Greater(t, db.CharacterCount(), 5)

	// The default roster must survive its own round-trip too.
	db2 := New(nil)
	require.NoError(t, db2.Load(db.Export()))
	assert.Equal(t, triples(db), triples(db2))
}
