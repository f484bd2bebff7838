package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/chara/internal/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "chara.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreatorMappings_AppendAndList(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AppendCreatorMapping(ports.CreatorMapping{
		CreatorID: "uploader1", Character: "Hutao", Confidence: 0.9, Source: "manual", CreatedAt: 100,
	}))
	require.NoError(t, s.AppendCreatorMapping(ports.CreatorMapping{
		CreatorID: "uploader1", Character: "Ganyu", Confidence: 0.7, Source: "auto", CreatedAt: 200,
	}))
	require.NoError(t, s.AppendCreatorMapping(ports.CreatorMapping{
		CreatorID: "uploader2", Character: "HatsuneMiku", Confidence: 1.0, Source: "manual", CreatedAt: 300,
	}))

	got, err := s.CreatorMappings("uploader1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Hutao", got[0].Character, "oldest first")
	assert.Equal(t, "Ganyu", got[1].Character)
	assert.Equal(t, "auto", got[1].Source)
}

func TestCreatorMappings_AppendOnly(t *testing.T) {
	// Same (creator, character) twice: both rows kept, nothing overwritten.
	s := newTestStore(t)
	m := ports.CreatorMapping{CreatorID: "u", Character: "Hutao", Confidence: 0.5, Source: "auto", CreatedAt: 1}
	require.NoError(t, s.AppendCreatorMapping(m))
	m.Confidence = 0.9
	require.NoError(t, s.AppendCreatorMapping(m))

	got, err := s.CreatorMappings("u")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.5, got[0].Confidence, 1e-9)
	assert.InDelta(t, 0.9, got[1].Confidence, 1e-9)
}

func TestCreatorMappings_Validation(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.AppendCreatorMapping(ports.CreatorMapping{CreatorID: "", Character: "x"}))
	assert.Error(t, s.AppendCreatorMapping(ports.CreatorMapping{CreatorID: "x", Character: ""}))
}

func TestCreatorMappings_UnknownCreator(t *testing.T) {
	s := newTestStore(t)
	got, err := s.CreatorMappings("nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreatorMappings_NoPrefixBleed(t *testing.T) {
	// "up" must not pick up "uploader"'s rows.
	s := newTestStore(t)
	require.NoError(t, s.AppendCreatorMapping(ports.CreatorMapping{
		CreatorID: "uploader", Character: "Hutao", Confidence: 1, Source: "manual", CreatedAt: 1,
	}))
	got, err := s.CreatorMappings("up")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoster_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.LoadRoster()
	require.NoError(t, err)
	assert.Nil(t, doc, "no snapshot yet")

	want := &ports.RosterDoc{Version: 1, Series: []ports.SeriesDoc{{
		ID: "genshin_impact", Name: "Genshin Impact",
		Characters: []ports.CharacterDoc{{
			Name: "Hutao", Weight: 0.95,
			Hints:    []string{"genshin"},
			Variants: map[string][]string{"exact": {"Hu Tao"}},
		}},
	}}}
	require.NoError(t, s.SaveRoster(want))

	got, err := s.LoadRoster()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Save replaces the previous snapshot.
	want.Series[0].Characters[0].Weight = 0.8
	require.NoError(t, s.SaveRoster(want))
	got, err = s.LoadRoster()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got.Series[0].Characters[0].Weight, 1e-9)
}

func TestStore_ReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chara.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.AppendCreatorMapping(ports.CreatorMapping{
		CreatorID: "u", Character: "Hutao", Confidence: 1, Source: "manual", CreatedAt: 1,
	}))
	require.NoError(t, s.Close())

	s2, err := NewStore(path)
	require.NoError(t, err)
	defer s2.Close()
	got, err := s2.CreatorMappings("u")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
