package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Hu Tao Dance", "hu tao dance"},
		{"whitespace collapse", "hu   tao\t dance", "hu tao dance"},
		{"edge trim", "  [Hu Tao]  ", "hu tao"},
		{"fullwidth NFKC", "ＭＭＤ", "mmd"},
		{"ideographic space", "胡桃　MMD", "胡桃 mmd"},
		{"cjk passthrough", "初音ミク", "初音ミク"},
		{"sharp s folds", "straße", "strasse"},
		{"empty", "", ""},
		{"punct only", "!!!", ""},
		{"inner punct kept", "hu-tao", "hu-tao"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// Titles and patterns go through the same function; applying it twice
	// must be a no-op or automaton matches drift.
	for _, s := range []string{"Hu Tao dance MMD", "初音ミク【ＭＭＤ】", "  Gawr  Gura!  "} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}
