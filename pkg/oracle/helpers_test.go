package oracle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// deckTemplate is the two-suit deck used across the tests.
func deckTemplate() SourceTemplate {
	return SourceTemplate{
		Name:         "mini",
		Suits:        []string{"Hearts", "Spades"},
		Values:       []string{"A", "2"},
		Template:     "{value} of {suit}",
		CustomValues: []string{"Joker"},
		Finite:       true,
	}
}

// deckSpec describes every identifier of deckTemplate.
func deckSpec(banned ...string) *Spec {
	spec := &Spec{Source: "mini", Name: "Mini Deck", BannedValues: banned}
	for _, id := range []string{"A of Hearts", "2 of Hearts", "A of Spades", "2 of Spades", "Joker"} {
		spec.Values = append(spec.Values, ValueSpec{ID: id, Description: "card " + id, Meaning: "meaning of " + id})
	}
	return spec
}

func mustBuildSource(t *testing.T, tmpl SourceTemplate, rng Randomizer) *Source {
	t.Helper()
	src, err := BuildSource(tmpl, rng)
	require.NoError(t, err)
	return src
}

func testCatalog(t *testing.T, templates map[string]SourceTemplate) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(templates)
	require.NoError(t, err)
	return catalog
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	return NewBuilder(testCatalog(t, map[string]SourceTemplate{"mini": deckTemplate()}), NewRand(42))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mkdir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
