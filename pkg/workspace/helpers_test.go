package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/stretchr/testify/require"
)

const deckSpecYAML = `source: mini
name: Mini Deck
banned_values: ["Joker"]
values:
  - id: "A of Hearts"
    description: "Ace of Hearts"
    meaning: "love"
  - id: "2 of Hearts"
    description: "Two of Hearts"
    meaning: "union"
  - id: "A of Spades"
    description: "Ace of Spades"
    meaning: "ending"
  - id: "2 of Spades"
    description: "Two of Spades"
    meaning: "choice"
`

type fixture struct {
	dir      string
	specPath string
	builder  *oracle.Builder
	deck     *oracle.Oracle // library oracle, never drawn from directly
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := oracle.NewCatalog(map[string]oracle.SourceTemplate{
		"mini": {
			Suits:        []string{"Hearts", "Spades"},
			Values:       []string{"A", "2"},
			Template:     "{value} of {suit}",
			CustomValues: []string{"Joker"},
			Finite:       true,
		},
		"yesno": {CustomValues: []string{"Yes", "No"}},
	})
	require.NoError(t, err)

	dir := t.TempDir()
	specPath := filepath.Join(dir, "deck.yml")
	require.NoError(t, os.WriteFile(specPath, []byte(deckSpecYAML), 0644))

	b := oracle.NewBuilder(catalog, oracle.NewRand(11))
	deck, err := b.BuildFromFile(specPath)
	require.NoError(t, err)

	return &fixture{dir: dir, specPath: specPath, builder: b, deck: deck}
}

func (f *fixture) rewriteSpec(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(f.specPath, []byte(content), 0644))
}
