package filter

import (
	"testing"

	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLibrary(t *testing.T) []*oracle.Oracle {
	t.Helper()
	catalog, err := oracle.NewCatalog(map[string]oracle.SourceTemplate{
		"deck": {CustomValues: []string{"A", "B"}, Finite: true},
		"d6":   {CustomValues: []string{"1", "2", "3", "4", "5", "6"}},
	})
	require.NoError(t, err)
	b := oracle.NewBuilder(catalog, oracle.NewRand(1))

	var out []*oracle.Oracle
	for _, spec := range []*oracle.Spec{
		{Source: "deck", Name: "Tarot Deck"},
		{Source: "deck", Name: "Playing Cards"},
		{Source: "d6", Name: "Six-sided Die"},
	} {
		o, err := b.Build(spec)
		require.NoError(t, err)
		out = append(out, o)
	}
	return out
}

func names(oracles []*oracle.Oracle) []string {
	out := make([]string, len(oracles))
	for i, o := range oracles {
		out[i] = o.Name()
	}
	return out
}

func TestCriteria_Apply(t *testing.T) {
	library := buildLibrary(t)

	tests := []struct {
		name     string
		criteria *Criteria
		expected []string
	}{
		{name: "nil criteria", criteria: nil, expected: []string{"Tarot Deck", "Playing Cards", "Six-sided Die"}},
		{name: "no filters", criteria: &Criteria{}, expected: []string{"Tarot Deck", "Playing Cards", "Six-sided Die"}},
		{name: "glob is case-insensitive", criteria: &Criteria{NameGlob: "*DECK"}, expected: []string{"Tarot Deck"}},
		{name: "glob matches several", criteria: &Criteria{NameGlob: "*a*"}, expected: []string{"Tarot Deck", "Playing Cards"}},
		{name: "source", criteria: &Criteria{Source: "d6"}, expected: []string{"Six-sided Die"}},
		{name: "finite only", criteria: &Criteria{FiniteOnly: true}, expected: []string{"Tarot Deck", "Playing Cards"}},
		{name: "filters are ANDed", criteria: &Criteria{NameGlob: "p*", FiniteOnly: true}, expected: []string{"Playing Cards"}},
		{name: "invalid glob matches nothing", criteria: &Criteria{NameGlob: "["}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(tt.criteria.Apply(library)))
		})
	}
}

func TestCriteria_HasFilters(t *testing.T) {
	assert.False(t, (&Criteria{}).HasFilters())
	assert.True(t, (&Criteria{Source: "deck"}).HasFilters())
}
