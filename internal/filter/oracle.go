package filter

import (
	"path/filepath"
	"strings"

	"github.com/dyluth/oracles/pkg/oracle"
)

// Criteria defines filtering criteria for library oracles.
// All filters are ANDed together - an oracle must match ALL criteria to pass.
type Criteria struct {
	NameGlob   string // Glob pattern for the oracle name, case-insensitive, empty = no filter
	Source     string // Exact match for the spec's source, empty = no filter
	FiniteOnly bool   // Only oracles whose source depletes
}

// Matches returns true if the oracle matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(o *oracle.Oracle) bool {
	// Name filtering - glob pattern matching
	if c.NameGlob != "" {
		matched, err := filepath.Match(strings.ToLower(c.NameGlob), strings.ToLower(o.Name()))
		if err != nil || !matched {
			return false
		}
	}

	if c.Source != "" && o.Spec().Source != c.Source {
		return false
	}

	if c.FiniteOnly && !o.Source().Finite() {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.NameGlob != "" || c.Source != "" || c.FiniteOnly
}

// Apply returns the oracles matching c, preserving order.
func (c *Criteria) Apply(oracles []*oracle.Oracle) []*oracle.Oracle {
	if c == nil || !c.HasFilters() {
		return oracles
	}
	out := make([]*oracle.Oracle, 0, len(oracles))
	for _, o := range oracles {
		if c.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}
