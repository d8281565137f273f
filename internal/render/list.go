package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dyluth/oracles/pkg/oracle"
)

// CatalogEntry describes a library oracle for listings.
type CatalogEntry struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	Finite    bool   `json:"finite"`
	Remaining string `json:"remaining"`
	States    int    `json:"states,omitempty"`
	File      string `json:"file,omitempty"`
}

// NewCatalogEntries describes oracles, numbering them from 1 in library order.
func NewCatalogEntries(oracles []*oracle.Oracle, indexOf func(*oracle.Oracle) int) []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(oracles))
	for i, o := range oracles {
		idx := i + 1
		if indexOf != nil {
			idx = indexOf(o)
		}
		file := ""
		if o.Path != "" {
			file = filepath.Base(o.Path)
		}
		entries = append(entries, CatalogEntry{
			Index:     idx,
			Name:      o.Name(),
			Source:    o.Spec().Source,
			Finite:    o.Source().Finite(),
			Remaining: o.Remaining().String(),
			States:    len(o.Spec().States),
			File:      file,
		})
	}
	return entries
}

// ListCatalog writes the library entries in the requested format.
func ListCatalog(w io.Writer, entries []CatalogEntry, format OutputFormat) error {
	switch format {
	case OutputFormatDefault, "":
		FormatCatalogTable(w, entries)
	case OutputFormatJSONL:
		if err := FormatJSONL(w, entries); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// FormatCatalogTable writes library entries as a table.
func FormatCatalogTable(w io.Writer, entries []CatalogEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No oracles found\n")
		return
	}

	fmt.Fprintf(w, "%-3s %-24s %-14s %-8s %s\n", "#", "NAME", "SOURCE", "VALUES", "FILE")
	fmt.Fprintf(w, "%-3s %-24s %-14s %-8s %s\n", "---", "------------------------", "--------------", "--------", "--------------------")
	for _, e := range entries {
		fmt.Fprintf(w, "%-3d %-24s %-14s %-8s %s\n",
			e.Index,
			truncate(e.Name, 24),
			truncate(e.Source, 14),
			e.Remaining,
			dash(e.File),
		)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
