package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogEntries(t *testing.T) {
	o := tarotOracle(t)
	o.Path = "/library/oracles/tarot.yml"

	entries := NewCatalogEntries([]*oracle.Oracle{o}, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, CatalogEntry{
		Index:     1,
		Name:      "Tarot",
		Source:    "major",
		Finite:    true,
		Remaining: "2/2",
		States:    2,
		File:      "tarot.yml",
	}, entries[0])

	entries = NewCatalogEntries([]*oracle.Oracle{o}, func(*oracle.Oracle) int { return 7 })
	assert.Equal(t, 7, entries[0].Index)
}

func TestListCatalog(t *testing.T) {
	entries := []CatalogEntry{
		{Index: 1, Name: "Tarot", Source: "major", Finite: true, Remaining: "22/22", File: "tarot.yml"},
		{Index: 2, Name: "Yes or No", Source: "yesno", Remaining: "∞"},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListCatalog(&buf, entries, OutputFormatDefault))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[0], "#   NAME"))
		assert.Contains(t, lines[2], "22/22")
		assert.True(t, strings.HasSuffix(lines[3], "-"))
	})

	t.Run("jsonl", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListCatalog(&buf, entries, OutputFormatJSONL))
		assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
		assert.Contains(t, buf.String(), `"remaining":"∞"`)
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ListCatalog(&buf, nil, OutputFormatDefault))
		assert.Equal(t, "No oracles found\n", buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		err := ListCatalog(&bytes.Buffer{}, entries, "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format: xml")
	})
}
