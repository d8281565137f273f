package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dyluth/oracles/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommand(t *testing.T) {
	dir := newProject(t)

	t.Run("lists the library", func(t *testing.T) {
		out := mustRun(t, dir, "catalog")
		assert.Contains(t, out, "d6")
		assert.Contains(t, out, "Playing cards")
		assert.Contains(t, out, "52/54")
		assert.Contains(t, out, "Tarot")
		assert.Contains(t, out, "Yes or no")
		assert.Contains(t, out, "∞")
	})

	t.Run("filters keep library numbers", func(t *testing.T) {
		out := mustRun(t, dir, "catalog", "--name", "tar*", "-o", "jsonl")
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 1)

		var entry render.CatalogEntry
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "Tarot", entry.Name)
		assert.Equal(t, 3, entry.Index)
		assert.Equal(t, 2, entry.States)
	})

	t.Run("finite only", func(t *testing.T) {
		out := mustRun(t, dir, "catalog", "--finite", "-o", "jsonl")
		assert.Equal(t, 2, strings.Count(out, "\n"))
	})

	t.Run("invalid output format", func(t *testing.T) {
		res := runCLI(t, dir, "catalog", "-o", "xml")
		require.Error(t, res.Err)
		assert.Contains(t, res.Stderr, "Valid formats: default, jsonl")
	})
}

func TestDumpCommand(t *testing.T) {
	dir := newProject(t)

	t.Run("yaml skeleton", func(t *testing.T) {
		out := mustRun(t, dir, "dump", "deck54")
		assert.Contains(t, out, "source: deck54")
		assert.Contains(t, out, "A of Hearts")
		assert.Contains(t, out, "Black Joker")
	})

	t.Run("json skeleton", func(t *testing.T) {
		out := mustRun(t, dir, "dump", "yesno", "-o", "json")
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "yesno", doc["source"])
		assert.Len(t, doc["values"], 2)
	})

	t.Run("unknown source", func(t *testing.T) {
		res := runCLI(t, dir, "dump", "runes")
		require.Error(t, res.Err)
		assert.Contains(t, res.Stderr, "source 'runes' not found")
		assert.Contains(t, res.Stderr, "tarot_major")
	})
}
