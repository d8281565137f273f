package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestoreRoundTrip(t *testing.T) {
	f := newFixture(t)
	w := New("Session 1", f.builder)
	deck, err := w.AddNewOracle(f.deck)
	require.NoError(t, err)
	deck.Shuffle()

	journal := w.AddNewRecord("Journal")
	require.NoError(t, w.Select(1))
	drawn, err := w.Pick(deck)
	require.NoError(t, err)
	_, err = w.Pick(deck)
	require.NoError(t, err)

	// a removed oracle that still backs a drawn value
	removed, err := w.AddNewOracle(f.deck)
	require.NoError(t, err)
	kept, err := w.Choose(journal, removed, "A of Spades")
	require.NoError(t, err)
	require.NoError(t, w.RemoveOracle(removed))

	data, err := MarshalSnapshot(w.Snapshot())
	require.NoError(t, err)
	snap, err := UnmarshalSnapshot(data)
	require.NoError(t, err)

	restored, err := Restore(snap, f.builder)
	require.NoError(t, err)

	assert.Equal(t, "Session 1", restored.Name)
	assert.Equal(t, 1, restored.SelectedIndex())
	require.Len(t, restored.Oracles(), 1)
	rDeck := restored.Oracles()[0]
	assert.Equal(t, deck.ID, rDeck.ID)
	assert.Equal(t, deck.Source().Values(), rDeck.Source().Values())
	assert.True(t, rDeck.Source().Shuffled())
	assert.Equal(t, f.specPath, rDeck.Path)

	values := restored.Selected().Values()
	require.Len(t, values, 3)
	assert.Equal(t, drawn.UID, values[0].UID)
	assert.Equal(t, drawn.ID, values[0].ID)
	assert.Same(t, rDeck, values[0].Oracle())
	assert.Equal(t, kept.UID, values[2].UID)
	assert.Equal(t, removed.ID, values[2].Oracle().ID)

	// returning into the restored source works against restored state
	require.NoError(t, restored.Selected().Return(values[0]))
	assert.Equal(t, len(deck.Source().Values())+1, rDeck.Source().Len())
}

func TestRestore_Normalizes(t *testing.T) {
	f := newFixture(t)

	t.Run("no records gets the default record", func(t *testing.T) {
		w, err := Restore(&Snapshot{Version: SnapshotVersion, Name: "Empty", Selected: 3}, f.builder)
		require.NoError(t, err)
		require.Len(t, w.Records(), 1)
		assert.Equal(t, DefaultRecordName, w.Selected().Name)
		assert.Equal(t, 0, w.SelectedIndex())
	})

	t.Run("dangling oracle reference", func(t *testing.T) {
		_, err := Restore(&Snapshot{
			Version: SnapshotVersion,
			Records: []RecordState{{Name: "Values", Values: []ValueState{{UID: "u1", Oracle: "missing", ID: "x"}}}},
		}, f.builder)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown oracle missing")
	})

	t.Run("oracle without spec", func(t *testing.T) {
		_, err := Restore(&Snapshot{
			Version: SnapshotVersion,
			Oracles: []OracleState{{ID: "o1", Active: true}},
		}, f.builder)
		require.Error(t, err)
	})
}

func TestUnmarshalSnapshot(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := UnmarshalSnapshot([]byte("not json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal snapshot")
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := UnmarshalSnapshot([]byte(`{"version": 99}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported snapshot version: 99")
	})
}
