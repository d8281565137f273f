package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_DiscardAndReturn(t *testing.T) {
	f := newFixture(t)
	o := f.deck
	r := NewRecord("hand")

	a, err := o.Pick()
	require.NoError(t, err)
	b, err := o.Pick()
	require.NoError(t, err)
	r.Add(a)
	r.Add(b)
	require.Equal(t, 2, o.Source().Len())

	t.Run("discard does not refill the source", func(t *testing.T) {
		require.NoError(t, r.Discard(a))
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, 2, o.Source().Len())
	})

	t.Run("return refills the source", func(t *testing.T) {
		require.NoError(t, r.Return(b))
		assert.Equal(t, 0, r.Len())
		assert.Equal(t, 3, o.Source().Len())
		assert.True(t, o.Source().Contains(b.ID))
	})

	t.Run("non-members are not found", func(t *testing.T) {
		err := r.Discard(a)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "record 'hand'")

		err = r.Return(b)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, 3, o.Source().Len(), "failed return must not refill")
	})
}

func TestRecord_ClearAndFind(t *testing.T) {
	f := newFixture(t)
	r := NewRecord("hand")
	for i := 0; i < 3; i++ {
		v, err := f.deck.Pick()
		require.NoError(t, err)
		r.Add(v)
	}
	first := r.Values()[0]

	found, ok := r.Find(first.UID)
	require.True(t, ok)
	assert.Same(t, first, found)

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 4, f.deck.Source().Len())

	_, ok = r.Find(first.UID)
	assert.False(t, ok)
}

func TestRecord_Update(t *testing.T) {
	f := newFixture(t)
	r := NewRecord("hand")
	v, err := f.deck.Pick()
	require.NoError(t, err)
	r.Add(v)
	require.NoError(t, r.Update())

	f.rewriteSpec(t, "source: mini\nbanned_values: []\nvalues: []\n")
	require.NoError(t, f.builder.Update(f.deck))

	err = r.Update()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no spec entry for value 'A of Hearts'")
}
