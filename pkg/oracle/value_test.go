package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tarotOracle(t *testing.T) *Oracle {
	t.Helper()
	spec := &Spec{
		Source: "tarot",
		Name:   "Tarot",
		States: []string{"upright", "reversed"},
		Values: []ValueSpec{
			{
				ID:          "0",
				Name:        "The Fool",
				Description: "A young traveller",
				Meaning:     "beginnings",
				Extra:       map[string]string{"meaning_upright": "new journey", "meaning_reversed": "recklessness", "file": "fool"},
			},
			{ID: "1", Name: "The Magician", Description: "Skill", Meaning: "will", Extra: map[string]string{"meaning_upright": "power"}},
		},
	}
	return New(NewSource("tarot", []string{"0", "1"}, true, NewRand(1)), spec)
}

func TestValue_Meaning(t *testing.T) {
	o := tarotOracle(t)

	t.Run("state meaning", func(t *testing.T) {
		m, err := NewValue(o, "0", "reversed").Meaning()
		require.NoError(t, err)
		assert.Equal(t, "recklessness", m)
	})

	t.Run("plain meaning without state", func(t *testing.T) {
		m, err := NewValue(o, "0", "").Meaning()
		require.NoError(t, err)
		assert.Equal(t, "beginnings", m)
	})

	t.Run("missing state meaning is a lookup error", func(t *testing.T) {
		_, err := NewValue(o, "1", "reversed").Meaning()
		require.Error(t, err)
		assert.True(t, IsLookup(err))
		assert.Contains(t, err.Error(), "meaning_reversed")
	})
}

func TestValue_NameAndDescription(t *testing.T) {
	o := tarotOracle(t)

	t.Run("matches by id", func(t *testing.T) {
		v := NewValue(o, "0", "")
		name, err := v.Name()
		require.NoError(t, err)
		assert.Equal(t, "The Fool", name)

		desc, err := v.Description()
		require.NoError(t, err)
		assert.Equal(t, "A young traveller", desc)
	})

	t.Run("matches by name", func(t *testing.T) {
		name, err := NewValue(o, "The Magician", "").Name()
		require.NoError(t, err)
		assert.Equal(t, "The Magician", name)
	})

	t.Run("falls back to id", func(t *testing.T) {
		o := New(NewSource("d", []string{"x"}, false, nil), &Spec{Source: "d", Values: []ValueSpec{{ID: "x"}}})
		name, err := NewValue(o, "x", "").Name()
		require.NoError(t, err)
		assert.Equal(t, "x", name)
	})
}

func TestValue_Image(t *testing.T) {
	t.Run("spec template", func(t *testing.T) {
		o := tarotOracle(t)
		o.Spec().Images = "images/{data[file]}-{id}.png"

		img, err := NewValue(o, "0", "").Image()
		require.NoError(t, err)
		assert.Equal(t, "images/fool-0.png", img)
	})

	t.Run("falls back to the source template", func(t *testing.T) {
		tmpl := deckTemplate()
		tmpl.Images = "cards/{name}.svg"
		o := New(mustBuildSource(t, tmpl, nil), deckSpec())

		img, err := NewValue(o, "Joker", "").Image()
		require.NoError(t, err)
		assert.Equal(t, "cards/Joker.svg", img)
	})

	t.Run("no template", func(t *testing.T) {
		img, err := NewValue(tarotOracle(t), "0", "").Image()
		require.NoError(t, err)
		assert.Empty(t, img)
	})

	t.Run("unknown placeholder", func(t *testing.T) {
		o := tarotOracle(t)
		o.Spec().Images = "{colour}.png"
		_, err := NewValue(o, "0", "").Image()
		require.Error(t, err)
		assert.True(t, IsLookup(err))
	})
}

func TestValue_Update(t *testing.T) {
	o := tarotOracle(t)
	v := NewValue(o, "1", "")
	require.NoError(t, v.Update())

	o.spec = &Spec{Source: "tarot", Values: []ValueSpec{{ID: "0", Name: "The Fool"}}}

	err := v.Update()
	require.Error(t, err)
	assert.True(t, IsLookup(err))
	_, err = v.Name()
	assert.True(t, IsLookup(err))
}

func TestValue_Return(t *testing.T) {
	o := tarotOracle(t)
	v, err := o.Pick()
	require.NoError(t, err)
	require.Equal(t, 1, o.Source().Len())

	v.Return()
	assert.Equal(t, 2, o.Source().Len())
}

func TestValue_CycleState(t *testing.T) {
	o := tarotOracle(t)
	v := NewValue(o, "0", "upright")

	v.CycleState()
	assert.Equal(t, "reversed", v.State)
	v.CycleState()
	assert.Equal(t, "upright", v.State)

	v.State = "sideways"
	v.CycleState()
	assert.Equal(t, "upright", v.State)

	o.Spec().States = nil
	v.CycleState()
	assert.Empty(t, v.State)
}
