package oracle

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// placeholderName is used when an oracle has neither a spec name nor a file.
const placeholderName = "no name yet"

// Oracle is a Source plus the Spec describing its identifiers.
// The Oracle exclusively owns its Source.
type Oracle struct {
	ID   string // unique per built oracle
	Path string // file the spec was read from, empty if built in memory

	spec   *Spec
	source *Source
}

// New pairs source with spec and applies the ban list.
func New(source *Source, spec *Spec) *Oracle {
	o := &Oracle{
		ID:     uuid.NewString(),
		spec:   spec,
		source: source,
	}
	o.Update()
	return o
}

// Spec returns the current specification.
func (o *Oracle) Spec() *Spec {
	return o.spec
}

// Source returns the owned source.
func (o *Oracle) Source() *Source {
	return o.source
}

// Name resolves the display name: the spec name, else the file name without
// extension, else a placeholder.
func (o *Oracle) Name() string {
	if o.spec != nil && o.spec.Name != "" {
		return o.spec.Name
	}
	if o.Path != "" {
		base := filepath.Base(o.Path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return placeholderName
}

// Images returns the spec's image template, falling back to the source's.
func (o *Oracle) Images() string {
	if o.spec.Images != "" {
		return o.spec.Images
	}
	return o.source.images
}

// Remaining reports how many identifiers are left to draw.
func (o *Oracle) Remaining() Remaining {
	return o.source.Remaining()
}

// Pick draws a value. When the spec declares states, one is assigned at random.
// A drawn identifier without a spec entry is still consumed: the value is
// returned together with a LookupError so it can be kept and returned later.
func (o *Oracle) Pick() (*Value, error) {
	id, err := o.source.Pick()
	if err != nil {
		return nil, err
	}
	v := NewValue(o, id, o.randomState())
	return v, v.Update()
}

// PickN draws up to n values, stopping at the first error.
// Every value drawn, including one that failed its lookup, is returned.
func (o *Oracle) PickN(n int) ([]*Value, error) {
	values := make([]*Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := o.Pick()
		if v != nil {
			values = append(values, v)
		}
		if err != nil {
			return values, err
		}
	}
	return values, nil
}

// PickByID draws a specific identifier. It returns (nil, nil) when id is not
// currently available, which is a normal outcome for a user choice. Finite
// sources lose the identifier; infinite sources are untouched.
func (o *Oracle) PickByID(id string) (*Value, error) {
	if !o.source.Contains(id) {
		return nil, nil
	}
	v := NewValue(o, id, o.randomState())
	if err := v.Update(); err != nil {
		return nil, err
	}
	if o.source.finite {
		o.source.remove(id)
	}
	return v, nil
}

// Choices lists the identifiers that PickByID would accept, without duplicates.
func (o *Oracle) Choices() []string {
	seen := make(map[string]bool, len(o.source.values))
	choices := make([]string, 0, len(o.source.values))
	for _, id := range o.source.values {
		if seen[id] {
			continue
		}
		seen[id] = true
		choices = append(choices, id)
	}
	return choices
}

// Shuffle shuffles the source.
func (o *Oracle) Shuffle() {
	o.source.Shuffle()
}

// Return puts v's identifier back into the source unless the spec now bans it.
func (o *Oracle) Return(v *Value) {
	if o.spec.IsBanned(v.ID) {
		return
	}
	o.source.Return(v.ID)
}

// Update removes every banned identifier from the source. Safe to call repeatedly.
func (o *Oracle) Update() {
	for _, ban := range o.spec.BannedValues {
		o.source.removeAll(ban)
	}
}

func (o *Oracle) randomState() string {
	if len(o.spec.States) == 0 {
		return ""
	}
	return o.spec.States[o.source.rng.Intn(len(o.spec.States))]
}
