package oracle

import "github.com/google/uuid"

// Value is one drawn instance of an identifier. It holds no display data: every
// accessor resolves the identifier against the owning Oracle's current Spec, so
// a reloaded Spec changes how existing values render.
type Value struct {
	UID   string // unique per draw
	ID    string
	State string // empty when the oracle declares no states

	oracle *Oracle
}

// NewValue wraps id drawn from o.
func NewValue(o *Oracle, id, state string) *Value {
	return RestoreValue(o, uuid.NewString(), id, state)
}

// RestoreValue rebuilds a value with a known UID.
func RestoreValue(o *Oracle, uid, id, state string) *Value {
	return &Value{UID: uid, ID: id, State: state, oracle: o}
}

// Oracle returns the oracle the value was drawn from.
func (v *Value) Oracle() *Oracle {
	return v.oracle
}

// entry resolves the spec entry for the value's identifier.
func (v *Value) entry() (*ValueSpec, error) {
	e, ok := v.oracle.spec.Lookup(v.ID)
	if !ok {
		return nil, &LookupError{Oracle: v.oracle.Name(), ID: v.ID}
	}
	return e, nil
}

// Update re-resolves the value against the oracle's current spec.
// Called after every reload; a LookupError means the entry was removed.
func (v *Value) Update() error {
	_, err := v.entry()
	return err
}

// Name returns the entry's name, falling back to its id.
func (v *Value) Name() (string, error) {
	e, err := v.entry()
	if err != nil {
		return "", err
	}
	return e.DisplayName(), nil
}

// Description returns the entry's description.
func (v *Value) Description() (string, error) {
	e, err := v.entry()
	if err != nil {
		return "", err
	}
	return e.Description, nil
}

// Meaning returns meaning_<state> when the value has a state, else the plain meaning.
func (v *Value) Meaning() (string, error) {
	e, err := v.entry()
	if err != nil {
		return "", err
	}
	if v.State == "" {
		return e.Meaning, nil
	}
	m, ok := e.StateMeaning(v.State)
	if !ok {
		return "", &LookupError{Oracle: v.oracle.Name(), ID: v.ID, Field: meaningPrefix + v.State}
	}
	return m, nil
}

// Image expands the oracle's image template for this value. The template may
// reference {name}, {id} and {data[field]}. Returns "" when no template is set.
func (v *Value) Image() (string, error) {
	e, err := v.entry()
	if err != nil {
		return "", err
	}
	tmpl := v.oracle.Images()
	if tmpl == "" {
		return "", nil
	}
	img, err := expand(tmpl, func(name, key string) (string, bool) {
		switch {
		case name == "name" && key == "":
			return e.DisplayName(), true
		case name == "id" && key == "":
			return v.ID, true
		case name == "data" && key != "":
			return e.Field(key)
		}
		return "", false
	})
	if err != nil {
		return "", &LookupError{Oracle: v.oracle.Name(), ID: v.ID, Field: "image (" + err.Error() + ")"}
	}
	return img, nil
}

// Return puts the identifier back into the oracle's source.
func (v *Value) Return() {
	v.oracle.Return(v)
}

// CycleState moves to the next state declared by the oracle, wrapping around.
// A state no longer declared restarts at the first one.
func (v *Value) CycleState() {
	states := v.oracle.spec.States
	if len(states) == 0 {
		v.State = ""
		return
	}
	for i, s := range states {
		if s == v.State {
			v.State = states[(i+1)%len(states)]
			return
		}
	}
	v.State = states[0]
}
