// Package workspace holds the user's working state: the oracles added to it and
// the records values are drawn into. A Workspace is the unit that is persisted.
package workspace

import (
	"errors"
	"fmt"

	"github.com/dyluth/oracles/pkg/oracle"
)

const (
	// DefaultName is the name of a fresh workspace
	DefaultName = "Oracles"

	// DefaultRecordName is the record every fresh or reset workspace starts with
	DefaultRecordName = "Values"
)

var (
	// ErrLastRecord is returned when removing the only record
	ErrLastRecord = errors.New("cannot remove the last record")

	// ErrOracleNotFound is returned for an oracle that is not part of the workspace
	ErrOracleNotFound = errors.New("oracle not in workspace")

	// ErrRecordNotFound is returned for a record that is not part of the workspace
	ErrRecordNotFound = errors.New("record not in workspace")
)

// Workspace owns its oracles and records. It always has at least one record
// and a valid selected record.
type Workspace struct {
	Name string

	defaultRecord string
	oracles       []*oracle.Oracle
	records       []*Record
	selected      int
	builder       *oracle.Builder
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithDefaultRecord overrides the name of the record created on reset.
func WithDefaultRecord(name string) Option {
	return func(w *Workspace) {
		if name != "" {
			w.defaultRecord = name
		}
	}
}

// New creates a workspace with a single default record. The builder is used to
// copy oracles into the workspace and to reload them.
func New(name string, b *oracle.Builder, opts ...Option) *Workspace {
	w := &Workspace{
		Name:          name,
		defaultRecord: DefaultRecordName,
		builder:       b,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.records = []*Record{NewRecord(w.defaultRecord)}
	return w
}

// Oracles returns the active oracles in the order they were added.
func (w *Workspace) Oracles() []*oracle.Oracle {
	return append([]*oracle.Oracle(nil), w.oracles...)
}

// Records returns the records in creation order.
func (w *Workspace) Records() []*Record {
	return append([]*Record(nil), w.records...)
}

// Selected returns the record draws go into.
func (w *Workspace) Selected() *Record {
	return w.records[w.selected]
}

// SelectedIndex returns the index of the selected record.
func (w *Workspace) SelectedIndex() int {
	return w.selected
}

// Select makes the record at index i the target for draws.
func (w *Workspace) Select(i int) error {
	if i < 0 || i >= len(w.records) {
		return fmt.Errorf("record index %d out of range (have %d records)", i, len(w.records))
	}
	w.selected = i
	return nil
}

// SelectRecord makes r the target for draws.
func (w *Workspace) SelectRecord(r *Record) error {
	i := w.recordIndex(r)
	if i < 0 {
		return ErrRecordNotFound
	}
	w.selected = i
	return nil
}

// Rename sets the workspace name.
func (w *Workspace) Rename(name string) {
	w.Name = name
}

// AddNewOracle appends a fresh copy of o with a full source. The workspace copy
// never shares source state with o.
func (w *Workspace) AddNewOracle(o *oracle.Oracle) (*oracle.Oracle, error) {
	fresh, err := w.builder.Rebuild(o)
	if err != nil {
		return nil, fmt.Errorf("failed to add oracle '%s': %w", o.Name(), err)
	}
	w.oracles = append(w.oracles, fresh)
	return fresh, nil
}

// RemoveOracle drops o from the workspace. Values already drawn from it stay in
// their records.
func (w *Workspace) RemoveOracle(o *oracle.Oracle) error {
	for i, member := range w.oracles {
		if member == o {
			w.oracles = append(w.oracles[:i], w.oracles[i+1:]...)
			return nil
		}
	}
	return ErrOracleNotFound
}

// AddNewRecord appends an empty record.
func (w *Workspace) AddNewRecord(name string) *Record {
	r := NewRecord(name)
	w.records = append(w.records, r)
	return r
}

// RemoveRecord returns every value of r to its source, removes r and selects
// the first record.
func (w *Workspace) RemoveRecord(r *Record) error {
	i := w.recordIndex(r)
	if i < 0 {
		return ErrRecordNotFound
	}
	if len(w.records) == 1 {
		return ErrLastRecord
	}
	r.Clear()
	w.records = append(w.records[:i], w.records[i+1:]...)
	w.selected = 0
	return nil
}

// ClearRecord returns every value of r to its source.
func (w *Workspace) ClearRecord(r *Record) error {
	if w.recordIndex(r) < 0 {
		return ErrRecordNotFound
	}
	r.Clear()
	return nil
}

// RenameRecord renames r.
func (w *Workspace) RenameRecord(r *Record, name string) error {
	if w.recordIndex(r) < 0 {
		return ErrRecordNotFound
	}
	r.Name = name
	return nil
}

// Reset drops every oracle and record, leaving a single empty default record.
func (w *Workspace) Reset() {
	w.oracles = nil
	w.records = []*Record{NewRecord(w.defaultRecord)}
	w.selected = 0
}

// Draw picks n values from o into r. Values drawn before an error are kept in r.
func (w *Workspace) Draw(r *Record, o *oracle.Oracle, n int) ([]*oracle.Value, error) {
	if w.recordIndex(r) < 0 {
		return nil, ErrRecordNotFound
	}
	values, err := o.PickN(n)
	for _, v := range values {
		r.Add(v)
	}
	return values, err
}

// Pick draws one value from o into the selected record. A value whose lookup
// failed is still added, so it can be returned or discarded.
func (w *Workspace) Pick(o *oracle.Oracle) (*oracle.Value, error) {
	v, err := o.Pick()
	if v != nil {
		w.Selected().Add(v)
	}
	return v, err
}

// Choose draws the identifier id from o into r. It returns (nil, nil) when id
// is not available.
func (w *Workspace) Choose(r *Record, o *oracle.Oracle, id string) (*oracle.Value, error) {
	if w.recordIndex(r) < 0 {
		return nil, ErrRecordNotFound
	}
	v, err := o.PickByID(id)
	if err != nil || v == nil {
		return nil, err
	}
	r.Add(v)
	return v, nil
}

// FindValue locates a drawn value by UID.
func (w *Workspace) FindValue(uid string) (*Record, *oracle.Value, bool) {
	for _, r := range w.records {
		if v, ok := r.Find(uid); ok {
			return r, v, true
		}
	}
	return nil, nil, false
}

// Update reloads every oracle from disk, including removed oracles that drawn
// values still point at, then re-resolves every drawn value. All failures are
// collected; the reload of one oracle does not stop the others.
func (w *Workspace) Update() error {
	var errs []error
	for _, o := range w.referencedOracles() {
		if err := w.builder.Update(o); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range w.records {
		if err := r.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// referencedOracles lists the active oracles followed by any oracle reachable
// only through a drawn value.
func (w *Workspace) referencedOracles() []*oracle.Oracle {
	seen := make(map[*oracle.Oracle]bool)
	var all []*oracle.Oracle
	add := func(o *oracle.Oracle) {
		if !seen[o] {
			seen[o] = true
			all = append(all, o)
		}
	}
	for _, o := range w.oracles {
		add(o)
	}
	for _, r := range w.records {
		for _, v := range r.values {
			add(v.Oracle())
		}
	}
	return all
}

func (w *Workspace) recordIndex(r *Record) int {
	for i, member := range w.records {
		if member == r {
			return i
		}
	}
	return -1
}
