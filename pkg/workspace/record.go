package workspace

import (
	"errors"
	"fmt"

	"github.com/dyluth/oracles/pkg/oracle"
)

// NotFoundError indicates a value that is not a member of the record it was
// discarded or returned from.
type NotFoundError struct {
	Record  string
	ValueID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("value '%s' not found in record '%s'", e.ValueID, e.Record)
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// Record is a named collection of drawn values, in draw order.
type Record struct {
	Name   string
	values []*oracle.Value
}

// NewRecord creates an empty record.
func NewRecord(name string) *Record {
	return &Record{Name: name}
}

// Values returns the record's values in draw order.
func (r *Record) Values() []*oracle.Value {
	return append([]*oracle.Value(nil), r.values...)
}

// Len returns the number of values in the record.
func (r *Record) Len() int {
	return len(r.values)
}

// Add appends a drawn value.
func (r *Record) Add(v *oracle.Value) {
	r.values = append(r.values, v)
}

// Discard removes v without returning it to its source.
func (r *Record) Discard(v *oracle.Value) error {
	return r.remove(v)
}

// Return removes v and puts its identifier back into its oracle's source.
func (r *Record) Return(v *oracle.Value) error {
	if err := r.remove(v); err != nil {
		return err
	}
	v.Return()
	return nil
}

// Clear returns every value to its source and empties the record.
func (r *Record) Clear() {
	for _, v := range r.values {
		v.Return()
	}
	r.values = nil
}

// Update re-resolves every value against its oracle's current spec.
// All values are checked; lookup failures are joined.
func (r *Record) Update() error {
	var errs []error
	for _, v := range r.values {
		if err := v.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Find returns the value with the given UID.
func (r *Record) Find(uid string) (*oracle.Value, bool) {
	for _, v := range r.values {
		if v.UID == uid {
			return v, true
		}
	}
	return nil, false
}

func (r *Record) remove(v *oracle.Value) error {
	for i, member := range r.values {
		if member == v {
			r.values = append(r.values[:i], r.values[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Record: r.Name, ValueID: v.ID}
}
