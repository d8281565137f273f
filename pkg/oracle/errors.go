package oracle

import (
	"errors"
	"fmt"
)

// EmptyError indicates a pick from a finite source with nothing left.
type EmptyError struct {
	Source string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("source '%s' is empty", e.Source)
}

// LookupError indicates that a value's identifier has no entry in its oracle's
// spec, or that the entry lacks the requested field. It usually follows a
// reload that removed the entry.
type LookupError struct {
	Oracle string
	ID     string
	Field  string // empty when the whole entry is missing
}

func (e *LookupError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("oracle '%s': value '%s' has no %s", e.Oracle, e.ID, e.Field)
	}
	return fmt.Sprintf("oracle '%s': no spec entry for value '%s'", e.Oracle, e.ID)
}

// SpecLoadError indicates a missing or malformed spec or catalog file.
type SpecLoadError struct {
	Path string
	Err  error
}

func (e *SpecLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *SpecLoadError) Unwrap() error {
	return e.Err
}

// IsEmpty checks if an error is an EmptyError.
func IsEmpty(err error) bool {
	var target *EmptyError
	return errors.As(err, &target)
}

// IsLookup checks if an error is a LookupError.
func IsLookup(err error) bool {
	var target *LookupError
	return errors.As(err, &target)
}

// IsSpecLoad checks if an error is a SpecLoadError.
func IsSpecLoad(err error) bool {
	var target *SpecLoadError
	return errors.As(err, &target)
}
