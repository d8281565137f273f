package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/dyluth/oracles/pkg/workspace"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 6 characters to balance usability with collision avoidance.
const MinShortIDLength = 6

// ValueMatch is a drawn value together with the record holding it.
type ValueMatch struct {
	Record *workspace.Record
	Value  *oracle.Value
}

// ResolveValue resolves a value UID or UID prefix across every record.
//
// The function handles three cases:
// 1. Input is already a full UUID (36 chars, 4 hyphens) - exact lookup
// 2. Input is too short (< 6 chars) - returns validation error
// 3. Input is a short prefix - scans all records and returns the unique match
func ResolveValue(ws *workspace.Workspace, shortID string) (ValueMatch, error) {
	if len(shortID) == 36 && strings.Count(shortID, "-") == 4 {
		r, v, ok := ws.FindValue(shortID)
		if !ok {
			return ValueMatch{}, &NotFoundError{Kind: "value", Ref: shortID}
		}
		return ValueMatch{Record: r, Value: v}, nil
	}

	if len(shortID) < MinShortIDLength {
		return ValueMatch{}, fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	var matches []ValueMatch
	for _, r := range ws.Records() {
		for _, v := range r.Values() {
			if strings.HasPrefix(v.UID, shortID) {
				matches = append(matches, ValueMatch{Record: r, Value: v})
			}
		}
	}

	switch len(matches) {
	case 0:
		return ValueMatch{}, &NotFoundError{Kind: "value", Ref: shortID}
	case 1:
		return matches[0], nil
	default:
		uids := make([]string, len(matches))
		for i, m := range matches {
			uids[i] = m.Value.UID
		}
		return ValueMatch{}, &AmbiguousError{Kind: "value", Ref: shortID, Matches: uids}
	}
}

// ResolveOracle finds an oracle by 1-based position or by name. Exact names
// win over case-insensitive ones.
func ResolveOracle(oracles []*oracle.Oracle, ref string) (*oracle.Oracle, error) {
	names := make([]string, len(oracles))
	for i, o := range oracles {
		names[i] = o.Name()
	}
	i, err := resolveNamed("oracle", names, ref)
	if err != nil {
		return nil, err
	}
	return oracles[i], nil
}

// ResolveRecord finds a record of ws by 1-based position or by name.
func ResolveRecord(ws *workspace.Workspace, ref string) (*workspace.Record, error) {
	records := ws.Records()
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	i, err := resolveNamed("record", names, ref)
	if err != nil {
		return nil, err
	}
	return records[i], nil
}

func resolveNamed(kind string, names []string, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(names) {
			return -1, &NotFoundError{Kind: kind, Ref: ref}
		}
		return n - 1, nil
	}

	for _, fold := range []bool{false, true} {
		var found []int
		for i, name := range names {
			if name == ref || (fold && strings.EqualFold(name, ref)) {
				found = append(found, i)
			}
		}
		switch {
		case len(found) == 1:
			return found[0], nil
		case len(found) > 1:
			matches := make([]string, len(found))
			for j, i := range found {
				matches[j] = fmt.Sprintf("%d. %s", i+1, names[i])
			}
			return -1, &AmbiguousError{Kind: kind, Ref: ref, Matches: matches}
		}
	}
	return -1, &NotFoundError{Kind: kind, Ref: ref}
}

// NotFoundError indicates nothing matched the reference.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found matching '%s'", e.Kind, e.Ref)
}

// AmbiguousError indicates multiple candidates matched the reference.
type AmbiguousError struct {
	Kind    string
	Ref     string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s '%s' matches %d entries", e.Kind, e.Ref, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous references.
// Lists all matches (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	msg := fmt.Sprintf("Error: ambiguous %s '%s' matches %d entries:\n", err.Kind, err.Ref, len(err.Matches))

	// List up to 10 matches
	displayCount := len(err.Matches)
	if displayCount > 10 {
		displayCount = 10
	}

	for i := 0; i < displayCount; i++ {
		msg += fmt.Sprintf("  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		msg += fmt.Sprintf("  ...and %d more\n", len(err.Matches)-10)
	}

	if err.Kind == "value" {
		msg += "\nUse a longer prefix to uniquely identify the value."
	} else {
		msg += fmt.Sprintf("\nUse the %s's number instead.", err.Kind)
	}
	return msg
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
