package oracle

import (
	"fmt"
	"strconv"
)

// Source is a pool of drawable identifiers.
// Finite sources deplete on Pick and are refilled by Return; infinite sources
// resample from a fixed list.
type Source struct {
	name     string
	values   []string
	total    int
	finite   bool
	shuffled bool
	images   string
	rng      Randomizer
}

// SourceState is the persisted form of a Source.
type SourceState struct {
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Total    int      `json:"total"`
	Finite   bool     `json:"finite"`
	Shuffled bool     `json:"shuffled"`
	Images   string   `json:"images,omitempty"`
}

// NewSource creates a source over values. Total is fixed to len(values).
func NewSource(name string, values []string, finite bool, rng Randomizer) *Source {
	return &Source{
		name:   name,
		values: append([]string(nil), values...),
		total:  len(values),
		finite: finite,
		rng:    orGlobal(rng),
	}
}

// RestoreSource rebuilds a source from its persisted state.
func RestoreSource(st SourceState, rng Randomizer) (*Source, error) {
	if len(st.Values) > st.Total {
		return nil, fmt.Errorf("source '%s': %d values exceed total %d", st.Name, len(st.Values), st.Total)
	}
	return &Source{
		name:     st.Name,
		values:   append([]string(nil), st.Values...),
		total:    st.Total,
		finite:   st.Finite,
		shuffled: st.Finite && st.Shuffled,
		images:   st.Images,
		rng:      orGlobal(rng),
	}, nil
}

// State returns a copy of the source's state for persistence.
func (s *Source) State() SourceState {
	return SourceState{
		Name:     s.name,
		Values:   append([]string{}, s.values...),
		Total:    s.total,
		Finite:   s.finite,
		Shuffled: s.shuffled,
		Images:   s.images,
	}
}

func (s *Source) Name() string     { return s.name }
func (s *Source) Total() int       { return s.total }
func (s *Source) Len() int         { return len(s.values) }
func (s *Source) Finite() bool     { return s.finite }
func (s *Source) Shuffled() bool   { return s.shuffled }
func (s *Source) Images() string   { return s.images }
func (s *Source) Values() []string { return append([]string(nil), s.values...) }

// Contains reports whether id is currently drawable.
func (s *Source) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

// Pick draws an identifier. Infinite sources return a random element without
// removing it; finite sources remove and return the first element.
func (s *Source) Pick() (string, error) {
	if len(s.values) == 0 {
		return "", &EmptyError{Source: s.name}
	}
	if !s.finite {
		return s.values[s.rng.Intn(len(s.values))], nil
	}
	id := s.values[0]
	s.values = s.values[1:]
	return id, nil
}

// Shuffle permutes a finite source in place.
func (s *Source) Shuffle() {
	if !s.finite {
		return
	}
	s.rng.Shuffle(len(s.values), func(i, j int) {
		s.values[i], s.values[j] = s.values[j], s.values[i]
	})
	s.shuffled = true
}

// Return appends id to the end of a finite source.
func (s *Source) Return(id string) {
	if !s.finite || len(s.values) >= s.total {
		return
	}
	s.values = append(s.values, id)
}

// Remaining describes how many identifiers are left.
func (s *Source) Remaining() Remaining {
	return Remaining{Finite: s.finite, Count: len(s.values), Total: s.total}
}

func (s *Source) indexOf(id string) int {
	for i, v := range s.values {
		if v == id {
			return i
		}
	}
	return -1
}

// remove deletes the first occurrence of id.
func (s *Source) remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.values = append(s.values[:i], s.values[i+1:]...)
	return true
}

// removeAll deletes every occurrence of id and returns how many were removed.
func (s *Source) removeAll(id string) int {
	kept := s.values[:0]
	removed := 0
	for _, v := range s.values {
		if v == id {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	s.values = kept
	return removed
}

// Remaining is the count of drawable identifiers of a source. Infinite sources
// have no meaningful count.
type Remaining struct {
	Finite bool
	Count  int
	Total  int
}

func (r Remaining) String() string {
	if !r.Finite {
		return "∞"
	}
	return strconv.Itoa(r.Count) + "/" + strconv.Itoa(r.Total)
}
