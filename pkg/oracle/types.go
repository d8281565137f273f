package oracle

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SourceTemplate describes how to expand a Source. Entries live in the shared
// source catalog, keyed by source name.
type SourceTemplate struct {
	Name         string   `yaml:"name" json:"name"`
	Suits        []string `yaml:"suits,omitempty" json:"suits,omitempty"`
	Values       []string `yaml:"values,omitempty" json:"values,omitempty"`
	Template     string   `yaml:"template,omitempty" json:"template,omitempty"` // e.g. "{value} of {suit}"
	CustomValues []string `yaml:"custom_values" json:"custom_values"`
	Finite       bool     `yaml:"finite" json:"finite"`
	Images       string   `yaml:"images,omitempty" json:"images,omitempty"`
}

// Validate checks a template registered under key.
func (t *SourceTemplate) Validate(key string) error {
	if len(t.Suits) > 0 && len(t.Values) > 0 && t.Template == "" {
		return fmt.Errorf("source '%s': template is required when suits and values are set", key)
	}
	if err := checkPlaceholders(t.Template, "suit", "value"); err != nil {
		return fmt.Errorf("source '%s': %w", key, err)
	}
	if len(t.Suits)*len(t.Values)+len(t.CustomValues) == 0 {
		return fmt.Errorf("source '%s': no values defined", key)
	}
	return nil
}

// Catalog is the set of source templates shared by every Oracle.
// It is loaded once at startup and passed to the Builder by reference.
type Catalog struct {
	Path      string
	Templates map[string]SourceTemplate
}

// NewCatalog builds a catalog from templates, defaulting each template name to its key.
func NewCatalog(templates map[string]SourceTemplate) (*Catalog, error) {
	c := &Catalog{Templates: make(map[string]SourceTemplate, len(templates))}
	for key, t := range templates {
		if err := t.Validate(key); err != nil {
			return nil, err
		}
		if t.Name == "" {
			t.Name = key
		}
		c.Templates[key] = t
	}
	return c, nil
}

// Template returns the template registered under name.
func (c *Catalog) Template(name string) (SourceTemplate, bool) {
	t, ok := c.Templates[name]
	return t, ok
}

// Names returns the template keys in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec is the declarative specification of an Oracle, one document per file.
type Spec struct {
	Source       string      `yaml:"source" json:"source"` // key into the source catalog
	Name         string      `yaml:"name,omitempty" json:"name,omitempty"`
	BannedValues []string    `yaml:"banned_values" json:"banned_values"`
	Values       []ValueSpec `yaml:"values" json:"values"`
	States       []string    `yaml:"states,omitempty" json:"states,omitempty"`
	Images       string      `yaml:"images,omitempty" json:"images,omitempty"`
}

// Validate checks the fields every Spec needs.
func (s *Spec) Validate() error {
	if s.Source == "" {
		return fmt.Errorf("source is required")
	}
	for i, v := range s.Values {
		if v.ID == "" && v.Name == "" {
			return fmt.Errorf("values[%d]: id or name is required", i)
		}
	}
	seen := make(map[string]bool, len(s.States))
	for _, state := range s.States {
		if state == "" {
			return fmt.Errorf("states: empty state name")
		}
		if seen[state] {
			return fmt.Errorf("states: duplicate state '%s'", state)
		}
		seen[state] = true
	}
	return nil
}

// Lookup returns the first entry whose name or id equals id.
func (s *Spec) Lookup(id string) (*ValueSpec, bool) {
	for i := range s.Values {
		if s.Values[i].Name == id || s.Values[i].ID == id {
			return &s.Values[i], true
		}
	}
	return nil, false
}

// IsBanned reports whether id is on the ban list.
func (s *Spec) IsBanned(id string) bool {
	for _, ban := range s.BannedValues {
		if ban == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the spec.
func (s *Spec) Clone() *Spec {
	c := *s
	c.BannedValues = append([]string(nil), s.BannedValues...)
	c.States = append([]string(nil), s.States...)
	c.Values = make([]ValueSpec, len(s.Values))
	for i, v := range s.Values {
		c.Values[i] = v
		if v.Extra != nil {
			c.Values[i].Extra = make(map[string]string, len(v.Extra))
			for k, val := range v.Extra {
				c.Values[i].Extra[k] = val
			}
		}
	}
	return &c
}

// Skeleton returns a spec listing every identifier of the source with empty
// display data. It is the starting point for writing a new oracle file.
func Skeleton(name string, t SourceTemplate) (*Spec, error) {
	src, err := BuildSource(t, nil)
	if err != nil {
		return nil, err
	}
	spec := &Spec{
		Source:       name,
		BannedValues: []string{},
		Values:       make([]ValueSpec, 0, src.Len()),
	}
	for _, id := range src.values {
		spec.Values = append(spec.Values, ValueSpec{ID: id, Name: id})
	}
	return spec, nil
}

const meaningPrefix = "meaning_"

// ValueSpec holds the display data for one identifier. Keys that are not
// recognised fields, such as per-state meanings ("meaning_reversed"), are kept
// in Extra.
type ValueSpec struct {
	ID          string            `yaml:"id,omitempty"`
	Name        string            `yaml:"name,omitempty"`
	Description string            `yaml:"description"`
	Meaning     string            `yaml:"meaning"`
	Extra       map[string]string `yaml:",inline"`
}

// DisplayName is the name, or the id when no name is set.
func (v *ValueSpec) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return v.ID
}

// StateMeaning returns the meaning declared for state.
func (v *ValueSpec) StateMeaning(state string) (string, bool) {
	m, ok := v.Extra[meaningPrefix+state]
	return m, ok
}

// Field returns a named field, including Extra keys. Used by image templates.
func (v *ValueSpec) Field(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "id":
		return v.ID, true
	case "name":
		return v.Name, true
	case "description":
		return v.Description, true
	case "meaning":
		return v.Meaning, true
	}
	val, ok := v.Extra[key]
	return val, ok
}

// MarshalJSON flattens Extra next to the known fields, matching the file layout.
func (v ValueSpec) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(v.Extra)+4)
	for k, val := range v.Extra {
		m[k] = val
	}
	if v.ID != "" {
		m["id"] = v.ID
	}
	if v.Name != "" {
		m["name"] = v.Name
	}
	m["description"] = v.Description
	m["meaning"] = v.Meaning
	return json.Marshal(m)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *ValueSpec) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*v = ValueSpec{
		ID:          m["id"],
		Name:        m["name"],
		Description: m["description"],
		Meaning:     m["meaning"],
	}
	for _, k := range []string{"id", "name", "description", "meaning"} {
		delete(m, k)
	}
	if len(m) > 0 {
		v.Extra = m
	}
	return nil
}
