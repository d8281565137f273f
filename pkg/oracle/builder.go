package oracle

import (
	"errors"
	"fmt"
)

// BuildSource expands a template into a Source: every suit crossed with every
// value (suits-major) formatted through the template, followed by the custom
// values. The template is validated first.
func BuildSource(t SourceTemplate, rng Randomizer) (*Source, error) {
	if err := t.Validate(t.Name); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(t.Suits)*len(t.Values)+len(t.CustomValues))
	for _, suit := range t.Suits {
		for _, value := range t.Values {
			id, err := expand(t.Template, func(name, key string) (string, bool) {
				switch name {
				case "suit":
					return suit, key == ""
				case "value":
					return value, key == ""
				}
				return "", false
			})
			if err != nil {
				return nil, fmt.Errorf("source '%s': %w", t.Name, err)
			}
			values = append(values, id)
		}
	}
	values = append(values, t.CustomValues...)

	src := NewSource(t.Name, values, t.Finite, rng)
	src.images = t.Images
	return src, nil
}

// Builder materializes Oracles from specs using the shared source catalog.
type Builder struct {
	catalog *Catalog
	rng     Randomizer
}

// NewBuilder creates a builder over catalog. A nil rng uses math/rand's global source.
func NewBuilder(catalog *Catalog, rng Randomizer) *Builder {
	return &Builder{catalog: catalog, rng: orGlobal(rng)}
}

// Catalog returns the source catalog the builder reads from.
func (b *Builder) Catalog() *Catalog {
	return b.catalog
}

// BuildSource expands t with the builder's randomizer.
func (b *Builder) BuildSource(t SourceTemplate) (*Source, error) {
	return BuildSource(t, b.rng)
}

// Build creates an oracle with a fresh, full source for spec.
func (b *Builder) Build(spec *Spec) (*Oracle, error) {
	t, ok := b.catalog.Template(spec.Source)
	if !ok {
		return nil, fmt.Errorf("unknown source '%s'", spec.Source)
	}
	src, err := b.BuildSource(t)
	if err != nil {
		return nil, err
	}
	return New(src, spec), nil
}

// BuildFromFile reads a spec file and builds its oracle, remembering the path
// for later reloads.
func (b *Builder) BuildFromFile(path string) (*Oracle, error) {
	spec, err := LoadSpec(path)
	if err != nil {
		return nil, err
	}
	o, err := b.Build(spec)
	if err != nil {
		return nil, &SpecLoadError{Path: path, Err: err}
	}
	o.Path = path
	return o, nil
}

// LoadDir builds an oracle for every spec file in dir, in file name order.
// Files that fail to load are skipped and reported in the joined error.
func (b *Builder) LoadDir(dir string) ([]*Oracle, error) {
	paths, err := SpecFiles(dir)
	if err != nil {
		return nil, err
	}
	var (
		oracles []*Oracle
		errs    []error
	)
	for _, path := range paths {
		o, err := b.BuildFromFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		oracles = append(oracles, o)
	}
	return oracles, errors.Join(errs...)
}

// Update reloads o's spec from disk. Only the spec and the source's image
// template are carried over: the source keeps its draw state, then the ban list
// is applied again. Oracles built in memory have nothing to reload.
func (b *Builder) Update(o *Oracle) error {
	if o.Path == "" {
		return nil
	}
	fresh, err := b.BuildFromFile(o.Path)
	if err != nil {
		return err
	}
	o.source.images = fresh.source.images
	o.spec = fresh.spec
	o.Update()
	return nil
}

// Rebuild returns an independent copy of o with a full, fresh source.
func (b *Builder) Rebuild(o *Oracle) (*Oracle, error) {
	fresh, err := b.Build(o.spec.Clone())
	if err != nil {
		return nil, err
	}
	fresh.Path = o.Path
	return fresh, nil
}

// Restore rebuilds a persisted oracle around its saved source state.
func (b *Builder) Restore(id, path string, spec *Spec, st SourceState) (*Oracle, error) {
	if spec == nil {
		return nil, fmt.Errorf("oracle %s: missing spec", id)
	}
	src, err := RestoreSource(st, b.rng)
	if err != nil {
		return nil, err
	}
	o := New(src, spec)
	if id != "" {
		o.ID = id
	}
	o.Path = path
	return o, nil
}
