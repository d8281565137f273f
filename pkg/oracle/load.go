package oracle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// specExtensions are the file types read as spec documents.
var specExtensions = []string{".yml", ".yaml", ".json"}

// decode unmarshals data as JSON or YAML depending on the file extension.
func decode(path string, data []byte, out any) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}

// LoadCatalog reads the source template catalog, a document keyed by source name.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SpecLoadError{Path: path, Err: err}
	}

	var templates map[string]SourceTemplate
	if err := decode(path, data, &templates); err != nil {
		return nil, &SpecLoadError{Path: path, Err: fmt.Errorf("failed to parse catalog: %w", err)}
	}
	if len(templates) == 0 {
		return nil, &SpecLoadError{Path: path, Err: fmt.Errorf("no sources defined")}
	}

	catalog, err := NewCatalog(templates)
	if err != nil {
		return nil, &SpecLoadError{Path: path, Err: err}
	}
	catalog.Path = path
	return catalog, nil
}

// LoadSpec reads and validates one oracle spec file.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SpecLoadError{Path: path, Err: err}
	}

	var spec Spec
	if err := decode(path, data, &spec); err != nil {
		return nil, &SpecLoadError{Path: path, Err: fmt.Errorf("failed to parse spec: %w", err)}
	}
	if err := spec.Validate(); err != nil {
		return nil, &SpecLoadError{Path: path, Err: fmt.Errorf("invalid spec: %w", err)}
	}
	return &spec, nil
}

// SpecFiles lists the spec documents directly inside dir, sorted by name.
func SpecFiles(dir string) ([]string, error) {
	var paths []string
	for _, ext := range specExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}
