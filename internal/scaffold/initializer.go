package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dyluth/oracles/internal/config"
	"github.com/dyluth/oracles/pkg/oracle"
)

//go:embed templates
var templatesFS embed.FS

const templatesRoot = "templates"

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string // relative to the project directory
	Content     []byte
	Permissions os.FileMode
}

// Initialize creates the oracles project structure in dir.
// If force is true, it will remove existing oracles.yml, sources.yml and oracles/ first.
func Initialize(dir string, force bool) ([]FileInfo, error) {
	if force {
		if err := handleForce(dir); err != nil {
			return nil, err
		}
	}

	files, err := getTemplateFiles()
	if err != nil {
		return nil, err
	}

	if err := writeFiles(dir, files); err != nil {
		return nil, err
	}

	if err := validateCreatedFiles(dir); err != nil {
		return nil, err
	}

	return files, nil
}

// handleForce removes existing files if --force was specified
func handleForce(dir string) error {
	for _, name := range managedPaths {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

// getTemplateFiles reads every embedded template, keeping its relative path
func getTemplateFiles() ([]FileInfo, error) {
	var files []FileInfo
	err := fs.WalkDir(templatesFS, templatesRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}
		rel, err := filepath.Rel(templatesRoot, filepath.FromSlash(path))
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: rel, Content: content, Permissions: 0644})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// writeFiles writes all template files below dir, creating directories as needed
func writeFiles(dir string, files []FileInfo) error {
	for _, file := range files {
		path := filepath.Join(dir, file.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(file.Path), err)
		}
		if err := os.WriteFile(path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}
	return nil
}

// validateCreatedFiles loads what was written the same way a session would
func validateCreatedFiles(dir string) error {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return fmt.Errorf("created %s is invalid: %w", config.FileName, err)
	}

	catalog, err := oracle.LoadCatalog(cfg.SourcesPath())
	if err != nil {
		return fmt.Errorf("created source catalog is invalid: %w", err)
	}

	if _, err := oracle.NewBuilder(catalog, nil).LoadDir(cfg.OraclesDir()); err != nil {
		return fmt.Errorf("created oracle specs are invalid: %w", err)
	}
	return nil
}
