package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/oracles/internal/config"
)

// managedPaths are the top-level entries init creates.
var managedPaths = []string{config.FileName, "sources.yml", "oracles"}

// CheckExisting checks if dir already holds an oracles project.
// Returns an error if it does, nil otherwise
func CheckExisting(dir string) error {
	var existingFiles []string

	for _, name := range managedPaths {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if info.IsDir() {
			name += "/"
		}
		existingFiles = append(existingFiles, name)
	}

	if len(existingFiles) > 0 {
		errMsg := "project already initialized\n\nFound existing"
		if len(existingFiles) == 1 {
			errMsg += fmt.Sprintf(": %s\n", existingFiles[0])
		} else {
			errMsg += " files:\n"
			for _, file := range existingFiles {
				errMsg += fmt.Sprintf("  - %s\n", file)
			}
		}
		errMsg += "\nUse 'oracles init --force' to reinitialize (this will overwrite existing configuration)"

		return fmt.Errorf("%s", errMsg)
	}

	return nil
}
