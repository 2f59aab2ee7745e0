package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckExisting returns an error if dir already holds a scenario file
func CheckExisting(dir string) error {
	path := filepath.Join(dir, ScenarioFile)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("scenario already exists\n\nFound existing: %s\n\nUse 'picky init --force' to overwrite it", path)
	}

	return nil
}
