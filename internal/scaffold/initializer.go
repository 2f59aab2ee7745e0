package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/picky/internal/config"
	"github.com/dyluth/picky/internal/printer"
)

//go:embed templates/*
var templatesFS embed.FS

// ScenarioFile is the file created by Initialize
const ScenarioFile = "picky.yml"

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes an example scenario into dir and returns its path.
// If force is true, an existing scenario file is replaced.
func Initialize(dir string, force bool) (string, error) {
	if force {
		if err := handleForce(dir); err != nil {
			return "", err
		}
	} else if err := CheckExisting(dir); err != nil {
		return "", err
	}

	files, err := getTemplateFiles(dir)
	if err != nil {
		return "", err
	}

	if err := writeFiles(files); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ScenarioFile)
	if err := validateCreatedFiles(path); err != nil {
		return "", err
	}

	return path, nil
}

// handleForce removes an existing scenario file
func handleForce(dir string) error {
	path := filepath.Join(dir, ScenarioFile)
	if _, err := os.Stat(path); err == nil {
		printer.Warning("Removing existing %s...\n", ScenarioFile)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", ScenarioFile, err)
		}
	}

	return nil
}

// getTemplateFiles reads all template files
func getTemplateFiles(dir string) ([]FileInfo, error) {
	scenario, err := templatesFS.ReadFile("templates/picky.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", ScenarioFile, err)
	}

	return []FileInfo{{
		Path:        filepath.Join(dir, ScenarioFile),
		Content:     scenario,
		Permissions: 0644,
	}}, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles loads the written scenario with the same rules as 'picky run'
func validateCreatedFiles(path string) error {
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("created %s is not a valid scenario: %w", ScenarioFile, err)
	}

	return nil
}

// PrintSuccess prints the success message with the created file
func PrintSuccess(path string) {
	printer.Success("Created example scenario\n")
	printer.Println("\nCreated:")
	printer.Printf("  ✓ %s\n", path)
	printer.Println("\nNext steps:")
	printer.Println("  1. Edit the containers and steps to model your selection")
	printer.Printf("  2. Check it with 'picky validate -f %s'\n", path)
	printer.Printf("  3. Replay it with 'picky run -f %s'\n", path)
}
