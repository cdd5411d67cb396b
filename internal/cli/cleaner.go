package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cleaner handles cleaning up generated files
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanGeneratedFiles removes every generated companion file from the
// specified directories and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removedFiles []string

	for _, dir := range directories {
		if err := c.cleanDirectory(dir, &removedFiles); err != nil {
			return removedFiles, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return removedFiles, nil
}

// cleanDirectory cleans a single directory argument, expanding "..."
func (c *Cleaner) cleanDirectory(dir string, removedFiles *[]string) error {
	if baseDir, recursive := strings.CutSuffix(dir, "/..."); recursive {
		if baseDir == "" {
			baseDir = "."
		}
		return filepath.WalkDir(baseDir, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				// Skip directories that don't exist or can't be accessed
				return nil
			}
			if entry.IsDir() {
				return c.cleanSingleDirectory(path, removedFiles)
			}
			return nil
		})
	}

	return c.cleanSingleDirectory(dir, removedFiles)
}

// cleanSingleDirectory removes the generated file from one directory
func (c *Cleaner) cleanSingleDirectory(dir string, removedFiles *[]string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	generatedFile := filepath.Join(dir, GeneratedFileName)

	if _, err := os.Stat(generatedFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to check file %s: %w", generatedFile, err)
	}

	if err := os.Remove(generatedFile); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", generatedFile, err)
	}

	*removedFiles = append(*removedFiles, generatedFile)
	return nil
}
