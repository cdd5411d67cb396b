package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModParser provides utilities for parsing go.mod files
type GoModParser struct{}

// NewGoModParser creates a new go.mod parser
func NewGoModParser() *GoModParser {
	return &GoModParser{}
}

// ParseModuleName extracts the module name from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if !strings.HasSuffix(cleanPath, "go.mod") {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	// Parse using official modfile parser
	modFile, err := modfile.Parse(cleanPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in go.mod")
	}

	return modFile.Module.Mod.Path, nil
}

// FindGoModFile searches for go.mod starting from the given directory and
// walking up toward the filesystem root
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir := filepath.Clean(startDir)

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}
