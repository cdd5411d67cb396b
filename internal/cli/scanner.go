package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirectoryScanner handles recursive directory scanning for Go files
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the provided directory arguments into the list
// of package directories that contain Go files. Go-style patterns like
// "./..." expand recursively; plain paths are taken as-is when they hold
// Go files.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, rootDir := range rootDirs {
		if baseDir, recursive := strings.CutSuffix(rootDir, "/..."); recursive {
			if baseDir == "" {
				baseDir = "."
			}
			found, err := s.walkForGoDirs(baseDir)
			if err != nil {
				return nil, err
			}
			for _, dir := range found {
				add(dir)
			}
			continue
		}

		cleanPath, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
		}
		ok, err := hasGoFiles(cleanPath)
		if err != nil {
			return nil, err
		}
		if ok {
			add(cleanPath)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// walkForGoDirs collects every directory under base containing Go files,
// skipping hidden directories, testdata, and vendor trees
func (s *DirectoryScanner) walkForGoDirs(base string) ([]string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", base, err)
	}

	var dirs []string
	err = filepath.WalkDir(absBase, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			return nil
		}
		if !entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if path != absBase && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
			name == "vendor" || name == "testdata") {
			return filepath.SkipDir
		}

		ok, err := hasGoFiles(path)
		if err != nil {
			return err
		}
		if ok {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", base, err)
	}

	return dirs, nil
}

// hasGoFiles reports whether the directory directly contains non-test,
// non-generated Go files
func hasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("directory does not exist: %s", dir)
		}
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || name == GeneratedFileName {
			continue
		}
		return true, nil
	}
	return false, nil
}
