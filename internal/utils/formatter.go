package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

// FormatGoCode formats Go source code using the same logic as gofmt
func FormatGoCode(source []byte) ([]byte, error) {
	return format.Source(source)
}

// FormatGoCodeString formats Go source code from a string and returns a string
func FormatGoCodeString(source string) (string, error) {
	formatted, err := format.Source([]byte(source))
	if err != nil {
		// If formatting fails, try to parse to see if it's valid Go
		fset := token.NewFileSet()
		_, parseErr := parser.ParseFile(fset, "", source, parser.ParseComments)
		if parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
		}
		// If parsing works but formatting doesn't, return the original
		return source, err
	}
	return string(formatted), nil
}

// ProcessImports runs goimports on the source: unused imports are removed,
// missing ones for referenced packages are added, and the result is
// gofmt-formatted. filename only guides import resolution.
func ProcessImports(filename string, source []byte) ([]byte, error) {
	processed, err := imports.Process(filename, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to process imports for %s: %w", filename, err)
	}
	return processed, nil
}

// FormatAndWriteGoFile fixes imports, formats the code, and writes it out.
// When import processing fails the unprocessed code is still written so the
// problem can be inspected in place.
func FormatAndWriteGoFile(filename string, code string) error {
	processed, err := ProcessImports(filename, []byte(code))
	if err != nil {
		if writeErr := os.WriteFile(filename, []byte(code), 0644); writeErr != nil {
			return fmt.Errorf("failed to write unformatted code to %s: %w (imports error: %v)", filename, writeErr, err)
		}
		return err
	}

	return os.WriteFile(filename, processed, 0644)
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
