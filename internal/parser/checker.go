package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"sort"

	"github.com/toyz/asyncwrap/internal/models"
)

// CheckSource re-runs the validator on every marked method in isolation,
// without transforming anything. This is the early-feedback path for the
// standalone marker: a clean method is left completely untouched, a dirty
// one reports its violations. The authoritative pass remains the block
// transformation.
func (p *Parser) CheckSource(filename, source string) ([]*models.ContractViolation, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return p.checkFile(file, filename), nil
}

// CheckDirectory validates every marked method found in the directory
func (p *Parser) CheckDirectory(path string) ([]*models.ContractViolation, error) {
	pkgs, err := parser.ParseDir(p.fileSet, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	var violations []*models.ContractViolation
	for _, pkg := range pkgs {
		// Stable file order keeps diagnostics deterministic across runs
		fileNames := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			fileNames = append(fileNames, name)
		}
		sort.Strings(fileNames)

		for _, fileName := range fileNames {
			violations = append(violations, p.checkFile(pkg.Files[fileName], fileName)...)
		}
	}
	return violations, nil
}

func (p *Parser) checkFile(file *ast.File, fileName string) []*models.ContractViolation {
	var violations []*models.ContractViolation
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		marked, found := p.wrapMarker(fn, fileName)
		violations = append(violations, found...)
		if marked && len(found) == 0 {
			violations = append(violations, p.ValidateMethod(fn, fileName)...)
		}
	}
	return violations
}
