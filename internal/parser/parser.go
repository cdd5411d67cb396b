package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"

	"github.com/toyz/asyncwrap/internal/annotations"
	"github.com/toyz/asyncwrap/internal/models"
)

// Parser scans Go source for asyncwrap annotations and builds the block
// metadata the transformer consumes.
type Parser struct {
	fileSet    *token.FileSet
	directives *annotations.DirectiveParser
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	return &Parser{
		fileSet:    token.NewFileSet(),
		directives: annotations.NewDirectiveParser(),
	}
}

// FileSet exposes the parser's position table for rendering locations
func (p *Parser) FileSet() *token.FileSet {
	return p.fileSet
}

// ParseSource parses source code from a string, mainly for testing
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}

	fileMap := map[string]*ast.File{filename: file}
	if err := p.collectBlocks(metadata, fileMap); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ParseDirectory scans the specified directory for .go files and extracts
// every annotated block. Exactly one package per directory is expected.
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	pkgs, err := parser.ParseDir(p.fileSet, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, astPkg := range pkgs {
		pkg = astPkg
		packageName = name
	}

	metadata := &models.PackageMetadata{
		PackageName: packageName,
		PackagePath: path,
	}

	if err := p.collectBlocks(metadata, pkg.Files); err != nil {
		return nil, err
	}

	return metadata, nil
}

// collectBlocks walks every file, first finding companion-annotated types,
// then attaching each marked method to its block in declaration order.
func (p *Parser) collectBlocks(metadata *models.PackageMetadata, files map[string]*ast.File) error {
	fileNames := make([]string, 0, len(files))
	for name := range files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	blocksByType := make(map[string]*models.BlockMetadata)

	// First pass: companion annotations on type declarations
	for _, fileName := range fileNames {
		if err := p.findAnnotatedTypes(files[fileName], fileName, metadata, blocksByType); err != nil {
			return err
		}
	}

	// Second pass: marked methods, validated and extracted per block
	for _, fileName := range fileNames {
		p.findMarkedMethods(files[fileName], fileName, metadata, blocksByType)
	}

	return nil
}

// findAnnotatedTypes registers a block for every type declaration carrying
// a companion annotation. A malformed configuration aborts that block's
// expansion: the violation is recorded and its methods are never processed.
func (p *Parser) findAnnotatedTypes(file *ast.File, fileName string, metadata *models.PackageMetadata, blocksByType map[string]*models.BlockMetadata) error {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			// Grouped declarations carry their annotation per spec; the
			// declaration comment only binds in the single-spec form, so a
			// comment above `type (...)` never fans out to every member.
			doc := typeSpec.Doc
			if doc == nil && !genDecl.Lparen.IsValid() {
				doc = genDecl.Doc
			}
			if doc == nil {
				continue
			}

			for _, comment := range doc.List {
				if !annotations.IsDirective(comment.Text) {
					continue
				}

				location := p.location(fileName, comment.Pos())
				directive, err := p.directives.ParseDirective(comment.Text, location)
				if err != nil {
					// Configuration parsing is all-or-nothing: record the
					// violation and keep the block companion-less.
					block := &models.BlockMetadata{
						StructName: typeSpec.Name.Name,
						FileName:   fileName,
						Line:       location.Line,
						Violations: []*models.ContractViolation{configViolation(err, location)},
					}
					metadata.Blocks = append(metadata.Blocks, block)
					blocksByType[typeSpec.Name.Name] = block
					continue
				}

				if directive.Type != annotations.CompanionAnnotation {
					continue
				}

				strategy, err := models.ParseStrategy(directive.Companion.Strategy)
				if err != nil {
					return fmt.Errorf("internal: validated strategy failed to convert: %w", err)
				}

				block := &models.BlockMetadata{
					StructName: typeSpec.Name.Name,
					Companion: models.CompanionRef{
						Name:     directive.Companion.TypeName,
						TypeArgs: directive.Companion.TypeArgs,
					},
					Strategy:       strategy,
					TypeParamNames: typeParamNames(typeSpec),
					FileName:       fileName,
					Line:           location.Line,
				}
				metadata.Blocks = append(metadata.Blocks, block)
				blocksByType[typeSpec.Name.Name] = block
			}
		}
	}

	return nil
}

// findMarkedMethods attaches every method carrying the wrap marker to its
// receiver's block. Violations accumulate on the block; accepted methods
// are extracted into descriptors. Marked declarations outside any
// annotated block are still validated: a clean method passes through
// untouched (the marker's standalone no-op contract), a broken one
// reports on the package so it never vanishes silently.
func (p *Parser) findMarkedMethods(file *ast.File, fileName string, metadata *models.PackageMetadata, blocksByType map[string]*models.BlockMetadata) {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		marked, markerViolations := p.wrapMarker(fn, fileName)
		if !marked && len(markerViolations) == 0 {
			continue
		}

		block, attached := blocksByType[receiverTypeName(fn)]
		if !attached {
			if marked && len(markerViolations) == 0 {
				markerViolations = append(markerViolations, p.ValidateMethod(fn, fileName)...)
			}
			metadata.Violations = append(metadata.Violations, markerViolations...)
			continue
		}

		block.Violations = append(block.Violations, markerViolations...)

		// A malformed marker, or a block whose configuration failed to
		// parse, processes no methods
		if len(markerViolations) > 0 || !marked || block.Companion.Name == "" {
			continue
		}

		if violations := p.ValidateMethod(fn, fileName); len(violations) > 0 {
			block.Violations = append(block.Violations, violations...)
			continue
		}

		block.Methods = append(block.Methods, models.MarkedMethod{
			Descriptor: p.BuildDescriptor(fn),
			FileName:   fileName,
			Line:       p.location(fileName, fn.Pos()).Line,
		})
	}
}

// wrapMarker inspects a declaration's doc comment for wrap directives.
// The exact marker line marks the declaration; any other asyncwrap
// directive in the doc goes through the directive parser so a malformed
// marker ("//asyncwrap::wrap extra") reports instead of being silently
// treated as an ordinary comment.
func (p *Parser) wrapMarker(fn *ast.FuncDecl, fileName string) (bool, []*models.ContractViolation) {
	if fn.Doc == nil {
		return false, nil
	}

	var marked bool
	var violations []*models.ContractViolation
	for _, comment := range fn.Doc.List {
		if !annotations.IsDirective(comment.Text) {
			continue
		}
		if annotations.IsMarker(comment.Text) {
			marked = true
			continue
		}

		location := p.location(fileName, comment.Pos())
		directive, err := p.directives.ParseDirective(comment.Text, location)
		if err != nil {
			violations = append(violations, configViolation(err, location))
			continue
		}
		if directive.Type == annotations.WrapAnnotation {
			marked = true
		}
	}
	return marked, violations
}

// receiverTypeName resolves the base type identifier of a method receiver,
// unwrapping pointers and generic instantiations. Empty for free functions.
func receiverTypeName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	return baseTypeName(fn.Recv.List[0].Type)
}

func baseTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return baseTypeName(t.X)
	case *ast.IndexExpr:
		return baseTypeName(t.X)
	case *ast.IndexListExpr:
		return baseTypeName(t.X)
	default:
		return ""
	}
}

// typeParamNames lists the declared type parameter names of a generic type
func typeParamNames(spec *ast.TypeSpec) []string {
	if spec.TypeParams == nil {
		return nil
	}
	var names []string
	for _, field := range spec.TypeParams.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// location converts a token position to an annotation source location
func (p *Parser) location(fileName string, pos token.Pos) annotations.SourceLocation {
	position := p.fileSet.Position(pos)
	return annotations.SourceLocation{
		File:   fileName,
		Line:   position.Line,
		Column: position.Column,
	}
}

// configViolation converts a configuration parse error into a block-level
// contract violation
func configViolation(err error, location annotations.SourceLocation) *models.ContractViolation {
	message := err.Error()
	if parseErr, ok := err.(*annotations.ParseError); ok {
		message = parseErr.Message
	}
	return &models.ContractViolation{
		File:    location.File,
		Line:    location.Line,
		Column:  location.Column,
		Message: message,
	}
}
