package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/asyncwrap/internal/models"
	"github.com/toyz/asyncwrap/internal/parser"
	"github.com/toyz/asyncwrap/internal/templates"
)

// Generator orchestrates the transformation of annotated blocks into
// companion method blocks. It is a pure computation: one block in, one
// artifact out, no shared state between calls.
type Generator struct{}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// TransformBlock produces the complete artifact for one annotated block:
// the declaring file's source with markers stripped, every accumulated
// violation, and - only when the block is violation-free - the synthesized
// companion methods. Violations accompany the stripped original rather
// than replacing it, so callers can always show the source next to every
// problem at once.
func (g *Generator) TransformBlock(block *models.BlockMetadata, source string) (*models.Artifact, error) {
	artifact := &models.Artifact{
		Original:    parser.StripMarkers(source),
		Diagnostics: block.Violations,
	}

	// A block with any violation emits no companion: a partially wrapped
	// type would be worse than a missing one.
	if artifact.HasDiagnostics() {
		return artifact, nil
	}

	companion, err := g.synthesizeCompanion(block)
	if err != nil {
		return nil, err
	}
	artifact.Companion = companion

	return artifact, nil
}

// synthesizeCompanion renders every accepted method in declaration order
func (g *Generator) synthesizeCompanion(block *models.BlockMetadata) (string, error) {
	if len(block.Methods) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("// %s offloads the blocking methods of %s selected for wrapping (strategy %q).\n\n",
		block.Companion.Name, block.StructName, block.Strategy))

	for i, method := range block.Methods {
		text, err := g.SynthesizeMethod(block, method.Descriptor)
		if err != nil {
			return "", &models.GeneratorError{
				Type:    models.ErrorTypeGeneration,
				File:    method.FileName,
				Line:    method.Line,
				Message: fmt.Sprintf("failed to synthesize %s.%s", block.Companion.Name, method.Descriptor.Name),
				Cause:   err,
			}
		}
		b.WriteString(text)
		if i < len(block.Methods)-1 {
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

// GenerateCompanionFile assembles the generated file for one package from
// every annotated block found in it. Blocks are independent: a violating
// block contributes diagnostics and suppresses only its own companion;
// clean blocks still generate. Package-level violations (marked
// declarations outside any block) are carried through so they fail the
// run. The returned content is empty when nothing is left to emit.
func (g *Generator) GenerateCompanionFile(metadata *models.PackageMetadata) (string, []*models.ContractViolation, error) {
	var violations []*models.ContractViolation
	violations = append(violations, metadata.Violations...)

	var sections []string
	needsRuntime := false

	for _, block := range metadata.Blocks {
		if len(block.Violations) > 0 {
			violations = append(violations, block.Violations...)
			continue
		}
		if len(block.Methods) == 0 {
			continue
		}

		section, err := g.synthesizeCompanion(block)
		if err != nil {
			return "", violations, err
		}
		sections = append(sections, section)

		if block.Strategy == models.StrategySpawnBlocking {
			needsRuntime = true
		}
	}

	if len(sections) == 0 {
		return "", violations, nil
	}

	var b strings.Builder
	b.WriteString(templates.GenerateFileHeader(metadata.PackageName, needsRuntime))
	b.WriteString(strings.Join(sections, "\n"))

	return b.String(), violations, nil
}
