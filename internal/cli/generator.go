package cli

import (
	"fmt"
	"path/filepath"

	"github.com/toyz/asyncwrap/internal/generator"
	"github.com/toyz/asyncwrap/internal/models"
	"github.com/toyz/asyncwrap/internal/parser"
	"github.com/toyz/asyncwrap/internal/utils"
)

// GeneratedFileName is the name of the companion file written per package
const GeneratedFileName = "autogen_async.go"

// GenerationSummary captures statistics about a generation run
type GenerationSummary struct {
	PackagesProcessed  int
	BlocksFound        int
	MethodsWrapped     int
	ViolationsReported int
	GeneratedFiles     []string
}

// Generator drives the scan -> parse -> transform -> write pipeline across
// every requested directory
type Generator struct {
	scanner      *DirectoryScanner
	resolver     *ModuleResolver
	transformer  *generator.Generator
	reporter     *DiagnosticReporter
	diagnostics  *utils.DiagnosticSystem
	customModule string
	summary      GenerationSummary
}

// NewGeneratorWithDiagnostics creates a CLI generator with the given
// diagnostic system
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:     NewDirectoryScanner(),
		resolver:    NewModuleResolver(),
		transformer: generator.NewGenerator(),
		reporter:    NewDiagnosticReporter(verbose),
		diagnostics: diagnostics,
	}
}

// SetCustomModule overrides go.mod-based module resolution
func (g *Generator) SetCustomModule(name string) {
	g.customModule = name
}

// GetSummary returns the statistics of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Generate processes every package directory found under the given
// arguments. Contract violations are reported as they are found and never
// abort the run; a non-nil error is returned at the end when any were
// seen, so callers can fail the build while every diagnostic still
// reaches the user.
func (g *Generator) Generate(directories []string) error {
	return g.Run(Config{
		Directories: directories,
		ModuleName:  g.customModule,
		Verbose:     g.reporter.verbose,
	})
}

// Run executes one full pass under the given configuration
func (g *Generator) Run(config Config) error {
	g.summary = GenerationSummary{}

	if config.Check {
		return g.checkDirectories(config.Directories)
	}

	moduleName, err := g.resolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		g.diagnostics.Warn("could not resolve module name: %v", err)
	} else {
		g.diagnostics.Verbose("generating within module %s", moduleName)
	}

	dirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := g.generatePackage(dir); err != nil {
			return err
		}
	}

	if g.summary.ViolationsReported > 0 {
		return fmt.Errorf("%d contract violation(s) reported; companion blocks for the offending types were not generated", g.summary.ViolationsReported)
	}

	return nil
}

// generatePackage transforms one package directory
func (g *Generator) generatePackage(dir string) error {
	p := parser.NewParser()
	metadata, err := p.ParseDirectory(dir)
	if err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    dir,
			Message: "failed to parse package",
			Cause:   err,
		}
	}

	g.summary.PackagesProcessed++
	if len(metadata.Blocks) == 0 && len(metadata.Violations) == 0 {
		g.diagnostics.Verbose("no annotated blocks in %s", dir)
		return nil
	}
	g.summary.BlocksFound += len(metadata.Blocks)

	content, violations, err := g.transformer.GenerateCompanionFile(metadata)
	if err != nil {
		return err
	}

	if len(violations) > 0 {
		g.reporter.ReportViolations(violations)
		g.summary.ViolationsReported += len(violations)
	}

	if content == "" {
		return nil
	}

	outPath := filepath.Join(dir, GeneratedFileName)
	if err := utils.FormatAndWriteGoFile(outPath, content); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    outPath,
			Message: "failed to write generated file",
			Cause:   err,
		}
	}

	for _, block := range metadata.Blocks {
		if len(block.Violations) == 0 {
			g.summary.MethodsWrapped += len(block.Methods)
		}
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, outPath)
	g.diagnostics.Progress("generated %s", outPath)

	return nil
}

// Check re-validates every marked method in isolation without writing
// anything. This is the standalone marker's early-feedback path.
func (g *Generator) Check(directories []string) error {
	return g.Run(Config{
		Directories: directories,
		ModuleName:  g.customModule,
		Verbose:     g.reporter.verbose,
		Check:       true,
	})
}

func (g *Generator) checkDirectories(directories []string) error {
	dirs, err := g.scanner.ScanDirectories(directories)
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		p := parser.NewParser()
		violations, err := p.CheckDirectory(dir)
		if err != nil {
			return &models.GeneratorError{
				Type:    models.ErrorTypeFileSystem,
				File:    dir,
				Message: "failed to parse package",
				Cause:   err,
			}
		}

		g.summary.PackagesProcessed++
		if len(violations) > 0 {
			g.reporter.ReportViolations(violations)
			g.summary.ViolationsReported += len(violations)
		}
	}

	if g.summary.ViolationsReported > 0 {
		return fmt.Errorf("%d contract violation(s) reported", g.summary.ViolationsReported)
	}

	return nil
}
