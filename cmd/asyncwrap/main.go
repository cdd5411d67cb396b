package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toyz/asyncwrap/internal/cli"
	"github.com/toyz/asyncwrap/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module name (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all generated companion files from the specified directories")
		checkFlag   = flag.Bool("check", false, "Validate marked methods without generating anything")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "asyncwrap Code Generator\n")
		fmt.Fprintf(os.Stderr, "Scans directories for Go types with asyncwrap:: annotations and generates\n")
		fmt.Fprintf(os.Stderr, "companion methods that offload the marked blocking calls.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                          # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/clients             # Scan one directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --check ./...                  # Validate markers only\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                  # Delete generated files\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose ./internal/...       # Enable detailed output\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("asyncwrap")

	if *cleanFlag {
		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}
		for _, file := range removed {
			diagnostics.Progress("removed %s", file)
		}
		diagnostics.Success("All %s files have been removed", cli.GeneratedFileName)
		return
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
	}

	generator := cli.NewGeneratorWithDiagnostics(*verboseFlag, diagnostics)
	if *moduleFlag != "" {
		generator.SetCustomModule(*moduleFlag)
	}

	if *checkFlag {
		if err := generator.Check(args); err != nil {
			diagnostics.Error("Check failed: %v", err)
			os.Exit(1)
		}
		diagnostics.Success("All marked methods satisfy the wrapping contract")
		return
	}

	err := generator.Generate(args)
	summary := generator.GetSummary()

	stats := map[string]any{
		"Packages processed": summary.PackagesProcessed,
		"Blocks found":       summary.BlocksFound,
		"Methods wrapped":    summary.MethodsWrapped,
		"Files generated":    len(summary.GeneratedFiles),
	}
	diagnostics.Summary("Generation Complete!", stats)

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	if err != nil {
		diagnostics.Error("Generation failed: %v", err)
		os.Exit(1)
	}

	diagnostics.Success("Asynchronous companions are ready to use!")
}
