package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/asyncwrap/internal/models"
)

// DiagnosticReporter renders contract violations and generator failures in
// a user-friendly form on stderr
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
	}
}

// ReportViolations renders each contract violation as its own located
// diagnostic. Violations never abort the run; the caller decides the exit
// status after all packages are processed.
func (r *DiagnosticReporter) ReportViolations(violations []*models.ContractViolation) {
	for _, v := range violations {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "✗ ")
		fmt.Fprintf(os.Stderr, "%s\n", v.Error())

		if suggestion := suggestionFor(v.Message); suggestion != "" {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", suggestion)
		}
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	color.New(color.FgYellow, color.Bold).Fprint(os.Stderr, "! ")
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// ReportError reports a generation failure with whatever context it carries
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(os.Stderr, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(os.Stderr, "=============================\n\n")

	if genErr, ok := err.(*models.GeneratorError); ok {
		fmt.Fprintf(os.Stderr, "Message: %s\n", genErr.Message)
		if genErr.File != "" {
			if genErr.Line > 0 {
				fmt.Fprintf(os.Stderr, "Location: %s:%d\n", genErr.File, genErr.Line)
			} else {
				fmt.Fprintf(os.Stderr, "File: %s\n", genErr.File)
			}
		}
		if r.verbose && genErr.Cause != nil {
			fmt.Fprintf(os.Stderr, "Underlying cause: %s\n", genErr.Cause.Error())
		}
	} else {
		fmt.Fprintf(os.Stderr, "Message: %s\n", err.Error())
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// suggestionFor maps common violation messages to a short fix hint
func suggestionFor(message string) string {
	switch {
	case strings.Contains(message, "value receiver"):
		return "change the receiver to a pointer, e.g. func (c *Client) ..."
	case strings.Contains(message, "free function"):
		return "move the function onto the blocking type or remove the //asyncwrap::wrap marker"
	case strings.Contains(message, "context.Context"):
		return "the companion method adds the context; drop the parameter from the blocking method or remove the marker"
	case strings.Contains(message, "unknown strategy"):
		return `use strategy = "spawn_blocking" or strategy = "block_in_place"`
	case strings.Contains(message, "expected `strategy`"):
		return `the companion annotation only accepts the strategy option, e.g. //asyncwrap::companion AsyncClient, strategy = "block_in_place"`
	default:
		return ""
	}
}
