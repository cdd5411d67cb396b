package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly CLI output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...any) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", color.FgRed, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...any) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", color.FgYellow, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...any) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", color.FgBlue, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...any) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "SUCCESS", color.FgGreen, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...any) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", color.FgHiBlack, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...any) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", color.FgMagenta, format, args...)
	}
}

// Section creates a prominent section header
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		if d.useColors {
			color.New(color.FgCyan, color.Bold).Fprintf(d.output, "%s\n", title)
		} else {
			fmt.Fprintf(d.output, "%s\n", title)
		}
	}
}

// Subsection creates a subsection header
func (d *DiagnosticSystem) Subsection(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s:\n", title)
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...any) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "- %s\n", fmt.Sprintf(format, args...))
	}
}

// Progress shows a completed step without a level prefix
func (d *DiagnosticSystem) Progress(format string, args ...any) {
	if d.level >= DiagnosticInfo {
		if d.useColors {
			color.New(color.FgGreen).Fprint(d.output, "✓ ")
		} else {
			fmt.Fprint(d.output, "✓ ")
		}
		fmt.Fprintf(d.output, "%s\n", fmt.Sprintf(format, args...))
	}
}

// Summary outputs a final summary with statistics
func (d *DiagnosticSystem) Summary(title string, stats map[string]any) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s\n", title)
		for key, value := range stats {
			fmt.Fprintf(d.output, "   %s: %v\n", key, value)
		}
		fmt.Fprintln(d.output)
	}
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(writer io.Writer, level string, levelColor color.Attribute, format string, args ...any) {
	var output strings.Builder

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	if d.useColors {
		output.WriteString(color.New(levelColor).Sprintf("[%s]", level))
	} else {
		output.WriteString(fmt.Sprintf("[%s]", level))
	}

	output.WriteString(" ")
	output.WriteString(fmt.Sprintf(format, args...))
	output.WriteString("\n")

	fmt.Fprint(writer, output.String())
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
