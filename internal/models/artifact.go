package models

import "strings"

// Artifact is the complete output of transforming one source file: the
// original text with wrap markers stripped, the synthesized companion
// methods, and any accumulated diagnostics. The companion section is only
// populated when there are zero diagnostics; the stripped original is
// always present so downstream tooling can show the source next to every
// problem at once.
type Artifact struct {
	// Original is the input source with all wrap marker lines removed
	Original string

	// Companion is the synthesized companion method block, empty when any
	// diagnostics were produced
	Companion string

	// Diagnostics collects every contract violation found in the block
	Diagnostics []*ContractViolation
}

// HasDiagnostics reports whether any violation was recorded
func (a *Artifact) HasDiagnostics() bool {
	return len(a.Diagnostics) > 0
}

// Render concatenates the artifact into one text: the stripped original,
// then each diagnostic as its own comment line, then - only when clean -
// the companion block.
func (a *Artifact) Render() string {
	var b strings.Builder
	b.WriteString(a.Original)
	if !strings.HasSuffix(a.Original, "\n") {
		b.WriteString("\n")
	}

	for _, d := range a.Diagnostics {
		b.WriteString("//asyncwrap:error ")
		b.WriteString(d.Error())
		b.WriteString("\n")
	}

	if !a.HasDiagnostics() && a.Companion != "" {
		b.WriteString("\n")
		b.WriteString(a.Companion)
	}

	return b.String()
}
