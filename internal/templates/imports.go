package templates

import (
	"fmt"
	"strings"
)

// RuntimeImport is the support library every spawn_blocking body compiles
// against
const RuntimeImport = "github.com/toyz/asyncwrap/pkg/asyncwrap"

// GeneratedHeader is the marker line identifying generated files
const GeneratedHeader = "// Code generated by asyncwrap. DO NOT EDIT."

// GenerateFileHeader renders the package clause and import block of a
// companion file. needsRuntime is false when every block in the package
// uses block_in_place, which forwards calls without touching the runtime.
func GenerateFileHeader(packageName string, needsRuntime bool) string {
	var b strings.Builder
	b.WriteString(GeneratedHeader + "\n")
	b.WriteString("// This file was automatically generated and should not be modified manually.\n\n")
	b.WriteString(fmt.Sprintf("package %s\n\n", packageName))

	if needsRuntime {
		b.WriteString("import (\n")
		b.WriteString("\t\"context\"\n\n")
		b.WriteString(fmt.Sprintf("\t%q\n", RuntimeImport))
		b.WriteString(")\n\n")
	} else {
		b.WriteString("import \"context\"\n\n")
	}

	return b.String()
}
