package annotations

import "fmt"

// Prefix is the directive prefix shared by every asyncwrap annotation
const Prefix = "asyncwrap::"

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	// WrapAnnotation is the per-method marker requesting an asynchronous
	// companion. It takes no arguments.
	WrapAnnotation AnnotationType = iota

	// CompanionAnnotation is the per-type block configuration naming the
	// companion type and optionally selecting the offload strategy.
	CompanionAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case WrapAnnotation:
		return "wrap"
	case CompanionAnnotation:
		return "companion"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "wrap":
		return WrapAnnotation, nil
	case "companion":
		return CompanionAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// CompanionConfig is the parsed argument list of a companion annotation:
// the target type reference plus the selected strategy name.
type CompanionConfig struct {
	// TypeName is the companion type identifier
	TypeName string

	// TypeArgs holds type argument identifiers when the reference is
	// generic, in declaration order
	TypeArgs []string

	// Strategy is the validated strategy name; the default is filled in
	// when the optional clause is absent
	Strategy string
}

// Directive is a fully parsed asyncwrap annotation
type Directive struct {
	Type      AnnotationType   // annotation type enum
	Companion *CompanionConfig // set for CompanionAnnotation only
	Location  SourceLocation   // source location
	Raw       string           // original annotation text
}
