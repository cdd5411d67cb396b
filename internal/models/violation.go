package models

import "fmt"

// ContractViolation is a located diagnostic produced when an annotated
// method or block configuration breaks the wrapping contract. Violations
// are accumulated across a block rather than aborting on the first.
type ContractViolation struct {
	File    string // file where the offending syntax lives
	Line    int    // 1-based line of the offending syntax
	Column  int    // 1-based column of the offending syntax
	Message string // human-readable description
}

// Error implements the error interface
func (v *ContractViolation) Error() string {
	if v.File != "" && v.Line > 0 {
		if v.Column > 0 {
			return fmt.Sprintf("%s:%d:%d: %s", v.File, v.Line, v.Column, v.Message)
		}
		return fmt.Sprintf("%s:%d: %s", v.File, v.Line, v.Message)
	}
	return v.Message
}

// GeneratorError represents a non-contract failure during generation
// (filesystem trouble, unparsable source, internal template errors).
type GeneratorError struct {
	Type    ErrorType // type of error
	File    string    // file where error occurred
	Line    int       // line number where error occurred
	Message string    // error message
	Cause   error     // underlying error cause
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error cause
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}
