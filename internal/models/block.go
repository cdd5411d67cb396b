package models

import "strings"

// CompanionRef names the caller-declared type that receives the synthesized
// methods. The reference may itself be generic, in which case TypeArgs holds
// the type argument identifiers in declaration order.
type CompanionRef struct {
	Name     string
	TypeArgs []string
}

// String renders the reference as it appears in a receiver type
func (r CompanionRef) String() string {
	if len(r.TypeArgs) == 0 {
		return r.Name
	}
	return r.Name + "[" + strings.Join(r.TypeArgs, ", ") + "]"
}

// MarkedMethod is one method carrying the wrap marker, as found by the
// parser: its location plus the descriptor built on acceptance.
type MarkedMethod struct {
	Descriptor MethodDescriptor
	FileName   string
	Line       int
}

// BlockMetadata describes one annotated blocking type and everything the
// transformer needs to synthesize its companion block.
type BlockMetadata struct {
	// StructName is the blocking type the annotation sits on
	StructName string

	// TypeParamNames holds the blocking type's generic parameter names in
	// declaration order, empty for non-generic types. They are carried onto
	// companion method receivers when the companion reference itself has no
	// explicit type arguments.
	TypeParamNames []string

	// Companion is the target type reference from the block configuration
	Companion CompanionRef

	// Strategy selected for every method in this block
	Strategy Strategy

	// Methods are the accepted marked methods in declaration order
	Methods []MarkedMethod

	// Violations accumulated while validating this block's marked methods
	Violations []*ContractViolation

	// Source location of the block configuration annotation
	FileName string
	Line     int
}

// PackageMetadata aggregates every annotated block found in one package
// directory.
type PackageMetadata struct {
	PackageName string
	PackagePath string
	Blocks      []*BlockMetadata

	// Violations from marked declarations that attach to no annotated
	// block: free functions, methods on unannotated types, malformed
	// markers. They fail the run the same way block violations do.
	Violations []*ContractViolation
}
