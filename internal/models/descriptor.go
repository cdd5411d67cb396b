package models

// Parameter is one forwarded parameter of a wrapped method
type Parameter struct {
	Name string // identifier bound in the source signature
	Type string // declared type, rendered verbatim from the AST
}

// MethodDescriptor is the strategy-agnostic structural description of an
// accepted blocking method. It is built once by the extractor, never
// mutated, and consumed exactly once by the synthesizer.
type MethodDescriptor struct {
	// Name of the method; exportedness is carried by the identifier itself
	Name string

	// Docs holds the method's doc comment lines verbatim, with the wrap
	// directive removed, for reuse on the synthesized method
	Docs []string

	// Params is the ordered forwarded parameter list, receiver excluded.
	// Unnamed and underscore parameters from the source are not present.
	Params []Parameter

	// ReturnKind classifies the return signature
	ReturnKind ReturnKind

	// ValueType is the non-error result type, rendered verbatim. Empty for
	// ReturnNone and ReturnError.
	ValueType string
}

// ResultShape reports whether the return signature carries a
// distinguishable success/failure pair (a trailing error).
func (d *MethodDescriptor) ResultShape() bool {
	return d.ReturnKind == ReturnError || d.ReturnKind == ReturnValueError
}
