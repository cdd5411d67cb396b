package models

import "fmt"

// Strategy selects how a synthesized wrapper offloads the blocking call.
// It is chosen once per annotated block and applies to every wrapped method
// in that block.
type Strategy int

const (
	// StrategySpawnBlocking runs the blocking call on its own goroutine and
	// joins it, honoring the caller's context. This is the default.
	StrategySpawnBlocking Strategy = iota

	// StrategyBlockInPlace runs the blocking call directly on the calling
	// goroutine, keeping the original return types untouched.
	StrategyBlockInPlace
)

// Strategy names as they appear in annotation text
const (
	StrategyNameSpawnBlocking = "spawn_blocking"
	StrategyNameBlockInPlace  = "block_in_place"
)

// String returns the annotation-text name of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategySpawnBlocking:
		return StrategyNameSpawnBlocking
	case StrategyBlockInPlace:
		return StrategyNameBlockInPlace
	default:
		return "unknown"
	}
}

// ParseStrategy converts an annotation string value to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case StrategyNameSpawnBlocking:
		return StrategySpawnBlocking, nil
	case StrategyNameBlockInPlace:
		return StrategyBlockInPlace, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (valid strategies: %q, %q)",
			s, StrategyNameSpawnBlocking, StrategyNameBlockInPlace)
	}
}

// ReturnKind classifies the return signature of a blocking method
type ReturnKind int

const (
	// ReturnNone means the method returns nothing
	ReturnNone ReturnKind = iota
	// ReturnValue means the method returns a single plain value
	ReturnValue
	// ReturnError means the method returns only an error (result shape with
	// no success value)
	ReturnError
	// ReturnValueError means the method returns (T, error) - the result shape
	ReturnValueError
)

// ErrorType categorizes generator failures for reporting
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)
