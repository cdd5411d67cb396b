package parser

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/toyz/asyncwrap/internal/models"
)

// ValidateMethod checks a single marked method against the wrapping
// contract. Every failed check produces its own located violation; checks
// do not short-circuit, so a method can report several problems at once.
// Acceptance (an empty slice) is silent.
func (p *Parser) ValidateMethod(fn *ast.FuncDecl, fileName string) []*models.ContractViolation {
	var violations []*models.ContractViolation

	report := func(pos token.Pos, format string, args ...any) {
		location := p.location(fileName, pos)
		violations = append(violations, &models.ContractViolation{
			File:    location.File,
			Line:    location.Line,
			Column:  location.Column,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// Receiver shape: the wrapper needs a shared read-only handle to the
	// blocking value, which in Go is a pointer receiver.
	switch {
	case fn.Recv == nil || len(fn.Recv.List) == 0:
		report(fn.Pos(), "cannot wrap %s: free functions have no receiver to share with the companion type", fn.Name.Name)
	default:
		if _, ok := fn.Recv.List[0].Type.(*ast.StarExpr); !ok {
			report(fn.Recv.Pos(), "cannot wrap %s: a value receiver hands each call its own copy of the blocking value; declare the method on a pointer receiver", fn.Name.Name)
		}
	}

	// Asynchrony: a method that already takes a context is already
	// asynchronous under this model and must not be wrapped again.
	if param := firstParam(fn); param != nil && isContextType(param.Type) {
		report(param.Pos(), "cannot wrap %s: the method already takes a context.Context and is asynchronous", fn.Name.Name)
	}

	// Return signature: nothing, one value, one error, or (value, error)
	if v := validateReturns(fn); v != "" {
		report(fn.Type.Results.Pos(), "cannot wrap %s: %s", fn.Name.Name, v)
	}

	return violations
}

// firstParam returns the first declared parameter field, or nil
func firstParam(fn *ast.FuncDecl) *ast.Field {
	if fn.Type.Params == nil || len(fn.Type.Params.List) == 0 {
		return nil
	}
	return fn.Type.Params.List[0]
}

// isContextType matches the context.Context selector
func isContextType(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "context" && sel.Sel.Name == "Context"
}

// validateReturns reports a problem description for return signatures the
// forwarded call cannot represent, or empty on acceptance
func validateReturns(fn *ast.FuncDecl) string {
	types := flattenResults(fn.Type.Results)
	switch len(types) {
	case 0, 1:
		return ""
	case 2:
		if !isErrorType(types[1]) {
			return "two results are only supported as (value, error)"
		}
		if isErrorType(types[0]) {
			return "two error results cannot be separated into a success/failure pair"
		}
		return ""
	default:
		return fmt.Sprintf("%d results are not supported; wrap methods may return at most (value, error)", len(types))
	}
}

// flattenResults expands grouped result fields into one type per result
func flattenResults(results *ast.FieldList) []ast.Expr {
	if results == nil {
		return nil
	}
	var types []ast.Expr
	for _, field := range results.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			types = append(types, field.Type)
		}
	}
	return types
}

// isErrorType matches the predeclared error identifier
func isErrorType(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "error"
}
