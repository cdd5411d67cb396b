package parser

import (
	"bytes"
	"go/ast"
	"go/printer"
	"strings"

	"github.com/toyz/asyncwrap/internal/annotations"
	"github.com/toyz/asyncwrap/internal/models"
)

// BuildDescriptor converts an accepted method into its strategy-agnostic
// structural description. The method is trusted to have passed validation;
// no checks are re-run here.
//
// Unnamed and underscore-bound parameters cannot appear in the synthesized
// forwarding call, so they are dropped silently rather than rejected.
func (p *Parser) BuildDescriptor(fn *ast.FuncDecl) models.MethodDescriptor {
	descriptor := models.MethodDescriptor{
		Name: fn.Name.Name,
		Docs: docLines(fn.Doc),
	}

	if fn.Type.Params != nil {
		for _, field := range fn.Type.Params.List {
			for _, name := range field.Names {
				if name.Name == "_" {
					continue
				}
				descriptor.Params = append(descriptor.Params, models.Parameter{
					Name: name.Name,
					Type: p.renderType(field.Type),
				})
			}
		}
	}

	descriptor.ReturnKind, descriptor.ValueType = p.classifyReturns(fn)
	return descriptor
}

// classifyReturns maps the validated return signature onto a ReturnKind,
// recognizing the trailing error as the result shape
func (p *Parser) classifyReturns(fn *ast.FuncDecl) (models.ReturnKind, string) {
	types := flattenResults(fn.Type.Results)
	switch len(types) {
	case 0:
		return models.ReturnNone, ""
	case 1:
		if isErrorType(types[0]) {
			return models.ReturnError, ""
		}
		return models.ReturnValue, p.renderType(types[0])
	default:
		return models.ReturnValueError, p.renderType(types[0])
	}
}

// renderType renders a type expression back to source text
func (p *Parser) renderType(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fileSet, expr); err != nil {
		return ""
	}
	return buf.String()
}

// docLines collects doc comment lines with asyncwrap directives removed,
// preserved verbatim for the synthesized method
func docLines(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}
	var lines []string
	for _, comment := range doc.List {
		if annotations.IsDirective(comment.Text) {
			continue
		}
		lines = append(lines, strings.TrimRight(comment.Text, "\n"))
	}
	return lines
}
