package annotations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Strategy names recognized in companion annotation text
const (
	StrategySpawnBlocking = "spawn_blocking"
	StrategyBlockInPlace  = "block_in_place"

	// DefaultStrategy is selected when the optional strategy clause is absent
	DefaultStrategy = StrategySpawnBlocking
)

// ParseError is a located annotation parsing failure. Configuration parsing
// is all-or-nothing: the first violation aborts the block's expansion.
type ParseError struct {
	Message  string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s",
		e.Location.File, e.Location.Line, e.Location.Column, e.Message)
}

// companionArgs is the participle grammar for the companion annotation
// argument list: <type-ref> [, strategy = "<name>"]
type companionArgs struct {
	Target typeRef `parser:"@@"`
	Option *option `parser:"( ',' @@ )?"`
}

type typeRef struct {
	Name string   `parser:"@Ident"`
	Args []string `parser:"( '[' @Ident ( ',' @Ident )* ']' )?"`
}

type option struct {
	Key   string `parser:"@Ident '='"`
	Value string `parser:"@String"`
}

// DirectiveParser parses asyncwrap:: annotation comments
type DirectiveParser struct {
	companion *participle.Parser[companionArgs]
}

// NewDirectiveParser creates a new directive parser
func NewDirectiveParser() *DirectiveParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[,=\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	companion := participle.MustBuild[companionArgs](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &DirectiveParser{companion: companion}
}

// IsDirective reports whether the comment line carries an asyncwrap
// annotation. Ordinary comments return false.
func IsDirective(comment string) bool {
	content, ok := strings.CutPrefix(strings.TrimSpace(comment), "//")
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(content), Prefix)
}

// IsMarker reports whether the comment line is exactly the wrap marker
func IsMarker(comment string) bool {
	content, ok := strings.CutPrefix(strings.TrimSpace(comment), "//")
	if !ok {
		return false
	}
	return strings.TrimSpace(content) == Prefix+"wrap"
}

// ParseDirective parses a single annotation comment into a Directive
func (p *DirectiveParser) ParseDirective(comment string, location SourceLocation) (*Directive, error) {
	content, ok := strings.CutPrefix(strings.TrimSpace(comment), "//")
	if !ok {
		return nil, p.errorf(location, "annotation must start with '//'")
	}
	content, ok = strings.CutPrefix(strings.TrimSpace(content), Prefix)
	if !ok {
		return nil, p.errorf(location, "annotation must start with '%s'", Prefix)
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return nil, p.errorf(location, "empty annotation")
	}

	kind, err := ParseAnnotationType(fields[0])
	if err != nil {
		return nil, p.errorf(location, "%v", err)
	}

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(content), fields[0]))

	directive := &Directive{
		Type:     kind,
		Location: location,
		Raw:      comment,
	}

	switch kind {
	case WrapAnnotation:
		if rest != "" {
			return nil, p.errorf(location, "wrap takes no arguments, found %q", rest)
		}
	case CompanionAnnotation:
		cfg, err := p.parseCompanionArgs(rest, location)
		if err != nil {
			return nil, err
		}
		directive.Companion = cfg
	}

	return directive, nil
}

// parseCompanionArgs parses and validates the companion argument list
func (p *DirectiveParser) parseCompanionArgs(args string, location SourceLocation) (*CompanionConfig, error) {
	if strings.TrimSpace(args) == "" {
		return nil, p.errorf(location, "companion requires a target type (e.g. //%scompanion AsyncClient)", Prefix)
	}

	parsed, err := p.companion.ParseString(location.File, args)
	if err != nil {
		return nil, p.errorf(location, "malformed companion arguments %q: %v", args, err)
	}

	cfg := &CompanionConfig{
		TypeName: parsed.Target.Name,
		TypeArgs: parsed.Target.Args,
		Strategy: DefaultStrategy,
	}

	if parsed.Option != nil {
		if parsed.Option.Key != "strategy" {
			return nil, p.errorf(location, "expected `strategy`, found `%s`", parsed.Option.Key)
		}

		value, err := strconv.Unquote(parsed.Option.Value)
		if err != nil {
			return nil, p.errorf(location, "strategy value must be a quoted string, found %s", parsed.Option.Value)
		}

		switch value {
		case StrategySpawnBlocking, StrategyBlockInPlace:
			cfg.Strategy = value
		default:
			return nil, p.errorf(location, "unknown strategy %q (valid strategies: %q, %q)",
				value, StrategySpawnBlocking, StrategyBlockInPlace)
		}
	}

	return cfg, nil
}

func (p *DirectiveParser) errorf(location SourceLocation, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}
