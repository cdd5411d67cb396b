package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc() SourceLocation {
	return SourceLocation{File: "client.go", Line: 10, Column: 1}
}

func TestIsDirective(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    bool
	}{
		{"wrap marker", "//asyncwrap::wrap", true},
		{"companion with args", "//asyncwrap::companion AsyncClient", true},
		{"leading space", "// asyncwrap::wrap", true},
		{"ordinary comment", "// fetches the user record", false},
		{"different tool directive", "//go:generate stringer", false},
		{"not a comment", "asyncwrap::wrap", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDirective(tt.comment))
		})
	}
}

func TestParseDirective_WrapMarker(t *testing.T) {
	p := NewDirectiveParser()

	d, err := p.ParseDirective("//asyncwrap::wrap", loc())
	require.NoError(t, err)
	assert.Equal(t, WrapAnnotation, d.Type)
	assert.Nil(t, d.Companion)
}

func TestParseDirective_WrapRejectsArguments(t *testing.T) {
	p := NewDirectiveParser()

	_, err := p.ParseDirective("//asyncwrap::wrap something", loc())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrap takes no arguments")
}

func TestParseDirective_CompanionDefaultStrategy(t *testing.T) {
	p := NewDirectiveParser()

	d, err := p.ParseDirective("//asyncwrap::companion AsyncClient", loc())
	require.NoError(t, err)
	require.NotNil(t, d.Companion)
	assert.Equal(t, "AsyncClient", d.Companion.TypeName)
	assert.Empty(t, d.Companion.TypeArgs)
	assert.Equal(t, StrategySpawnBlocking, d.Companion.Strategy)
}

func TestParseDirective_CompanionExplicitStrategy(t *testing.T) {
	p := NewDirectiveParser()

	tests := []struct {
		name     string
		comment  string
		strategy string
	}{
		{
			"spawn_blocking spelled out matches the default",
			`//asyncwrap::companion AsyncClient, strategy = "spawn_blocking"`,
			StrategySpawnBlocking,
		},
		{
			"block_in_place",
			`//asyncwrap::companion AsyncClient, strategy = "block_in_place"`,
			StrategyBlockInPlace,
		},
		{
			"whitespace insensitive",
			`//asyncwrap::companion AsyncClient,strategy="block_in_place"`,
			StrategyBlockInPlace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := p.ParseDirective(tt.comment, loc())
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, d.Companion.Strategy)
		})
	}
}

func TestParseDirective_CompanionGenericTarget(t *testing.T) {
	p := NewDirectiveParser()

	d, err := p.ParseDirective("//asyncwrap::companion AsyncCache[K, V]", loc())
	require.NoError(t, err)
	assert.Equal(t, "AsyncCache", d.Companion.TypeName)
	assert.Equal(t, []string{"K", "V"}, d.Companion.TypeArgs)
}

func TestParseDirective_CompanionErrors(t *testing.T) {
	p := NewDirectiveParser()

	tests := []struct {
		name    string
		comment string
		wantMsg string
	}{
		{
			"missing target type",
			"//asyncwrap::companion",
			"companion requires a target type",
		},
		{
			"wrong option key",
			`//asyncwrap::companion AsyncClient, mode = "spawn_blocking"`,
			"expected `strategy`, found `mode`",
		},
		{
			"unknown strategy names the offending value",
			`//asyncwrap::companion AsyncClient, strategy = "green_threads"`,
			`unknown strategy "green_threads"`,
		},
		{
			"unknown strategy lists valid names",
			`//asyncwrap::companion AsyncClient, strategy = "inline"`,
			`"spawn_blocking", "block_in_place"`,
		},
		{
			"unquoted strategy value",
			`//asyncwrap::companion AsyncClient, strategy = spawn_blocking`,
			"malformed companion arguments",
		},
		{
			"unknown annotation type",
			"//asyncwrap::blocking AsyncClient",
			"unknown annotation type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseDirective(tt.comment, loc())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseError_IncludesLocation(t *testing.T) {
	p := NewDirectiveParser()

	_, err := p.ParseDirective(`//asyncwrap::companion AsyncClient, strategy = "bogus"`, loc())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client.go:10:1:")
}
