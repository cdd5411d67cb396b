package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSource_CleanSource(t *testing.T) {
	p := NewParser()

	source := `package clients

//asyncwrap::wrap
func (c *Client) GetValue() int { return 0 }
`
	violations, err := p.CheckSource("client.go", source)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckSource_ValidatesMarkedFreeFunctions(t *testing.T) {
	p := NewParser()

	// The check pass validates markers in isolation, so a marked free
	// function is caught here even though generation would never reach it.
	source := `package clients

//asyncwrap::wrap
func Standalone() int { return 0 }
`
	violations, err := p.CheckSource("client.go", source)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "free function")
}

func TestCheckSource_IgnoresUnmarkedMethods(t *testing.T) {
	p := NewParser()

	source := `package clients

import "context"

// Unmarked methods may take contexts, return anything, whatever they like.
func (c Client) Unchecked(ctx context.Context) (int, string, error) {
	return 0, "", nil
}
`
	violations, err := p.CheckSource("client.go", source)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckSource_MalformedMarkerReports(t *testing.T) {
	p := NewParser()

	source := `package clients

//asyncwrap::wrap later
func (c *Client) GetValue() int { return 0 }
`
	violations, err := p.CheckSource("client.go", source)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "wrap takes no arguments")
}

func TestCheckDirectory_DeterministicFileOrder(t *testing.T) {
	dir := t.TempDir()
	badMethod := `package clients

//asyncwrap::wrap
func Standalone%s() int { return 0 }
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.go"), []byte(fmt.Sprintf(badMethod, "A")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "omega.go"), []byte(fmt.Sprintf(badMethod, "B")), 0o644))

	p := NewParser()
	violations, err := p.CheckDirectory(dir)
	require.NoError(t, err)

	require.Len(t, violations, 2)
	assert.Equal(t, filepath.Join(dir, "alpha.go"), violations[0].File)
	assert.Equal(t, filepath.Join(dir, "omega.go"), violations[1].File)
}

func TestCheckSource_AccumulatesAcrossMethods(t *testing.T) {
	p := NewParser()

	source := `package clients

import "context"

//asyncwrap::wrap
func (c Client) ByValue() int { return 0 }

//asyncwrap::wrap
func (c *Client) AlreadyAsync(ctx context.Context) error { return nil }
`
	violations, err := p.CheckSource("client.go", source)
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Contains(t, violations[0].Message, "value receiver")
	assert.Contains(t, violations[1].Message, "context.Context")
}
