package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected Strategy
		wantErr  bool
	}{
		{"spawn_blocking", StrategySpawnBlocking, false},
		{"block_in_place", StrategyBlockInPlace, false},
		{"green_threads", 0, true},
		{"", 0, true},
		{"SPAWN_BLOCKING", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			strategy, err := ParseStrategy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown strategy")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strategy)
			assert.Equal(t, tt.input, strategy.String())
		})
	}
}

func TestCompanionRefString(t *testing.T) {
	assert.Equal(t, "AsyncClient", CompanionRef{Name: "AsyncClient"}.String())
	assert.Equal(t, "AsyncCache[K, V]", CompanionRef{Name: "AsyncCache", TypeArgs: []string{"K", "V"}}.String())
}

func TestContractViolationError(t *testing.T) {
	full := &ContractViolation{File: "client.go", Line: 7, Column: 6, Message: "bad receiver"}
	assert.Equal(t, "client.go:7:6: bad receiver", full.Error())

	noColumn := &ContractViolation{File: "client.go", Line: 7, Message: "bad receiver"}
	assert.Equal(t, "client.go:7: bad receiver", noColumn.Error())

	bare := &ContractViolation{Message: "bad receiver"}
	assert.Equal(t, "bad receiver", bare.Error())
}

func TestGeneratorErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &GeneratorError{
		Type:    ErrorTypeFileSystem,
		File:    "out.go",
		Message: "failed to write generated file",
		Cause:   cause,
	}

	assert.Equal(t, "out.go: failed to write generated file", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestArtifactRender(t *testing.T) {
	t.Run("clean artifact appends companion", func(t *testing.T) {
		a := &Artifact{
			Original:  "package clients\n",
			Companion: "func (w *AsyncClient) Do(ctx context.Context) error { return nil }\n",
		}

		rendered := a.Render()
		assert.Contains(t, rendered, "package clients\n")
		assert.Contains(t, rendered, "func (w *AsyncClient) Do")
		assert.NotContains(t, rendered, "//asyncwrap:error")
	})

	t.Run("diagnostics replace companion", func(t *testing.T) {
		a := &Artifact{
			Original:  "package clients",
			Companion: "func (w *AsyncClient) Do(ctx context.Context) error { return nil }\n",
			Diagnostics: []*ContractViolation{
				{File: "client.go", Line: 7, Column: 6, Message: "bad receiver"},
			},
		}

		rendered := a.Render()
		assert.Contains(t, rendered, "//asyncwrap:error client.go:7:6: bad receiver\n")
		assert.NotContains(t, rendered, "func (w *AsyncClient)")
	})

	t.Run("original without trailing newline gets one", func(t *testing.T) {
		a := &Artifact{Original: "package clients"}
		assert.Equal(t, "package clients\n", a.Render())
	})
}

func TestResultShape(t *testing.T) {
	shape := func(kind ReturnKind) bool {
		d := MethodDescriptor{ReturnKind: kind}
		return d.ResultShape()
	}

	assert.False(t, shape(ReturnNone))
	assert.False(t, shape(ReturnValue))
	assert.True(t, shape(ReturnError))
	assert.True(t, shape(ReturnValueError))
}
