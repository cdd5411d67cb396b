package generator

import (
	goparser "go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/asyncwrap/internal/models"
	"github.com/toyz/asyncwrap/internal/parser"
	"github.com/toyz/asyncwrap/internal/templates"
)

func spawnBlock(methods ...models.MarkedMethod) *models.BlockMetadata {
	return &models.BlockMetadata{
		StructName: "Client",
		Companion:  models.CompanionRef{Name: "AsyncClient"},
		Strategy:   models.StrategySpawnBlocking,
		Methods:    methods,
	}
}

func TestSynthesizeMethod_SpawnResultValue(t *testing.T) {
	g := NewGenerator()

	text, err := g.SynthesizeMethod(spawnBlock(), models.MethodDescriptor{
		Name:       "MightFail",
		Params:     []models.Parameter{{Name: "ok", Type: "bool"}},
		ReturnKind: models.ReturnValueError,
		ValueType:  "string",
	})
	require.NoError(t, err)

	assert.Contains(t, text, "func (w *AsyncClient) MightFail(ctx context.Context, ok bool) (string, error) {")
	assert.Contains(t, text, "inner := w.inner")
	assert.Contains(t, text, "asyncwrap.Offload(func() asyncwrap.Outcome[string] {")
	assert.Contains(t, text, "value, err := inner.MightFail(ok)")
	assert.Contains(t, text, "task.Join(ctx)")
	assert.Contains(t, text, "asyncwrap.TaskFailed(join)")
	assert.Contains(t, text, "asyncwrap.Inner(out.Err)")
}

func TestSynthesizeMethod_SpawnResultErr(t *testing.T) {
	g := NewGenerator()

	text, err := g.SynthesizeMethod(spawnBlock(), models.MethodDescriptor{
		Name:       "Ping",
		ReturnKind: models.ReturnError,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "func (w *AsyncClient) Ping(ctx context.Context) error {")
	assert.Contains(t, text, "asyncwrap.Outcome[struct{}]{Err: inner.Ping()}")
	assert.Contains(t, text, "asyncwrap.TaskFailed(join)")
	assert.Contains(t, text, "asyncwrap.Inner(out.Err)")
	assert.NotContains(t, text, "out.Value")
}

func TestSynthesizeMethod_SpawnValue(t *testing.T) {
	g := NewGenerator()

	text, err := g.SynthesizeMethod(spawnBlock(), models.MethodDescriptor{
		Name:       "GetValue",
		ReturnKind: models.ReturnValue,
		ValueType:  "int",
	})
	require.NoError(t, err)

	// A method without an error result still gains one for task failures
	assert.Contains(t, text, "func (w *AsyncClient) GetValue(ctx context.Context) (int, error) {")
	assert.Contains(t, text, "asyncwrap.Offload(func() int {")
	assert.Contains(t, text, "return inner.GetValue()")
	assert.Contains(t, text, "return value, join")
	// No inner error to remap, so no WrapError constructors appear
	assert.NotContains(t, text, "asyncwrap.Inner(")
}

func TestSynthesizeMethod_SpawnVoid(t *testing.T) {
	g := NewGenerator()

	text, err := g.SynthesizeMethod(spawnBlock(), models.MethodDescriptor{
		Name:       "Touch",
		ReturnKind: models.ReturnNone,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "func (w *AsyncClient) Touch(ctx context.Context) error {")
	assert.Contains(t, text, "inner.Touch()")
	assert.Contains(t, text, "return struct{}{}")
	assert.Contains(t, text, "return nil")
}

func TestSynthesizeMethod_BlockInPlace(t *testing.T) {
	g := NewGenerator()

	block := spawnBlock()
	block.Strategy = models.StrategyBlockInPlace

	text, err := g.SynthesizeMethod(block, models.MethodDescriptor{
		Name:       "MightFail",
		Params:     []models.Parameter{{Name: "ok", Type: "bool"}},
		ReturnKind: models.ReturnValueError,
		ValueType:  "string",
	})
	require.NoError(t, err)

	// Return types pass through unchanged; the call stays on the caller's
	// goroutine, so no runtime machinery appears
	assert.Contains(t, text, "func (w *AsyncClient) MightFail(ctx context.Context, ok bool) (string, error) {")
	assert.Contains(t, text, "return w.inner.MightFail(ok)")
	assert.NotContains(t, text, "asyncwrap.Offload")
}

func TestSynthesizeMethod_BlockInPlaceVoid(t *testing.T) {
	g := NewGenerator()

	block := spawnBlock()
	block.Strategy = models.StrategyBlockInPlace

	text, err := g.SynthesizeMethod(block, models.MethodDescriptor{
		Name:       "Touch",
		ReturnKind: models.ReturnNone,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "func (w *AsyncClient) Touch(ctx context.Context) {")
	assert.Contains(t, text, "w.inner.Touch(")
	assert.NotContains(t, text, "return w.inner")
}

func TestSynthesizeMethod_GenericCompanionReceiver(t *testing.T) {
	g := NewGenerator()

	block := &models.BlockMetadata{
		StructName: "Cache",
		Companion:  models.CompanionRef{Name: "AsyncCache", TypeArgs: []string{"K", "V"}},
		Strategy:   models.StrategySpawnBlocking,
	}

	text, err := g.SynthesizeMethod(block, models.MethodDescriptor{
		Name:       "Get",
		Params:     []models.Parameter{{Name: "key", Type: "K"}},
		ReturnKind: models.ReturnValueError,
		ValueType:  "V",
	})
	require.NoError(t, err)

	assert.Contains(t, text, "func (w *AsyncCache[K, V]) Get(ctx context.Context, key K) (V, error) {")
	assert.Contains(t, text, "asyncwrap.Outcome[V]")
}

func TestSynthesizeMethod_DocsCarriedOver(t *testing.T) {
	g := NewGenerator()

	text, err := g.SynthesizeMethod(spawnBlock(), models.MethodDescriptor{
		Name:       "GetValue",
		Docs:       []string{"// GetValue returns the stored value."},
		ReturnKind: models.ReturnValue,
		ValueType:  "int",
	})
	require.NoError(t, err)

	assert.Contains(t, text, "// GetValue returns the stored value.\nfunc (w *AsyncClient) GetValue")
}

const transformSource = `package clients

//asyncwrap::companion AsyncClient
type Client struct {
	value int
}

//asyncwrap::wrap
func (c *Client) GetValue() int {
	return c.value
}
`

func TestTransformBlock_CleanBlock(t *testing.T) {
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", transformSource)
	require.NoError(t, err)

	g := NewGenerator()
	artifact, err := g.TransformBlock(metadata.Blocks[0], transformSource)
	require.NoError(t, err)

	assert.False(t, artifact.HasDiagnostics())
	assert.NotContains(t, artifact.Original, "asyncwrap::wrap")
	assert.Contains(t, artifact.Original, "//asyncwrap::companion AsyncClient")
	assert.Contains(t, artifact.Companion, "func (w *AsyncClient) GetValue(ctx context.Context)")

	rendered := artifact.Render()
	assert.Contains(t, rendered, "func (c *Client) GetValue() int")
	assert.Contains(t, rendered, "func (w *AsyncClient) GetValue(ctx context.Context)")
	assert.NotContains(t, rendered, "//asyncwrap:error")
}

func TestTransformBlock_ViolatingBlockSuppressesCompanion(t *testing.T) {
	source := `package clients

//asyncwrap::companion AsyncClient
type Client struct{}

//asyncwrap::wrap
func (c *Client) Fine() int { return 1 }

//asyncwrap::wrap
func (c Client) ByValue() int { return 0 }
`
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", source)
	require.NoError(t, err)

	g := NewGenerator()
	artifact, err := g.TransformBlock(metadata.Blocks[0], source)
	require.NoError(t, err)

	// One bad method suppresses the whole block's companion; the stripped
	// original and the diagnostic both survive in the artifact
	assert.True(t, artifact.HasDiagnostics())
	assert.Empty(t, artifact.Companion)
	assert.NotContains(t, artifact.Original, "asyncwrap::wrap")

	rendered := artifact.Render()
	assert.Contains(t, rendered, "//asyncwrap:error")
	assert.Contains(t, rendered, "value receiver")
	assert.NotContains(t, rendered, "func (w *AsyncClient)")
}

func TestGenerateCompanionFile_CleanPackage(t *testing.T) {
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", transformSource)
	require.NoError(t, err)

	g := NewGenerator()
	content, violations, err := g.GenerateCompanionFile(metadata)
	require.NoError(t, err)
	assert.Empty(t, violations)

	assert.Contains(t, content, templates.GeneratedHeader)
	assert.Contains(t, content, "package clients")
	assert.Contains(t, content, templates.RuntimeImport)
	assert.Contains(t, content, "func (w *AsyncClient) GetValue(ctx context.Context) (int, error) {")
}

func TestGenerateCompanionFile_BlocksAreIndependent(t *testing.T) {
	source := `package clients

//asyncwrap::companion AsyncGood
type Good struct{}

//asyncwrap::wrap
func (g *Good) Work() error { return nil }

//asyncwrap::companion AsyncBad
type Bad struct{}

//asyncwrap::wrap
func (b Bad) Broken() int { return 0 }
`
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", source)
	require.NoError(t, err)
	require.Len(t, metadata.Blocks, 2)

	g := NewGenerator()
	content, violations, err := g.GenerateCompanionFile(metadata)
	require.NoError(t, err)

	// The violating block contributes diagnostics and nothing else; the
	// clean block still generates
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "value receiver")
	assert.Contains(t, content, "func (w *AsyncGood) Work(ctx context.Context) error {")
	assert.NotContains(t, content, "AsyncBad")
}

func TestGenerateCompanionFile_MarkersOutsideBlocksStillReport(t *testing.T) {
	source := `package clients

type Plain struct{}

//asyncwrap::wrap
func Standalone() int { return 0 }

//asyncwrap::wrap
func (p Plain) Broken() int { return 0 }
`
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", source)
	require.NoError(t, err)

	g := NewGenerator()
	content, violations, err := g.GenerateCompanionFile(metadata)
	require.NoError(t, err)

	// Nothing to emit, but the broken marked declarations must not vanish
	assert.Empty(t, content)
	require.Len(t, violations, 2)
	assert.Contains(t, violations[0].Message, "free function")
	assert.Contains(t, violations[1].Message, "value receiver")
}

func TestGenerateCompanionFile_InlineOnlySkipsRuntimeImport(t *testing.T) {
	source := `package clients

//asyncwrap::companion AsyncClient, strategy = "block_in_place"
type Client struct{}

//asyncwrap::wrap
func (c *Client) GetValue() int { return 0 }
`
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", source)
	require.NoError(t, err)

	g := NewGenerator()
	content, violations, err := g.GenerateCompanionFile(metadata)
	require.NoError(t, err)
	assert.Empty(t, violations)

	assert.Contains(t, content, `import "context"`)
	assert.NotContains(t, content, templates.RuntimeImport)
}

func TestGenerateCompanionFile_EmptyWhenNothingToEmit(t *testing.T) {
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", "package clients\n\ntype Plain struct{}\n")
	require.NoError(t, err)

	g := NewGenerator()
	content, violations, err := g.GenerateCompanionFile(metadata)
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Empty(t, content)
}

func TestGenerateCompanionFile_OutputIsValidGo(t *testing.T) {
	source := `package clients

//asyncwrap::companion AsyncClient
type Client struct {
	value int
}

//asyncwrap::wrap
func (c *Client) GetValue() int { return c.value }

//asyncwrap::wrap
func (c *Client) MightFail(ok bool) (string, error) { return "", nil }

//asyncwrap::wrap
func (c *Client) Ping() error { return nil }

//asyncwrap::wrap
func (c *Client) Touch() {}
`
	p := parser.NewParser()
	metadata, err := p.ParseSource("client.go", source)
	require.NoError(t, err)

	g := NewGenerator()
	content, violations, err := g.GenerateCompanionFile(metadata)
	require.NoError(t, err)
	require.Empty(t, violations)

	_, err = goparser.ParseFile(token.NewFileSet(), "autogen_async.go", content, goparser.ParseComments)
	assert.NoError(t, err, "generated file must parse as Go source:\n%s", content)
}
