package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// ParamData is one forwarded parameter in a synthesized signature
type ParamData struct {
	Name string
	Type string
}

// MethodData feeds the method templates. One instance per synthesized
// method; the generator precomputes every derived string so the templates
// stay purely structural.
type MethodData struct {
	Docs      []string    // doc comment lines, already '//'-prefixed
	Companion string      // receiver type including type arguments
	Name      string      // method name, identical to the source method
	Params    []ParamData // forwarded parameters, receiver and ctx excluded
	Args      string      // comma-joined argument names for the forwarding call
	ValueType string      // non-error result type, empty when absent

	// InlineReturn and HasReturn drive the block_in_place template, whose
	// return types pass through from the source method unchanged
	InlineReturn string
	HasReturn    bool
}

// Template names, one per strategy and return shape
const (
	TemplateSpawnResultValue = "spawn_result_value"
	TemplateSpawnResultErr   = "spawn_result_err"
	TemplateSpawnValue       = "spawn_value"
	TemplateSpawnVoid        = "spawn_void"
	TemplateBlockInPlace     = "block_in_place"
)

const methodTemplateText = `
{{- define "doc"}}{{range .Docs}}{{.}}
{{end}}{{end -}}

{{- define "params"}}{{range .Params}}, {{.Name}} {{.Type}}{{end}}{{end -}}

{{- define "spawn_result_value" -}}
{{template "doc" .}}func (w *{{.Companion}}) {{.Name}}(ctx context.Context{{template "params" .}}) ({{.ValueType}}, error) {
	inner := w.inner
	task := asyncwrap.Offload(func() asyncwrap.Outcome[{{.ValueType}}] {
		value, err := inner.{{.Name}}({{.Args}})
		return asyncwrap.Outcome[{{.ValueType}}]{Value: value, Err: err}
	})
	out, join := task.Join(ctx)
	if join != nil {
		return out.Value, asyncwrap.TaskFailed(join)
	}
	if out.Err != nil {
		return out.Value, asyncwrap.Inner(out.Err)
	}
	return out.Value, nil
}
{{end -}}

{{- define "spawn_result_err" -}}
{{template "doc" .}}func (w *{{.Companion}}) {{.Name}}(ctx context.Context{{template "params" .}}) error {
	inner := w.inner
	task := asyncwrap.Offload(func() asyncwrap.Outcome[struct{}] {
		return asyncwrap.Outcome[struct{}]{Err: inner.{{.Name}}({{.Args}})}
	})
	out, join := task.Join(ctx)
	if join != nil {
		return asyncwrap.TaskFailed(join)
	}
	if out.Err != nil {
		return asyncwrap.Inner(out.Err)
	}
	return nil
}
{{end -}}

{{- define "spawn_value" -}}
{{template "doc" .}}func (w *{{.Companion}}) {{.Name}}(ctx context.Context{{template "params" .}}) ({{.ValueType}}, error) {
	inner := w.inner
	task := asyncwrap.Offload(func() {{.ValueType}} {
		return inner.{{.Name}}({{.Args}})
	})
	value, join := task.Join(ctx)
	if join != nil {
		return value, join
	}
	return value, nil
}
{{end -}}

{{- define "spawn_void" -}}
{{template "doc" .}}func (w *{{.Companion}}) {{.Name}}(ctx context.Context{{template "params" .}}) error {
	inner := w.inner
	task := asyncwrap.Offload(func() struct{} {
		inner.{{.Name}}({{.Args}})
		return struct{}{}
	})
	if _, join := task.Join(ctx); join != nil {
		return join
	}
	return nil
}
{{end -}}

{{- define "block_in_place" -}}
{{template "doc" .}}func (w *{{.Companion}}) {{.Name}}(ctx context.Context{{template "params" .}}){{if .InlineReturn}} {{.InlineReturn}}{{end}} {
	{{if .HasReturn}}return {{end}}w.inner.{{.Name}}({{.Args}})
}
{{end -}}
`

var methodTemplates = template.Must(template.New("methods").Parse(methodTemplateText))

// RenderMethod executes the named method template with the given data
func RenderMethod(name string, data MethodData) (string, error) {
	var buf bytes.Buffer
	if err := methodTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render method template %s: %w", name, err)
	}
	return buf.String(), nil
}
