package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/asyncwrap/internal/models"
	"github.com/toyz/asyncwrap/internal/templates"
)

// SynthesizeMethod generates the full text of one companion method from a
// descriptor under the block's strategy. The descriptor is trusted: no
// validation is re-performed here.
func (g *Generator) SynthesizeMethod(block *models.BlockMetadata, descriptor models.MethodDescriptor) (string, error) {
	name := templateFor(block.Strategy, descriptor.ReturnKind)
	if name == "" {
		return "", fmt.Errorf("no template for strategy %s with return kind %d", block.Strategy, descriptor.ReturnKind)
	}
	return templates.RenderMethod(name, buildMethodData(block, descriptor))
}

// templateFor selects the code shape on the strategy x return-shape space
func templateFor(strategy models.Strategy, kind models.ReturnKind) string {
	if strategy == models.StrategyBlockInPlace {
		return templates.TemplateBlockInPlace
	}

	switch kind {
	case models.ReturnValueError:
		return templates.TemplateSpawnResultValue
	case models.ReturnError:
		return templates.TemplateSpawnResultErr
	case models.ReturnValue:
		return templates.TemplateSpawnValue
	case models.ReturnNone:
		return templates.TemplateSpawnVoid
	default:
		return ""
	}
}

// buildMethodData precomputes every string the method templates consume
func buildMethodData(block *models.BlockMetadata, descriptor models.MethodDescriptor) templates.MethodData {
	params := make([]templates.ParamData, 0, len(descriptor.Params))
	args := make([]string, 0, len(descriptor.Params))
	for _, p := range descriptor.Params {
		params = append(params, templates.ParamData{Name: p.Name, Type: p.Type})
		args = append(args, p.Name)
	}

	return templates.MethodData{
		Docs:         descriptor.Docs,
		Companion:    companionReceiver(block),
		Name:         descriptor.Name,
		Params:       params,
		Args:         strings.Join(args, ", "),
		ValueType:    descriptor.ValueType,
		InlineReturn: inlineReturn(descriptor),
		HasReturn:    descriptor.ReturnKind != models.ReturnNone,
	}
}

// companionReceiver renders the receiver type of the synthesized methods.
// Type arguments come from the companion reference when given, otherwise
// the blocking type's own parameter names are carried over so generic
// blocking types get generic companions.
func companionReceiver(block *models.BlockMetadata) string {
	args := block.Companion.TypeArgs
	if len(args) == 0 {
		args = block.TypeParamNames
	}
	if len(args) == 0 {
		return block.Companion.Name
	}
	return block.Companion.Name + "[" + strings.Join(args, ", ") + "]"
}

// inlineReturn renders the pass-through return clause for block_in_place
func inlineReturn(descriptor models.MethodDescriptor) string {
	switch descriptor.ReturnKind {
	case models.ReturnValueError:
		return "(" + descriptor.ValueType + ", error)"
	case models.ReturnValue:
		return descriptor.ValueType
	case models.ReturnError:
		return "error"
	default:
		return ""
	}
}
