// Package command turns a module selection and engine options into the
// single command line that runs the workflow engine.
//
// The output has the shape
//
//	snakemake --config module="<name>" <key>=<value> ... <engine flags> [add-args] --sdm conda --use-conda
//
// and is fully determined by its inputs: options are emitted in catalogue
// order and engine flags in a fixed order.
package command

import (
	"strings"

	"github.com/vk/vomix/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// DefaultEngine is the workflow engine executable.
const DefaultEngine = "snakemake"

// EnvSuffix selects conda-isolated execution of every rule.
const EnvSuffix = "--sdm conda --use-conda"

// Builder serializes invocations for one engine executable.
type Builder struct {
	engine string
}

// NewBuilder returns a Builder for the given executable, or DefaultEngine
// when engine is empty.
func NewBuilder(engine string) *Builder {
	engine = strings.TrimSpace(engine)
	if engine == "" {
		engine = DefaultEngine
	}
	return &Builder{engine: engine}
}

// Build returns the command line for running spec with eng.
func (b *Builder) Build(spec *model.ModuleSpec, eng model.EngineOptions) string {
	tokens := []string{b.engine, "--config", "module=" + quote(spec.Name())}

	for _, o := range spec.Options() {
		if o.Internal {
			continue
		}
		switch {
		case o.Kind == model.KindBool:
			// false is a setting of its own, never dropped.
			tokens = append(tokens, o.Key+"="+o.Text())
		case o.IsSet():
			tokens = append(tokens, o.Key+"="+quote(o.Text()))
		}
	}

	for _, f := range eng.Flags() {
		switch {
		case f.Count:
			tokens = append(tokens, f.Flag, model.FormatValue(f.Value))
		case f.Value.IsNull():
			// unset
		case f.Value.Type() == cty.Bool:
			if f.Value.True() {
				tokens = append(tokens, f.Flag)
			}
		default:
			tokens = append(tokens, f.Flag+"="+quote(model.FormatValue(f.Value)))
		}
	}

	if args := strings.TrimSpace(eng.AddArgs); args != "" {
		tokens = append(tokens, args)
	}

	tokens = append(tokens, EnvSuffix)
	return strings.Join(tokens, " ")
}

// quote wraps s in double quotes, escaping the characters bash still
// interprets inside them.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$', '`':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
