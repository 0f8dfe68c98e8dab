package preset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/vomix/internal/ctxlog"
	"github.com/vk/vomix/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// ErrPreset is wrapped by every error returned from this package.
var ErrPreset = errors.New("invalid preset")

// LoadFile parses the preset file at path against the options of def.
func LoadFile(ctx context.Context, path string, def *model.ModuleDef) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading preset file.", "path", path, "module", def.Name)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreset, err)
	}
	return Parse(ctx, src, path, def)
}

// Parse is LoadFile for in-memory sources. filename is only used in
// diagnostics.
func Parse(ctx context.Context, src []byte, filename string, def *model.ModuleDef) (map[string]cty.Value, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %s", ErrPreset, filename, diags.Error())
	}
	return decode(ctx, file, def)
}

func decode(ctx context.Context, file *hcl.File, def *model.ModuleDef) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrPreset, diags.Error())
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]cty.Value, len(attrs))
	for _, name := range names {
		attr := attrs[name]
		opt, ok := def.Option(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s: module %q has no option %q", ErrPreset, attr.NameRange, def.Name, name)
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %s: %s", ErrPreset, attr.Range, diags.Error())
		}
		coerced, err := opt.Coerce(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPreset, attr.Range, err)
		}
		out[name] = coerced
		logger.Debug("Preset option loaded.", "key", name, "set", !coerced.IsNull())
	}
	return out, nil
}
