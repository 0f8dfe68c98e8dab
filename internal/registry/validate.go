package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/vomix/internal/ctxlog"
)

// ValidateRegistry checks that no module declares an option whose key is
// already taken by a command-line flag outside the catalogue (engine and
// global flags). Such a clash would make the flag unreachable.
func (r *Registry) ValidateRegistry(ctx context.Context, reserved []string) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	taken := make(map[string]struct{}, len(reserved))
	for _, k := range reserved {
		taken[k] = struct{}{}
	}

	for _, name := range r.order {
		def := r.defs[name]
		for _, o := range def.Options {
			if _, clash := taken[o.Key]; clash {
				errs = append(errs, fmt.Sprintf("module '%s': option '%s' clashes with a reserved flag", name, o.Key))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "modules", len(r.order))
	return nil
}
