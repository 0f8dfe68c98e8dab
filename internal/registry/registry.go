package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/vomix/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnknownModule is returned when a module name is not in the catalogue.
var ErrUnknownModule = errors.New("unknown module")

// Module is the interface that all pipeline stage packages implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the definitions of every known module, keyed by name.
type Registry struct {
	defs  map[string]*model.ModuleDef
	order []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{defs: make(map[string]*model.ModuleDef)}
}

// RegisterModule adds a module definition. Registering an invalid definition
// or the same name twice is a programmer error and panics.
func (r *Registry) RegisterModule(def *model.ModuleDef) {
	if err := def.Validate(); err != nil {
		panic(err)
	}
	if _, exists := r.defs[def.Name]; exists {
		panic(fmt.Sprintf("module with name '%s' already registered", def.Name))
	}
	slog.Debug("Registering module.", "name", def.Name, "options", len(def.Options))
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
}

// Lookup returns the definition of the named module.
func (r *Registry) Lookup(name string) (*model.ModuleDef, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, name)
	}
	return def, nil
}

// Names returns module names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// NewSpec looks up the named module and binds it to the given overrides.
func (r *Registry) NewSpec(name string, overrides map[string]cty.Value) (*model.ModuleSpec, error) {
	def, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return model.NewModuleSpec(def, overrides)
}
