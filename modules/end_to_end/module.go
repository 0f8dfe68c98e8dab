package end_to_end

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the end-to-end run, which chains every stage using
// the defaults of the config file.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("end-to-end",
		"Run every stage from preprocessing to annotation.",
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
