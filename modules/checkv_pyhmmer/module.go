package checkv_pyhmmer

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the standalone CheckV quality assessment stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("checkv-pyhmmer",
		"Assess viral genome quality with CheckV.",
		model.Bool("checkv-original", false, "Run the original CheckV instead of the pyhmmer port."),
		model.String("checkv-params", "Extra parameters for CheckV."),
		model.String("checkv-database", "Path of the CheckV database."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
