package prok_annotate

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the prokaryotic functional annotation stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("prok-annotate",
		"Profile prokaryotic functions with HUMAnN.",
		model.String("humann-params", "Extra parameters for HUMAnN."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
