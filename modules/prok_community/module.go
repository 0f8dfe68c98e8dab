package prok_community

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the prokaryotic community profiling stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("prok-community",
		"Profile prokaryotic community composition with MetaPhlAn.",
		model.String("mpa-params", "Extra parameters for MetaPhlAn."),
		model.String("mpa-indexv", "MetaPhlAn database index version."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
