package viral_annotate

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the viral functional annotation stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("viral-annotate",
		"Annotate viral proteins with eggNOG-mapper and PhaVIP.",
		model.String("eggNOG-params", "Extra parameters for eggNOG-mapper."),
		model.String("PhaVIP-params", "Extra parameters for PhaVIP."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
