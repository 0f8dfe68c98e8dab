package viral_host

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the host prediction stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("viral-host",
		"Predict hosts and lifestyles of viral contigs with CHERRY, PhaTYP and iPHoP.",
		model.String("CHERRY-params", "Extra parameters for CHERRY."),
		model.String("PhaTYP-params", "Extra parameters for PhaTYP."),
		model.Int("iphop-cutoff", 90, "Minimum iPHoP confidence score."),
		model.String("iphop-params", "Extra parameters for iPHoP."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
