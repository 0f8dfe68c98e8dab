package prok_binning

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the prokaryotic binning stage. The workflow side does
// not expose any tunables for it yet.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("prok-binning",
		"Bin prokaryotic contigs into metagenome-assembled genomes.",
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
