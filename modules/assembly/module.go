package assembly

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the assembly and co-assembly stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("assembly",
		"Assemble and co-assemble reads into contigs with MEGAHIT or metaSPAdes.",
		model.String("assembler", "Assembler to use: megahit or spades."),
		model.Int("megahit-min-len", 300, "Minimum contig length kept by MEGAHIT."),
		model.String("megahit-params", "Extra parameters for MEGAHIT."),
		model.String("spades-params", "Extra parameters for metaSPAdes."),
		model.Int("spades-memory", 250, "Memory limit for metaSPAdes, in GB."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
