package cluster_fast

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the standalone vOTU clustering stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("cluster-fast",
		"Cluster viral contigs into vOTUs.",
		model.Bool("clustering-fast", true, "Cluster with CD-HIT instead of all-vs-all ANI."),
		model.String("cdhit-params", "Extra parameters for CD-HIT."),
		model.Int("vOTU-ani", 95, "Average nucleotide identity threshold for vOTUs."),
		model.Int("vOTU-targetcov", 85, "Target coverage threshold for vOTUs."),
		model.Int("vOTU-querycov", 0, "Query coverage threshold for vOTUs."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
