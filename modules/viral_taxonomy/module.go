package viral_taxonomy

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the viral taxonomy stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("viral-taxonomy",
		"Assign taxonomy to viral contigs with ViPhOGs, PhaGCN and geNomad.",
		model.Float("viphogs-hmmeval", 0.01, "HMM e-value threshold for ViPhOGs."),
		model.Float("viphogs-prop", 0.06, "Minimum proportion of ViPhOG hits."),
		model.String("PhaBox2-db", "Path of the PhaBox2 database."),
		model.Int("phagcn-min-len", 1500, "Minimum contig length passed to PhaGCN."),
		model.String("phagcn-params", "Extra parameters for PhaGCN."),
		model.String("diamond-params", "Extra parameters for DIAMOND."),
		model.String("genomad-db", "Path of the geNomad database."),
		model.String("genomad-params", "Extra parameters for geNomad."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
