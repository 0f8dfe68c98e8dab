package viral_identify

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the viral identification stage: geNomad detection,
// CheckV quality assessment and vOTU clustering.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("viral-identify",
		"Identify viral contigs, assess their quality and cluster them into vOTUs.",
		model.Int("contig-min-len", 0, "Minimum contig length considered."),
		model.String("genomad-db", "Path of the geNomad database."),
		model.Int("genomad-min-len", 1500, "Minimum contig length passed to geNomad."),
		model.String("genomad-params", "Extra parameters for geNomad."),
		model.Float("genomad-cutoff", 0.7, "geNomad virus score cutoff."),
		model.Float("genomad-cutoff-s", 0, "geNomad cutoff for short contigs."),
		model.Bool("checkv-original", false, "Run the original CheckV instead of the pyhmmer port."),
		model.String("checkv-params", "Extra parameters for CheckV."),
		model.String("checkv-database", "Path of the CheckV database."),
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
