package preprocess

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the preprocess stage: read download, compression,
// quality trimming with fastp and optional host decontamination with hostile.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("preprocess",
		"Download, quality-trim and optionally host-decontaminate raw reads.",
		model.Bool("decontam-host", false, "Remove host reads with hostile."),
		model.String("dwnld-params", "Extra parameters for the read downloader."),
		model.String("pigz-params", "Extra parameters for pigz."),
		model.String("fastp-params", "Extra parameters for fastp."),
		model.String("hostile-params", "Extra parameters for hostile."),
		model.String("hostile-aligner", "Aligner used by hostile (bowtie2 or minimap2)."),
		model.String("hostile-aligner-params", "Extra parameters for the hostile aligner."),
		model.String("hostile-index-path", "Path of the host index used by hostile."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
