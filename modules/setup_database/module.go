package setup_database

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the database download and setup stage. Every option
// is the destination of one reference database.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("setup-database",
		"Download and install the reference databases used by the other stages.",
		model.String("PhaBox2-db", "Destination of the PhaBox2 database."),
		model.String("genomad-db", "Destination of the geNomad database."),
		model.String("checkv-db", "Destination of the CheckV database."),
		model.String("eggNOG-db", "Destination of the eggNOG database."),
		model.String("eggNOG-db-params", "Extra parameters for the eggNOG download."),
		model.String("virsorter2-db", "Destination of the VirSorter2 database."),
		model.String("iphop-db", "Destination of the iPHoP database."),
		model.String("iphop-db-version", "iPHoP database version."),
		model.String("iphop-db-basename", "iPHoP database base name."),
		model.String("humann-db", "Destination of the HUMAnN databases."),
		model.String("GTDBTk-db", "Destination of the GTDB-Tk database."),
		model.String("GTDBTk-db-version", "GTDB-Tk database version."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
