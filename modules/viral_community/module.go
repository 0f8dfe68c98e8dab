package viral_community

import (
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Definition describes the viral community profiling stage.
func Definition() *model.ModuleDef {
	return model.NewModuleDef("viral-community",
		"Profile viral community abundance with MetaPhlAn and CoverM.",
		model.String("mpa-indexv", "MetaPhlAn database index version."),
		model.String("mpa-params", "Extra parameters for MetaPhlAn."),
		model.String("coverm-params", "Extra parameters for CoverM."),
		model.String("coverm-methods", "CoverM coverage methods."),
	)
}

// Register registers the module with the catalogue.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterModule(Definition())
}
