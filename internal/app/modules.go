package app

import (
	"github.com/vk/vomix/internal/registry"
	"github.com/vk/vomix/modules/assembly"
	"github.com/vk/vomix/modules/checkv_pyhmmer"
	"github.com/vk/vomix/modules/cluster_fast"
	"github.com/vk/vomix/modules/end_to_end"
	"github.com/vk/vomix/modules/preprocess"
	"github.com/vk/vomix/modules/prok_annotate"
	"github.com/vk/vomix/modules/prok_binning"
	"github.com/vk/vomix/modules/prok_community"
	"github.com/vk/vomix/modules/setup_database"
	"github.com/vk/vomix/modules/viral_annotate"
	"github.com/vk/vomix/modules/viral_community"
	"github.com/vk/vomix/modules/viral_host"
	"github.com/vk/vomix/modules/viral_identify"
	"github.com/vk/vomix/modules/viral_taxonomy"
)

// coreModules is the definitive list of all modules that are compiled into
// the vomix binary, in the order they are listed to the user.
var coreModules = []registry.Module{
	&preprocess.Module{},
	&assembly.Module{},
	&viral_identify.Module{},
	&viral_taxonomy.Module{},
	&viral_host.Module{},
	&viral_community.Module{},
	&viral_annotate.Module{},
	&prok_community.Module{},
	&prok_binning.Module{},
	&prok_annotate.Module{},
	&end_to_end.Module{},
	&cluster_fast.Module{},
	&checkv_pyhmmer.Module{},
	&setup_database.Module{},
}

// NewRegistry returns a registry populated with the given modules, or with
// every core module when none are given.
func NewRegistry(modules ...registry.Module) *registry.Registry {
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	return reg
}
