package runconfig

import "path/filepath"

// Layout locates the files shipped with a workflow installation.
type Layout struct {
	// Home is the installation root: the directory that holds config/ and
	// workflow/, and the directory the engine is started in.
	Home string
}

// TemplatePath returns the path of the template config file.
func (l Layout) TemplatePath() string {
	return filepath.Join(l.Home, "config", "config.yml")
}

// Snakefile returns the path of the workflow definition.
func (l Layout) Snakefile() string {
	return filepath.Join(l.Home, "workflow", "Snakefile")
}
