package app

import (
	"context"
	"fmt"
	"maps"

	"github.com/vk/vomix/internal/command"
	"github.com/vk/vomix/internal/ctxlog"
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/preset"
	"github.com/vk/vomix/internal/runconfig"
	"github.com/vk/vomix/internal/runner"
	"github.com/zclconf/go-cty/cty"
)

// Run executes the selected module based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "module", cfg.Module)

	spec, err := a.moduleSpec(ctx, cfg)
	if err != nil {
		return err
	}

	layout := runconfig.Layout{Home: cfg.Home}
	r := runner.New(layout,
		runconfig.NewMaterializer(layout),
		command.NewBuilder(cfg.EngineBin),
		a.outW, a.errW)

	a.logger.Info("Starting module.", "module", spec.Name(), "home", cfg.Home)
	res, err := r.Run(ctx, spec, cfg.Engine)
	if err != nil {
		return fmt.Errorf("module %s: %w", spec.Name(), err)
	}
	a.logger.Info("Module finished.", "module", spec.Name(), "run_dir", res.RunDir.Path)
	return nil
}

// moduleSpec resolves the module and merges its option values: catalogue
// defaults, then the preset file, then command-line flags.
func (a *App) moduleSpec(ctx context.Context, cfg *Config) (*model.ModuleSpec, error) {
	def, err := a.registry.Lookup(cfg.Module)
	if err != nil {
		return nil, err
	}

	overrides := map[string]cty.Value{}
	if cfg.PresetPath != "" {
		values, err := preset.LoadFile(ctx, cfg.PresetPath, def)
		if err != nil {
			return nil, err
		}
		maps.Copy(overrides, values)
		a.logger.Info("Preset applied.", "path", cfg.PresetPath, "options", len(values))
	}
	maps.Copy(overrides, cfg.Overrides)

	return a.registry.NewSpec(def.Name, overrides)
}
