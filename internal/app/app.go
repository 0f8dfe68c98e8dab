package app

import (
	"io"
	"log/slog"

	"github.com/vk/vomix/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. Engine output goes to
// outW; logs and engine stderr go to errW.
func NewApp(outW, errW io.Writer, cfg *Config, reg *registry.Registry) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	if reg == nil {
		reg = NewRegistry()
	}

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
