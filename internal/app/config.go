package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/vomix/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Module     string
	Overrides  map[string]cty.Value // option values given on the command line
	PresetPath string               // optional HCL preset file
	Engine     model.EngineOptions

	Home      string // installation root
	EngineBin string // engine executable

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and resolves Home to an absolute path.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Module == "" {
		return nil, errors.New("Module is a required configuration field and cannot be empty")
	}
	if cfg.Home == "" {
		cfg.Home = "."
	}
	home, err := filepath.Abs(cfg.Home)
	if err != nil {
		return nil, fmt.Errorf("resolve home %q: %w", cfg.Home, err)
	}
	cfg.Home = home
	if cfg.Overrides == nil {
		cfg.Overrides = map[string]cty.Value{}
	}
	return &cfg, nil
}
