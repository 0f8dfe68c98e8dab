package runconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/vomix/internal/ctxlog"
	"github.com/vk/vomix/internal/fsutil"
	"github.com/vk/vomix/internal/model"
)

// Names and formats of the run directory tree.
const (
	HiddenDir       = ".vomix"
	ConfigFileName  = "config.yml"
	RunIDPrefix     = "vomix"
	TimestampLayout = "20060102_150405"

	KeyLatestRun = "latest-run"
	KeyWorkdir   = "workdir"
)

var (
	// ErrConfiguration is returned when no working directory can be resolved.
	ErrConfiguration = errors.New("configuration error")
	// ErrTemplateNotFound is returned when the template config file is missing.
	ErrTemplateNotFound = errors.New("template config not found")
	// ErrCustomConfig is returned when the custom config file cannot be read
	// or is not a YAML mapping.
	ErrCustomConfig = errors.New("invalid custom config")
)

// RunDir describes the directories and files created for one invocation.
type RunDir struct {
	RunID      string
	LatestRun  string // timestamp part of RunID
	Workdir    string
	Outdir     string
	Path       string // the run's log directory
	ConfigPath string
	DataDir    string // empty when the module sets no datadir
	FastaDir   string // empty when the module sets no fastadir
}

// Materializer writes run config snapshots.
type Materializer struct {
	layout Layout
	now    func() time.Time
}

// NewMaterializer returns a Materializer reading its template from layout.
func NewMaterializer(layout Layout) *Materializer {
	return &Materializer{layout: layout, now: time.Now}
}

// WithClock replaces the time source used for run timestamps.
func (m *Materializer) WithClock(now func() time.Time) *Materializer {
	m.now = now
	return m
}

// Materialize resolves the working directory of spec, creates the run
// directory tree and writes the run's config.yml.
func (m *Materializer) Materialize(ctx context.Context, spec *model.ModuleSpec) (*RunDir, error) {
	logger := ctxlog.FromContext(ctx)

	var (
		custom   *document
		template *document
		err      error
	)

	customPath := spec.CustomConfig()
	if customPath != "" {
		custom, err = loadCustom(customPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using custom config.", "path", customPath)
		logger.Info("Command-line options override the values of the custom config.")
	} else {
		template, err = m.loadTemplate()
		if err != nil {
			return nil, err
		}
		logger.Info("Using template config.", "path", m.layout.TemplatePath())
	}

	workdir := spec.Workdir()
	if workdir == "" && custom != nil {
		workdir, _ = custom.lookupString(KeyWorkdir)
	}
	if workdir == "" {
		if template == nil {
			if template, err = m.loadTemplate(); err != nil {
				return nil, err
			}
		}
		workdir, _ = template.lookupString(KeyWorkdir)
	}
	if workdir == "" {
		return nil, fmt.Errorf("%w: no workdir given and none found in the config file", ErrConfiguration)
	}
	logger.Info("Using workdir.", "workdir", workdir)

	latestRun := m.now().Format(TimestampLayout)
	rd := &RunDir{
		RunID:     RunIDPrefix + latestRun,
		LatestRun: latestRun,
		Workdir:   workdir,
		Outdir:    filepath.Join(workdir, spec.Outdir()),
	}
	rd.Path = filepath.Join(rd.Outdir, HiddenDir, "log", rd.RunID)
	rd.ConfigPath = filepath.Join(rd.Path, ConfigFileName)
	if v := spec.StringValue(model.KeyDatadir); v != "" {
		rd.DataDir = filepath.Join(workdir, v)
	}
	if v := spec.StringValue(model.KeyFastadir); v != "" {
		rd.FastaDir = filepath.Join(workdir, v)
	}

	var data []byte
	if custom == nil {
		if data, err = overlay(template, spec, latestRun); err != nil {
			return nil, err
		}
	}

	for _, dir := range []string{rd.DataDir, rd.FastaDir, rd.Path} {
		if dir == "" {
			continue
		}
		if err := fsutil.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	if custom != nil {
		if err := fsutil.CopyFile(customPath, rd.ConfigPath); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCustomConfig, err)
		}
	} else if err := fsutil.WriteFile(rd.ConfigPath, data); err != nil {
		return nil, fmt.Errorf("write run config: %w", err)
	}

	logger.Debug("Run config written.", "path", rd.ConfigPath, "run_id", rd.RunID)
	return rd, nil
}

func (m *Materializer) loadTemplate() (*document, error) {
	path := m.layout.TemplatePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("read template config: %w", err)
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse template config %s: %w", path, err)
	}
	return doc, nil
}

func loadCustom(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCustomConfig, err)
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCustomConfig, path, err)
	}
	return doc, nil
}

// overlay sets latest-run and every set option of spec on the template and
// returns the encoded result. Absent options are left untouched.
func overlay(doc *document, spec *model.ModuleSpec, latestRun string) ([]byte, error) {
	if err := doc.set(KeyLatestRun, latestRun); err != nil {
		return nil, err
	}
	for _, o := range spec.Options() {
		if !o.IsSet() {
			continue
		}
		if err := doc.set(o.Key, o.Native()); err != nil {
			return nil, err
		}
	}
	data, err := doc.encode()
	if err != nil {
		return nil, fmt.Errorf("encode run config: %w", err)
	}
	return data, nil
}
