package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
	"github.com/vk/vomix/internal/runner"
	"github.com/vk/vomix/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

func newTestConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	return c
}

func TestRun_PresetThenFlags(t *testing.T) {
	// --- Arrange ---
	workdir := t.TempDir()
	presetPath := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(presetPath, []byte(`
assembler       = "spades"
megahit-min-len = 500
spades-memory   = 120
`), 0o600))

	cfg := newTestConfig(t, Config{
		Module:     "assembly",
		PresetPath: presetPath,
		Overrides:  map[string]cty.Value{"assembler": cty.StringVal("megahit")},
		Engine:     model.DefaultEngineOptions(),
		Home:       testutil.NewHome(t, workdir).Home,
		EngineBin:  testutil.FakeEngine(t, testutil.EchoArgs),
	})
	out, errOut := &bytes.Buffer{}, &testutil.SafeBuffer{}

	// --- Act ---
	err := NewApp(out, errOut, cfg, nil).Run(context.Background(), cfg)

	// --- Assert ---
	require.NoError(t, err, "stderr: %s", errOut.String())
	assert.Contains(t, out.String(), "assembler=megahit\n", "flags override the preset")
	assert.Contains(t, out.String(), "megahit-min-len=500\n", "preset overrides defaults")
	assert.Contains(t, out.String(), "spades-memory=120\n")
	assert.Contains(t, errOut.String(), "invocation=", "log records carry the invocation id")

	got := testutil.ReadRunConfig(t, testutil.RequireSingleRun(t, workdir, model.DefaultOutdir))
	assert.Equal(t, "megahit", got["assembler"])
	assert.Equal(t, 500, got["megahit-min-len"])
}

func TestRun_PresetCannotUnsetOutdir(t *testing.T) {
	// --- Arrange ---
	workdir := t.TempDir()
	layout := testutil.NewHomeWithTemplate(t, "workdir: "+workdir+"\noutdir: custom/out\n")
	presetPath := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(presetPath, []byte("outdir = null\n"), 0o600))
	marker := filepath.Join(t.TempDir(), "ran")

	cfg := newTestConfig(t, Config{
		Module:     "end-to-end",
		PresetPath: presetPath,
		Engine:     model.DefaultEngineOptions(),
		Home:       layout.Home,
		EngineBin:  testutil.FakeEngine(t, "touch "+marker),
	})

	// --- Act ---
	err := NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, cfg, nil).Run(context.Background(), cfg)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), `option "outdir" has a default and cannot be unset`)
	assert.NoFileExists(t, marker)
	entries, readErr := os.ReadDir(workdir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no run directory is created")
}

func TestRun_RunDirFollowsEngineOutdir(t *testing.T) {
	// --- Arrange ---
	workdir := t.TempDir()
	layout := testutil.NewHomeWithTemplate(t, "workdir: "+workdir+"\noutdir: custom/out\n")
	presetPath := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(presetPath, []byte(`outdir = "preset/out"`+"\n"), 0o600))
	out := &bytes.Buffer{}

	cfg := newTestConfig(t, Config{
		Module:     "end-to-end",
		PresetPath: presetPath,
		Engine:     model.DefaultEngineOptions(),
		Home:       layout.Home,
		EngineBin:  testutil.FakeEngine(t, testutil.EchoArgs),
	})

	// --- Act ---
	err := NewApp(out, &testutil.SafeBuffer{}, cfg, nil).Run(context.Background(), cfg)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "outdir=preset/out\n")
	runDir := testutil.RequireSingleRun(t, workdir, "preset/out")
	assert.Equal(t, "preset/out", testutil.ReadRunConfig(t, runDir)["outdir"])
	assert.Empty(t, testutil.RunDirs(t, workdir, "custom/out"))
}

func TestRun_UnknownModuleCreatesNothing(t *testing.T) {
	workdir := t.TempDir()
	cfg := newTestConfig(t, Config{Module: "bogus", Home: testutil.NewHome(t, workdir).Home})

	err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil).Run(context.Background(), cfg)

	require.ErrorIs(t, err, registry.ErrUnknownModule)
	entries, readErr := os.ReadDir(workdir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRun_EngineFailureIsReported(t *testing.T) {
	workdir := t.TempDir()
	cfg := newTestConfig(t, Config{
		Module:    "end-to-end",
		Engine:    model.DefaultEngineOptions(),
		Home:      testutil.NewHome(t, workdir).Home,
		EngineBin: testutil.FakeEngine(t, "echo boom >&2; exit 3"),
	})

	err := NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, cfg, nil).Run(context.Background(), cfg)

	var subErr *runner.SubprocessError
	require.True(t, errors.As(err, &subErr), "got %v", err)
	assert.Equal(t, 3, subErr.Code)
	assert.Contains(t, subErr.Stderr, "boom")
	assert.Contains(t, err.Error(), "module end-to-end:")
	testutil.RequireSingleRun(t, workdir, model.DefaultOutdir)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{Module: "assembly", Home: "relative/home"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Home))
	assert.NotNil(t, cfg.Overrides)
}

func TestNewRegistry_CoreModules(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, []string{
		"preprocess", "assembly", "viral-identify", "viral-taxonomy", "viral-host",
		"viral-community", "viral-annotate", "prok-community", "prok-binning",
		"prok-annotate", "end-to-end", "cluster-fast", "checkv-pyhmmer", "setup-database",
	}, reg.Names())

	def, err := reg.Lookup("viral-identify")
	require.NoError(t, err)
	opt, ok := def.Option("genomad-cutoff")
	require.True(t, ok)
	assert.Equal(t, model.KindFloat, opt.Kind)
	assert.Equal(t, "0.7", model.FormatValue(opt.DefaultValue()))
}
