package runconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/vomix/internal/model"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

var fixedTime = time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)

func assemblyDef() *model.ModuleDef {
	return model.NewModuleDef("assembly", "",
		model.String("assembler", ""),
		model.Int("megahit-min-len", 300, ""),
		model.Float("genomad-cutoff", 0.7, ""),
		model.Bool("decontam-host", false, ""),
		model.String("spades-params", ""),
	)
}

func newSpec(t *testing.T, overrides map[string]cty.Value) *model.ModuleSpec {
	t.Helper()
	spec, err := model.NewModuleSpec(assemblyDef(), overrides)
	require.NoError(t, err)
	return spec
}

// writeTemplate creates <home>/config/config.yml and returns the layout.
func writeTemplate(t *testing.T, content string) Layout {
	t.Helper()
	layout := Layout{Home: t.TempDir()}
	require.NoError(t, os.MkdirAll(filepath.Dir(layout.TemplatePath()), 0o755))
	require.NoError(t, os.WriteFile(layout.TemplatePath(), []byte(content), 0o600))
	return layout
}

func readYAML(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, yaml.Unmarshal(data, &out))
	return out
}

func TestMaterialize_TemplateOverlay(t *testing.T) {
	// --- Arrange ---
	workdir := t.TempDir()
	layout := writeTemplate(t, "# vomix defaults\nworkdir: "+workdir+"\nassembler: spades # default assembler\nthreads: 8\n")
	spec := newSpec(t, map[string]cty.Value{
		"assembler":     cty.StringVal("megahit"),
		model.KeyOutdir: cty.StringVal("sample/results"),
	})
	m := NewMaterializer(layout).WithClock(func() time.Time { return fixedTime })

	// --- Act ---
	rd, err := m.Materialize(context.Background(), spec)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "vomix20250314_150926", rd.RunID)
	assert.Equal(t, "20250314_150926", rd.LatestRun)
	assert.Equal(t, filepath.Join(workdir, "sample/results", ".vomix", "log", "vomix20250314_150926"), rd.Path)
	assert.Equal(t, filepath.Join(rd.Path, "config.yml"), rd.ConfigPath)
	assert.DirExists(t, rd.Path)

	got := readYAML(t, rd.ConfigPath)
	assert.Equal(t, "20250314_150926", got["latest-run"])
	assert.Equal(t, "megahit", got["assembler"])
	assert.Equal(t, "sample/results", got["outdir"])
	assert.Equal(t, 300, got["megahit-min-len"])
	assert.Equal(t, 0.7, got["genomad-cutoff"])
	assert.Equal(t, false, got["decontam-host"])
	assert.Equal(t, 8, got["threads"], "template keys are kept")
	assert.Equal(t, workdir, got["workdir"])

	assert.NotContains(t, got, "spades-params", "absent options are never written")
	assert.NotContains(t, got, "custom-config")
	assert.NotContains(t, got, "datadir")

	raw, err := os.ReadFile(rd.ConfigPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# vomix defaults")
	assert.Contains(t, string(raw), "# default assembler")
}

func TestMaterialize_OverlayRoundTrip(t *testing.T) {
	workdir := t.TempDir()
	layout := writeTemplate(t, "workdir: "+workdir+"\n")
	overrides := map[string]cty.Value{
		"assembler":       cty.StringVal("megahit"),
		"megahit-min-len": cty.NumberIntVal(1000),
		"genomad-cutoff":  cty.NumberFloatVal(0.95),
		"decontam-host":   cty.True,
		"spades-params":   cty.StringVal("--only-assembler -k 21,33"),
	}
	spec := newSpec(t, overrides)

	rd, err := NewMaterializer(layout).Materialize(context.Background(), spec)
	require.NoError(t, err)

	got := readYAML(t, rd.ConfigPath)
	for _, o := range spec.Options() {
		if !o.IsSet() {
			assert.NotContains(t, got, o.Key)
			continue
		}
		assert.Equal(t, o.Native(), got[o.Key], "key %s", o.Key)
	}
}

func TestMaterialize_WorkdirResolutionOrder(t *testing.T) {
	templateWorkdir := t.TempDir()
	layout := writeTemplate(t, "workdir: "+templateWorkdir+"\n")

	t.Run("template", func(t *testing.T) {
		rd, err := NewMaterializer(layout).Materialize(context.Background(), newSpec(t, nil))
		require.NoError(t, err)
		assert.Equal(t, templateWorkdir, rd.Workdir)
	})

	t.Run("explicit override wins over template", func(t *testing.T) {
		override := t.TempDir()
		spec := newSpec(t, map[string]cty.Value{model.KeyWorkdir: cty.StringVal(override)})
		rd, err := NewMaterializer(layout).Materialize(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, override, rd.Workdir)
	})

	t.Run("custom config wins over template", func(t *testing.T) {
		customWorkdir := t.TempDir()
		custom := filepath.Join(t.TempDir(), "mine.yml")
		require.NoError(t, os.WriteFile(custom, []byte("workdir: "+customWorkdir+"\n"), 0o600))
		spec := newSpec(t, map[string]cty.Value{model.KeyCustomConfig: cty.StringVal(custom)})

		rd, err := NewMaterializer(layout).Materialize(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, customWorkdir, rd.Workdir)
	})

	t.Run("custom config without workdir falls back to template", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "mine.yml")
		require.NoError(t, os.WriteFile(custom, []byte("threads: 2\n"), 0o600))
		spec := newSpec(t, map[string]cty.Value{model.KeyCustomConfig: cty.StringVal(custom)})

		rd, err := NewMaterializer(layout).Materialize(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, templateWorkdir, rd.Workdir)
	})
}

func TestMaterialize_CustomConfigIsCopiedVerbatim(t *testing.T) {
	// --- Arrange ---
	workdir := t.TempDir()
	layout := Layout{Home: t.TempDir()} // no template at all
	content := "# my settings\nworkdir: " + workdir + "\nassembler:   spades\n"
	custom := filepath.Join(t.TempDir(), "my-config.yaml")
	require.NoError(t, os.WriteFile(custom, []byte(content), 0o600))
	spec := newSpec(t, map[string]cty.Value{
		model.KeyCustomConfig: cty.StringVal(custom),
		"assembler":           cty.StringVal("megahit"),
	})

	// --- Act ---
	rd, err := NewMaterializer(layout).Materialize(context.Background(), spec)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "config.yml", filepath.Base(rd.ConfigPath))
	got, err := os.ReadFile(rd.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(got), "module options are not merged into a custom config")
}

func TestMaterialize_CreatesDataDirs(t *testing.T) {
	workdir := t.TempDir()
	layout := writeTemplate(t, "workdir: "+workdir+"\n")
	spec := newSpec(t, map[string]cty.Value{
		model.KeyDatadir:  cty.StringVal("sample/fastq"),
		model.KeyFastadir: cty.StringVal("sample/contigs"),
	})

	rd, err := NewMaterializer(layout).Materialize(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workdir, "sample/fastq"), rd.DataDir)
	assert.Equal(t, filepath.Join(workdir, "sample/contigs"), rd.FastaDir)
	assert.DirExists(t, rd.DataDir)
	assert.DirExists(t, rd.FastaDir)
}

func TestMaterialize_DistinctTimestampsGiveDistinctRuns(t *testing.T) {
	workdir := t.TempDir()
	layout := writeTemplate(t, "workdir: "+workdir+"\n")
	spec := newSpec(t, nil)

	clock := fixedTime
	m := NewMaterializer(layout).WithClock(func() time.Time { return clock })

	first, err := m.Materialize(context.Background(), spec)
	require.NoError(t, err)
	clock = clock.Add(time.Second)
	second, err := m.Materialize(context.Background(), spec)
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	for _, rd := range []*RunDir{first, second} {
		got := readYAML(t, rd.ConfigPath)
		assert.Equal(t, rd.LatestRun, got["latest-run"])
	}
}

func TestMaterialize_Failures(t *testing.T) {
	t.Run("missing template", func(t *testing.T) {
		workdir := t.TempDir()
		layout := Layout{Home: t.TempDir()}
		spec := newSpec(t, map[string]cty.Value{model.KeyWorkdir: cty.StringVal(workdir)})

		_, err := NewMaterializer(layout).Materialize(context.Background(), spec)
		require.ErrorIs(t, err, ErrTemplateNotFound)
		assert.NoDirExists(t, filepath.Join(workdir, model.DefaultOutdir))
	})

	t.Run("no workdir anywhere", func(t *testing.T) {
		layout := writeTemplate(t, "threads: 4\n")
		_, err := NewMaterializer(layout).Materialize(context.Background(), newSpec(t, nil))
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("unreadable custom config", func(t *testing.T) {
		workdir := t.TempDir()
		layout := writeTemplate(t, "workdir: "+workdir+"\n")
		spec := newSpec(t, map[string]cty.Value{
			model.KeyCustomConfig: cty.StringVal(filepath.Join(t.TempDir(), "missing.yml")),
		})

		_, err := NewMaterializer(layout).Materialize(context.Background(), spec)
		require.ErrorIs(t, err, ErrCustomConfig)
		assert.NoDirExists(t, filepath.Join(workdir, model.DefaultOutdir))
	})

	t.Run("custom config is not a mapping", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "list.yml")
		require.NoError(t, os.WriteFile(custom, []byte("- a\n- b\n"), 0o600))
		spec := newSpec(t, map[string]cty.Value{model.KeyCustomConfig: cty.StringVal(custom)})

		_, err := NewMaterializer(Layout{Home: t.TempDir()}).Materialize(context.Background(), spec)
		require.ErrorIs(t, err, ErrCustomConfig)
	})
}
