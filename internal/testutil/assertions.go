package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/vomix/internal/runconfig"
	"gopkg.in/yaml.v3"
)

// RunDirs returns the run directories created under workdir/outdir.
func RunDirs(t *testing.T, workdir, outdir string) []string {
	t.Helper()
	dirs, err := filepath.Glob(filepath.Join(workdir, outdir, runconfig.HiddenDir, "log", runconfig.RunIDPrefix+"*"))
	require.NoError(t, err)
	return dirs
}

// RequireSingleRun asserts exactly one run directory exists under
// workdir/outdir and returns it.
func RequireSingleRun(t *testing.T, workdir, outdir string) string {
	t.Helper()
	dirs := RunDirs(t, workdir, outdir)
	require.Len(t, dirs, 1, "expected exactly one run directory under %s", filepath.Join(workdir, outdir))
	return dirs[0]
}

// ReadRunConfig decodes the config.yml of a run directory.
func ReadRunConfig(t *testing.T, runDir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(runDir, runconfig.ConfigFileName))
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, yaml.Unmarshal(data, &out))
	return out
}
