package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/vomix/internal/runconfig"
)

// SafeBuffer is a thread-safe buffer for capturing log and engine output in
// tests. The engine's stderr is copied on its own goroutine while the logger
// keeps writing, so a plain bytes.Buffer would race.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NewHome lays out a temporary installation: a template config whose
// workdir is workdir, and an empty Snakefile.
func NewHome(t *testing.T, workdir string) runconfig.Layout {
	t.Helper()
	return NewHomeWithTemplate(t, "workdir: "+workdir+"\n")
}

// NewHomeWithTemplate is NewHome with the template content given verbatim.
func NewHomeWithTemplate(t *testing.T, template string) runconfig.Layout {
	t.Helper()
	layout := runconfig.Layout{Home: t.TempDir()}
	writeFile(t, layout.TemplatePath(), template, 0o600)
	writeFile(t, layout.Snakefile(), "# rules\n", 0o600)
	return layout
}

// FakeEngine writes a shell script standing in for snakemake and returns
// its path. body runs with the engine arguments in "$@".
func FakeEngine(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-snakemake")
	writeFile(t, path, "#!/bin/sh\n"+body+"\n", 0o755)
	return path
}

// EchoArgs is a FakeEngine body printing one argument per line.
const EchoArgs = `for a in "$@"; do echo "$a"; done`

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}
