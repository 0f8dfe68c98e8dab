package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/vk/vomix/internal/command"
	"github.com/vk/vomix/internal/ctxlog"
	"github.com/vk/vomix/internal/fsutil"
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/runconfig"
)

// ScriptName is the file the generated command is written to, inside the
// run directory.
const ScriptName = "snakemake.sh"

// stderrTailLimit bounds how much of the child's stderr is kept for the error.
const stderrTailLimit = 64 << 10

// Result describes a finished run.
type Result struct {
	RunDir     *runconfig.RunDir
	ScriptPath string
	Command    string
}

// Runner runs workflow modules.
type Runner struct {
	layout       runconfig.Layout
	materializer *runconfig.Materializer
	builder      *command.Builder
	shell        string
	stdout       io.Writer
	stderr       io.Writer
}

// New returns a Runner for the installation described by layout. Engine
// output is written to stdout and stderr.
func New(layout runconfig.Layout, materializer *runconfig.Materializer, builder *command.Builder, stdout, stderr io.Writer) *Runner {
	return &Runner{
		layout:       layout,
		materializer: materializer,
		builder:      builder,
		shell:        "bash",
		stdout:       stdout,
		stderr:       stderr,
	}
}

// Run materializes the run directory, persists the command script and
// executes it. It blocks until the engine exits. A non-zero exit is
// returned as a *SubprocessError; the Result is returned alongside it
// whenever the script was written.
func (r *Runner) Run(ctx context.Context, spec *model.ModuleSpec, eng model.EngineOptions) (*Result, error) {
	rd, err := r.materializer.Materialize(ctx, spec)
	if err != nil {
		return nil, err
	}
	ctx = ctxlog.With(ctx, "run_id", rd.RunID)
	logger := ctxlog.FromContext(ctx)

	res := &Result{
		RunDir:     rd,
		ScriptPath: filepath.Join(rd.Path, ScriptName),
		Command:    r.builder.Build(spec, eng),
	}
	if err := fsutil.WriteFile(res.ScriptPath, []byte(res.Command+"\n")); err != nil {
		return nil, fmt.Errorf("write script: %w", err)
	}
	logger.Debug("Generated command.", "command", res.Command)

	if !fsutil.Exists(r.layout.Snakefile()) {
		logger.Warn("Snakefile not found; the engine will most likely fail.", "path", r.layout.Snakefile())
	}

	logger.Info("Running script.", "script", res.ScriptPath, "cwd", r.layout.Home)
	if err := r.execute(ctx, res.ScriptPath); err != nil {
		return res, err
	}
	logger.Info("Run finished.", "config", rd.ConfigPath)
	return res, nil
}

// execute starts the script and copies its stdout line by line. Stderr is
// passed through and its tail kept for the error.
func (r *Runner) execute(ctx context.Context, script string) error {
	logger := ctxlog.FromContext(ctx)

	cmd := exec.Command(r.shell, script)
	cmd.Dir = r.layout.Home
	tail := newTailBuffer(stderrTailLimit)
	cmd.Stderr = io.MultiWriter(r.stderr, tail)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &SubprocessError{Code: -1, Args: cmd.Args, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return &SubprocessError{Code: -1, Args: cmd.Args, Err: err}
	}
	logger.Debug("Engine started.", "pid", cmd.Process.Pid)

	streamErr := streamLines(stdout, r.stdout)
	waitErr := cmd.Wait()

	if waitErr != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &SubprocessError{Code: code, Args: cmd.Args, Stderr: tail.String(), Err: waitErr}
	}
	if streamErr != nil {
		return fmt.Errorf("stream engine output: %w", streamErr)
	}
	return nil
}

// streamLines copies r to w one line at a time. When w fails the rest of r
// is drained so the child never blocks on a full pipe.
func streamLines(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if _, werr := io.WriteString(w, line); werr != nil {
				_, _ = io.Copy(io.Discard, br)
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
