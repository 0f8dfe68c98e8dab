package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/vomix/internal/app"
	"github.com/vk/vomix/internal/command"
	"github.com/vk/vomix/internal/model"
	"github.com/vk/vomix/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Environment variables consulted for flag defaults.
const (
	EnvHome   = "VOMIX_HOME"
	EnvEngine = "VOMIX_ENGINE"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: 2, Message: err.Error(), Err: err}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer, reg *registry.Registry) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	root := flag.NewFlagSet(Name, flag.ContinueOnError)
	root.SetOutput(output)
	root.Usage = func() { printRootUsage(output, reg) }
	versionFlag := root.Bool("version", false, "Print the version and exit.")

	if err := root.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError(err)
	}
	if *versionFlag {
		fmt.Fprintln(output, Banner())
		return nil, true, nil
	}
	if root.NArg() == 0 {
		slog.Debug("No module provided, printing usage and exiting.")
		root.Usage()
		return nil, true, nil
	}

	name := root.Arg(0)
	def, err := reg.Lookup(name)
	if err != nil {
		return nil, false, usageError(err)
	}
	slog.Debug("Module selected.", "module", name)

	return parseModule(def, root.Args()[1:], output, reg)
}

func parseModule(def *model.ModuleDef, args []string, output io.Writer, reg *registry.Registry) (*app.Config, bool, error) {
	fs := flag.NewFlagSet(Name+" "+def.Name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, `
%s

Usage:
  %s %s [options]

Options:
`, def.Description, Name, def.Name)
		fs.PrintDefaults()
	}

	// Global flags.
	homeFlag := fs.String("home", envOr(EnvHome, ""), "Installation root holding config/ and workflow/ (env "+EnvHome+"; default: current directory).")
	engineFlag := fs.String("engine", envOr(EnvEngine, command.DefaultEngine), "Workflow engine executable (env "+EnvEngine+").")
	presetFlag := fs.String("preset", "", "HCL file with option values; flags override it.")
	logFormatFlag := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	// Engine flags.
	eng := model.DefaultEngineOptions()
	fs.IntVar(&eng.Jobs, "jobs", eng.Jobs, "Number of jobs the engine runs in parallel.")
	fs.IntVar(&eng.Jobs, "j", eng.Jobs, "Number of parallel jobs (shorthand).")
	fs.IntVar(&eng.LatencyWait, "latency-wait", eng.LatencyWait, "Seconds to wait for output files on slow file systems.")
	fs.BoolVar(&eng.DryRun, "dry-run", false, "Show what would be done without running anything.")
	fs.BoolVar(&eng.ForceAll, "forceall", false, "Force all rules to run.")
	fs.BoolVar(&eng.RerunIncomplete, "rerun-incomplete", false, "Re-run jobs whose output is incomplete.")
	fs.BoolVar(&eng.KeepGoing, "keep-going", false, "Keep running independent jobs when one fails.")
	fs.BoolVar(&eng.Unlock, "unlock", false, "Remove a stale lock on the working directory.")
	fs.BoolVar(&eng.PrintShellCmds, "printshellcmds", false, "Print the shell command of every job.")
	fs.StringVar(&eng.Profile, "profile", "", "Engine profile to use.")
	fs.StringVar(&eng.AddArgs, "add-args", "", "Extra arguments appended verbatim to the engine command.")

	var reserved []string
	fs.VisitAll(func(f *flag.Flag) { reserved = append(reserved, f.Name) })
	if err := reg.ValidateRegistry(context.Background(), reserved); err != nil {
		return nil, false, err
	}

	// Module options.
	overrides := map[string]cty.Value{}
	for _, o := range def.Options {
		fs.Var(&optionFlag{def: o, set: overrides}, o.Key, o.Usage+" ("+o.Kind.String()+")")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	slog.Debug("Arguments parsed successfully.", "options_set", len(overrides))

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if eng.Jobs < 0 || eng.LatencyWait < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid engine options: jobs and latency-wait must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Module:     def.Name,
		Overrides:  overrides,
		PresetPath: *presetFlag,
		Engine:     eng,
		Home:       *homeFlag,
		EngineBin:  *engineFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, usageError(err)
	}

	slog.Debug("CLI parser finished successfully.", "module", config.Module)
	return config, false, nil
}

func printRootUsage(output io.Writer, reg *registry.Registry) {
	fmt.Fprintf(output, `
%s

Usage:
  %s <module> [options]
  %s <module> -h

Modules:
`, Banner(), Name, Name)

	names := reg.Names()
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for _, n := range names {
		def, _ := reg.Lookup(n)
		fmt.Fprintf(output, "  %-*s  %s\n", width, n, def.Description)
	}
	fmt.Fprintln(output, "\nOptions:\n  -version\n    \tPrint the version and exit.")
}

// envOr is the value of the environment variable key, or def when unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// optionFlag binds one module option to the flag package. Only options that
// appear on the command line end up in set.
type optionFlag struct {
	def model.OptionDef
	set map[string]cty.Value
}

func (f *optionFlag) String() string {
	if f == nil || f.def.DefaultValue().IsNull() {
		return ""
	}
	if v, ok := f.set[f.def.Key]; ok && !v.IsNull() {
		return model.FormatValue(v)
	}
	return model.FormatValue(f.def.DefaultValue())
}

func (f *optionFlag) Set(s string) error {
	v, err := f.def.Parse(s)
	if err != nil {
		return err
	}
	f.set[f.def.Key] = v
	return nil
}

// IsBoolFlag lets boolean options be given without a value.
func (f *optionFlag) IsBoolFlag() bool {
	return f.def.Kind == model.KindBool
}
