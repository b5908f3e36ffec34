package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/cvss2/internal/config"
	"github.com/MikeSquared-Agency/cvss2/internal/metrics"
	"github.com/MikeSquared-Agency/cvss2/internal/render"
)

// Exit codes returned by Execute.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitFailure = 2
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// errInvalidInput marks a run in which at least one vector was rejected. The
// rejection itself has already been rendered.
var errInvalidInput = errors.New("invalid input")

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath      string
	verbose         bool
	noColor         bool
	format          string
	logLevel        string
	metricsTextfile string
	interactive     bool

	cfg      *config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder
	runID    string
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	// Metrics are flushed even when vectors were rejected.
	if ferr := a.flushMetrics(); ferr != nil && err == nil {
		err = ferr
	}
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errInvalidInput):
		return ExitInvalid
	default:
		if a.logger != nil {
			a.logger.Error("command failed", "error", err)
		}
		fmt.Fprintln(stderr, "Error:", err)
		return ExitFailure
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cvss2 [VECTOR...]",
		Short: "Parse and score CVSS version 2 vectors",
		Long: `cvss2 validates CVSS v2 vectors such as AV:N/AC:L/Au:N/C:P/I:P/A:P and
prints their overall score. Temporal and Environmental metrics are optional.`,
		Version:           Version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.interactive {
				return a.runWizard(cmd.Context())
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runScore(cmd.Context(), args)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "print every metric and intermediate score")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&a.format, "format", "", "output format: text or json")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&a.metricsTextfile, "metrics-textfile", "", "write Prometheus counters to this file on exit")
	root.Flags().BoolVarP(&a.interactive, "interactive", "i", false, "build the vector interactively")

	root.AddCommand(a.scoreCommand(), a.wizardCommand(), a.metricsCommand(), a.versionCommand())
	return root
}

// setup loads configuration, lets explicit flags override it and builds the
// logger and metrics recorder for this run.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Output.Verbose = a.verbose
	}
	if flags.Changed("no-color") {
		cfg.Output.Color = !a.noColor
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.TextfilePath = a.metricsTextfile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.runID = uuid.NewString()
	a.logger = newLogger(cfg.Logging, a.stderr).With("run_id", a.runID)
	a.recorder = metrics.New()
	a.logger.Debug("configuration loaded", "path", a.configPath, "format", cfg.Output.Format)
	return nil
}

func (a *app) flushMetrics() error {
	if a.cfg == nil || a.cfg.Metrics.TextfilePath == "" {
		return nil
	}
	if err := a.recorder.WriteTextfile(a.cfg.Metrics.TextfilePath); err != nil {
		return err
	}
	a.logger.Debug("metrics written", "path", a.cfg.Metrics.TextfilePath)
	return nil
}

func (a *app) renderer(w io.Writer) *render.Renderer {
	return render.New(w, render.Options{
		Verbose: a.cfg.Output.Verbose,
		Color:   a.cfg.Output.Color,
		Format:  a.cfg.Output.Format,
		RunID:   a.runID,
	})
}

// errorRenderer sends rejections to stderr in text mode and keeps them in the
// stdout record stream in JSON mode.
func (a *app) errorRenderer() *render.Renderer {
	if a.cfg.Output.Format == render.FormatJSON {
		return a.renderer(a.stdout)
	}
	return a.renderer(a.stderr)
}

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
