package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/cvss2/internal/cvss"
	"github.com/MikeSquared-Agency/cvss2/internal/linereader"
	"github.com/MikeSquared-Agency/cvss2/internal/scoring"
	"github.com/MikeSquared-Agency/cvss2/internal/wizard"
)

const stdinArg = "-"

func (a *app) scoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score VECTOR...",
		Short: "Score one or more vectors (use - to read vectors from stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScore(cmd.Context(), args)
		},
	}
}

func (a *app) wizardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Build and score a vector by answering one question per metric",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWizard(cmd.Context())
		},
	}
}

func (a *app) metricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List every metric and its values (weights with --verbose)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderer(a.stdout).Metrics()
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.stdout, Version)
			return err
		},
	}
}

// runScore scores every input independently. A rejected vector does not stop
// the remaining ones; the run then ends with errInvalidInput.
func (a *app) runScore(ctx context.Context, args []string) error {
	inputs, err := a.collectInputs(ctx, args)
	if err != nil {
		return err
	}

	out := a.renderer(a.stdout)
	errOut := a.errorRenderer()
	invalid := 0
	for _, in := range inputs {
		v, err := cvss.Parse(in)
		if err != nil {
			invalid++
			a.recorder.ObserveError(err)
			a.logger.Info("vector rejected", "input", in, "error", err)
			if rerr := errOut.Error(in, err); rerr != nil {
				return fmt.Errorf("write output: %w", rerr)
			}
			continue
		}

		rep := scoring.Score(v)
		a.recorder.ObserveReport(rep)
		a.logger.Debug("vector scored", "vector", v.String(), "overall", rep.Overall, "stage", rep.Stage)
		if err := out.Report(in, rep); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if invalid > 0 {
		return errInvalidInput
	}
	return nil
}

// collectInputs expands "-" into the vectors read from stdin, one per line.
// Blank lines and lines starting with "#" are skipped; every other line is
// parsed exactly as written, like an argument.
func (a *app) collectInputs(ctx context.Context, args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if arg != stdinArg {
			inputs = append(inputs, arg)
			continue
		}
		readCtx, cancel := context.WithCancel(ctx)
		lines := linereader.Read(readCtx, a.stdin)
		for {
			line, ok, err := linereader.Next(readCtx, lines)
			if err != nil {
				cancel()
				if ctx.Err() != nil {
					return nil, err
				}
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			if !ok {
				break
			}
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			inputs = append(inputs, line)
		}
		cancel()
	}
	return inputs, nil
}

func (a *app) runWizard(ctx context.Context) error {
	w := wizard.New(a.stdin, a.stdout, a.logger)
	v, err := w.Run(ctx)
	if err != nil {
		return err
	}
	rep := scoring.Score(v)
	a.recorder.ObserveReport(rep)
	return a.renderer(a.stdout).Report(v.String(), rep)
}
