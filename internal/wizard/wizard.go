package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/cvss2/internal/cvss"
	"github.com/MikeSquared-Agency/cvss2/internal/linereader"
)

// ErrAborted is returned when input ends before the vector is complete.
var ErrAborted = errors.New("wizard aborted")

const helpKey = "?"

// Wizard builds a vector by asking one question per metric.
type Wizard struct {
	in     io.Reader
	lines  <-chan linereader.Line
	out    io.Writer
	logger *slog.Logger
}

func New(in io.Reader, out io.Writer, logger *slog.Logger) *Wizard {
	return &Wizard{
		in:     in,
		out:    out,
		logger: logger,
	}
}

// Run asks for every Base metric, then optionally for the Temporal and
// Environmental groups. Answers are trimmed and upper-cased before they are
// checked; an empty answer to an optional metric means ND. The resolved
// vector is echoed in canonical form. Cancelling ctx stops Run even while
// it waits for an answer.
func (w *Wizard) Run(ctx context.Context) (cvss.Vector, error) {
	var b cvss.Builder

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.lines = linereader.Read(ctx, w.in)

	fmt.Fprintf(w.out, "Enter a value for each metric. Type %q for help on a metric.\n\n", helpKey)

	for _, g := range cvss.Groups() {
		if g != cvss.GroupBase {
			include, err := w.confirm(ctx, fmt.Sprintf("Include %s metrics? [y/N]: ", g))
			if err != nil {
				return cvss.Vector{}, err
			}
			if !include {
				w.logger.Debug("skipping metric group", "group", g.String())
				continue
			}
		}
		for _, m := range cvss.MetricsIn(g) {
			if err := w.ask(ctx, &b, m); err != nil {
				return cvss.Vector{}, err
			}
		}
	}

	v, err := b.Resolve()
	if err != nil {
		return cvss.Vector{}, err
	}
	fmt.Fprintf(w.out, "\nVector: %s\n", v)
	w.logger.Debug("wizard completed", "vector", v.String())
	return v, nil
}

func (w *Wizard) ask(ctx context.Context, b *cvss.Builder, m cvss.Metric) error {
	prompt := fmt.Sprintf("%s (%s) [%s]: ", m.Name(), m.Key(), strings.Join(values(m), "/"))
	for {
		answer, err := w.readLine(ctx, prompt)
		if err != nil {
			return err
		}
		answer = strings.ToUpper(answer)

		switch {
		case answer == helpKey:
			w.help(m)
			continue
		case answer == "" && m.HasNotDefined():
			answer = cvss.NotDefined
		case answer == "":
			continue
		}

		if err := b.Set(m, answer); err != nil {
			fmt.Fprintln(w.out, err)
			w.logger.Debug("rejected answer", "metric", m.Key(), "answer", answer)
			continue
		}
		return nil
	}
}

func (w *Wizard) confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		answer, err := w.readLine(ctx, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
	}
}

func (w *Wizard) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(w.out, prompt)
	line, ok, err := linereader.Next(ctx, w.lines)
	switch {
	case err != nil && ctx.Err() != nil:
		fmt.Fprintln(w.out)
		return "", err
	case err != nil:
		fmt.Fprintln(w.out)
		return "", fmt.Errorf("read answer: %w", err)
	case !ok:
		fmt.Fprintln(w.out)
		return "", ErrAborted
	}
	return strings.TrimSpace(line), nil
}

func (w *Wizard) help(m cvss.Metric) {
	fmt.Fprintf(w.out, "%s (%s), %s metric:\n", m.Name(), m.Key(), m.Group())
	for _, o := range m.Options() {
		fmt.Fprintf(w.out, "  %-4s %s\n", o.Value, o.Label)
	}
	if m.HasNotDefined() {
		fmt.Fprintln(w.out, "  Leave empty for ND.")
	}
}

func values(m cvss.Metric) []string {
	opts := m.Options()
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}
