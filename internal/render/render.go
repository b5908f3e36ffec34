package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/MikeSquared-Agency/cvss2/internal/cvss"
	"github.com/MikeSquared-Agency/cvss2/internal/scoring"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options selects what a Renderer prints.
type Options struct {
	Verbose bool
	// Color allows escape codes; they are only written when the destination
	// is a terminal.
	Color  bool
	Format string
	RunID  string
}

// isTerminal is a variable so tests can pretend a buffer is a terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer writes score reports and parse errors to an output stream.
type Renderer struct {
	opts    Options
	w       io.Writer
	label   *color.Color
	errText *color.Color
	bySev   map[scoring.Severity]*color.Color
}

func New(w io.Writer, opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	r := &Renderer{
		opts:    opts,
		w:       w,
		label:   color.New(color.Bold),
		errText: color.New(color.FgRed),
		bySev: map[scoring.Severity]*color.Color{
			scoring.SeverityLow:    color.New(color.FgGreen, color.Bold),
			scoring.SeverityMedium: color.New(color.FgYellow, color.Bold),
			scoring.SeverityHigh:   color.New(color.FgRed, color.Bold),
		},
	}
	useColor := opts.Color && isTerminal(w)
	for _, c := range r.colors() {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) colors() []*color.Color {
	out := []*color.Color{r.label, r.errText}
	for _, c := range r.bySev {
		out = append(out, c)
	}
	return out
}

type reportRecord struct {
	RunID  string                `json:"run_id,omitempty"`
	Input  string                `json:"input"`
	Report *scoring.Report       `json:"report,omitempty"`
	Stages []scoring.StageResult `json:"stages,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// Report prints the outcome of scoring input.
func (r *Renderer) Report(input string, rep scoring.Report) error {
	if r.opts.Format == FormatJSON {
		rec := reportRecord{RunID: r.opts.RunID, Input: input, Report: &rep}
		if r.opts.Verbose {
			rec.Stages = rep.Breakdown()
		}
		return r.writeJSON(rec)
	}

	score := r.bySev[rep.Severity].Sprint(scoring.FormatScore(rep.Overall))
	if !r.opts.Verbose {
		_, err := fmt.Fprintln(r.w, score)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", r.label.Sprint("Vector:"), rep.Vector)
	for _, g := range cvss.Groups() {
		if g != cvss.GroupBase && !rep.Vector.HasGroup(g) {
			continue
		}
		for _, m := range cvss.MetricsIn(g) {
			value := rep.Vector.Value(m)
			fmt.Fprintf(&sb, "  %-30s %-4s %s\n", m.Name()+" ("+m.Key()+")", value, m.Label(value))
		}
	}
	for _, st := range rep.Breakdown() {
		if !st.Present {
			continue
		}
		fmt.Fprintf(&sb, "%s %s\n", r.label.Sprintf("%-18s", st.Name+":"), scoring.FormatScore(st.Score))
	}
	fmt.Fprintf(&sb, "%s %s (%s, %s)\n", r.label.Sprintf("%-18s", "Overall:"), score, rep.Stage, rep.Severity)
	_, err := io.WriteString(r.w, sb.String())
	return err
}

// Error prints a rejected input. In text mode only the error message is
// written, matching what the parser reports.
func (r *Renderer) Error(input string, err error) error {
	if r.opts.Format == FormatJSON {
		return r.writeJSON(reportRecord{RunID: r.opts.RunID, Input: input, Error: err.Error()})
	}
	if r.opts.Verbose {
		_, werr := fmt.Fprintf(r.w, "%s %s\n", r.label.Sprint(input+":"), r.errText.Sprint(err.Error()))
		return werr
	}
	_, werr := fmt.Fprintln(r.w, r.errText.Sprint(err.Error()))
	return werr
}

func (r *Renderer) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	_, err = r.w.Write(data)
	return err
}
