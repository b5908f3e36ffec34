package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/cvss2/internal/cvss"
)

type optionRecord struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
	Label  string  `json:"label"`
}

type metricRecord struct {
	Key     string         `json:"key"`
	Name    string         `json:"name"`
	Group   string         `json:"group"`
	Options []optionRecord `json:"options"`
}

// Metrics prints every metric with its legal values and weights.
func (r *Renderer) Metrics() error {
	if r.opts.Format == FormatJSON {
		var recs []metricRecord
		for _, m := range cvss.Metrics() {
			rec := metricRecord{Key: m.Key(), Name: m.Name(), Group: m.Group().String()}
			for _, o := range m.Options() {
				rec.Options = append(rec.Options, optionRecord(o))
			}
			recs = append(recs, rec)
		}
		return r.writeJSON(recs)
	}

	var sb strings.Builder
	for _, g := range cvss.Groups() {
		fmt.Fprintf(&sb, "%s\n", r.label.Sprint(strings.ToUpper(g.String())))
		for _, m := range cvss.MetricsIn(g) {
			fmt.Fprintf(&sb, "  %-4s %s\n", m.Key(), m.Name())
			if !r.opts.Verbose {
				continue
			}
			for _, o := range m.Options() {
				fmt.Fprintf(&sb, "       %-4s %-6s %s\n", o.Value, strconv.FormatFloat(o.Weight, 'f', -1, 64), o.Label)
			}
		}
	}
	_, err := fmt.Fprint(r.w, sb.String())
	return err
}
