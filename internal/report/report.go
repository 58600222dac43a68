package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Shreyas0812/dmpc-metrics/internal/aggregate"
	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
)

type Options struct {
	Format string              // table, markdown, json
	Dim    aggregate.Dimension // grouping axis
	Metric string              // degradation metric column, "" disables
}

// Generate aggregates the records and writes the summary report. The
// degradation section is appended for grids spanning multiple team sizes.
func Generate(recs []dataset.Record, opts Options, w io.Writer) error {
	cells := aggregate.Cells(recs, opts.Dim)

	var degs []aggregate.Degradation
	if opts.Metric != "" {
		degs = aggregate.Degradations(recs, opts.Metric)
	}

	switch opts.Format {
	case "markdown":
		return writeMarkdown(cells, degs, w)
	case "json":
		return writeJSON(cells, degs, w)
	default:
		return writeTable(cells, degs, w)
	}
}

func groupLabel(k aggregate.GroupKey) string {
	if k.Scenario != "" {
		return k.Scenario
	}
	return fmt.Sprintf("%d agents", k.Agents)
}

func meanStd(s aggregate.Stat) string {
	return fmt.Sprintf("%.2f ± %.2f", s.Mean, s.Std)
}

func writeTable(cells []aggregate.Cell, degs []aggregate.Degradation, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tMETHOD\tAVOIDANCE\tRUNS\tSUCCESS\tCOLLISIONS\tSOLVE FREQ (HZ)\tDIST TO GOAL (M)\tREALLOCS")
	fmt.Fprintln(tw, strings.Repeat("-", 100))
	for _, c := range cells {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f%%\t%.0f%%\t%s\t%s\t%.1f\n",
			groupLabel(c.Key), c.Key.Method, c.Key.Avoidance, c.Runs,
			c.SuccessRate*100, c.CollisionRate*100,
			meanStd(c.Stats["avg_solving_frequency"]),
			meanStd(c.Stats["avg_distance_to_goal"]),
			c.Stats["num_reallocations"].Mean)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	writeDegradations(degs, w)
	return nil
}

func writeDegradations(degs []aggregate.Degradation, w io.Writer) {
	if len(degs) == 0 {
		return
	}
	fmt.Fprintf(w, "\nDegradation (%s):\n", degs[0].Metric)
	for _, d := range degs {
		name := d.Method
		if d.Avoidance != "" {
			name = fmt.Sprintf("%s (%s)", d.Method, d.Avoidance)
		}
		fmt.Fprintf(w, "  %s: %.1f%% reduction (%d→%d agents: %.2f → %.2f)\n",
			name, d.Percent, d.MinAgents, d.MaxAgents, d.MinValue, d.MaxValue)
	}
}

func writeMarkdown(cells []aggregate.Cell, degs []aggregate.Degradation, w io.Writer) error {
	fmt.Fprintln(w, "| Group | Method | Avoidance | Runs | Success | Collisions | Solve Freq (Hz) | Dist to Goal (m) | Reallocs |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|---|---|")
	for _, c := range cells {
		fmt.Fprintf(w, "| %s | %s | %s | %d | %.0f%% | %.0f%% | %s | %s | %.1f |\n",
			groupLabel(c.Key), c.Key.Method, c.Key.Avoidance, c.Runs,
			c.SuccessRate*100, c.CollisionRate*100,
			meanStd(c.Stats["avg_solving_frequency"]),
			meanStd(c.Stats["avg_distance_to_goal"]),
			c.Stats["num_reallocations"].Mean)
	}
	if len(degs) > 0 {
		fmt.Fprintf(w, "\n**Degradation (%s)**\n\n", degs[0].Metric)
		fmt.Fprintln(w, "| Method | Avoidance | Reduction | Agents | At Min | At Max |")
		fmt.Fprintln(w, "|---|---|---|---|---|---|")
		for _, d := range degs {
			fmt.Fprintf(w, "| %s | %s | %.1f%% | %d→%d | %.2f | %.2f |\n",
				d.Method, d.Avoidance, d.Percent, d.MinAgents, d.MaxAgents, d.MinValue, d.MaxValue)
		}
	}
	return nil
}

func writeJSON(cells []aggregate.Cell, degs []aggregate.Degradation, w io.Writer) error {
	payload := struct {
		Groups       []aggregate.Cell        `json:"groups"`
		Degradations []aggregate.Degradation `json:"degradations,omitempty"`
	}{cells, degs}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
