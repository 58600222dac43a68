// Package extract walks the experiment grid and turns each cell's artifacts
// into one dataset record. Cells are independent, so extraction can run on
// a bounded worker pool; the merged collection is identical either way.
package extract

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
	"github.com/Shreyas0812/dmpc-metrics/internal/logparse"
)

type Options struct {
	Spec        *grid.Spec
	ConsoleFile string
	EventsFile  string

	// IsStatic reports whether a method never reallocates, letting the
	// event log parser short-circuit.
	IsStatic func(method string) bool

	// Parallel is the worker count; values below 2 extract sequentially.
	Parallel int
}

// Run extracts every grid cell and merges the results into one collection.
// Missing run directories are warnings and leave the cell absent from the
// dataset. An entirely empty result is an error: there is nothing to
// analyze until the experiments have produced artifacts.
func Run(opts Options) (*dataset.Collection, error) {
	ids := opts.Spec.Enumerate()
	results := make([]*dataset.Record, len(ids))

	if opts.Parallel > 1 {
		jobs := make([]Job, len(ids))
		for i, id := range ids {
			i, id := i, id
			jobs[i] = func() error {
				results[i] = extractCell(opts, id)
				return nil
			}
		}
		RunPool(opts.Parallel, jobs)
	} else {
		for i, id := range ids {
			results[i] = extractCell(opts, id)
		}
	}

	// Records land in enumeration order regardless of completion order.
	coll := dataset.New()
	for _, r := range results {
		if r != nil {
			coll.Add(*r)
		}
	}
	if coll.Len() == 0 {
		return nil, fmt.Errorf("no run records found under %s — have you run the experiments?", opts.Spec.BaseDir)
	}
	return coll, nil
}

// extractCell loads one run's artifacts. Returns nil when the run directory
// does not exist; the cell is then absent from the dataset rather than
// zero-filled.
func extractCell(opts Options, id grid.RunID) *dataset.Record {
	dir := opts.Spec.Dir(id)
	fmt.Printf("Extracting %s (run %d/%d)...\n", cellName(id), id.Run, opts.Spec.Runs)

	if _, err := os.Stat(dir); err != nil {
		log.Printf("warning: run dir %s not found", dir)
		return nil
	}

	return &dataset.Record{
		ID:      id,
		Agents:  opts.Spec.Agents(id),
		Console: logparse.ParseConsoleFile(filepath.Join(dir, opts.ConsoleFile)),
		Realloc: logparse.ParseEventsFile(filepath.Join(dir, opts.EventsFile), opts.IsStatic(id.Method)),
	}
}

func cellName(id grid.RunID) string {
	if id.Avoidance == "" {
		return fmt.Sprintf("%s/%s", id.Scenario, id.Method)
	}
	return fmt.Sprintf("%s/%s/%s", id.Scenario, id.Method, id.Avoidance)
}
