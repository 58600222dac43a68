// Package dataset holds the flat per-run record collection: the atomic
// unit produced by extraction, cached on disk, and consumed read-only by
// aggregation.
package dataset

import (
	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
	"github.com/Shreyas0812/dmpc-metrics/internal/logparse"
)

// Record is the canonical result of one experiment run. Immutable once
// built. Agents is the team size, taken from the scenario configuration or
// parsed from the scenario name.
type Record struct {
	ID      grid.RunID
	Agents  int
	Console logparse.ConsoleMetrics
	Realloc logparse.ReallocationMetrics
}

// Collection is an insertion-ordered set of records keyed by RunID. Adding
// a record whose RunID is already present replaces it in place, so
// re-extraction never duplicates a run.
type Collection struct {
	index map[grid.RunID]int
	recs  []Record
}

func New() *Collection {
	return &Collection{index: make(map[grid.RunID]int)}
}

func (c *Collection) Add(r Record) {
	if i, ok := c.index[r.ID]; ok {
		c.recs[i] = r
		return
	}
	c.index[r.ID] = len(c.recs)
	c.recs = append(c.recs, r)
}

func (c *Collection) Len() int {
	return len(c.recs)
}

// Records returns the records in insertion order. Callers must not mutate
// the returned slice.
func (c *Collection) Records() []Record {
	return c.recs
}
