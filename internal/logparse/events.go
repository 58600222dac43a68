package logparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

// ReallocationMetrics summarizes one reallocation event log. The zero value
// is the valid terminal state for methods that never reallocate and for
// missing or empty logs.
type ReallocationMetrics struct {
	TotalDistance     float64
	AvgDistance       float64
	MaxDistance       float64
	AgentsReallocated int
	PerAgent          float64
}

// ParseEvents reads a reallocation event table. The header row must name
// agent_id and distance columns; every other column is ignored. An empty
// table (no header, or header with zero rows) yields zero metrics and no
// error.
func ParseEvents(r io.Reader) (ReallocationMetrics, error) {
	var m ReallocationMetrics

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("reading header: %w", err)
	}

	agentCol, distCol := -1, -1
	for i, name := range header {
		switch name {
		case "agent_id":
			agentCol = i
		case "distance":
			distCol = i
		}
	}
	if agentCol < 0 || distCol < 0 {
		return m, fmt.Errorf("header %v lacks agent_id/distance columns", header)
	}

	var (
		rows    int
		total   float64
		longest float64
		counts  = make(map[string]int)
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ReallocationMetrics{}, fmt.Errorf("row %d: %w", rows+2, err)
		}
		d, err := strconv.ParseFloat(row[distCol], 64)
		if err != nil {
			return ReallocationMetrics{}, fmt.Errorf("row %d: bad distance %q", rows+2, row[distCol])
		}
		rows++
		total += d
		if d > longest {
			longest = d
		}
		counts[row[agentCol]]++
	}
	if rows == 0 {
		return m, nil
	}

	m.TotalDistance = total
	m.AvgDistance = total / float64(rows)
	m.MaxDistance = longest
	m.AgentsReallocated = len(counts)
	m.PerAgent = float64(rows) / float64(len(counts))
	return m, nil
}

// ParseEventsFile parses the event log of one run. Methods statically known
// to never reallocate short-circuit to zero metrics without touching the
// file. A missing file or a malformed table degrades to zero metrics with
// a warning; it never aborts sibling runs.
func ParseEventsFile(path string, static bool) ReallocationMetrics {
	if static {
		return ReallocationMetrics{}
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("warning: could not read event log: %v", err)
		return ReallocationMetrics{}
	}
	defer f.Close()

	m, err := ParseEvents(f)
	if err != nil {
		log.Printf("warning: parsing %s: %v", path, err)
		return ReallocationMetrics{}
	}
	return m
}
