package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
	"github.com/Shreyas0812/dmpc-metrics/internal/logparse"
)

// columns is the dataset schema: one column per RunID field and per metric
// field, in the order downstream tooling expects.
var columns = []string{
	"scenario",
	"num_agents",
	"method",
	"collision_method",
	"run",
	"num_reallocations",
	"all_goals_reached",
	"collisions",
	"avg_distance_to_goal",
	"final_assignment_cost",
	"avg_solving_frequency",
	"total_computation_time",
	"cost_over_time",
	"total_reallocation_distance",
	"avg_reallocation_distance",
	"max_reallocation_distance",
	"num_agents_reallocated",
	"reallocations_per_agent",
}

// Write serializes the collection as a delimited table, one row per record.
func Write(w io.Writer, c *Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range c.Records() {
		row := []string{
			r.ID.Scenario,
			strconv.Itoa(r.Agents),
			r.ID.Method,
			r.ID.Avoidance,
			strconv.Itoa(r.ID.Run),
			strconv.Itoa(r.Console.NumReallocations),
			strconv.FormatBool(r.Console.AllGoalsReached),
			strconv.FormatBool(r.Console.Collisions),
			formatFloat(r.Console.AvgDistanceToGoal),
			formatFloat(r.Console.FinalAssignmentCost),
			formatFloat(r.Console.AvgSolvingFrequency),
			formatFloat(r.Console.TotalComputationTime),
			formatFloatList(r.Console.CostOverTime),
			formatFloat(r.Realloc.TotalDistance),
			formatFloat(r.Realloc.AvgDistance),
			formatFloat(r.Realloc.MaxDistance),
			strconv.Itoa(r.Realloc.AgentsReallocated),
			formatFloat(r.Realloc.PerAgent),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read deserializes a table written by Write. Unlike the per-run parsers, a
// malformed row here is a real error: a corrupt cache should be rebuilt by
// re-extraction, not silently dropped.
func Read(r io.Reader) (*Collection, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(columns) || header[0] != columns[0] {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	c := New()
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		c.Add(rec)
	}
	return c, nil
}

func parseRow(row []string) (Record, error) {
	var (
		rec  Record
		errs []error
	)
	geti := func(i int) int {
		v, err := strconv.Atoi(row[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("column %s: %w", columns[i], err))
		}
		return v
	}
	getf := func(i int) float64 {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("column %s: %w", columns[i], err))
		}
		return v
	}
	getb := func(i int) bool {
		// ParseBool also accepts the True/False spelling older pandas
		// exports used.
		v, err := strconv.ParseBool(row[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("column %s: %w", columns[i], err))
		}
		return v
	}

	rec.ID = grid.RunID{
		Scenario:  row[0],
		Method:    row[2],
		Avoidance: row[3],
		Run:       geti(4),
	}
	rec.Agents = geti(1)
	rec.Console = logparse.ConsoleMetrics{
		NumReallocations:     geti(5),
		AllGoalsReached:      getb(6),
		Collisions:           getb(7),
		AvgDistanceToGoal:    getf(8),
		FinalAssignmentCost:  getf(9),
		AvgSolvingFrequency:  getf(10),
		TotalComputationTime: getf(11),
	}
	costs, err := parseFloatList(row[12])
	if err != nil {
		errs = append(errs, fmt.Errorf("column cost_over_time: %w", err))
	}
	rec.Console.CostOverTime = costs
	rec.Realloc = logparse.ReallocationMetrics{
		TotalDistance:     getf(13),
		AvgDistance:       getf(14),
		MaxDistance:       getf(15),
		AgentsReallocated: geti(16),
		PerAgent:          getf(17),
	}
	if len(errs) > 0 {
		return Record{}, errs[0]
	}
	return rec, nil
}

func WriteFile(path string, c *Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, c); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return f.Close()
}

func ReadFile(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return c, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatFloatList encodes a sequence as a single bracketed literal so it
// survives as one CSV field: "[1.5, 2.25]", "[]" when empty.
func formatFloatList(vals []float64) string {
	if len(vals) == 0 {
		return "[]"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a bracketed list: %q", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		vals[i] = v
	}
	return vals, nil
}
