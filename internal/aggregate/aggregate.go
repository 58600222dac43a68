// Package aggregate reduces the run record collection into per-group
// statistics and degradation figures. Everything here is a pure reduction:
// input order never affects the output, and nothing is persisted — the
// record collection stays authoritative.
package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
)

// Dimension selects the grouping axis alongside method and avoidance
// strategy.
type Dimension int

const (
	ByScenario Dimension = iota
	ByAgents
)

// GroupKey identifies one aggregate cell. Scenario or Agents is populated
// depending on the grouping dimension.
type GroupKey struct {
	Scenario  string `json:"scenario,omitempty"`
	Agents    int    `json:"agents,omitempty"`
	Method    string `json:"method"`
	Avoidance string `json:"avoidance,omitempty"`
}

// Stat is one metric's mean and sample standard deviation within a group.
// Std is 0 for groups of a single run.
type Stat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

type Cell struct {
	Key           GroupKey        `json:"key"`
	Runs          int             `json:"runs"`
	SuccessRate   float64         `json:"success_rate"`
	CollisionRate float64         `json:"collision_rate"`
	Stats         map[string]Stat `json:"stats"`
}

// Metrics lists the numeric dataset columns aggregated per group, in
// report order.
var Metrics = []string{
	"num_reallocations",
	"avg_distance_to_goal",
	"final_assignment_cost",
	"avg_solving_frequency",
	"total_computation_time",
	"total_reallocation_distance",
	"avg_reallocation_distance",
	"max_reallocation_distance",
	"num_agents_reallocated",
	"reallocations_per_agent",
}

// MetricValue returns a record's value for a named dataset column.
func MetricValue(r dataset.Record, metric string) float64 {
	switch metric {
	case "num_reallocations":
		return float64(r.Console.NumReallocations)
	case "avg_distance_to_goal":
		return r.Console.AvgDistanceToGoal
	case "final_assignment_cost":
		return r.Console.FinalAssignmentCost
	case "avg_solving_frequency":
		return r.Console.AvgSolvingFrequency
	case "total_computation_time":
		return r.Console.TotalComputationTime
	case "total_reallocation_distance":
		return r.Realloc.TotalDistance
	case "avg_reallocation_distance":
		return r.Realloc.AvgDistance
	case "max_reallocation_distance":
		return r.Realloc.MaxDistance
	case "num_agents_reallocated":
		return float64(r.Realloc.AgentsReallocated)
	case "reallocations_per_agent":
		return r.Realloc.PerAgent
	default:
		return 0
	}
}

// KnownMetric reports whether a name is an aggregatable dataset column.
func KnownMetric(name string) bool {
	for _, m := range Metrics {
		if m == name {
			return true
		}
	}
	return false
}

func keyFor(r dataset.Record, dim Dimension) GroupKey {
	k := GroupKey{Method: r.ID.Method, Avoidance: r.ID.Avoidance}
	if dim == ByAgents {
		k.Agents = r.Agents
	} else {
		k.Scenario = r.ID.Scenario
	}
	return k
}

// Cells groups the records along the requested dimension and computes
// mean/std for every metric column plus the empirical success and
// collision rates.
func Cells(recs []dataset.Record, dim Dimension) []Cell {
	type accum struct {
		values    map[string][]float64
		succeeded int
		collided  int
		runs      int
	}
	groups := make(map[GroupKey]*accum)

	for _, r := range recs {
		key := keyFor(r, dim)
		a, ok := groups[key]
		if !ok {
			a = &accum{values: make(map[string][]float64)}
			groups[key] = a
		}
		a.runs++
		if r.Console.AllGoalsReached {
			a.succeeded++
		}
		if r.Console.Collisions {
			a.collided++
		}
		for _, m := range Metrics {
			a.values[m] = append(a.values[m], MetricValue(r, m))
		}
	}

	cells := make([]Cell, 0, len(groups))
	for key, a := range groups {
		c := Cell{
			Key:           key,
			Runs:          a.runs,
			SuccessRate:   float64(a.succeeded) / float64(a.runs),
			CollisionRate: float64(a.collided) / float64(a.runs),
			Stats:         make(map[string]Stat, len(Metrics)),
		}
		for _, m := range Metrics {
			c.Stats[m] = meanStd(a.values[m])
		}
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i].Key, cells[j].Key
		if a.Agents != b.Agents {
			return a.Agents < b.Agents
		}
		if a.Scenario != b.Scenario {
			return a.Scenario < b.Scenario
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Avoidance < b.Avoidance
	})
	return cells
}

// Degradation compares a metric's group mean between the smallest and
// largest team sizes present for one (method, avoidance) pair.
type Degradation struct {
	Method    string  `json:"method"`
	Avoidance string  `json:"avoidance,omitempty"`
	Metric    string  `json:"metric"`
	MinAgents int     `json:"min_agents"`
	MaxAgents int     `json:"max_agents"`
	MinValue  float64 `json:"min_value"`
	MaxValue  float64 `json:"max_value"`
	Percent   float64 `json:"percent"`
}

// Degradations computes, per (method, avoidance) pair, the percentage drop
// of a metric from the smallest to the largest agent count:
// (value_at_min − value_at_max) / value_at_min × 100. Pairs with fewer than
// two distinct agent counts, or a zero value at the minimum, are omitted
// rather than reported as spurious figures.
func Degradations(recs []dataset.Record, metric string) []Degradation {
	type pair struct{ method, avoidance string }
	byAgents := make(map[pair]map[int][]float64)

	for _, r := range recs {
		p := pair{r.ID.Method, r.ID.Avoidance}
		if byAgents[p] == nil {
			byAgents[p] = make(map[int][]float64)
		}
		byAgents[p][r.Agents] = append(byAgents[p][r.Agents], MetricValue(r, metric))
	}

	var out []Degradation
	for p, groups := range byAgents {
		if len(groups) < 2 {
			continue
		}
		minAgents, maxAgents := -1, -1
		for n := range groups {
			if minAgents < 0 || n < minAgents {
				minAgents = n
			}
			if n > maxAgents {
				maxAgents = n
			}
		}
		minVal := stat.Mean(groups[minAgents], nil)
		maxVal := stat.Mean(groups[maxAgents], nil)
		if minVal == 0 {
			continue
		}
		out = append(out, Degradation{
			Method:    p.method,
			Avoidance: p.avoidance,
			Metric:    metric,
			MinAgents: minAgents,
			MaxAgents: maxAgents,
			MinValue:  minVal,
			MaxValue:  maxVal,
			Percent:   (minVal - maxVal) / minVal * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Method != out[j].Method {
			return out[i].Method < out[j].Method
		}
		return out[i].Avoidance < out[j].Avoidance
	})
	return out
}

func meanStd(vals []float64) Stat {
	s := Stat{Mean: stat.Mean(vals, nil)}
	if len(vals) > 1 {
		s.Std = stat.StdDev(vals, nil)
	}
	return s
}
