package dataset_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
	"github.com/Shreyas0812/dmpc-metrics/internal/logparse"
)

func sampleCollection() *dataset.Collection {
	c := dataset.New()
	c.Add(dataset.Record{
		ID:     grid.RunID{Scenario: "scenario_scale_4", Method: "predictive", Avoidance: "BVC", Run: 1},
		Agents: 4,
		Console: logparse.ConsoleMetrics{
			NumReallocations:     3,
			AllGoalsReached:      true,
			Collisions:           false,
			AvgDistanceToGoal:    0.125,
			FinalAssignmentCost:  41.5,
			CostOverTime:         []float64{50.25, 44, 41.5},
			AvgSolvingFrequency:  12.75,
			TotalComputationTime: 0.23529411764705882,
		},
		Realloc: logparse.ReallocationMetrics{
			TotalDistance:     9,
			AvgDistance:       3,
			MaxDistance:       4,
			AgentsReallocated: 2,
			PerAgent:          1.5,
		},
	})
	// A record with every metric at its default, including the empty
	// cost sequence.
	c.Add(dataset.Record{
		ID:     grid.RunID{Scenario: "scenario_scale_8", Method: "static", Avoidance: "BVC", Run: 2},
		Agents: 8,
	})
	// A simple-grid record without an avoidance dimension.
	c.Add(dataset.Record{
		ID:     grid.RunID{Scenario: "warehouse", Method: "reactive", Run: 1},
		Agents: 6,
		Console: logparse.ConsoleMetrics{
			Collisions:          true,
			FinalAssignmentCost: 17.25,
			CostOverTime:        []float64{17.25},
		},
	})
	return c
}

func TestRoundTrip(t *testing.T) {
	orig := sampleCollection()

	var buf bytes.Buffer
	if err := dataset.Write(&buf, orig); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := dataset.Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(orig.Records(), got.Records()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	orig := sampleCollection()

	if err := dataset.WriteFile(path, orig); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := dataset.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(orig.Records(), got.Records()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAddReplaces(t *testing.T) {
	c := dataset.New()
	id := grid.RunID{Scenario: "s", Method: "reactive", Run: 1}
	c.Add(dataset.Record{ID: id, Agents: 4})
	c.Add(dataset.Record{ID: grid.RunID{Scenario: "s", Method: "reactive", Run: 2}, Agents: 4})
	c.Add(dataset.Record{ID: id, Agents: 4, Console: logparse.ConsoleMetrics{NumReallocations: 7}})

	if c.Len() != 2 {
		t.Fatalf("expected 2 records after replacement, got %d", c.Len())
	}
	// The replacement keeps the original position.
	if got := c.Records()[0].Console.NumReallocations; got != 7 {
		t.Errorf("expected replaced record in place, got NumReallocations=%d", got)
	}
}

func TestReadPandasBooleans(t *testing.T) {
	orig := sampleCollection()
	var buf bytes.Buffer
	if err := dataset.Write(&buf, orig); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Older datasets written by the Python tooling spell booleans
	// True/False.
	text := strings.ReplaceAll(buf.String(), "true", "True")
	text = strings.ReplaceAll(text, "false", "False")

	got, err := dataset.Read(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(orig.Records(), got.Records()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMalformed(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"wrong header", "nope,nope\na,b\n"},
		{"bad run index", header() + "s,4,m,,x,0,false,false,0,0,0,0,[],0,0,0,0,0\n"},
		{"bad float", header() + "s,4,m,,1,0,false,false,zap,0,0,0,[],0,0,0,0,0\n"},
		{"bad cost list", header() + "s,4,m,,1,0,false,false,0,0,0,0,1;2,0,0,0,0,0\n"},
		{"short row", header() + "s,4,m\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := dataset.Read(strings.NewReader(tc.text)); err == nil {
				t.Error("expected error for malformed dataset")
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := dataset.ReadFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing dataset file")
	}
}

func header() string {
	return "scenario,num_agents,method,collision_method,run,num_reallocations," +
		"all_goals_reached,collisions,avg_distance_to_goal,final_assignment_cost," +
		"avg_solving_frequency,total_computation_time,cost_over_time," +
		"total_reallocation_distance,avg_reallocation_distance," +
		"max_reallocation_distance,num_agents_reallocated,reallocations_per_agent\n"
}

func TestWriteFileBadDir(t *testing.T) {
	err := dataset.WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir", "x.csv"), dataset.New())
	if err == nil {
		t.Error("expected error for unwritable path")
	}
	if _, statErr := os.Stat("x.csv"); statErr == nil {
		t.Error("file should not appear in the working directory")
	}
}
