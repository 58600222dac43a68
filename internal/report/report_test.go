package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Shreyas0812/dmpc-metrics/internal/aggregate"
	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
	"github.com/Shreyas0812/dmpc-metrics/internal/logparse"
	"github.com/Shreyas0812/dmpc-metrics/internal/report"
)

func sampleRecords() []dataset.Record {
	rec := func(agents int, method string, run int, freq float64, success bool) dataset.Record {
		return dataset.Record{
			ID:     grid.RunID{Scenario: "scale", Method: method, Avoidance: "BVC", Run: run},
			Agents: agents,
			Console: logparse.ConsoleMetrics{
				AllGoalsReached:     success,
				AvgSolvingFrequency: freq,
			},
		}
	}
	return []dataset.Record{
		rec(4, "static", 1, 20, true),
		rec(4, "static", 2, 22, true),
		rec(4, "reactive", 1, 18, true),
		rec(16, "static", 1, 8, true),
		rec(16, "reactive", 1, 6, false),
	}
}

func TestGenerateTable(t *testing.T) {
	var buf bytes.Buffer
	err := report.Generate(sampleRecords(), report.Options{
		Format: "table",
		Dim:    aggregate.ByAgents,
		Metric: "avg_solving_frequency",
	}, &buf)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"4 agents", "16 agents", "static", "reactive", "Degradation (avg_solving_frequency)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	// static goes 21 Hz → 8 Hz.
	if !strings.Contains(output, "61.9% reduction") {
		t.Errorf("expected static degradation line in output:\n%s", output)
	}
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := report.Generate(sampleRecords(), report.Options{
		Format: "markdown",
		Dim:    aggregate.ByAgents,
		Metric: "avg_solving_frequency",
	}, &buf)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "| Group | Method |") {
		t.Errorf("expected markdown header in output:\n%s", output)
	}
	if !strings.Contains(output, "**Degradation (avg_solving_frequency)**") {
		t.Errorf("expected degradation section in output:\n%s", output)
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	err := report.Generate(sampleRecords(), report.Options{
		Format: "json",
		Dim:    aggregate.ByAgents,
		Metric: "avg_solving_frequency",
	}, &buf)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var payload struct {
		Groups       []aggregate.Cell        `json:"groups"`
		Degradations []aggregate.Degradation `json:"degradations"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	// 2 agent counts × 2 methods.
	if len(payload.Groups) != 4 {
		t.Errorf("expected 4 groups, got %d", len(payload.Groups))
	}
	if len(payload.Degradations) != 2 {
		t.Errorf("expected 2 degradation entries, got %d", len(payload.Degradations))
	}
}

func TestGenerateNoDegradation(t *testing.T) {
	var buf bytes.Buffer
	err := report.Generate(sampleRecords(), report.Options{
		Format: "table",
		Dim:    aggregate.ByScenario,
	}, &buf)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(buf.String(), "Degradation") {
		t.Errorf("degradation section should be absent:\n%s", buf.String())
	}
}
