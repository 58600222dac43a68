// Package logparse turns simulator output artifacts into metrics: free-text
// console logs and tabular reallocation event logs. Parsers never fail on
// partial or malformed input; every field has a documented default.
package logparse

import (
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Sentences printed by the simulator. Matched by exact substring; all other
// log content is ignored.
const (
	goalsReachedSentence = "All the vehicles reached their goals!"
	noCollisionsSentence = "No collisions found!"
)

var (
	// Both marker spellings the simulator has used over time:
	// "=== Reallocation #3 at time 12.5s ===" and "=== Reallocations  #3".
	reallocMarkerRe = regexp.MustCompile(`=== Reallocations? +#\d+`)

	// "did not reached" is the simulator's own wording.
	goalShortfallRe = regexp.MustCompile(`Vehicle \d+ did not reached its goal by ([\d.]+) m`)

	// Unanchored so tagged lines like "[PREDICTIVE] Total assignment
	// cost: ..." match too.
	assignmentCostRe = regexp.MustCompile(`Total assignment cost: ([\d.e+-]+)`)

	solvingFreqRe = regexp.MustCompile(`Solving frequency = ([\d.]+) Hz`)
)

// ConsoleMetrics holds everything extracted from one console log. The zero
// value is the documented default for every field.
type ConsoleMetrics struct {
	NumReallocations     int
	AllGoalsReached      bool
	Collisions           bool
	AvgDistanceToGoal    float64
	FinalAssignmentCost  float64
	CostOverTime         []float64
	AvgSolvingFrequency  float64
	TotalComputationTime float64
}

// ParseConsole extracts metrics from console log text. It never fails:
// absent patterns leave their fields at the default value, and captures
// that do not parse as numbers are skipped.
func ParseConsole(content string) ConsoleMetrics {
	var m ConsoleMetrics

	m.NumReallocations = len(reallocMarkerRe.FindAllString(content, -1))
	m.AllGoalsReached = strings.Contains(content, goalsReachedSentence)

	// Unconfirmed safety counts as unsafe: only the exact no-collision
	// sentence clears the flag.
	m.Collisions = !strings.Contains(content, noCollisionsSentence)

	if dists := captureFloats(goalShortfallRe, content); len(dists) > 0 {
		m.AvgDistanceToGoal = stat.Mean(dists, nil)
	}

	if costs := captureFloats(assignmentCostRe, content); len(costs) > 0 {
		m.CostOverTime = costs
		m.FinalAssignmentCost = costs[len(costs)-1]
	}

	if freqs := captureFloats(solvingFreqRe, content); len(freqs) > 0 {
		m.AvgSolvingFrequency = stat.Mean(freqs, nil)
		if m.AvgSolvingFrequency > 0 {
			// One solver iteration per frequency report.
			m.TotalComputationTime = float64(len(freqs)) / m.AvgSolvingFrequency
		}
	}

	return m
}

// ParseConsoleFile reads and parses one console log. A missing or
// unreadable file is a warning, not an error, and yields the zero metrics.
func ParseConsoleFile(path string) ConsoleMetrics {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: could not read console log: %v", err)
		return ConsoleMetrics{}
	}
	return ParseConsole(string(data))
}

// captureFloats collects the first capture group of every match, skipping
// captures that fail to parse.
func captureFloats(re *regexp.Regexp, content string) []float64 {
	matches := re.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	vals := make([]float64, 0, len(matches))
	for _, match := range matches {
		v, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}
