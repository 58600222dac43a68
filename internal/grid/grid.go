package grid

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Shreyas0812/dmpc-metrics/internal/config"
)

// RunID addresses one experiment execution: one cell of the grid and its
// artifact directory. Avoidance is empty when the grid has no
// collision-avoidance dimension.
type RunID struct {
	Scenario  string
	Method    string
	Avoidance string
	Run       int
}

func (id RunID) String() string {
	if id.Avoidance == "" {
		return fmt.Sprintf("%s/%s/run_%d", id.Scenario, id.Method, id.Run)
	}
	return fmt.Sprintf("%s/%s/%s/run_%d", id.Scenario, id.Method, id.Avoidance, id.Run)
}

type Scenario struct {
	Name   string
	Agents int
}

// Spec describes the experiment grid. It never touches the filesystem;
// existence checks belong to the extractor.
type Spec struct {
	BaseDir   string
	Scenarios []Scenario
	Methods   []string
	Avoidance []string
	Runs      int
}

func FromConfig(cfg *config.Config) *Spec {
	s := &Spec{
		BaseDir:   cfg.ResultsDir,
		Methods:   cfg.Methods,
		Avoidance: cfg.Avoidance,
		Runs:      cfg.Runs,
	}
	for _, sc := range cfg.Scenarios {
		s.Scenarios = append(s.Scenarios, Scenario{Name: sc.Name, Agents: sc.Agents})
	}
	return s
}

// Enumerate yields every grid cell in deterministic outer-to-inner order:
// scenario, method, avoidance strategy, run index (1-based).
func (s *Spec) Enumerate() []RunID {
	avoidance := s.Avoidance
	if len(avoidance) == 0 {
		avoidance = []string{""}
	}
	ids := make([]RunID, 0, len(s.Scenarios)*len(s.Methods)*len(avoidance)*s.Runs)
	for _, sc := range s.Scenarios {
		for _, m := range s.Methods {
			for _, av := range avoidance {
				for run := 1; run <= s.Runs; run++ {
					ids = append(ids, RunID{Scenario: sc.Name, Method: m, Avoidance: av, Run: run})
				}
			}
		}
	}
	return ids
}

// Dir resolves the artifact directory for a cell:
// <base>/<scenario>/<method>[/<avoidance>]/run_<n>.
func (s *Spec) Dir(id RunID) string {
	parts := []string{s.BaseDir, id.Scenario, id.Method}
	if id.Avoidance != "" {
		parts = append(parts, id.Avoidance)
	}
	parts = append(parts, fmt.Sprintf("run_%d", id.Run))
	return filepath.Join(parts...)
}

// Agents returns the team size for a cell: the configured value when set,
// otherwise the count encoded in the scenario name.
func (s *Spec) Agents(id RunID) int {
	for _, sc := range s.Scenarios {
		if sc.Name == id.Scenario && sc.Agents > 0 {
			return sc.Agents
		}
	}
	return AgentCount(id.Scenario)
}

// AgentCount parses a trailing _<n> from a scenario name, the convention
// used by scalability scenarios (scenario_scale_32 has 32 agents). Returns
// 0 when the name does not encode a count.
func AgentCount(name string) int {
	i := strings.LastIndex(name, "_")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
