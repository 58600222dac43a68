package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shreyas0812/dmpc-metrics/internal/config"
	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
	"github.com/Shreyas0812/dmpc-metrics/internal/extract"
	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
)

var (
	flagScenario  string
	flagMethod    string
	flagAvoidance string
	flagRuns      int
	flagParallel  int
	flagOut       string
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Walk the experiment grid and build the metrics dataset",
		RunE:  runExtract,
	}
	cmd.Flags().StringVar(&flagScenario, "scenario", "", "filter to a single scenario")
	cmd.Flags().StringVar(&flagMethod, "method", "", "filter to a single method")
	cmd.Flags().StringVar(&flagAvoidance, "avoidance", "", "filter to a single avoidance strategy")
	cmd.Flags().IntVar(&flagRuns, "runs", 0, "override run count")
	cmd.Flags().IntVar(&flagParallel, "parallel", 1, "max concurrent extractions")
	cmd.Flags().StringVar(&flagOut, "out", "", "dataset output path (default from config)")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if flagRuns > 0 {
		cfg.Runs = flagRuns
	}

	spec := grid.FromConfig(cfg)
	spec.Scenarios = filterScenarios(spec.Scenarios, flagScenario)
	spec.Methods = filterValues(spec.Methods, flagMethod)
	spec.Avoidance = filterValues(spec.Avoidance, flagAvoidance)
	if len(spec.Scenarios) == 0 || len(spec.Methods) == 0 ||
		(flagAvoidance != "" && len(spec.Avoidance) == 0) {
		return fmt.Errorf("filters match no grid cells")
	}

	coll, err := extract.Run(extract.Options{
		Spec:        spec,
		ConsoleFile: cfg.Files.Console,
		EventsFile:  cfg.Files.Events,
		IsStatic:    cfg.IsStatic,
		Parallel:    flagParallel,
	})
	if err != nil {
		return err
	}

	out := flagOut
	if out == "" {
		out = cfg.DatasetPath()
	}
	if err := dataset.WriteFile(out, coll); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", coll.Len(), out)
	return nil
}

func filterScenarios(scenarios []grid.Scenario, name string) []grid.Scenario {
	if name == "" {
		return scenarios
	}
	var filtered []grid.Scenario
	for _, s := range scenarios {
		if s.Name == name {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func filterValues(values []string, name string) []string {
	if name == "" {
		return values
	}
	var filtered []string
	for _, v := range values {
		if v == name {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
