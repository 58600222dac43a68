package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shreyas0812/dmpc-metrics/internal/aggregate"
	"github.com/Shreyas0812/dmpc-metrics/internal/config"
	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
	"github.com/Shreyas0812/dmpc-metrics/internal/extract"
	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
	"github.com/Shreyas0812/dmpc-metrics/internal/report"
)

var (
	flagFormat      string
	flagBy          string
	flagDegradation string
	flagRefresh     bool
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [dataset]",
		Short: "Print the aggregate report from the metrics dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			path := cfg.DatasetPath()
			if len(args) > 0 {
				path = args[0]
			}
			coll, err := loadDataset(cfg, path, flagRefresh)
			if err != nil {
				return err
			}

			dim, err := dimensionFor(flagBy)
			if err != nil {
				return err
			}
			metric := flagDegradation
			if metric == "none" {
				metric = ""
			} else if !aggregate.KnownMetric(metric) {
				return fmt.Errorf("unknown degradation metric %q", metric)
			}

			return report.Generate(coll.Records(), report.Options{
				Format: flagFormat,
				Dim:    dim,
				Metric: metric,
			}, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().StringVar(&flagBy, "by", "agents", "grouping dimension (scenario, agents)")
	cmd.Flags().StringVar(&flagDegradation, "degradation", "avg_solving_frequency", "degradation metric column (none disables)")
	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "re-extract instead of loading the cached dataset")
	return cmd
}

func dimensionFor(by string) (aggregate.Dimension, error) {
	switch by {
	case "scenario":
		return aggregate.ByScenario, nil
	case "agents":
		return aggregate.ByAgents, nil
	default:
		return 0, fmt.Errorf("unknown grouping dimension %q (want scenario or agents)", by)
	}
}

// loadDataset implements the cache flow: an existing dataset file is loaded
// directly; otherwise (or with refresh) the grid is re-extracted and the
// result written back as the new cache.
func loadDataset(cfg *config.Config, path string, refresh bool) (*dataset.Collection, error) {
	if !refresh {
		if _, err := os.Stat(path); err == nil {
			return dataset.ReadFile(path)
		}
		fmt.Printf("Dataset %s not found, extracting...\n", path)
	}
	coll, err := extract.Run(extract.Options{
		Spec:        grid.FromConfig(cfg),
		ConsoleFile: cfg.Files.Console,
		EventsFile:  cfg.Files.Events,
		IsStatic:    cfg.IsStatic,
		Parallel:    1,
	})
	if err != nil {
		return nil, err
	}
	if err := dataset.WriteFile(path, coll); err != nil {
		return nil, err
	}
	return coll, nil
}
