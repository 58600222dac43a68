package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shreyas0812/dmpc-metrics/internal/config"
	"github.com/Shreyas0812/dmpc-metrics/internal/grid"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured grid and which cells have artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			spec := grid.FromConfig(cfg)

			fmt.Println("Scenarios:")
			for _, s := range spec.Scenarios {
				fmt.Printf("  - %s (%d agents)\n", s.Name, spec.Agents(grid.RunID{Scenario: s.Name}))
			}
			fmt.Println("\nMethods:")
			for _, m := range spec.Methods {
				if cfg.IsStatic(m) {
					fmt.Printf("  - %s (static, no reallocation)\n", m)
				} else {
					fmt.Printf("  - %s\n", m)
				}
			}
			if len(spec.Avoidance) > 0 {
				fmt.Println("\nAvoidance strategies:")
				for _, a := range spec.Avoidance {
					fmt.Printf("  - %s\n", a)
				}
			}
			fmt.Printf("\nRuns per cell: %d\n", spec.Runs)

			ids := spec.Enumerate()
			present := 0
			for _, id := range ids {
				if _, err := os.Stat(spec.Dir(id)); err == nil {
					present++
				}
			}
			fmt.Printf("Grid: %d cells (%d present)\n", len(ids), present)
			return nil
		},
	}
}
