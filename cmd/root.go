package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dmpc-metrics",
		Short: "Extract and aggregate metrics from DMPC experiment logs",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "experiments.yaml", "config file path")
	root.AddCommand(newExtractCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newExportCmd())
	return root
}
