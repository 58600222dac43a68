package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shreyas0812/dmpc-metrics/internal/config"
	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
)

var (
	flagDB            string
	flagExportRefresh bool
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the metrics dataset to a SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			coll, err := loadDataset(cfg, cfg.DatasetPath(), flagExportRefresh)
			if err != nil {
				return err
			}

			dbPath := flagDB
			if dbPath == "" {
				base := cfg.DatasetPath()
				dbPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".db"
			}
			if err := dataset.ExportSQLite(dbPath, coll); err != nil {
				return err
			}
			fmt.Printf("Exported %d records to %s\n", coll.Len(), dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagDB, "db", "", "database output path (default: dataset path with .db extension)")
	cmd.Flags().BoolVar(&flagExportRefresh, "refresh", false, "re-extract instead of loading the cached dataset")
	return cmd
}
