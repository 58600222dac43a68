package dataset_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/Shreyas0812/dmpc-metrics/internal/dataset"
)

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")
	c := sampleCollection()

	if err := dataset.ExportSQLite(path, c); err != nil {
		t.Fatalf("ExportSQLite: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening exported db: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM run_records").Scan(&n); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if n != c.Len() {
		t.Errorf("expected %d rows, got %d", c.Len(), n)
	}

	var costs string
	err = db.QueryRow(
		"SELECT cost_over_time FROM run_records WHERE scenario = ? AND run = 1",
		"scenario_scale_4",
	).Scan(&costs)
	if err != nil {
		t.Fatalf("querying cost_over_time: %v", err)
	}
	if costs != "[50.25, 44, 41.5]" {
		t.Errorf("unexpected cost_over_time literal: %q", costs)
	}
}

func TestExportSQLiteReplacesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")
	c := sampleCollection()

	if err := dataset.ExportSQLite(path, c); err != nil {
		t.Fatalf("first export: %v", err)
	}
	// Exporting the same runs again must replace, not duplicate.
	if err := dataset.ExportSQLite(path, c); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening exported db: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM run_records").Scan(&n); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if n != c.Len() {
		t.Errorf("expected %d rows after re-export, got %d", c.Len(), n)
	}
}
