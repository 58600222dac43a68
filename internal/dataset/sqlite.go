package dataset

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const runRecordsSchema = `
	CREATE TABLE IF NOT EXISTS run_records (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		num_agents INTEGER NOT NULL,
		method TEXT NOT NULL,
		collision_method TEXT NOT NULL,
		run INTEGER NOT NULL,
		num_reallocations INTEGER NOT NULL,
		all_goals_reached INTEGER NOT NULL,
		collisions INTEGER NOT NULL,
		avg_distance_to_goal REAL NOT NULL,
		final_assignment_cost REAL NOT NULL,
		avg_solving_frequency REAL NOT NULL,
		total_computation_time REAL NOT NULL,
		cost_over_time TEXT NOT NULL,
		total_reallocation_distance REAL NOT NULL,
		avg_reallocation_distance REAL NOT NULL,
		max_reallocation_distance REAL NOT NULL,
		num_agents_reallocated INTEGER NOT NULL,
		reallocations_per_agent REAL NOT NULL,
		UNIQUE(scenario, method, collision_method, run)
	);`

// ExportSQLite writes the collection into a SQLite database for ad-hoc SQL
// analysis. Re-exporting over the same database replaces rows that share a
// run identity, mirroring the in-memory set invariant.
func ExportSQLite(path string, c *Collection) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(runRecordsSchema); err != nil {
		return fmt.Errorf("creating run_records table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO run_records (
			id, scenario, num_agents, method, collision_method, run,
			num_reallocations, all_goals_reached, collisions,
			avg_distance_to_goal, final_assignment_cost,
			avg_solving_frequency, total_computation_time, cost_over_time,
			total_reallocation_distance, avg_reallocation_distance,
			max_reallocation_distance, num_agents_reallocated,
			reallocations_per_agent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range c.Records() {
		_, err := stmt.Exec(
			uuid.New().String(),
			r.ID.Scenario, r.Agents, r.ID.Method, r.ID.Avoidance, r.ID.Run,
			r.Console.NumReallocations, r.Console.AllGoalsReached, r.Console.Collisions,
			r.Console.AvgDistanceToGoal, r.Console.FinalAssignmentCost,
			r.Console.AvgSolvingFrequency, r.Console.TotalComputationTime,
			formatFloatList(r.Console.CostOverTime),
			r.Realloc.TotalDistance, r.Realloc.AvgDistance,
			r.Realloc.MaxDistance, r.Realloc.AgentsReallocated,
			r.Realloc.PerAgent,
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}
