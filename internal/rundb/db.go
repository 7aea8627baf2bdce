// Package rundb persists ensemble run summaries in sqlite so an
// ensemble can be regrouped and re-pivoted without re-reading the raw
// timestep files.
package rundb

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/ensemble"
)

type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path. The schema is applied
// by MigrateUp.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open rundb: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &DB{db}, nil
}

// InsertRunSummary stores one run. An empty RunID is assigned a fresh
// UUID; the stored ID is returned.
func (db *DB) InsertRunSummary(s ensemble.RunSummary) (string, error) {
	id := s.RunID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := db.Exec(`
		INSERT INTO run_summaries (
			run_id, ground_wind_speed, ground_wind_dir,
			max_altitude, max_speed, max_pressure,
			landed_latitude, landed_longitude, launch_clear_speed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, s.Condition.GroundWindSpeed, s.Condition.GroundWindDir,
		s.MaxAltitude, s.MaxSpeed, s.MaxDynamicPressure,
		s.LandedLatitude, s.LandedLongitude, s.LaunchClearSpeed,
	)
	if err != nil {
		return "", fmt.Errorf("insert run %s: %w", id, err)
	}
	return id, nil
}

// ListRunSummaries returns every stored run in insertion order.
func (db *DB) ListRunSummaries() ([]ensemble.RunSummary, error) {
	rows, err := db.Query(`
		SELECT run_id, ground_wind_speed, ground_wind_dir,
		       max_altitude, max_speed, max_pressure,
		       landed_latitude, landed_longitude, launch_clear_speed
		FROM run_summaries ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []ensemble.RunSummary
	for rows.Next() {
		var s ensemble.RunSummary
		if err := rows.Scan(
			&s.RunID, &s.Condition.GroundWindSpeed, &s.Condition.GroundWindDir,
			&s.MaxAltitude, &s.MaxSpeed, &s.MaxDynamicPressure,
			&s.LandedLatitude, &s.LandedLongitude, &s.LaunchClearSpeed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByCondition returns the runs recorded for one experiment
// condition.
func (db *DB) ListByCondition(cond ensemble.Condition) ([]ensemble.RunSummary, error) {
	rows, err := db.Query(`
		SELECT run_id, ground_wind_speed, ground_wind_dir,
		       max_altitude, max_speed, max_pressure,
		       landed_latitude, landed_longitude, launch_clear_speed
		FROM run_summaries
		WHERE ground_wind_speed = ? AND ground_wind_dir = ?
		ORDER BY rowid`,
		cond.GroundWindSpeed, cond.GroundWindDir)
	if err != nil {
		return nil, fmt.Errorf("list runs by condition: %w", err)
	}
	defer rows.Close()

	var out []ensemble.RunSummary
	for rows.Next() {
		var s ensemble.RunSummary
		if err := rows.Scan(
			&s.RunID, &s.Condition.GroundWindSpeed, &s.Condition.GroundWindDir,
			&s.MaxAltitude, &s.MaxSpeed, &s.MaxDynamicPressure,
			&s.LandedLatitude, &s.LandedLongitude, &s.LaunchClearSpeed,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
