// Package db archives track reconstruction runs in a local sqlite
// database: one row per run plus its centerline samples and gates.
// The archive lets downstream tools compare smoothing settings across
// runs without re-reading lap recordings.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/trackmap/internal/geom"
	"github.com/banshee-data/trackmap/internal/track"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			source TEXT,
			track_width DOUBLE,
			total_length DOUBLE,
			gate_spacing DOUBLE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS centerline (
			run_id TEXT,
			seq INTEGER,
			x DOUBLE,
			z DOUBLE,
			PRIMARY KEY (run_id, seq),
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
		CREATE TABLE IF NOT EXISTS gates (
			run_id TEXT,
			gate_index INTEGER,
			center_x DOUBLE, center_z DOUBLE,
			normal_x DOUBLE, normal_z DOUBLE,
			p1_x DOUBLE, p1_z DOUBLE,
			p2_x DOUBLE, p2_z DOUBLE,
			distance DOUBLE,
			PRIMARY KEY (run_id, gate_index),
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// Run is one archived pipeline run.
type Run struct {
	RunID       string
	Source      string
	TrackWidth  float64
	TotalLength float64
	GateSpacing float64
	CreatedAt   time.Time
}

func (r *Run) String() string {
	return fmt.Sprintf("Run %s: source=%s width=%.1fm length=%.0fm spacing=%.0fm",
		r.RunID, r.Source, r.TrackWidth, r.TotalLength, r.GateSpacing)
}

// SaveRun archives a complete result set and returns the new run ID.
// The insert is transactional so a failed save leaves no partial run.
func (db *DB) SaveRun(source string, gateSpacing float64, res *track.Result) (string, error) {
	runID := uuid.New().String()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (run_id, source, track_width, total_length, gate_spacing) VALUES (?, ?, ?, ?, ?)",
		runID, source, res.Width, res.Curve.TotalLength(), gateSpacing)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, pt := range res.Curve.Points {
		if _, err := tx.Exec(
			"INSERT INTO centerline (run_id, seq, x, z) VALUES (?, ?, ?, ?)",
			runID, i, pt.X, pt.Z); err != nil {
			return "", fmt.Errorf("insert centerline sample %d: %w", i, err)
		}
	}

	for _, g := range res.Gates {
		if _, err := tx.Exec(
			`INSERT INTO gates (run_id, gate_index, center_x, center_z, normal_x, normal_z,
				p1_x, p1_z, p2_x, p2_z, distance)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, g.Index, g.Center.X, g.Center.Z, g.Normal.X, g.Normal.Z,
			g.P1.X, g.P1.Z, g.P2.X, g.P2.Z, g.Distance); err != nil {
			return "", fmt.Errorf("insert gate %d: %w", g.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// ListRuns returns archived runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	rows, err := db.Query(
		"SELECT run_id, source, track_width, total_length, gate_spacing, created_at FROM runs ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Source, &r.TrackWidth, &r.TotalLength, &r.GateSpacing, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// RunGates loads the gate sequence of an archived run in gate order.
func (db *DB) RunGates(runID string) ([]track.Gate, error) {
	rows, err := db.Query(
		`SELECT gate_index, center_x, center_z, normal_x, normal_z,
			p1_x, p1_z, p2_x, p2_z, distance
		 FROM gates WHERE run_id = ? ORDER BY gate_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gates []track.Gate
	for rows.Next() {
		var g track.Gate
		if err := rows.Scan(&g.Index, &g.Center.X, &g.Center.Z, &g.Normal.X, &g.Normal.Z,
			&g.P1.X, &g.P1.Z, &g.P2.X, &g.P2.Z, &g.Distance); err != nil {
			return nil, err
		}
		gates = append(gates, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return gates, nil
}

// RunCenterline loads the dense centerline samples of an archived run
// in sequence order.
func (db *DB) RunCenterline(runID string) ([]geom.Vec2, error) {
	rows, err := db.Query("SELECT x, z FROM centerline WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pts []geom.Vec2
	for rows.Next() {
		var pt geom.Vec2
		if err := rows.Scan(&pt.X, &pt.Z); err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pts, nil
}
