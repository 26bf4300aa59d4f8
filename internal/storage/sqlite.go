// Package storage provides SQLite-based persistence for episode results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// EpisodeRun is one finished episode's summary record.
type EpisodeRun struct {
	ID          int64
	Seed        uint64
	Ticks       uint64
	Duration    float64 // simulated seconds survived
	Kills       int
	DamageTaken float64
	DamageDealt float64
	ShotsFired  int
	ShotsHit    int
	TotalReward float64
	Outcome     string // "died" or "timeout"
	Model       string // policy name, empty for keyboard play
	CreatedAt   time.Time
}

// Accuracy returns the hit ratio for the run, 0 when no shots went out.
func (r EpisodeRun) Accuracy() float64 {
	if r.ShotsFired == 0 {
		return 0
	}
	return float64(r.ShotsHit) / float64(r.ShotsFired)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			duration_secs REAL NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			damage_taken REAL NOT NULL DEFAULT 0,
			damage_dealt REAL NOT NULL DEFAULT 0,
			shots_fired INTEGER NOT NULL DEFAULT 0,
			shots_hit INTEGER NOT NULL DEFAULT 0,
			total_reward REAL NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_kills ON runs(kills DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished episode. Returns the ID of the inserted record.
func (s *Store) SaveRun(run EpisodeRun) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, ticks, duration_secs, kills, damage_taken, damage_dealt, shots_fired, shots_hit, total_reward, outcome, model)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(run.Seed),
		int64(run.Ticks),
		run.Duration,
		run.Kills,
		run.DamageTaken,
		run.DamageDealt,
		run.ShotsFired,
		run.ShotsHit,
		run.TotalReward,
		run.Outcome,
		run.Model,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]EpisodeRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, seed, ticks, duration_secs, kills, damage_taken, damage_dealt,
		        shots_fired, shots_hit, total_reward, outcome, model, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// BestRuns retrieves the top runs ordered by kills, survival time breaking
// ties.
func (s *Store) BestRuns(limit int) ([]EpisodeRun, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, seed, ticks, duration_secs, kills, damage_taken, damage_dealt,
		        shots_fired, shots_hit, total_reward, outcome, model, created_at
		 FROM runs
		 ORDER BY kills DESC, duration_secs DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsByModel retrieves runs recorded for a specific policy name.
func (s *Store) RunsByModel(model string, limit int) ([]EpisodeRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, seed, ticks, duration_secs, kills, damage_taken, damage_dealt,
		        shots_fired, shots_hit, total_reward, outcome, model, created_at
		 FROM runs
		 WHERE model = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		model, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]EpisodeRun, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []EpisodeRun
	for rows.Next() {
		var r EpisodeRun
		var seed, ticks int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &seed, &ticks, &r.Duration, &r.Kills, &r.DamageTaken, &r.DamageDealt,
			&r.ShotsFired, &r.ShotsHit, &r.TotalReward, &r.Outcome, &r.Model, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Seed = uint64(seed)
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats contains aggregated statistics over all recorded runs.
type Stats struct {
	RunsCount    int
	BestKills    int
	AvgKills     float64
	AvgDuration  float64
	TotalKills   int64
	LastPlayed   time.Time
}

// GetStats retrieves aggregate statistics across all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(kills), 0), COALESCE(AVG(kills), 0),
		        COALESCE(AVG(duration_secs), 0), COALESCE(SUM(kills), 0)
		 FROM runs`,
	).Scan(&stats.RunsCount, &stats.BestKills, &stats.AvgKills, &stats.AvgDuration, &stats.TotalKills)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string values coming back from
// the driver for DATETIME columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
