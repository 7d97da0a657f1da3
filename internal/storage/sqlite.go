// Package storage keeps a history of finished shows in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord summarises one finished show.
type RunRecord struct {
	ID        int64
	Venue     string
	Mode      string // "play", "run" or "ssh"
	Seed      int64
	Ticks     int
	Score     int
	PeakHype  float64
	Pits      int
	Waves     int
	Deaths    int
	Duration  float64 // simulated seconds
	CreatedAt time.Time
}

// VenueStats aggregates the runs of one venue.
type VenueStats struct {
	Venue     string
	Runs      int
	BestScore int
	AvgScore  float64
	TotalPits int
	PeakHype  float64
	LastRun   time.Time
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			venue TEXT NOT NULL,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			peak_hype REAL NOT NULL DEFAULT 0,
			pits INTEGER NOT NULL DEFAULT 0,
			waves INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_venue ON runs(venue);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(venue, score DESC);
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

// SaveRun records a finished show and returns its ID.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (venue, mode, seed, ticks, score, peak_hype, pits, waves, deaths, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Venue, r.Mode, r.Seed, r.Ticks, r.Score, r.PeakHype, r.Pits, r.Waves, r.Deaths, r.Duration,
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

const runColumns = `id, venue, mode, seed, ticks, score, peak_hype, pits, waves, deaths, duration_secs, created_at`

// TopRuns returns the best-scoring runs at a venue.
func (s *Store) TopRuns(venue string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE venue = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		venue, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns returns the latest runs across all venues, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Venue, &r.Mode, &r.Seed, &r.Ticks, &r.Score,
			&r.PeakHype, &r.Pits, &r.Waves, &r.Deaths, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
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

// BestScore returns the highest score at a venue, or 0 with no runs.
func (s *Store) BestScore(venue string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE venue = ?", venue).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes all runs at a venue.
func (s *Store) ClearRuns(venue string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE venue = ?", venue); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats aggregates the runs of a single venue.
func (s *Store) Stats(venue string) (*VenueStats, error) {
	stats := &VenueStats{Venue: venue}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(pits), 0), COALESCE(MAX(peak_hype), 0)
		 FROM runs WHERE venue = ?`,
		venue,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.TotalPits, &stats.PeakHype)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get venue stats: %w", err)
	}

	var last any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE venue = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		venue,
	).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(last)
	}
	return stats, nil
}

// AllStats aggregates runs for every venue that has any.
func (s *Store) AllStats() (map[string]*VenueStats, error) {
	rows, err := s.db.Query(
		`SELECT venue, COUNT(*), MAX(score), AVG(score), SUM(pits), MAX(peak_hype), MAX(created_at)
		 FROM runs
		 GROUP BY venue`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get venue stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*VenueStats)
	for rows.Next() {
		var v VenueStats
		var last any
		if err := rows.Scan(&v.Venue, &v.Runs, &v.BestScore, &v.AvgScore, &v.TotalPits, &v.PeakHype, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		v.LastRun = parseTime(last)
		out[v.Venue] = &v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
