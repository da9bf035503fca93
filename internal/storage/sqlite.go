// Package storage provides SQLite-based persistence for mini-game results.
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

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished mini-game session.
type Result struct {
	ID        int64
	SessionID string
	Variant   string
	Player    string
	Bonus     int
	Outcome   string // "won", "lost", "timed_out"
	Levels    []LevelResult
	Duration  time.Duration
	CreatedAt time.Time
}

// LevelResult is the outcome of one level inside a session.
type LevelResult struct {
	Level    int
	Outcome  string
	Score    int
	TimeLeft int // Seconds left on the countdown
}

// connPragmas makes concurrent writers wait for the lock instead of failing.
const connPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
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

	db, err := sql.Open("sqlite", dbPath+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH connections share one Store; a single connection serializes writers.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS bonuses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			bonus INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			levels INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bonuses_variant ON bonuses(variant);
		CREATE INDEX IF NOT EXISTS idx_bonuses_top ON bonuses(variant, bonus DESC);
		CREATE INDEX IF NOT EXISTS idx_bonuses_player ON bonuses(player);

		CREATE TABLE IF NOT EXISTS level_results (
			session_id TEXT NOT NULL REFERENCES bonuses(session_id) ON DELETE CASCADE,
			level INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			time_left INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (session_id, level)
		);
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

// SaveResult records a finished session and its levels in one transaction.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	levels := len(r.Levels)
	if levels == 0 {
		levels = 1
	}

	res, err := tx.Exec(
		`INSERT INTO bonuses (session_id, variant, player, bonus, outcome, levels, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Variant, r.Player, r.Bonus, r.Outcome, levels, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	for _, l := range r.Levels {
		if _, err := tx.Exec(
			`INSERT INTO level_results (session_id, level, outcome, score, time_left) VALUES (?, ?, ?, ?, ?)`,
			r.SessionID, l.Level, l.Outcome, l.Score, l.TimeLeft,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save level %d: %w", l.Level, err)
		}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return id, nil
}

const resultColumns = `id, session_id, variant, player, bonus, outcome, duration_ms, created_at`

// TopResults retrieves the top N bonuses for the given variant.
// Results are ordered by bonus descending.
func (s *Store) TopResults(variant string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM bonuses
		 WHERE variant = ?
		 ORDER BY bonus DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// PlayerResults retrieves a player's most recent sessions.
func (s *Store) PlayerResults(player string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM bonuses
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player results: %w", err)
	}
	return scanResults(rows)
}

// ResultBySession retrieves a session with its levels.
// Returns nil if the session is unknown.
func (s *Store) ResultBySession(sessionID string) (*Result, error) {
	rows, err := s.db.Query(
		`SELECT `+resultColumns+` FROM bonuses WHERE session_id = ?`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	r := results[0]
	r.Levels, err = s.LevelResults(sessionID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// LevelResults retrieves the per-level outcomes of a session in level order.
func (s *Store) LevelResults(sessionID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT level, outcome, score, time_left
		 FROM level_results
		 WHERE session_id = ?
		 ORDER BY level`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var levels []LevelResult
	for rows.Next() {
		var l LevelResult
		if err := rows.Scan(&l.Level, &l.Outcome, &l.Score, &l.TimeLeft); err != nil {
			return nil, fmt.Errorf("storage: cannot scan level row: %w", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return levels, nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Variant, &r.Player, &r.Bonus, &r.Outcome, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// parseTime handles the driver returning either time.Time or a string.
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

// BestBonus returns the highest bonus for the given variant.
// Returns 0 if no results exist.
func (s *Store) BestBonus(variant string) (int, error) {
	var bonus sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(bonus) FROM bonuses WHERE variant = ?",
		variant,
	).Scan(&bonus)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best bonus: %w", err)
	}

	if !bonus.Valid {
		return 0, nil
	}
	return int(bonus.Int64), nil
}

// PlayerTotal returns the sum of a player's bonuses across all variants.
func (s *Store) PlayerTotal(player string) (int, error) {
	var total int
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(bonus), 0) FROM bonuses WHERE player = ?",
		player,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query player total: %w", err)
	}
	return total, nil
}

// ClearResults deletes all results for the given variant.
func (s *Store) ClearResults(variant string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		`DELETE FROM level_results WHERE session_id IN (SELECT session_id FROM bonuses WHERE variant = ?)`,
		variant,
	); err != nil {
		return fmt.Errorf("storage: cannot clear levels: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM bonuses WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant    string
	Sessions   int
	Wins       int
	BestBonus  int
	AvgBonus   float64
	TotalBonus int64
	LastPlayed time.Time
}

// WinRate returns the share of sessions whose last level was won.
func (v VariantStats) WinRate() float64 {
	if v.Sessions == 0 {
		return 0
	}
	return float64(v.Wins) / float64(v.Sessions)
}

// GetVariantStats retrieves aggregated statistics for a variant.
func (s *Store) GetVariantStats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(bonus), 0), COALESCE(AVG(bonus), 0), COALESCE(SUM(bonus), 0),
		        MAX(created_at)
		 FROM bonuses WHERE variant = ?`,
		variant,
	).Scan(&stats.Sessions, &stats.Wins, &stats.BestBonus, &stats.AvgBonus, &stats.TotalBonus, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllVariantStats retrieves statistics for every variant that has results.
func (s *Store) GetAllVariantStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        MAX(bonus), AVG(bonus), SUM(bonus), MAX(created_at)
		 FROM bonuses
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var v VariantStats
		var lastPlayed any
		if err := rows.Scan(&v.Variant, &v.Sessions, &v.Wins, &v.BestBonus, &v.AvgBonus, &v.TotalBonus, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		v.LastPlayed = parseTime(lastPlayed)
		stats[v.Variant] = &v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
