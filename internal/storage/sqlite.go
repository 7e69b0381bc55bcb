// Package storage provides SQLite-based persistence for replay journals.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayEntry is a stored round: its seed, command journal and outcome.
type ReplayEntry struct {
	ID        int64
	GameID    string
	Seed      int64
	Commands  []string
	Score     int
	Lines     int
	CreatedAt time.Time
}

// Recording converts the entry back into a replayable recording.
func (e ReplayEntry) Recording() core.Recording {
	return core.Recording{
		Seed:     e.Seed,
		Commands: e.Commands,
		Score:    e.Score,
		Lines:    e.Lines,
	}
}

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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			commands TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
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

// SaveReplay records a finished round for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveReplay(gameID string, rec core.Recording) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO replays (game_id, seed, commands, score, lines) VALUES (?, ?, ?, ?, ?)",
		gameID, rec.Seed, strings.Join(rec.Commands, " "), rec.Score, rec.Lines,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const replayColumns = `id, game_id, seed, commands, score, lines, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (ReplayEntry, error) {
	var e ReplayEntry
	var commands string
	var createdAt any
	if err := row.Scan(&e.ID, &e.GameID, &e.Seed, &commands, &e.Score, &e.Lines, &createdAt); err != nil {
		return e, err
	}
	e.Commands = strings.Fields(commands)
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles both time.Time and string datetimes returned by the driver.
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

// Replay retrieves a single replay by ID. Returns nil if it does not exist.
func (s *Store) Replay(id int64) (*ReplayEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+replayColumns+` FROM replays WHERE id = ?`,
		id,
	)
	e, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay %d: %w", id, err)
	}
	return &e, nil
}

// RecentReplays retrieves the N most recent replays across all games.
func (s *Store) RecentReplays(limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryReplays(
		`SELECT `+replayColumns+`
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// ReplaysForGame retrieves the N most recent replays of one game.
func (s *Store) ReplaysForGame(gameID string, limit int) ([]ReplayEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryReplays(
		`SELECT `+replayColumns+`
		 FROM replays
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) queryReplays(query string, args ...any) ([]ReplayEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplayEntry
	for rows.Next() {
		e, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplay removes a replay. Deleting a missing ID is not an error.
func (s *Store) DeleteReplay(id int64) error {
	_, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	return nil
}

// GameStats contains aggregated replay statistics for a game.
type GameStats struct {
	GameID     string
	Rounds     int
	TotalLines int64
	LastPlayed time.Time
}

// GetAllGamesStats retrieves statistics for all games that have replays.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), COALESCE(SUM(lines), 0), MAX(created_at)
		 FROM replays
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.Rounds, &st.TotalLines, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
