package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Entry is one recorded game result. Only the plain numeric fields of
// a finished snapshot are stored; the engine knows nothing about this
// package.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps high scores in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens/creates the SQLite database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC, created_at);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("leaderboard migrate: %w", err)
		}
	}
	return tx.Commit()
}

// Add records a finished game and returns the stored entry.
func (s *Store) Add(ctx context.Context, player string, score, level, lines int) (Entry, error) {
	e := Entry{
		ID:        uuid.New(),
		Player:    player,
		Score:     score,
		Level:     level,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, player, score, level, lines, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Player, e.Score, e.Level, e.Lines, e.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("leaderboard add: %w", err)
	}
	return e, nil
}

// Top returns the n best results, highest score first; ties go to the
// earlier game.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, level, lines, created_at
		 FROM scores ORDER BY score DESC, created_at ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard top: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var id string
		if err := rows.Scan(&id, &e.Player, &e.Score, &e.Level, &e.Lines, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("leaderboard top: bad id %q: %w", id, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
