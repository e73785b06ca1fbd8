// Package store persists accepted boards in SQLite so converted archives
// can be queried after the run.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/deckside/lin-converter/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS boards (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	source         TEXT NOT NULL,
	board_id       TEXT NOT NULL,
	north_hand     TEXT NOT NULL,
	east_hand      TEXT NOT NULL,
	south_hand     TEXT NOT NULL,
	west_hand      TEXT NOT NULL,
	declarer       TEXT,
	final_contract TEXT,
	trump          TEXT,
	first_card     TEXT,
	tricks         INTEGER,
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_boards_source ON boards(source);
`

// Store wraps the SQLite handle used to persist converted boards.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the SQLite database at dsn and applies
// the schema. WAL journaling and a busy timeout keep concurrent CLI runs
// from tripping over each other.
func Open(dsn string) (*Store, error) {
	if dir := filepath.Dir(dsn); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory %q: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %q: %w", dsn, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db %q: %w", dsn, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveBoards inserts the accepted boards of one conversion in a single
// transaction.
func (s *Store) SaveBoards(ctx context.Context, source string, boards []*models.Board) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO boards (source, board_id, north_hand, east_hand, south_hand, west_hand,
		                    declarer, final_contract, trump, first_card, tricks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range boards {
		var declarer, contract, trump, firstCard any
		if b.Contract != nil {
			declarer = b.Contract.Declarer.String()
			contract = b.Contract.Token
			trump = string(b.Contract.Strain)
		}
		if b.OpeningLead != nil {
			firstCard = b.OpeningLead.String()
		}
		var tricks any
		if b.Tricks != nil {
			tricks = *b.Tricks
		}

		if _, err := stmt.ExecContext(ctx,
			source, b.ID,
			models.HandString(b.Hands[models.North]),
			models.HandString(b.Hands[models.East]),
			models.HandString(b.Hands[models.South]),
			models.HandString(b.Hands[models.West]),
			declarer, contract, trump, firstCard, tricks,
		); err != nil {
			return fmt.Errorf("insert board %q: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// CountBoards returns how many boards are stored for the given source;
// an empty source counts everything.
func (s *Store) CountBoards(ctx context.Context, source string) (int, error) {
	var n int
	var err error
	if source == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards WHERE source = ?`, source).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count boards: %w", err)
	}
	return n, nil
}
