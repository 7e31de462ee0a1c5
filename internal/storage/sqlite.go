// Package storage provides SQLite-based history of finished Safe or Dead
// games. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Balances are never stored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/safe-or-dead/internal/config"
	"github.com/vovakirdan/safe-or-dead/internal/engine"
	"github.com/vovakirdan/safe-or-dead/internal/round"
)

// Store manages the SQLite database connection for round history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// RoundRecord is one finished game.
type RoundRecord struct {
	ID            int64
	RoundID       string
	Bet           int
	Outcome       engine.Outcome
	LevelsCleared int
	Payout        int
	BalanceAfter  int
	Commitment    string
	Salt          string
	Layouts       string // Canonical encoding, see round.Layouts.Encode
	CreatedAt     time.Time
}

// DecodedLayouts parses the stored layouts.
func (r RoundRecord) DecodedLayouts() (round.Layouts, bool) {
	return round.DecodeLayouts(r.Layouts)
}

// Net returns the coins won or lost by the round.
func (r RoundRecord) Net() int {
	return r.Payout - r.Bet
}

// Stats aggregates the whole history.
type Stats struct {
	Rounds     int
	Wagered    int
	PaidOut    int
	Deaths     int
	CashOuts   int
	Jackpots   int
	BestPayout int
}

// Net returns the coins won or lost over all rounds.
func (s Stats) Net() int {
	return s.PaidOut - s.Wagered
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// SSH sessions write concurrently; wait on the lock instead of failing.
	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			bet INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			levels_cleared INTEGER NOT NULL,
			payout INTEGER NOT NULL DEFAULT 0,
			balance_after INTEGER NOT NULL,
			commitment TEXT NOT NULL,
			salt TEXT NOT NULL,
			layouts TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_outcome ON rounds(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s != nil && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r engine.Result) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds
		 (round_id, bet, outcome, levels_cleared, payout, balance_after, commitment, salt, layouts, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RoundID,
		r.Bet,
		string(r.Outcome),
		r.LevelsCleared,
		r.Payout,
		r.BalanceAfter,
		r.Commitment,
		r.Salt,
		r.Layouts.Encode(),
		toMillis(s.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveResult implements engine.ResultSaver.
func (s *Store) SaveResult(r engine.Result) error {
	_, err := s.SaveRound(r)
	return err
}

const roundColumns = `id, round_id, bet, outcome, levels_cleared, payout, balance_after,
	commitment, salt, layouts, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (RoundRecord, error) {
	var r RoundRecord
	var outcome string
	var createdAt int64
	err := row.Scan(
		&r.ID,
		&r.RoundID,
		&r.Bet,
		&outcome,
		&r.LevelsCleared,
		&r.Payout,
		&r.BalanceAfter,
		&r.Commitment,
		&r.Salt,
		&r.Layouts,
		&createdAt,
	)
	r.Outcome = engine.Outcome(outcome)
	r.CreatedAt = fromMillis(createdAt)
	return r, err
}

// RecentRounds retrieves the last N rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RoundByID retrieves a round by its round ID.
// Returns nil without error if no such round exists.
func (s *Store) RoundByID(roundID string) (*RoundRecord, error) {
	row := s.db.QueryRow(`SELECT `+roundColumns+` FROM rounds WHERE round_id = ?`, roundID)

	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// Stats aggregates every recorded round.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(bet), 0),
		        COALESCE(SUM(payout), 0),
		        COALESCE(SUM(outcome = ?), 0),
		        COALESCE(SUM(outcome = ?), 0),
		        COALESCE(SUM(outcome = ?), 0),
		        COALESCE(MAX(payout), 0)
		 FROM rounds`,
		string(engine.OutcomeDead),
		string(engine.OutcomeCashOut),
		string(engine.OutcomeJackpot),
	).Scan(&st.Rounds, &st.Wagered, &st.PaidOut, &st.Deaths, &st.CashOuts, &st.Jackpots, &st.BestPayout)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// ClearRounds deletes the whole history.
func (s *Store) ClearRounds() error {
	_, err := s.db.Exec("DELETE FROM rounds")
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}
