// Package history keeps an optional DuckDB record of past quiz sessions so
// the stats command can report frequently missed questions.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rem7474/CCNA1/internal/results"

	_ "github.com/duckdb/duckdb-go/v2"
)

// MemoryDSN opens a throwaway in-memory database.
const MemoryDSN = ":memory:"

// Store wraps a DuckDB connection holding session history.
type Store struct {
	db *sql.DB
}

// Open connects to the database at dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("history: database path is required")
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a finished session and all of its answers.
func (s *Store) Record(ctx context.Context, session results.Session) error {
	if session.SessionID == "" {
		return errors.New("history: session id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (session_id, bank_path, seed, max_questions, started_at, finished_at, interrupted, answered, correct)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.SessionID,
		session.BankPath,
		strconv.FormatUint(session.Seed, 10),
		session.MaxQuestions,
		session.StartedAt.UTC(),
		session.FinishedAt.UTC(),
		session.Interrupted,
		session.Summary.Answered,
		session.Summary.Correct,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for _, answer := range session.Answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answers (answer_id, session_id, question_index, question, response, correct_positions, correct, timed_out, answered_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			session.SessionID,
			answer.Index,
			answer.Question,
			joinPositions(answer.Response),
			joinPositions(answer.CorrectPositions),
			answer.Correct,
			answer.TimedOut,
			answer.AnsweredAt.UTC(),
		); err != nil {
			return fmt.Errorf("insert answer %d: %w", answer.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// MissedQuestion aggregates how often a question was asked and missed.
type MissedQuestion struct {
	Question string
	Asked    int
	Missed   int
}

// MostMissed returns questions with at least one miss, most missed first.
func (s *Store) MostMissed(ctx context.Context, limit int) ([]MissedQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question,
		        COUNT(*) AS asked,
		        COUNT(*) FILTER (WHERE NOT correct) AS missed
		   FROM answers
		  GROUP BY question
		 HAVING COUNT(*) FILTER (WHERE NOT correct) > 0
		  ORDER BY missed DESC, question
		  LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query most missed: %w", err)
	}
	defer rows.Close()

	var out []MissedQuestion
	for rows.Next() {
		var item MissedQuestion
		if err := rows.Scan(&item.Question, &item.Asked, &item.Missed); err != nil {
			return nil, fmt.Errorf("scan most missed: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// SessionScore is one row of the session list.
type SessionScore struct {
	SessionID string
	StartedAt time.Time
	Answered  int
	Correct   int
}

// Percentage mirrors the console score; zero answered yields zero.
func (s SessionScore) Percentage() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct*100) / float64(s.Answered)
}

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, started_at, answered, correct
		   FROM sessions
		  ORDER BY started_at DESC, session_id DESC
		  LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionScore
	for rows.Next() {
		var item SessionScore
		if err := rows.Scan(&item.SessionID, &item.StartedAt, &item.Answered, &item.Correct); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const defaultLimit = 10

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

func joinPositions(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}
