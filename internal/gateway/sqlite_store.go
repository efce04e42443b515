package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"trade-reconciliation/internal/domain"
)

// SQLiteStore persists match results, exceptions and the append-only
// policy reward log. It implements both the usecase ResultStore and the
// triage PolicyStore.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS match_results (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at      INTEGER NOT NULL,
			trade_id        TEXT,
			classification  TEXT NOT NULL,
			match_score     REAL NOT NULL,
			decision_status TEXT NOT NULL,
			reason_codes    TEXT,
			payload         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_trade ON match_results(trade_id)`,

		`CREATE TABLE IF NOT EXISTS exceptions (
			exception_id        TEXT PRIMARY KEY,
			created_at          INTEGER NOT NULL,
			source_event_type   TEXT NOT NULL,
			trade_id            TEXT,
			match_score         REAL,
			reason_codes        TEXT,
			severity_score      REAL NOT NULL,
			severity_tier       TEXT NOT NULL,
			routing_destination TEXT NOT NULL,
			priority            INTEGER NOT NULL,
			sla_deadline        INTEGER NOT NULL,
			resolution_status   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exceptions_status ON exceptions(resolution_status)`,

		`CREATE TABLE IF NOT EXISTS policy_rewards (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			exception_id TEXT NOT NULL,
			reason_code  TEXT NOT NULL,
			destination  TEXT NOT NULL,
			reward       REAL NOT NULL,
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_reason ON policy_rewards(reason_code)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveMatchResult appends one immutable match result. Results are never
// updated in place; a re-match simply inserts a new row.
func (s *SQLiteStore) SaveMatchResult(ctx context.Context, mr domain.MatchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(mr)
	if err != nil {
		return fmt.Errorf("marshal match result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO match_results (created_at, trade_id, classification, match_score, decision_status, reason_codes, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), mr.TradeID, string(mr.Classification), mr.MatchScore,
		string(mr.DecisionStatus), strings.Join(mr.ReasonCodes, ","), string(payload))
	if err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}
	return nil
}

// SaveException inserts or updates one exception record. Updates happen
// only through the triage and resolution steps.
func (s *SQLiteStore) SaveException(ctx context.Context, exc domain.ExceptionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var score sql.NullFloat64
	if exc.MatchScore != nil {
		score = sql.NullFloat64{Float64: *exc.MatchScore, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exceptions (exception_id, created_at, source_event_type, trade_id, match_score,
			reason_codes, severity_score, severity_tier, routing_destination, priority, sla_deadline, resolution_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(exception_id) DO UPDATE SET
			severity_score = excluded.severity_score,
			severity_tier = excluded.severity_tier,
			routing_destination = excluded.routing_destination,
			priority = excluded.priority,
			sla_deadline = excluded.sla_deadline,
			resolution_status = excluded.resolution_status`,
		exc.ExceptionID, exc.CreatedAt.Unix(), exc.SourceEventType, exc.TradeID, score,
		strings.Join(exc.ReasonCodes, ","), exc.SeverityScore, string(exc.SeverityTier),
		string(exc.RoutingDestination), exc.Priority, exc.SLADeadline.Unix(), string(exc.Status))
	if err != nil {
		return fmt.Errorf("upsert exception: %w", err)
	}
	return nil
}

// AppendReward appends one event to the append-only policy reward log.
func (s *SQLiteStore) AppendReward(ctx context.Context, ev domain.RewardEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO policy_rewards (exception_id, reason_code, destination, reward, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.ExceptionID, ev.ReasonCode, string(ev.Destination), ev.Reward, ev.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("append reward: %w", err)
	}
	return nil
}

// ListRewards returns the full reward event log in insertion order.
func (s *SQLiteStore) ListRewards(ctx context.Context) ([]domain.RewardEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT exception_id, reason_code, destination, reward, created_at
		 FROM policy_rewards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query rewards: %w", err)
	}
	defer rows.Close()

	var events []domain.RewardEvent
	for rows.Next() {
		var ev domain.RewardEvent
		var dest string
		var createdAt int64
		if err := rows.Scan(&ev.ExceptionID, &ev.ReasonCode, &dest, &ev.Reward, &createdAt); err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		ev.Destination = domain.RoutingDestination(dest)
		ev.CreatedAt = time.Unix(createdAt, 0).UTC()
		events = append(events, ev)
	}
	return events, rows.Err()
}
