package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/memory"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/run"
)

// Journal is a SQLite-backed implementation of run.Journal. Each sealed
// turn is stored as one row keyed by run ID and turn index.
type Journal struct {
	db *sql.DB
}

// NewJournal creates a new SQLite journal with the given configuration.
func NewJournal(cfg Config, opts ...Option) (*Journal, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	j := &Journal{db: db}

	if cfg.AutoMigrate {
		if err := j.migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return j, nil
}

// NewJournalFromDB creates a journal from an existing database connection.
func NewJournalFromDB(db *sql.DB) (*Journal, error) {
	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		return nil, err
	}
	return j, nil
}

// migrate creates the turns table if it doesn't exist.
func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS turns (
			run_id TEXT NOT NULL,
			turn_index INTEGER NOT NULL,
			action_type TEXT NOT NULL,
			tool TEXT,
			data BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (run_id, turn_index)
		);
		CREATE INDEX IF NOT EXISTS idx_turns_run_id ON turns(run_id);
	`

	if _, err := j.db.Exec(schema); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}

// AppendTurn records one sealed turn of a run.
func (j *Journal) AppendTurn(ctx context.Context, runID string, t agent.Turn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if runID == "" {
		return run.ErrInvalidRunID
	}

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	var toolName sql.NullString
	if t.Action.ToolCall != nil {
		toolName = sql.NullString{String: t.Action.ToolCall.Tool, Valid: true}
	}

	_, err = j.db.ExecContext(ctx,
		`INSERT INTO turns (run_id, turn_index, action_type, tool, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, t.Index, string(t.Action.Type), toolName, data, time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return memory.ErrDuplicateTurn
		}
		return err
	}
	return nil
}

// LoadTurns returns all journaled turns of a run in index order.
func (j *Journal) LoadTurns(ctx context.Context, runID string) ([]agent.Turn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if runID == "" {
		return nil, run.ErrInvalidRunID
	}

	rows, err := j.db.QueryContext(ctx,
		"SELECT data FROM turns WHERE run_id = ? ORDER BY turn_index",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var turns []agent.Turn
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		var t agent.Turn
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}

	return turns, rows.Err()
}

// ToolUsage returns how often each tool was called in a run.
func (j *Journal) ToolUsage(ctx context.Context, runID string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := j.db.QueryContext(ctx,
		"SELECT tool, COUNT(*) FROM turns WHERE run_id = ? AND tool IS NOT NULL GROUP BY tool",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	usage := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		usage[name] = count
	}

	return usage, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

var _ run.Journal = (*Journal)(nil)
