package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/run"
)

// RunStore is a SQLite-backed implementation of run.Store.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new SQLite run store with the given configuration.
func NewRunStore(cfg Config, opts ...Option) (*RunStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &RunStore{db: db}

	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// NewRunStoreFromDB creates a run store from an existing database connection.
func NewRunStoreFromDB(db *sql.DB) (*RunStore, error) {
	s := &RunStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// migrate creates the runs table if it doesn't exist.
func (s *RunStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			goal TEXT NOT NULL,
			reason TEXT NOT NULL,
			turns INTEGER NOT NULL,
			data BLOB NOT NULL,
			start_time INTEGER NOT NULL,
			end_time INTEGER,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_reason ON runs(reason);
		CREATE INDEX IF NOT EXISTS idx_runs_start_time ON runs(start_time);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}

// Save persists a finished run result.
func (s *RunStore) Save(ctx context.Context, r *agent.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.RunID == "" {
		return run.ErrInvalidRunID
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	var endTime sql.NullInt64
	if !r.EndTime.IsZero() {
		endTime = sql.NullInt64{Int64: r.EndTime.Unix(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, goal, reason, turns, data, start_time, end_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Goal, string(r.Reason), r.Turns, data,
		r.StartTime.Unix(), endTime, time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return run.ErrRunExists
		}
		return err
	}
	return nil
}

// Get retrieves a run result by ID.
func (s *RunStore) Get(ctx context.Context, id string) (*agent.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, run.ErrInvalidRunID
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM runs WHERE id = ?",
		id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, run.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	var r agent.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes a run result by ID.
func (s *RunStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return run.ErrInvalidRunID
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return run.ErrRunNotFound
	}
	return nil
}

// List returns run results matching the filter.
func (s *RunStore) List(ctx context.Context, filter run.ListFilter) ([]*agent.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query, args := s.buildListQuery(filter, false)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []*agent.Result
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}

		var r agent.Result
		if err := json.Unmarshal(data, &r); err != nil {
			continue // Skip malformed entries
		}
		results = append(results, &r)
	}

	return results, rows.Err()
}

// Count returns the number of run results matching the filter.
func (s *RunStore) Count(ctx context.Context, filter run.ListFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	query, args := s.buildListQuery(filter, true)

	var count int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Summary returns aggregate statistics.
func (s *RunStore) Summary(ctx context.Context, filter run.ListFilter) (run.Summary, error) {
	if err := ctx.Err(); err != nil {
		return run.Summary{}, err
	}

	where, args := s.buildWhereClause(filter)

	query := `
		SELECT
			COUNT(*) as total,
			SUM(CASE WHEN reason = 'completed' THEN 1 ELSE 0 END) as completed,
			SUM(CASE WHEN reason = 'failed' THEN 1 ELSE 0 END) as failed,
			SUM(CASE WHEN reason = 'budget_exhausted' THEN 1 ELSE 0 END) as exhausted,
			COALESCE(AVG(CASE WHEN end_time IS NOT NULL THEN end_time - start_time ELSE NULL END), 0) as avg_duration
		FROM runs
	`
	if where != "" {
		query += " WHERE " + where
	}

	var summary run.Summary
	var avgDurationSec float64

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalRuns,
		&summary.CompletedRuns,
		&summary.FailedRuns,
		&summary.ExhaustedRuns,
		&avgDurationSec,
	)
	if err != nil {
		return run.Summary{}, err
	}

	summary.AverageDuration = time.Duration(avgDurationSec * float64(time.Second))
	return summary, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// buildListQuery builds the SQL query for listing run results.
func (s *RunStore) buildListQuery(filter run.ListFilter, countOnly bool) (string, []interface{}) {
	var query string
	if countOnly {
		query = "SELECT COUNT(*) FROM runs"
	} else {
		query = "SELECT data FROM runs"
	}

	where, args := s.buildWhereClause(filter)
	if where != "" {
		query += " WHERE " + where
	}

	if !countOnly {
		orderBy := "start_time"
		switch filter.OrderBy {
		case run.OrderByEndTime:
			orderBy = "end_time"
		case run.OrderByID:
			orderBy = "id"
		case run.OrderByReason:
			orderBy = "reason"
		}

		query += " ORDER BY " + orderBy
		if filter.Descending {
			query += " DESC"
		}

		if filter.Limit > 0 {
			query += " LIMIT ?"
			args = append(args, filter.Limit)
		}
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	return query, args
}

// buildWhereClause builds the WHERE clause for filtering.
func (s *RunStore) buildWhereClause(filter run.ListFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if len(filter.Reasons) > 0 {
		placeholders := ""
		for i, reason := range filter.Reasons {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
			args = append(args, string(reason))
		}
		conditions = append(conditions, "reason IN ("+placeholders+")")
	}

	if !filter.FromTime.IsZero() {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, filter.FromTime.Unix())
	}
	if !filter.ToTime.IsZero() {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, filter.ToTime.Unix())
	}
	if filter.GoalPattern != "" {
		conditions = append(conditions, "goal LIKE ?")
		args = append(args, "%"+filter.GoalPattern+"%")
	}

	where := ""
	for i, cond := range conditions {
		if i > 0 {
			where += " AND "
		}
		where += cond
	}
	return where, args
}

var (
	_ run.Store           = (*RunStore)(nil)
	_ run.SummaryProvider = (*RunStore)(nil)
)
