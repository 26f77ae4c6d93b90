package automation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository persists script execution records.
type Repository interface {
	CreateExecution(ctx context.Context, exec *ScriptExecution) error
	UpdateExecution(ctx context.Context, exec *ScriptExecution) error
	GetExecution(ctx context.Context, id string) (*ScriptExecution, error)
	ListExecutions(ctx context.Context, scriptID string, limit int) ([]ScriptExecution, error)
}

// defaultListLimit caps ListExecutions when the caller passes no limit.
const defaultListLimit = 50

// timeFormat has a fixed-width fraction so stored timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000Z07:00"

const executionColumns = `id, script_id, trigger_type, trigger_source, args, status,
			actions_total, actions_played, actions_skipped, error_message,
			started_at, completed_at, duration_ms`

// SQLiteRepository implements Repository using the script_executions table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateExecution inserts a new execution record.
func (r *SQLiteRepository) CreateExecution(ctx context.Context, exec *ScriptExecution) error {
	args, err := marshalArgs(exec.Args)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO script_executions (` + executionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		exec.ID,
		exec.ScriptID,
		exec.TriggerType,
		nullableString(exec.TriggerSource),
		args,
		string(exec.Status),
		exec.ActionsTotal,
		exec.ActionsPlayed,
		exec.ActionsSkipped,
		nullableString(exec.ErrorMessage),
		exec.StartedAt.UTC().Format(timeFormat),
		nullableTime(exec.CompletedAt),
		nullableInt(exec.DurationMS),
	)
	if err != nil {
		return fmt.Errorf("inserting execution: %w", err)
	}
	return nil
}

// UpdateExecution records the outcome of a run.
func (r *SQLiteRepository) UpdateExecution(ctx context.Context, exec *ScriptExecution) error {
	query := `
		UPDATE script_executions SET
			status = ?, actions_played = ?, actions_skipped = ?,
			error_message = ?, completed_at = ?, duration_ms = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		string(exec.Status),
		exec.ActionsPlayed,
		exec.ActionsSkipped,
		nullableString(exec.ErrorMessage),
		nullableTime(exec.CompletedAt),
		nullableInt(exec.DurationMS),
		exec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating execution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrExecutionNotFound
	}
	return nil
}

// GetExecution retrieves an execution by ID.
func (r *SQLiteRepository) GetExecution(ctx context.Context, id string) (*ScriptExecution, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+executionColumns+` FROM script_executions WHERE id = ?`, id)
	exec, err := scanExecution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExecutionNotFound
		}
		return nil, fmt.Errorf("querying execution: %w", err)
	}
	return exec, nil
}

// ListExecutions returns the most recent runs of scriptID, newest first.
// An empty scriptID lists runs of every script.
func (r *SQLiteRepository) ListExecutions(ctx context.Context, scriptID string, limit int) ([]ScriptExecution, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + executionColumns + ` FROM script_executions`
	args := []any{}
	if scriptID != "" {
		query += ` WHERE script_id = ?`
		args = append(args, scriptID)
	}
	query += ` ORDER BY started_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing executions: %w", err)
	}
	defer rows.Close()

	var out []ScriptExecution
	for rows.Next() {
		exec, scanErr := scanExecution(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning execution: %w", scanErr)
		}
		out = append(out, *exec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating executions: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExecution(scanner rowScanner) (*ScriptExecution, error) {
	var (
		e                                 ScriptExecution
		status, startedAt                 string
		triggerSource, args, errorMessage sql.NullString
		completedAt                       sql.NullString
		durationMS                        sql.NullInt64
	)

	err := scanner.Scan(
		&e.ID,
		&e.ScriptID,
		&e.TriggerType,
		&triggerSource,
		&args,
		&status,
		&e.ActionsTotal,
		&e.ActionsPlayed,
		&e.ActionsSkipped,
		&errorMessage,
		&startedAt,
		&completedAt,
		&durationMS,
	)
	if err != nil {
		return nil, err
	}

	e.Status = ExecutionStatus(status)
	if t, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
		e.StartedAt = t
	}
	if completedAt.Valid {
		if t, parseErr := time.Parse(time.RFC3339Nano, completedAt.String); parseErr == nil {
			e.CompletedAt = &t
		}
	}
	if triggerSource.Valid {
		e.TriggerSource = &triggerSource.String
	}
	if errorMessage.Valid {
		e.ErrorMessage = &errorMessage.String
	}
	if durationMS.Valid {
		d := int(durationMS.Int64)
		e.DurationMS = &d
	}
	if args.Valid && args.String != "" {
		if jsonErr := json.Unmarshal([]byte(args.String), &e.Args); jsonErr != nil {
			return nil, fmt.Errorf("unmarshalling args: %w", jsonErr)
		}
	}

	return &e, nil
}

// nopRepository discards execution records. Used when the database is disabled.
type nopRepository struct{}

func (nopRepository) CreateExecution(context.Context, *ScriptExecution) error { return nil }
func (nopRepository) UpdateExecution(context.Context, *ScriptExecution) error { return nil }
func (nopRepository) GetExecution(context.Context, string) (*ScriptExecution, error) {
	return nil, ErrExecutionNotFound
}
func (nopRepository) ListExecutions(context.Context, string, int) ([]ScriptExecution, error) {
	return nil, nil
}

// ─── SQL Helpers ────────────────────────────────────────────────────────────

func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeFormat), Valid: true}
}

func nullableInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func marshalArgs(args map[string]any) (sql.NullString, error) {
	if len(args) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshalling args: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
