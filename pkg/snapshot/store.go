// Package snapshot persists notebook sessions to SQLite. Persistence is
// caller-driven: the live session is in-memory only, and a snapshot is an
// explicit capture of its cells and output log.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"quill/pkg/notebook"
)

// Store reads and writes session snapshots.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open snapshot database (see Open).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SessionInfo summarizes one captured session.
type SessionInfo struct {
	ID        string
	Name      string
	CreatedAt string
	CellCount int
}

// Save captures a session under a fresh uuid: every cell (deleted ones
// included, so the id space survives a restore) and the full output log
// with visibility flags. Returns the new session id.
func (s *Store) Save(ctx context.Context, name string, cells []notebook.Cell, events []notebook.OutputEvent) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, name) VALUES (?, ?)`, id, name); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	for _, c := range cells {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cells (session_id, cell_id, kind, code, has_run, deleted) VALUES (?, ?, ?, ?, ?, ?)`,
			id, c.ID, string(c.Kind), c.Code, c.HasRun, c.Deleted); err != nil {
			return "", fmt.Errorf("insert cell %d: %w", c.ID, err)
		}
	}

	for seq, ev := range events {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outputs (session_id, seq, cell_id, stream, text, visible) VALUES (?, ?, ?, ?, ?, ?)`,
			id, seq, ev.CellID, string(ev.Stream), ev.Text, ev.Visible); err != nil {
			return "", fmt.Errorf("insert output %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}
	return id, nil
}

// List returns all captured sessions, newest first.
func (s *Store) List(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_at,
		       (SELECT COUNT(*) FROM cells c WHERE c.session_id = s.id AND c.deleted = 0)
		FROM sessions s
		ORDER BY s.created_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.CellCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// LoadCells returns a session's cells in cell-id (creation) order, deleted
// ones included.
func (s *Store) LoadCells(ctx context.Context, sessionID string) ([]notebook.Cell, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cell_id, kind, code, has_run, deleted
		FROM cells WHERE session_id = ? ORDER BY cell_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cells for %s: %w", sessionID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []notebook.Cell
	for rows.Next() {
		var c notebook.Cell
		var kind string
		if err := rows.Scan(&c.ID, &kind, &c.Code, &c.HasRun, &c.Deleted); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		c.Kind = notebook.CellKind(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load cells for %s: %w", sessionID, err)
	}
	return out, nil
}

// LoadOutputs returns a session's output log in global emission order.
func (s *Store) LoadOutputs(ctx context.Context, sessionID string) ([]notebook.OutputEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cell_id, stream, text, visible
		FROM outputs WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load outputs for %s: %w", sessionID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []notebook.OutputEvent
	for rows.Next() {
		var ev notebook.OutputEvent
		var stream string
		if err := rows.Scan(&ev.CellID, &stream, &ev.Text, &ev.Visible); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		ev.Stream = notebook.StreamKind(stream)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load outputs for %s: %w", sessionID, err)
	}
	return out, nil
}
