package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/groupgame/internal/common"
	"github.com/Veraticus/groupgame/internal/model"
	"github.com/Veraticus/groupgame/internal/service"
	"github.com/google/uuid"
)

// SaveSession stores a play session with its path.
func (s *SQLiteStorage) SaveSession(ctx context.Context, record *model.PlayRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePlayRecord(record); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return saveSession(ctx, tx, record)
	})
}

func saveSession(ctx context.Context, q querier, record *model.PlayRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO play_sessions (id, graph_source, start_node, final_node, state, steps, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.GraphSource, record.StartNode, record.FinalNode,
		string(record.State), record.Steps(), record.CreatedAt)
	if err != nil {
		return mapConstraintError(err, "play session", record.ID)
	}

	for i, node := range record.Path {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO play_steps (session_id, position, node_id) VALUES (?, ?, ?)`,
			record.ID, i, node); err != nil {
			return fmt.Errorf("failed to save play step: %w", err)
		}
	}

	return nil
}

// GetSession loads a play session by id.
func (s *SQLiteStorage) GetSession(ctx context.Context, id string) (*model.PlayRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var record model.PlayRecord
	var state string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, graph_source, start_node, final_node, state, created_at
		FROM play_sessions WHERE id = ?`, id).Scan(
		&record.ID, &record.GraphSource, &record.StartNode, &record.FinalNode, &state, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: play session %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get play session: %w", err)
	}
	record.State = model.SessionState(state)

	paths, err := s.loadPaths(ctx, []string{record.ID})
	if err != nil {
		return nil, err
	}
	record.Path = paths[record.ID]

	return &record, nil
}

// ListSessions returns saved play sessions, newest first.
func (s *SQLiteStorage) ListSessions(ctx context.Context, filter service.ListFilter) ([]model.PlayRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, graph_source, start_node, final_node, state, created_at FROM play_sessions`
	var args []any
	if filter.Source != "" {
		query += ` WHERE graph_source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY created_at DESC, id`
	limit, limitArgs := limitClause(filter)
	query += limit
	args = append(args, limitArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query play sessions: %w", err)
	}

	var records []model.PlayRecord
	for rows.Next() {
		var r model.PlayRecord
		var state string
		if err := rows.Scan(&r.ID, &r.GraphSource, &r.StartNode, &r.FinalNode, &state, &r.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan play session: %w", err)
		}
		r.State = model.SessionState(state)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to iterate play sessions: %w", err)
	}
	// The single connection must be free before the paths are queried.
	_ = rows.Close()

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	paths, err := s.loadPaths(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Path = paths[records[i].ID]
	}

	return records, nil
}

func (s *SQLiteStorage) loadPaths(ctx context.Context, ids []string) (map[string][]int, error) {
	paths := make(map[string][]int, len(ids))
	for _, id := range ids {
		rows, err := s.db.QueryContext(ctx, `
			SELECT node_id FROM play_steps WHERE session_id = ? ORDER BY position`, id)
		if err != nil {
			return nil, fmt.Errorf("failed to query play steps: %w", err)
		}

		path := []int{}
		for rows.Next() {
			var node int
			if err := rows.Scan(&node); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("failed to scan play step: %w", err)
			}
			path = append(path, node)
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate play steps: %w", err)
		}
		paths[id] = path
	}
	return paths, nil
}
