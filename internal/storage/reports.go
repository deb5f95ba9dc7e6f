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

// SaveReport stores a classified report with its lines. An empty ID is
// filled with a new UUID and a zero CreatedAt with the current time.
func (s *SQLiteStorage) SaveReport(ctx context.Context, record *model.ReportRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReport(record); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return saveReport(ctx, tx, record)
	})
}

func saveReport(ctx context.Context, q querier, record *model.ReportRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result := record.Result
	_, err := q.ExecContext(ctx, `
		INSERT INTO reports (id, source, abelian_count, non_abelian_count, total_abelian, total_non_abelian, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Source,
		result.CountAbelianMatches, result.CountNonAbelianMatches,
		result.TotalAbelianExamined, result.TotalNonAbelianExamined,
		record.CreatedAt)
	if err != nil {
		return mapConstraintError(err, "report", record.ID)
	}

	lines := make([]model.ReportLine, 0, len(result.AbelianLines)+len(result.NonAbelianLines))
	lines = append(lines, result.AbelianLines...)
	lines = append(lines, result.NonAbelianLines...)

	positions := map[model.Section]int{}
	for _, line := range lines {
		_, err := q.ExecContext(ctx, `
			INSERT INTO report_lines (report_id, section, position, text)
			VALUES (?, ?, ?, ?)`,
			record.ID, string(line.Section), positions[line.Section], line.Text)
		if err != nil {
			return fmt.Errorf("failed to save report line: %w", err)
		}
		positions[line.Section]++
	}

	return nil
}

// GetReport loads a report by id. A missing report yields common.ErrNotFound.
func (s *SQLiteStorage) GetReport(ctx context.Context, id string) (*model.ReportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var record model.ReportRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, abelian_count, non_abelian_count, total_abelian, total_non_abelian, created_at
		FROM reports WHERE id = ?`, id).Scan(
		&record.ID, &record.Source,
		&record.Result.CountAbelianMatches, &record.Result.CountNonAbelianMatches,
		&record.Result.TotalAbelianExamined, &record.Result.TotalNonAbelianExamined,
		&record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if err := s.loadReportLines(ctx, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *SQLiteStorage) loadReportLines(ctx context.Context, record *model.ReportRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section, text FROM report_lines
		WHERE report_id = ?
		ORDER BY section, position`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to query report lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	record.Result.AbelianLines = []model.ReportLine{}
	record.Result.NonAbelianLines = []model.ReportLine{}

	for rows.Next() {
		var section, text string
		if err := rows.Scan(&section, &text); err != nil {
			return fmt.Errorf("failed to scan report line: %w", err)
		}

		parsed, err := model.ParseSection(section)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrDatabaseCorrupted, err)
		}
		line := model.ReportLine{Text: text, Section: parsed}

		switch parsed {
		case model.SectionAbelian:
			record.Result.AbelianLines = append(record.Result.AbelianLines, line)
		case model.SectionNonAbelian:
			record.Result.NonAbelianLines = append(record.Result.NonAbelianLines, line)
		default:
			return fmt.Errorf("%w: report line without section", common.ErrDatabaseCorrupted)
		}
	}

	return rows.Err()
}

// ListReports returns saved reports, newest first, without their lines.
func (s *SQLiteStorage) ListReports(ctx context.Context, filter service.ListFilter) ([]model.ReportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, source, abelian_count, non_abelian_count, total_abelian, total_non_abelian, created_at FROM reports`
	var args []any
	if filter.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY created_at DESC, id`
	limit, limitArgs := limitClause(filter)
	query += limit
	args = append(args, limitArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ReportRecord
	for rows.Next() {
		var r model.ReportRecord
		if err := rows.Scan(&r.ID, &r.Source,
			&r.Result.CountAbelianMatches, &r.Result.CountNonAbelianMatches,
			&r.Result.TotalAbelianExamined, &r.Result.TotalNonAbelianExamined,
			&r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
