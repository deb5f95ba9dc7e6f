// Package testutil provides shared helpers for tests that need a database or
// sample records.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/groupgame/internal/model"
	"github.com/Veraticus/groupgame/internal/service"
	"github.com/Veraticus/groupgame/internal/storage"
)

// TestDB is an in-memory database that is closed when the test ends.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory database.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// WithTransaction runs fn in a transaction that is always rolled back.
func (db *TestDB) WithTransaction(fn func(tx service.Transaction) error) error {
	tx, err := db.Storage.BeginTx(context.Background())
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	return fn(tx)
}

// MustSaveReport stores a sample report for source and returns it.
func (db *TestDB) MustSaveReport(source string, createdAt time.Time) *model.ReportRecord {
	db.t.Helper()
	record := SampleReport(source)
	record.CreatedAt = createdAt
	if err := db.Storage.SaveReport(context.Background(), record); err != nil {
		db.t.Fatalf("failed to save report: %v", err)
	}
	return record
}

// MustSaveSession stores a play session walking path over source.
func (db *TestDB) MustSaveSession(source string, state model.SessionState, createdAt time.Time, path ...int) *model.PlayRecord {
	db.t.Helper()
	record := SamplePlay(source, state, path...)
	record.CreatedAt = createdAt
	if err := db.Storage.SaveSession(context.Background(), record); err != nil {
		db.t.Fatalf("failed to save play session: %v", err)
	}
	return record
}

// SampleReport is a small report with two abelian and one non-abelian group.
func SampleReport(source string) *model.ReportRecord {
	return &model.ReportRecord{
		Source: source,
		Result: model.ClassificationResult{
			AbelianLines: []model.ReportLine{
				{Text: "C2 x C2", Section: model.SectionAbelian},
				{Text: "C6", Section: model.SectionAbelian},
			},
			NonAbelianLines: []model.ReportLine{
				{Text: "S3", Section: model.SectionNonAbelian},
			},
			CountAbelianMatches:     2,
			CountNonAbelianMatches:  1,
			TotalAbelianExamined:    10,
			TotalNonAbelianExamined: 4,
		},
	}
}

// SamplePlay builds an unsaved play record for path.
func SamplePlay(source string, state model.SessionState, path ...int) *model.PlayRecord {
	record := &model.PlayRecord{
		GraphSource: source,
		State:       state,
		Path:        append([]int(nil), path...),
	}
	if len(path) > 0 {
		record.StartNode = path[0]
		record.FinalNode = path[len(path)-1]
	}
	return record
}
