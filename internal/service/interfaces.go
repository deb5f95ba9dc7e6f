// Package service defines the interfaces between the commands and the
// persistence layer.
package service

import (
	"context"

	"github.com/Veraticus/groupgame/internal/model"
)

// ListFilter narrows history queries. Zero values mean no restriction.
type ListFilter struct {
	Source string
	Limit  int
	Offset int
}

// ReportStore persists classified reports.
type ReportStore interface {
	SaveReport(ctx context.Context, record *model.ReportRecord) error
	GetReport(ctx context.Context, id string) (*model.ReportRecord, error)
	ListReports(ctx context.Context, filter ListFilter) ([]model.ReportRecord, error)
}

// SessionStore persists finished play sessions.
type SessionStore interface {
	SaveSession(ctx context.Context, record *model.PlayRecord) error
	GetSession(ctx context.Context, id string) (*model.PlayRecord, error)
	ListSessions(ctx context.Context, filter ListFilter) ([]model.PlayRecord, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	ReportStore
	SessionStore

	BeginTx(ctx context.Context) (Transaction, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Transaction groups writes that must succeed together.
type Transaction interface {
	SaveReport(ctx context.Context, record *model.ReportRecord) error
	SaveSession(ctx context.Context, record *model.PlayRecord) error
	Commit() error
	Rollback() error
}
