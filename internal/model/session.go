package model

import "time"

// SessionState is the lifecycle state of a navigation session.
type SessionState string

// Session state constants.
const (
	StateActive    SessionState = "ACTIVE"
	StateTerminal  SessionState = "TERMINAL"
	StateCancelled SessionState = "CANCELLED"
)

// IsEnded reports whether no further moves are possible.
func (s SessionState) IsEnded() bool {
	return s == StateTerminal || s == StateCancelled
}

// PlayRecord is a finished navigation session as persisted.
type PlayRecord struct {
	CreatedAt   time.Time
	ID          string
	GraphSource string
	State       SessionState
	Path        []int
	StartNode   int
	FinalNode   int
}

// Steps returns the number of moves made during the session.
func (p PlayRecord) Steps() int {
	if len(p.Path) == 0 {
		return 0
	}
	return len(p.Path) - 1
}

// ReportRecord is a classified report as persisted.
type ReportRecord struct {
	CreatedAt time.Time
	ID        string
	Source    string
	Result    ClassificationResult
}
