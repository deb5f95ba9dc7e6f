// Package game drives interactive play over a game graph: a session walks
// from a chosen start position through legal moves until it reaches a
// position without moves or the player gives up.
package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Veraticus/groupgame/internal/graph"
	"github.com/Veraticus/groupgame/internal/model"
)

// Session errors.
var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrSessionEnded     = errors.New("session has ended")
	ErrStepLimit        = errors.New("step limit reached")
	ErrEmptyGraph       = errors.New("graph has no positions")
)

// InvalidSelectionError reports a move to a position that is not a child of
// the current one. The session is unchanged and the caller may ask again.
type InvalidSelectionError struct {
	Allowed []int
	Current int
	Chosen  int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%s: %d is not reachable from %d (allowed: %v)", ErrInvalidSelection, e.Chosen, e.Current, e.Allowed)
}

// Is lets errors.Is match ErrInvalidSelection.
func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// Option configures a Session.
type Option func(*Session)

// WithMaxSteps caps the number of moves a session may make. Zero means no
// limit. Graphs with cycles otherwise allow a session to run forever.
func WithMaxSteps(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// Session is one walk through a graph. It owns its cursor and transcript and
// never modifies the graph. A Session is not safe for concurrent use.
type Session struct {
	graph      *graph.Graph
	state      model.SessionState
	transcript []int
	current    int
	start      int
	maxSteps   int
}

// NewSession starts a session at startID, which must be a node of g.
func NewSession(g *graph.Graph, startID int, opts ...Option) (*Session, error) {
	if g == nil {
		return nil, errors.New("graph is required")
	}
	if !g.HasNode(startID) {
		return nil, &graph.NodeNotFoundError{ID: startID}
	}

	s := &Session{
		graph:   g,
		current: startID,
		start:   startID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.stateAt(startID)

	return s, nil
}

func (s *Session) stateAt(id int) model.SessionState {
	if s.graph.IsTerminal(id) {
		return model.StateTerminal
	}
	return model.StateActive
}

// Advance moves to childID. It is only valid while the session is active and
// childID is one of the current position's children.
func (s *Session) Advance(childID int) error {
	if s.state != model.StateActive {
		return fmt.Errorf("%w: state is %s", ErrSessionEnded, s.state)
	}

	children := s.graph.ChildrenOf(s.current)
	if !slices.Contains(children, childID) {
		return &InvalidSelectionError{Current: s.current, Chosen: childID, Allowed: children}
	}

	if s.StepLimitReached() {
		return fmt.Errorf("%w: %d moves", ErrStepLimit, s.maxSteps)
	}

	s.transcript = append(s.transcript, s.current)
	s.current = childID
	s.state = s.stateAt(childID)

	return nil
}

// Cancel ends an active session.
func (s *Session) Cancel() error {
	if s.state != model.StateActive {
		return fmt.Errorf("%w: state is %s", ErrSessionEnded, s.state)
	}
	s.state = model.StateCancelled
	return nil
}

// Current returns the id of the current position.
func (s *Session) Current() int {
	return s.current
}

// Start returns the id the session started at.
func (s *Session) Start() int {
	return s.start
}

// State returns the session state.
func (s *Session) State() model.SessionState {
	return s.state
}

// Transcript returns the positions left so far, oldest first. The current
// position is not included.
func (s *Session) Transcript() []int {
	return slices.Clone(s.transcript)
}

// Path returns the transcript followed by the current position.
func (s *Session) Path() []int {
	return append(slices.Clone(s.transcript), s.current)
}

// Steps returns the number of moves made.
func (s *Session) Steps() int {
	return len(s.transcript)
}

// StepLimitReached reports whether the session may not move any further
// because of WithMaxSteps.
func (s *Session) StepLimitReached() bool {
	return s.maxSteps > 0 && len(s.transcript) >= s.maxSteps
}

// Options lists the moves available from the current position. It is empty
// once the session has ended.
func (s *Session) Options() []model.Option {
	if s.state != model.StateActive {
		return nil
	}
	return s.graph.ChildOptions(s.current)
}

// Description returns the description of the current position.
func (s *Session) Description() string {
	desc, err := s.graph.DescriptionOf(s.current)
	if err != nil {
		return ""
	}
	return desc
}
