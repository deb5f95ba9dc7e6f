package graph

import (
	"errors"
	"fmt"
)

// Graph errors.
var (
	ErrMalformedGraph = errors.New("malformed graph")
	ErrNodeNotFound   = errors.New("node not found")
)

// MalformedGraphError describes why a graph document was rejected.
type MalformedGraphError struct {
	Err    error
	Reason string
}

func (e *MalformedGraphError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedGraph, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedGraph, e.Reason)
}

func (e *MalformedGraphError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrMalformedGraph.
func (e *MalformedGraphError) Is(target error) bool {
	return target == ErrMalformedGraph
}

func malformed(err error, format string, args ...any) error {
	return &MalformedGraphError{Reason: fmt.Sprintf(format, args...), Err: err}
}

// NodeNotFoundError reports a lookup of an id that is not in the graph.
type NodeNotFoundError struct {
	ID int
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("%s: %d", ErrNodeNotFound, e.ID)
}

// Is lets errors.Is match ErrNodeNotFound.
func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}
