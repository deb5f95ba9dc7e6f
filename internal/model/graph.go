package model

import "fmt"

// Node is a single position in a game graph.
type Node struct {
	Description string `json:"description"`
	ID          int    `json:"id"`
}

// Edge is one legal move between two positions.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Option is one entry offered to a chooser.
type Option struct {
	Description string
	ID          int
}

// String formats the option the way it is listed to the user.
func (o Option) String() string {
	return fmt.Sprintf("%d: %s", o.ID, o.Description)
}
