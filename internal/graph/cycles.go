package graph

// Cycle is a closed walk of node ids; the last node has an edge back to the first.
type Cycle []int

// Cycles finds cycles using a depth-first search with three-colour marking.
// Every back edge yields one cycle, so the result is empty exactly when the
// graph is acyclic. Self-loops are reported as single-node cycles.
func (g *Graph) Cycles() []Cycle {
	const (
		white = iota // unvisited
		gray         // on the current path
		black        // fully explored
	)

	color := make(map[int]int, len(g.nodes))
	var path []int
	var cycles []Cycle

	var visit func(id int)
	visit = func(id int) {
		color[id] = gray
		path = append(path, id)

		for _, child := range g.children[id] {
			switch color[child] {
			case white:
				visit(child)
			case gray:
				start := len(path) - 1
				for path[start] != child {
					start--
				}
				cycle := make(Cycle, len(path)-start)
				copy(cycle, path[start:])
				cycles = append(cycles, cycle)
			}
		}

		path = path[:len(path)-1]
		color[id] = black
	}

	for _, node := range g.nodes {
		if color[node.ID] == white {
			visit(node.ID)
		}
	}

	return cycles
}

// IsAcyclic reports whether no node can reach itself.
func (g *Graph) IsAcyclic() bool {
	return len(g.Cycles()) == 0
}
