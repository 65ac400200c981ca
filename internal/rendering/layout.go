package rendering

import "github.com/jonathan/career-roadmap/internal/types"

// Node is one step placed on the diagram grid. Column is the pre-order
// index of the step; Depth is its distance from the top level.
type Node struct {
	ID         int
	Parent     int // -1 for top-level steps
	Column     int
	Depth      int
	Title      string
	Months     int
	Milestones int
	Tasks      int
}

// Edge links a parent node to a child node.
type Edge struct {
	From int
	To   int
}

// Layout assigns every step of the tree a grid position: columns in
// pre-order, rows by depth.
func Layout(steps []types.RoadmapStep) ([]Node, []Edge) {
	var nodes []Node
	var edges []Edge

	var walk func(list []types.RoadmapStep, depth, parent int)
	walk = func(list []types.RoadmapStep, depth, parent int) {
		for i := range list {
			s := &list[i]
			id := len(nodes)
			nodes = append(nodes, Node{
				ID:         id,
				Parent:     parent,
				Column:     id,
				Depth:      depth,
				Title:      s.Title,
				Months:     s.DurationMonths,
				Milestones: len(s.Milestones),
				Tasks:      len(s.Tasks),
			})
			if parent >= 0 {
				edges = append(edges, Edge{From: parent, To: id})
			}
			walk(s.Children, depth+1, id)
		}
	}
	walk(steps, 0, -1)

	return nodes, edges
}
