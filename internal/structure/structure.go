// Package structure folds a flat, reading-ordered heading stream into a
// nested section/subsection outline.
package structure

// Heading is one classified heading in reading order. Level is 1..3.
type Heading struct {
	Title string
	Level int
	Page  int
}

// Node is a section in the outline tree.
type Node struct {
	Title       string  `json:"title"`
	Level       int     `json:"level"`
	Page        int     `json:"page"`
	Subsections []*Node `json:"subsections"`
}

// Tree is the document outline. Sections holds the top-level nodes in
// reading order.
type Tree struct {
	Sections []*Node `json:"sections"`
}

// Build folds headings into a tree in a single forward pass. Each heading
// attaches to the nearest preceding heading of a shallower level, or to
// the top level when none is open (an H2 before any H1 is promoted, not
// dropped). Nodes are never re-parented after attachment.
//
// The walk keeps a stack of currently open ancestors rather than one
// pointer per level, so deeper hierarchies need no new state.
func Build(headings []Heading) *Tree {
	tree := &Tree{Sections: []*Node{}}

	// open[i] is the innermost open node at depth i; open[0] stands for
	// the top level.
	type frame struct {
		node  *Node
		level int
	}
	open := []frame{{node: nil, level: 0}}

	for _, h := range headings {
		if h.Level < 1 {
			continue
		}
		node := &Node{
			Title:       h.Title,
			Level:       h.Level,
			Page:        h.Page,
			Subsections: []*Node{},
		}

		for len(open) > 1 && open[len(open)-1].level >= h.Level {
			open = open[:len(open)-1]
		}

		if parent := open[len(open)-1].node; parent != nil {
			parent.Subsections = append(parent.Subsections, node)
		} else {
			tree.Sections = append(tree.Sections, node)
		}
		open = append(open, frame{node: node, level: h.Level})
	}

	return tree
}

// Walk visits every node depth-first in pre-order, which reproduces the
// heading stream's reading order.
func (t *Tree) Walk(fn func(*Node)) {
	for _, n := range t.Sections {
		walkNode(n, fn)
	}
}

func walkNode(n *Node, fn func(*Node)) {
	fn(n)
	for _, child := range n.Subsections {
		walkNode(child, fn)
	}
}

// Count returns the total number of nodes in the tree.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func(*Node) { n++ })
	return n
}
