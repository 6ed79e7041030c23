package search

import (
	"fmt"
	"iter"
	"strings"

	"github.com/wricardo/robot-assembly/game/engine"
)

// Node is one vertex of the search tree. Nodes form a tree, never a graph:
// a state reached twice yields two nodes.
type Node struct {
	State    *engine.Grid
	Parent   *Node
	Operator engine.Operator
	Feedback engine.Feedback
	Depth    int
	PathCost int
}

// NewRoot wraps the initial grid in a node without parent
func NewRoot(g *engine.Grid) *Node {
	return &Node{State: g}
}

// IsRoot reports whether n has no parent
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Expand applies every operator of the node's state and returns the
// children that neither ended against the wall nor left the grid unchanged.
func (n *Node) Expand() []*Node {
	ops := n.State.PossibleOperators()
	children := make([]*Node, 0, len(ops))
	for _, op := range ops {
		t, err := n.State.ApplyOperator(op)
		if err != nil {
			// operators come from the state itself
			panic(err)
		}
		if t.Feedback == engine.Damage || t.Grid.Equal(n.State) {
			continue
		}
		children = append(children, &Node{
			State:    t.Grid,
			Parent:   n,
			Operator: op,
			Feedback: t.Feedback,
			Depth:    n.Depth + 1,
			PathCost: n.PathCost + t.Cost,
		})
	}
	return children
}

// Steps yields the nodes from the root down to n. The parent chain is
// walked when iteration starts.
func (n *Node) Steps() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var chain []*Node
		for cur := n; cur != nil; cur = cur.Parent {
			chain = append(chain, cur)
		}
		for i := len(chain) - 1; i >= 0; i-- {
			if !yield(chain[i]) {
				return
			}
		}
	}
}

// Path returns the nodes from the root down to n
func (n *Node) Path() []*Node {
	path := make([]*Node, 0, n.Depth+1)
	for step := range n.Steps() {
		path = append(path, step)
	}
	return path
}

// Operators returns the operators leading from the root to n
func (n *Node) Operators() []engine.Operator {
	ops := make([]engine.Operator, 0, n.Depth)
	for step := range n.Steps() {
		if !step.IsRoot() {
			ops = append(ops, step.Operator)
		}
	}
	return ops
}

// PathRepr renders every node from the root down to n
func (n *Node) PathRepr() string {
	var b strings.Builder
	for step := range n.Steps() {
		b.WriteString(step.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (n *Node) String() string {
	op := "none"
	if !n.IsRoot() {
		op = n.Operator.String()
	}
	return fmt.Sprintf("Node\nDepth: %d\noperator: %s\npath_cost: %d\n%s\n", n.Depth, op, n.PathCost, n.State)
}
