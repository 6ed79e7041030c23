package search

import (
	"fmt"

	"github.com/wricardo/robot-assembly/game/engine"
)

// Problem binds an initial grid to the assembly goal
type Problem struct {
	Initial *engine.Grid
}

// NewProblem creates a problem starting from g
func NewProblem(g *engine.Grid) *Problem {
	return &Problem{Initial: g}
}

// GoalTest reports whether every robot cell belongs to a single part
func (p *Problem) GoalTest(g *engine.Grid) bool {
	return g.PartCount() == 1
}

// ExpandNode returns the children of n
func (p *Problem) ExpandNode(n *Node) []*Node {
	return n.Expand()
}

// PathCost is not supported: nodes carry their accumulated cost.
func (p *Problem) PathCost(n *Node) (int, error) {
	return 0, fmt.Errorf("%w: PathCost, read Node.PathCost instead", ErrDeprecatedOperation)
}
