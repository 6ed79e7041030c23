package engine

import (
	"fmt"
	"sort"
)

// Transition is the outcome of applying an operator to a grid
type Transition struct {
	Grid     *Grid    `json:"grid"`
	Feedback Feedback `json:"feedback"`
	Steps    int      `json:"steps"`
	Cost     int      `json:"cost"`
}

// Moved reports whether the part was displaced at all
func (t Transition) Moved() bool {
	return t.Steps > 0
}

// ApplyOperator pushes the selected part one step at a time, as a rigid body,
// until some cell of the part is blocked. The returned transition carries the
// feedback that stopped the motion, the number of committed steps and a cost
// of steps times the part size. The receiver is never modified; when no step
// is committed the receiver itself is returned as the resulting grid.
func (g *Grid) ApplyOperator(op Operator) (Transition, error) {
	part, err := g.Part(op.Part)
	if err != nil {
		return Transition{}, err
	}

	cells := append([]Position(nil), part.Cells...)
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	if op.Direction.Leading() {
		for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
	}

	owned := make([]bool, len(g.cells))
	for _, c := range cells {
		owned[g.index(c)] = true
	}

	delta := op.Direction.Delta()
	var offset Position
	steps := 0
	for {
		feedback := Smooth
		for _, c := range cells {
			feedback = g.probe(c.Add(offset), delta, offset, owned)
			if feedback != Smooth {
				break
			}
		}
		if feedback != Smooth {
			next := g
			if steps > 0 {
				next, err = g.shift(cells, offset)
				if err != nil {
					// feasibility was checked above; reaching here is a logic bug
					panic(err)
				}
			}
			return Transition{
				Grid:     next,
				Feedback: feedback,
				Steps:    steps,
				Cost:     steps * len(cells),
			}, nil
		}
		offset = offset.Add(delta)
		steps++
	}
}

// Feedback reports what a single cell at loc would hit moving one step in
// dir. Cells listed in mates are treated as moving with it and never block.
func (g *Grid) Feedback(loc Position, dir Direction, mates []Position) Feedback {
	dest := loc.Add(dir.Delta())
	for _, m := range mates {
		if m == dest {
			return Smooth
		}
	}
	if !g.InBounds(dest) {
		return Damage
	}
	return feedbackFor(g.At(dest))
}

// probe is Feedback for a part displaced by offset from its position in g.
// owned marks the part's original cells: those are vacated, and a
// destination equal to an original cell plus offset is a part-mate.
func (g *Grid) probe(loc, delta, offset Position, owned []bool) Feedback {
	dest := loc.Add(delta)
	if src := (Position{Row: dest.Row - offset.Row, Col: dest.Col - offset.Col}); g.InBounds(src) && owned[g.index(src)] {
		return Smooth
	}
	if !g.InBounds(dest) {
		return Damage
	}
	if owned[g.index(dest)] {
		return Smooth
	}
	return feedbackFor(g.At(dest))
}

func feedbackFor(c Cell) Feedback {
	switch c {
	case Robot:
		return RobotCollision
	case Obstacle:
		return ObstacleCollision
	default:
		return Smooth
	}
}

// shift materializes a new grid with cells displaced by offset. Every
// destination must be empty once the originals are vacated.
func (g *Grid) shift(cells []Position, offset Position) (*Grid, error) {
	buf := make([]Cell, len(g.cells))
	copy(buf, g.cells)
	for _, c := range cells {
		buf[g.index(c)] = Empty
	}
	for _, c := range cells {
		dest := c.Add(offset)
		if !g.InBounds(dest) || buf[g.index(dest)] != Empty {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidMove, c, dest)
		}
		buf[g.index(dest)] = Robot
	}
	return newGridFromBuffer(g.rows, g.cols, buf), nil
}
