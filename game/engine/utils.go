package engine

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

// PartGap returns the smallest Manhattan distance between a cell of p and a
// cell of q. Adjacent parts have a gap of 1.
func PartGap(p, q Part) int {
	best := -1
	for _, a := range p.Cells {
		for _, b := range q.Cells {
			d := ManhattanDistance(a, b)
			if best == -1 || d < best {
				best = d
			}
		}
	}
	return best
}

// NearestPartGap returns the gap from part i to the closest other part of g,
// or 0 when g has a single part.
func NearestPartGap(g *Grid, i int) int {
	best := 0
	for j := range g.parts {
		if j == i {
			continue
		}
		d := PartGap(g.parts[i], g.parts[j])
		if best == 0 || d < best {
			best = d
		}
	}
	return best
}

// CountCellType counts the cells of a specific type in the grid
func CountCellType(g *Grid, cell Cell) int {
	count := 0
	for _, c := range g.cells {
		if c == cell {
			count++
		}
	}
	return count
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
