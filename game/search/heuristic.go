package search

import "github.com/wricardo/robot-assembly/game/engine"

// Heuristic estimates the remaining cost from a grid to an assembled one.
// Estimates are non-negative; A* is only optimal for admissible heuristics,
// which never overestimate.
type Heuristic interface {
	Name() string
	Estimate(g *engine.Grid) int
}

// PartCount estimates one move per part still to join. Not admissible,
// since a move of a large part costs more than one.
type PartCount struct{}

func (PartCount) Name() string { return "part_count" }

func (PartCount) Estimate(g *engine.Grid) int {
	if n := g.PartCount(); n > 1 {
		return n - 1
	}
	return 0
}

// TotalGap sums, over every part, the distance to its nearest other part.
// Not admissible.
type TotalGap struct{}

func (TotalGap) Name() string { return "total_gap" }

func (TotalGap) Estimate(g *engine.Grid) int {
	total := 0
	for i := 0; i < g.PartCount(); i++ {
		total += engine.NearestPartGap(g, i)
	}
	return total
}

// MinPartSize is zero on an assembled grid and otherwise the size of the
// smallest part: at least one more move is needed and every move of a part
// costs at least its size. Admissible.
type MinPartSize struct{}

func (MinPartSize) Name() string { return "min_part_size" }

func (MinPartSize) Estimate(g *engine.Grid) int {
	if g.PartCount() <= 1 {
		return 0
	}
	best := 0
	for _, p := range g.Parts() {
		if best == 0 || p.Size() < best {
			best = p.Size()
		}
	}
	return best
}

// PairGap is the minimum over part pairs (p, q) of min(|p|,|q|)·(gap−1).
// Admissible: the first merge of a solution joins some pair p, q, and each
// step closing their gap costs at least the size of the part taking it.
type PairGap struct{}

func (PairGap) Name() string { return "pair_gap" }

func (PairGap) Estimate(g *engine.Grid) int {
	parts := g.Parts()
	if len(parts) <= 1 {
		return 0
	}
	best := -1
	for i := range parts {
		for j := i + 1; j < len(parts); j++ {
			size := min(parts[i].Size(), parts[j].Size())
			est := size * (engine.PartGap(parts[i], parts[j]) - 1)
			if best == -1 || est < best {
				best = est
			}
		}
	}
	return best
}
