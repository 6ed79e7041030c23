package engine

import (
	"fmt"
	"strings"
)

// Part is a set of robot cells that are transitively orthogonally adjacent.
// Cell order carries no meaning.
type Part struct {
	Cells []Position `json:"cells"`
}

// Size returns the number of cells in the part
func (p Part) Size() int {
	return len(p.Cells)
}

// Contains reports whether pos is one of the part's cells
func (p Part) Contains(pos Position) bool {
	for _, c := range p.Cells {
		if c == pos {
			return true
		}
	}
	return false
}

func (p Part) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, c := range p.Cells {
		b.WriteString(c.String())
	}
	b.WriteByte(']')
	return b.String()
}

// CanAssemble reports whether some cell of p is at Manhattan distance exactly
// one from some cell of other.
func (p Part) CanAssemble(other Part) bool {
	for _, a := range p.Cells {
		for _, b := range other.Cells {
			if ManhattanDistance(a, b) == 1 {
				return true
			}
		}
	}
	return false
}

// Assemble joins two adjacent parts into one holding both cell lists.
func (p Part) Assemble(other Part) (Part, error) {
	if !p.CanAssemble(other) {
		return Part{}, fmt.Errorf("%w: %s and %s", ErrUnassemblable, p, other)
	}
	cells := make([]Position, 0, len(p.Cells)+len(other.Cells))
	cells = append(cells, p.Cells...)
	cells = append(cells, other.Cells...)
	return Part{Cells: cells}, nil
}

// MergeParts merges adjacent parts until a full pairwise scan performs no
// merge. A merged part is appended to the end of the list and both sources
// are dropped, so the surviving order is deterministic for a given input.
func MergeParts(parts []Part) []Part {
	work := make([]*Part, len(parts))
	for i := range parts {
		p := parts[i]
		work[i] = &p
	}

	for {
		merged := false
		// the bound is re-read every iteration; merged parts land at the end
		// and are picked up within the same scan
		for i := 0; i < len(work); i++ {
			for j := i + 1; j < len(work); j++ {
				if work[i] == nil || work[j] == nil {
					continue
				}
				if !work[i].CanAssemble(*work[j]) {
					continue
				}
				joined, err := work[i].Assemble(*work[j])
				if err != nil {
					panic(err)
				}
				work = append(work, &joined)
				work[i] = nil
				work[j] = nil
				merged = true
			}
		}
		if !merged {
			break
		}
	}

	result := make([]Part, 0, len(work))
	for _, p := range work {
		if p != nil {
			result = append(result, *p)
		}
	}
	return result
}
