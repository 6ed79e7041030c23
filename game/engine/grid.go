package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grid is an immutable snapshot of the puzzle: a flat row-major buffer of
// cells plus the parts derived from it. Operators never mutate a Grid; a
// committed move materializes a new one.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
	parts []Part
}

// NewGrid builds a grid from a rectangular 2-D array of cells
func NewGrid(layout [][]Cell) (*Grid, error) {
	if len(layout) < MinGridSize || len(layout) > MaxGridSize {
		return nil, fmt.Errorf("%w: must have between %d and %d rows, got %d", ErrInvalidGrid, MinGridSize, MaxGridSize, len(layout))
	}
	cols := len(layout[0])
	if cols < MinGridSize || cols > MaxGridSize {
		return nil, fmt.Errorf("%w: must have between %d and %d columns, got %d", ErrInvalidGrid, MinGridSize, MaxGridSize, cols)
	}

	cells := make([]Cell, 0, len(layout)*cols)
	for i, row := range layout {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidGrid, i, len(row), cols)
		}
		for j, c := range row {
			if !c.Valid() {
				return nil, fmt.Errorf("%w: invalid cell %q at (%d,%d)", ErrInvalidGrid, rune(c), i, j)
			}
			cells = append(cells, c)
		}
	}
	return newGridFromBuffer(len(layout), cols, cells), nil
}

// ParseGrid builds a grid from layout rows such as "_R_X"
func ParseGrid(rows []string) (*Grid, error) {
	layout := make([][]Cell, len(rows))
	for i, row := range rows {
		layout[i] = []Cell(row)
	}
	return NewGrid(layout)
}

// MustParseGrid is ParseGrid for literals known to be valid
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// newGridFromBuffer takes ownership of cells and derives the part list
func newGridFromBuffer(rows, cols int, cells []Cell) *Grid {
	g := &Grid{rows: rows, cols: cols, cells: cells}
	g.parts = g.findParts()
	return g
}

// findParts starts from one unit part per robot cell in row-major order and
// closes them under adjacency.
func (g *Grid) findParts() []Part {
	var units []Part
	for i, c := range g.cells {
		if c == Robot {
			units = append(units, Part{Cells: []Position{g.position(i)}})
		}
	}
	return MergeParts(units)
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies on the grid
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the cell at p; p must be in bounds
func (g *Grid) At(p Position) Cell {
	return g.cells[g.index(p)]
}

// Parts returns a copy of the derived part list
func (g *Grid) Parts() []Part {
	out := make([]Part, len(g.parts))
	for i, p := range g.parts {
		out[i] = Part{Cells: append([]Position(nil), p.Cells...)}
	}
	return out
}

// PartCount returns the number of parts without copying them
func (g *Grid) PartCount() int {
	return len(g.parts)
}

// Part returns the part at index i
func (g *Grid) Part(i int) (Part, error) {
	if i < 0 || i >= len(g.parts) {
		return Part{}, fmt.Errorf("%w: %d (grid has %d parts)", ErrPartIndex, i, len(g.parts))
	}
	return g.parts[i], nil
}

// PartIndex returns the index of the part holding p, or -1
func (g *Grid) PartIndex(p Position) int {
	for i, part := range g.parts {
		if part.Contains(p) {
			return i
		}
	}
	return -1
}

// Assembled reports whether all robot cells form a single part
func (g *Grid) Assembled() bool {
	return len(g.parts) == 1
}

// PossibleOperators returns every part index paired with every direction
func (g *Grid) PossibleOperators() []Operator {
	ops := make([]Operator, 0, len(g.parts)*len(Directions))
	for i := range g.parts {
		for _, d := range Directions {
			ops = append(ops, Operator{Part: i, Direction: d})
		}
	}
	return ops
}

// Equal compares grid contents only
func (g *Grid) Equal(other *Grid) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil {
		return false
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Key returns a structural key of the grid contents, suitable as a map key
func (g *Grid) Key() string {
	var b strings.Builder
	b.Grow(len(g.cells) + 8)
	fmt.Fprintf(&b, "%dx%d:", g.rows, g.cols)
	for _, c := range g.cells {
		b.WriteByte(byte(c))
	}
	return b.String()
}

// Layout returns the grid as rows of layout characters
func (g *Grid) Layout() []string {
	rows := make([]string, g.rows)
	for r := 0; r < g.rows; r++ {
		rows[r] = string(g.cellsRow(r))
	}
	return rows
}

func (g *Grid) cellsRow(r int) []byte {
	row := make([]byte, g.cols)
	for c := 0; c < g.cols; c++ {
		row[c] = byte(g.cells[r*g.cols+c])
	}
	return row
}

// charAt renders one cell: robot cells show their part index
func (g *Grid) charAt(p Position) string {
	switch g.At(p) {
	case Obstacle:
		return "X"
	case Robot:
		return fmt.Sprintf("%d", g.PartIndex(p))
	default:
		return "_"
	}
}

// String renders the grid with one symbol per cell separated by spaces
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			b.WriteString(g.charAt(Position{Row: r, Col: c}))
			b.WriteByte(' ')
		}
		if r != g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type gridJSON struct {
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Layout []string `json:"layout"`
	Parts  []Part   `json:"parts,omitempty"`
}

// MarshalJSON encodes the grid by layout; parts are included for clients
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{
		Rows:   g.rows,
		Cols:   g.cols,
		Layout: g.Layout(),
		Parts:  g.parts,
	})
}

// UnmarshalJSON rebuilds the grid from its layout; parts are re-derived
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseGrid(raw.Layout)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

func (g *Grid) position(i int) Position {
	return Position{Row: i / g.cols, Col: i % g.cols}
}
