package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		wantErr   bool
		wantParts int
	}{
		{"single robot", []string{"R"}, false, 1},
		{"two separated robots", []string{"R_R"}, false, 2},
		{"connected block", []string{"RR", "RR"}, false, 1},
		{"no robots", []string{"__", "X_"}, false, 0},
		{"no rows", []string{}, true, 0},
		{"empty row", []string{""}, true, 0},
		{"ragged rows", []string{"R__", "R_"}, true, 0},
		{"unknown symbol", []string{"R_B"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGrid(tt.rows)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGrid) {
					t.Errorf("expected ErrInvalidGrid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.PartCount() != tt.wantParts {
				t.Errorf("expected %d parts, got %d", tt.wantParts, g.PartCount())
			}
		})
	}
}

func TestGridAccessors(t *testing.T) {
	g := MustParseGrid(
		"R_X",
		"R__",
	)

	if g.Rows() != 2 || g.Cols() != 3 {
		t.Errorf("expected 2x3, got %dx%d", g.Rows(), g.Cols())
	}
	if g.At(Position{Row: 0, Col: 2}) != Obstacle {
		t.Error("expected obstacle at (0,2)")
	}
	if g.InBounds(Position{Row: 2, Col: 0}) || g.InBounds(Position{Row: 0, Col: -1}) {
		t.Error("positions outside the grid reported in bounds")
	}
	if !g.Assembled() {
		t.Error("a single vertical pair should be assembled")
	}
	if g.PartIndex(Position{Row: 1, Col: 0}) != 0 {
		t.Error("expected (1,0) in part 0")
	}
	if g.PartIndex(Position{Row: 1, Col: 1}) != -1 {
		t.Error("expected no part at an empty cell")
	}
	if _, err := g.Part(3); !errors.Is(err, ErrPartIndex) {
		t.Errorf("expected ErrPartIndex, got %v", err)
	}
	if n := CountCellType(g, Empty); n != 3 {
		t.Errorf("expected 3 empty cells, got %d", n)
	}
}

func TestGridPartsIsACopy(t *testing.T) {
	g := MustParseGrid("RR")
	parts := g.Parts()
	parts[0].Cells[0] = Position{Row: 9, Col: 9}

	if p, _ := g.Part(0); p.Contains(Position{Row: 9, Col: 9}) {
		t.Error("mutating Parts() leaked into the grid")
	}
}

func TestPossibleOperators(t *testing.T) {
	g := MustParseGrid("R_R_R")
	ops := g.PossibleOperators()

	if len(ops) != 12 {
		t.Fatalf("expected 3 parts x 4 directions = 12 operators, got %d", len(ops))
	}
	if ops[0] != (Operator{Part: 0, Direction: North}) || ops[11] != (Operator{Part: 2, Direction: West}) {
		t.Errorf("unexpected operator order: first %v, last %v", ops[0], ops[11])
	}
}

func TestGridEqualAndKey(t *testing.T) {
	a := MustParseGrid("R_R", "___")
	b := MustParseGrid("R_R", "___")
	c := MustParseGrid("_RR", "___")
	d := MustParseGrid("R_R___")

	if !a.Equal(b) || a.Key() != b.Key() {
		t.Error("identical layouts must be equal and share a key")
	}
	if a.Equal(c) || a.Key() == c.Key() {
		t.Error("different layouts must differ")
	}
	if a.Equal(d) || a.Key() == d.Key() {
		t.Error("same cells with a different shape must differ")
	}
	if a.Equal(nil) {
		t.Error("a grid never equals nil")
	}
}

func TestGridString(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		expected string
	}{
		{"two parts", []string{"R_R"}, "0 _ 1 "},
		{"one part with obstacle", []string{"RR", "_X"}, "0 0 \n_ X "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustParseGrid(tt.rows...).String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGridJSONRoundTrip(t *testing.T) {
	g := Example1()

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Failed to marshal grid: %v", err)
	}

	var decoded Grid
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal grid: %v", err)
	}
	if !decoded.Equal(g) {
		t.Errorf("expected\n%s\ngot\n%s", g, &decoded)
	}
	if decoded.PartCount() != g.PartCount() {
		t.Errorf("expected %d parts, got %d", g.PartCount(), decoded.PartCount())
	}

	if err := json.Unmarshal([]byte(`{"layout":["R?"]}`), &decoded); err == nil {
		t.Error("expected error for invalid layout")
	}
}

func TestExamples(t *testing.T) {
	tests := []struct {
		name  string
		grid  *Grid
		rows  int
		cols  int
		parts int
	}{
		{"example1", Example1(), 8, 8, 6},
		{"example2", Example2(), 7, 6, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.grid.Rows() != tt.rows || tt.grid.Cols() != tt.cols {
				t.Errorf("expected %dx%d, got %dx%d", tt.rows, tt.cols, tt.grid.Rows(), tt.grid.Cols())
			}
			if tt.grid.PartCount() != tt.parts {
				t.Errorf("expected %d parts, got %d", tt.parts, tt.grid.PartCount())
			}
		})
	}
}

func TestPartGap(t *testing.T) {
	g := MustParseGrid(
		"R__R",
		"____",
		"R___",
	)
	// parts in row-major order: (0,0), (0,3), (2,0)
	if gap := NearestPartGap(g, 0); gap != 2 {
		t.Errorf("expected nearest gap 2 for part 0, got %d", gap)
	}
	if gap := NearestPartGap(g, 1); gap != 3 {
		t.Errorf("expected nearest gap 3 for part 1, got %d", gap)
	}
	if gap := NearestPartGap(MustParseGrid("RR"), 0); gap != 0 {
		t.Errorf("expected 0 for a single part, got %d", gap)
	}
}
