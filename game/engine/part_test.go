package engine

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func unitParts(cells ...Position) []Part {
	parts := make([]Part, len(cells))
	for i, c := range cells {
		parts[i] = Part{Cells: []Position{c}}
	}
	return parts
}

// partition renders parts independent of part and cell order
func partition(parts []Part) string {
	keys := make([]string, len(parts))
	for i, p := range parts {
		cells := append([]Position(nil), p.Cells...)
		sort.Slice(cells, func(a, b int) bool { return cells[a].Less(cells[b]) })
		keys[i] = Part{Cells: cells}.String()
	}
	sort.Strings(keys)
	return strings.Join(keys, " ")
}

func assertClosed(t *testing.T, parts []Part) {
	t.Helper()
	for i := range parts {
		for j := i + 1; j < len(parts); j++ {
			if parts[i].CanAssemble(parts[j]) {
				t.Errorf("parts %d %s and %d %s are still adjacent", i, parts[i], j, parts[j])
			}
		}
	}
}

func TestCanAssemble(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Part
		expected bool
	}{
		{"horizontal neighbours", Part{Cells: []Position{{0, 0}}}, Part{Cells: []Position{{0, 1}}}, true},
		{"vertical neighbours", Part{Cells: []Position{{1, 1}}}, Part{Cells: []Position{{2, 1}}}, true},
		{"diagonal", Part{Cells: []Position{{0, 0}}}, Part{Cells: []Position{{1, 1}}}, false},
		{"gap of one", Part{Cells: []Position{{0, 0}}}, Part{Cells: []Position{{0, 2}}}, false},
		{"multi-cell touching at tail", Part{Cells: []Position{{0, 0}, {1, 0}, {2, 0}}}, Part{Cells: []Position{{2, 1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CanAssemble(tt.b); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
			if got := tt.b.CanAssemble(tt.a); got != tt.expected {
				t.Errorf("CanAssemble must be symmetric: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	a := Part{Cells: []Position{{0, 0}}}
	b := Part{Cells: []Position{{0, 1}, {0, 2}}}

	joined, err := a.Assemble(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if joined.Size() != 3 {
		t.Errorf("expected 3 cells, got %d", joined.Size())
	}
	for _, c := range []Position{{0, 0}, {0, 1}, {0, 2}} {
		if !joined.Contains(c) {
			t.Errorf("joined part is missing %v", c)
		}
	}

	_, err = a.Assemble(Part{Cells: []Position{{5, 5}}})
	if !errors.Is(err, ErrUnassemblable) {
		t.Errorf("expected ErrUnassemblable, got %v", err)
	}
}

func TestMergeParts_FixedPoint(t *testing.T) {
	// A U shape: the two arms only join through the bottom row, which a
	// single row-major scan sees after the arms were already visited.
	cells := []Position{
		{0, 0}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
		{0, 4},
	}

	merged := MergeParts(unitParts(cells...))
	if len(merged) != 2 {
		t.Fatalf("expected 2 parts, got %d: %v", len(merged), merged)
	}
	assertClosed(t, merged)

	total := 0
	for _, p := range merged {
		total += p.Size()
	}
	if total != len(cells) {
		t.Errorf("expected %d cells across parts, got %d", len(cells), total)
	}
}

func TestMergeParts_OrderIndependent(t *testing.T) {
	cells := []Position{
		{0, 0}, {0, 1}, {0, 3},
		{1, 3}, {2, 0}, {2, 1},
		{2, 2}, {2, 3}, {4, 4},
		{4, 0}, {5, 0}, {5, 2},
	}
	want := partition(MergeParts(unitParts(cells...)))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		shuffled := append([]Position(nil), cells...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		merged := MergeParts(unitParts(shuffled...))
		assertClosed(t, merged)
		if got := partition(merged); got != want {
			t.Errorf("permutation %d: expected partition %s, got %s", i, want, got)
		}
	}
}

func TestMergeParts_Empty(t *testing.T) {
	if merged := MergeParts(nil); len(merged) != 0 {
		t.Errorf("expected no parts, got %v", merged)
	}
}

func TestGridParts_ClosureInvariant(t *testing.T) {
	grids := map[string]*Grid{
		"example1": Example1(),
		"example2": Example2(),
	}
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 10; i++ {
		g, err := Generate(rng, DefaultGeneratorOptions())
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		grids["random"+string(rune('a'+i))] = g
	}

	for name, g := range grids {
		t.Run(name, func(t *testing.T) {
			parts := g.Parts()
			assertClosed(t, parts)

			// every robot cell belongs to exactly one part
			seen := make(map[Position]int)
			for _, p := range parts {
				for _, c := range p.Cells {
					seen[c]++
				}
			}
			for r := 0; r < g.Rows(); r++ {
				for c := 0; c < g.Cols(); c++ {
					pos := Position{Row: r, Col: c}
					want := 0
					if g.At(pos) == Robot {
						want = 1
					}
					if seen[pos] != want {
						t.Errorf("cell %v appears in %d parts, expected %d", pos, seen[pos], want)
					}
				}
			}
		})
	}
}
