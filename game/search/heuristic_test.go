package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wricardo/robot-assembly/game/engine"
)

func TestHeuristics(t *testing.T) {
	tests := []struct {
		name      string
		grid      *engine.Grid
		heuristic Heuristic
		expected  int
	}{
		{"part count triad", triad(), PartCount{}, 2},
		{"part count assembled", assembledPair(), PartCount{}, 0},
		{"total gap triad", triad(), TotalGap{}, 6},
		{"total gap assembled", assembledPair(), TotalGap{}, 0},
		{"min part size triad", triad(), MinPartSize{}, 1},
		{"min part size assembled", assembledPair(), MinPartSize{}, 0},
		{"pair gap triad", triad(), PairGap{}, 1},
		{"pair gap assembled", assembledPair(), PairGap{}, 0},
		{"min part size picks smallest", engine.MustParseGrid("RR_R", "RR__"), MinPartSize{}, 1},
		{"pair gap weighs the smaller part", engine.MustParseGrid("RRR___RR"), PairGap{}, 6},
		{"no robots", engine.MustParseGrid("_X_"), PairGap{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.heuristic.Estimate(tt.grid))
		})
	}
}

func TestStrategyHeuristics(t *testing.T) {
	assert.Equal(t, "part_count", GreedyH1.Heuristic().Name())
	assert.Equal(t, "total_gap", GreedyH2.Heuristic().Name())
	assert.Equal(t, "min_part_size", AStarH1.Heuristic().Name())
	assert.Equal(t, "pair_gap", AStarH2.Heuristic().Name())
	assert.Nil(t, BFS.Heuristic())

	for _, s := range Strategies {
		assert.NotNil(t, s.NewFrontier(), s)
	}
}

// The admissible estimates of a start grid never exceed the optimal cost
// found by uniform-cost search.
func TestAdmissibleHeuristicsBoundOptimalCost(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	opts := engine.GeneratorOptions{MinSide: 3, MaxSide: 4, RobotDensity: 0.25, ObstacleDensity: 0.1}

	for i := 0; i < 20; i++ {
		g, err := engine.Generate(rng, opts)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		optimal, err := GeneralSearch(t.Context(), NewProblem(g),
			NewPriority(func(n *Node) int { return n.PathCost }),
			WithDedupe(true), WithMaxExpansions(20000))
		if err != nil || !optimal.Found {
			continue
		}

		for _, h := range []Heuristic{MinPartSize{}, PairGap{}} {
			assert.LessOrEqual(t, h.Estimate(g), optimal.PathCost, "%s on\n%s", h.Name(), g)
		}
	}
}
