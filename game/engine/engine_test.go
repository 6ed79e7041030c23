package engine

import (
	"errors"
	"strings"
	"testing"
)

func createTestEngine(t *testing.T, layout ...string) *PuzzleEngine {
	t.Helper()
	config := &GridConfig{
		Name:        "Test Config",
		Description: "Test configuration for engine tests",
		Layout:      layout,
	}
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	engine := createTestEngine(t, "R_R", "___")
	state := engine.GetState()

	if state.ConfigName != "Test Config" {
		t.Errorf("ConfigName: expected 'Test Config', got %s", state.ConfigName)
	}
	if state.PartCount != 2 {
		t.Errorf("PartCount: expected 2, got %d", state.PartCount)
	}
	if state.Assembled {
		t.Error("two separated robots are not assembled")
	}
	if state.Message != "2 parts to assemble" {
		t.Errorf("unexpected message: %s", state.Message)
	}
	if engine.GetGrid() != engine.GetInitialGrid() {
		t.Error("a fresh engine should start on its initial grid")
	}

	if _, err := NewEngine(&GridConfig{Name: "bad"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewEngine_AlreadyAssembled(t *testing.T) {
	engine := createTestEngine(t, "RR")
	if !engine.IsAssembled() {
		t.Error("expected an assembled puzzle")
	}
	if engine.GetState().Message != "Already assembled" {
		t.Errorf("unexpected message: %s", engine.GetState().Message)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name           string
		op             Operator
		expectSuccess  bool
		expectCost     int
		expectMessage  string
		expectAssembly bool
	}{
		{"slide east into partner", Operator{Part: 0, Direction: East}, true, 1, "Assembled! Total cost: 1", true},
		{"slide west into partner", Operator{Part: 1, Direction: West}, true, 1, "Assembled! Total cost: 1", true},
		{"hit the wall", Operator{Part: 0, Direction: North}, false, 0, "would hit the wall", false},
		{"push into the wall", Operator{Part: 1, Direction: East}, false, 0, "would hit the wall", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := createTestEngine(t, "R_R")

			tr, err := engine.Move(tt.op)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			state := engine.GetState()

			last := engine.GetLastMove()
			if last == nil {
				t.Fatal("every move should be recorded")
			}
			if last.Success != tt.expectSuccess {
				t.Errorf("Success: expected %v, got %v", tt.expectSuccess, last.Success)
			}
			if last.Feedback != tr.Feedback {
				t.Errorf("history feedback %s does not match transition %s", last.Feedback, tr.Feedback)
			}
			if state.TotalCost != tt.expectCost {
				t.Errorf("TotalCost: expected %d, got %d", tt.expectCost, state.TotalCost)
			}
			if !strings.Contains(state.Message, tt.expectMessage) {
				t.Errorf("Message: expected to contain %q, got %q", tt.expectMessage, state.Message)
			}
			if state.Assembled != tt.expectAssembly {
				t.Errorf("Assembled: expected %v, got %v", tt.expectAssembly, state.Assembled)
			}
		})
	}
}

func TestMove_BlockedWithoutDisplacement(t *testing.T) {
	engine := createTestEngine(t, "RX_R")
	before := engine.GetGrid()

	if engine.CanMove(Operator{Part: 0, Direction: East}) {
		t.Error("a part facing an obstacle cannot move")
	}

	tr, err := engine.Move(Operator{Part: 0, Direction: East})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Feedback != ObstacleCollision || tr.Steps != 0 {
		t.Errorf("expected obstacle with 0 steps, got %s with %d", tr.Feedback, tr.Steps)
	}
	if engine.GetGrid() != before {
		t.Error("a rejected move must keep the current grid")
	}
	if !strings.Contains(engine.GetState().Message, "blocked") {
		t.Errorf("unexpected message: %s", engine.GetState().Message)
	}
}

func TestMove_InvalidPart(t *testing.T) {
	engine := createTestEngine(t, "R_R")
	if _, err := engine.Move(Operator{Part: 5, Direction: East}); !errors.Is(err, ErrPartIndex) {
		t.Errorf("expected ErrPartIndex, got %v", err)
	}
	if len(engine.GetMoveHistory()) != 0 {
		t.Error("an invalid operator should not be recorded")
	}
}

func TestGetPossibleMoves(t *testing.T) {
	engine := createTestEngine(t, "R_R")
	moves := engine.GetPossibleMoves()

	expected := []Operator{
		{Part: 0, Direction: East},
		{Part: 1, Direction: West},
	}
	if len(moves) != len(expected) {
		t.Fatalf("expected %d moves, got %d: %v", len(expected), len(moves), moves)
	}
	for i := range expected {
		if moves[i] != expected[i] {
			t.Errorf("move %d: expected %v, got %v", i, expected[i], moves[i])
		}
	}
}

func TestReset(t *testing.T) {
	engine := createTestEngine(t, "R__R")

	if _, err := engine.Move(Operator{Part: 0, Direction: North}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.Move(Operator{Part: 0, Direction: East}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !engine.IsAssembled() || engine.GetState().TotalCost != 2 {
		t.Fatalf("expected an assembled puzzle with cost 2, got %+v", engine.GetState())
	}

	state := engine.Reset()
	if !state.Grid.Equal(engine.GetInitialGrid()) {
		t.Error("reset should restore the initial grid")
	}
	if state.TotalCost != 0 || state.Assembled {
		t.Errorf("reset should clear progress, got cost %d assembled %v", state.TotalCost, state.Assembled)
	}
	if state.TotalMoves != 2 || len(state.MoveHistory) != 2 {
		t.Errorf("history must survive reset: %d moves, %d entries", state.TotalMoves, len(state.MoveHistory))
	}
	if state.CurrentMovesCount != 0 || len(state.CurrentMoves) != 0 {
		t.Errorf("current moves must be cleared, got %d", state.CurrentMovesCount)
	}

	if _, err := engine.Move(Operator{Part: 1, Direction: West}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := engine.GetLastMove(); last.MoveNumber != 3 {
		t.Errorf("move numbers continue across resets: expected 3, got %d", last.MoveNumber)
	}
}

func TestApplyPlan(t *testing.T) {
	engine := createTestEngine(t,
		"R___",
		"____",
		"__R_",
		"__R_",
	)

	plan := []Operator{
		{Part: 1, Direction: West},
		{Part: 0, Direction: South},
	}
	applied, err := engine.ApplyPlan(plan)
	if err == nil {
		t.Fatal("the first operator ends against the wall and must be rejected")
	}
	if applied != 0 {
		t.Errorf("expected 0 operators applied, got %d", applied)
	}

	// the merged pair is appended after the lone part at (0,4), which
	// becomes part 0
	engine = createTestEngine(t, "R_R_R")
	applied, err = engine.ApplyPlan([]Operator{
		{Part: 0, Direction: East},
		{Part: 0, Direction: West},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != 2 || !engine.IsAssembled() {
		t.Errorf("expected 2 operators and an assembled grid, got %d\n%s", applied, engine.GetGrid())
	}
	if engine.GetState().TotalCost != 2 {
		t.Errorf("expected total cost 2, got %d", engine.GetState().TotalCost)
	}
}

func TestSetState(t *testing.T) {
	engine := createTestEngine(t, "R_R")

	if err := engine.SetState(nil); err == nil {
		t.Error("expected error for nil state")
	}
	if err := engine.SetState(&PuzzleState{}); err == nil {
		t.Error("expected error for state without grid")
	}

	state := &PuzzleState{Grid: MustParseGrid("_RR"), TotalCost: 1}
	if err := engine.SetState(state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !engine.IsAssembled() || engine.GetState().PartCount != 1 {
		t.Error("SetState should re-derive part count and assembly")
	}
}
