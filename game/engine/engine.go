package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for interactive puzzle operations
type Engine interface {
	// State management
	GetState() *PuzzleState
	SetState(state *PuzzleState) error
	Reset() *PuzzleState
	IsAssembled() bool
	GetGrid() *Grid
	GetInitialGrid() *Grid

	// Movement operations
	Move(op Operator) (Transition, error)
	CanMove(op Operator) bool
	GetPossibleMoves() []Operator

	// Configuration
	GetConfig() *GridConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// PuzzleEngine implements the Engine interface
type PuzzleEngine struct {
	state   *PuzzleState
	config  *GridConfig
	initial *Grid
}

// NewEngine creates a new puzzle engine for the provided configuration
func NewEngine(config *GridConfig) (*PuzzleEngine, error) {
	if err := ValidateGridConfig(config); err != nil {
		return nil, err
	}
	grid, err := ParseGrid(config.Layout)
	if err != nil {
		return nil, err
	}
	return NewEngineWithGrid(config, grid), nil
}

// NewEngineWithGrid creates an engine whose initial grid is given directly,
// e.g. one produced by Generate. config may be nil.
func NewEngineWithGrid(config *GridConfig, grid *Grid) *PuzzleEngine {
	e := &PuzzleEngine{
		config:  config,
		initial: grid,
	}
	e.state = e.initState()
	return e
}

func (e *PuzzleEngine) initState() *PuzzleState {
	name := ""
	if e.config != nil {
		name = e.config.Name
	}
	state := &PuzzleState{
		Grid:              e.initial,
		PartCount:         e.initial.PartCount(),
		Assembled:         e.initial.Assembled(),
		ConfigName:        name,
		MoveHistory:       []MoveHistoryEntry{},
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}
	state.Message = fmt.Sprintf("%d parts to assemble", state.PartCount)
	if state.Assembled {
		state.Message = "Already assembled"
	}
	return state
}

// GetState returns the current puzzle state
func (e *PuzzleEngine) GetState() *PuzzleState {
	return e.state
}

// SetState sets the puzzle state (used for persistence loading)
func (e *PuzzleEngine) SetState(state *PuzzleState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Grid == nil {
		return fmt.Errorf("state grid cannot be nil")
	}
	state.PartCount = state.Grid.PartCount()
	state.Assembled = state.Grid.Assembled()
	e.state = state
	return nil
}

// Reset restores the initial grid while keeping the cumulative history
func (e *PuzzleEngine) Reset() *PuzzleState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	e.state = e.initState()

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	return e.state
}

// IsAssembled reports whether the current grid has a single part
func (e *PuzzleEngine) IsAssembled() bool {
	return e.state.Assembled
}

// GetGrid returns the current grid snapshot
func (e *PuzzleEngine) GetGrid() *Grid {
	return e.state.Grid
}

// GetInitialGrid returns the grid the engine was created or reset with
func (e *PuzzleEngine) GetInitialGrid() *Grid {
	return e.initial
}

// Move applies op to the current grid. A move is accepted under the same
// rule the search uses: it must not end against the wall and must displace
// the part. Rejected moves are still recorded in the history.
func (e *PuzzleEngine) Move(op Operator) (Transition, error) {
	t, err := e.state.Grid.ApplyOperator(op)
	if err != nil {
		return Transition{}, err
	}

	success := t.Feedback != Damage && t.Moved()
	switch {
	case t.Feedback == Damage:
		e.state.Message = fmt.Sprintf("Part %d would hit the wall moving %s", op.Part, op.Direction)
	case !t.Moved():
		e.state.Message = fmt.Sprintf("Part %d blocked moving %s (%s)", op.Part, op.Direction, t.Feedback)
	default:
		e.state.Grid = t.Grid
		e.state.TotalCost += t.Cost
		e.state.PartCount = t.Grid.PartCount()
		e.state.Assembled = t.Grid.Assembled()
		e.state.Message = fmt.Sprintf("Part %d moved %s %d steps (%s), %d parts left",
			op.Part, op.Direction, t.Steps, t.Feedback, e.state.PartCount)
		if e.state.Assembled {
			e.state.Message = fmt.Sprintf("Assembled! Total cost: %d", e.state.TotalCost)
		}
	}

	e.addMoveToHistory(op, t, success)
	return t, nil
}

// CanMove checks if op would be accepted by Move
func (e *PuzzleEngine) CanMove(op Operator) bool {
	t, err := e.state.Grid.ApplyOperator(op)
	if err != nil {
		return false
	}
	return t.Feedback != Damage && t.Moved()
}

// GetPossibleMoves returns every operator Move would accept
func (e *PuzzleEngine) GetPossibleMoves() []Operator {
	var possible []Operator
	for _, op := range e.state.Grid.PossibleOperators() {
		if e.CanMove(op) {
			possible = append(possible, op)
		}
	}
	return possible
}

// GetConfig returns the engine configuration, which may be nil
func (e *PuzzleEngine) GetConfig() *GridConfig {
	return e.config
}

// GetMoveHistory returns the complete move history
func (e *PuzzleEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *PuzzleEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// ApplyPlan applies a sequence of operators, stopping at the first rejected
// one. It returns the number of operators applied.
func (e *PuzzleEngine) ApplyPlan(ops []Operator) (int, error) {
	for i, op := range ops {
		t, err := e.Move(op)
		if err != nil {
			return i, err
		}
		if t.Feedback == Damage || !t.Moved() {
			return i, fmt.Errorf("operator %d %s rejected: %s", i, op, t.Feedback)
		}
	}
	return len(ops), nil
}

func (e *PuzzleEngine) addMoveToHistory(op Operator, t Transition, success bool) {
	entry := MoveHistoryEntry{
		Operator:   op,
		Feedback:   t.Feedback,
		Steps:      t.Steps,
		Cost:       t.Cost,
		PartsAfter: e.state.PartCount,
		Timestamp:  time.Now().Unix(),
		Success:    success,
		MoveNumber: e.state.TotalMoves + 1,
	}
	e.state.MoveHistory = append(e.state.MoveHistory, entry)
	e.state.TotalMoves++

	e.state.CurrentMoves = append(e.state.CurrentMoves, entry)
	e.state.CurrentMovesCount++
}
