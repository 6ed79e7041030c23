package service

import (
	"time"

	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/search"
)

// RandomConfigID identifies sessions whose grid was generated from a seed
const RandomConfigID = "random"

// CreateSessionRequest selects the initial grid of a new session. With
// Random set, ConfigID is ignored and a grid is generated from Seed; Rows
// and Cols fix its size when non-zero.
type CreateSessionRequest struct {
	ConfigID string `json:"config_id,omitempty"`
	Random   bool   `json:"random,omitempty"`
	Seed     int64  `json:"seed,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	Cols     int    `json:"cols,omitempty"`
}

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigID       string              `json:"config_id"`
	ConfigName     string              `json:"config_name"`
	Seed           int64               `json:"seed,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	PuzzleState    *engine.PuzzleState `json:"puzzle_state"`
	GridConfig     *engine.GridConfig  `json:"grid_config"`
	Runs           []*SolveRun         `json:"runs,omitempty"`
}

// MoveResult contains the result of a manual move
type MoveResult struct {
	Success     bool                `json:"success"`
	PuzzleState *engine.PuzzleState `json:"puzzle_state"`
	Message     string              `json:"message"`
	Feedback    engine.Feedback     `json:"feedback"`
	Steps       int                 `json:"steps"`
	Cost        int                 `json:"cost"`
	Events      []PuzzleEvent       `json:"events,omitempty"`
}

// PuzzleEvent represents something that happened in a session
type PuzzleEvent struct {
	Type      string    `json:"type"` // "move", "blocked", "merge", "assembled", "reset", "solve"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SolveRequest configures a solver run. Strategy defaults to the session
// config's default strategy, then to A* with the pair-gap heuristic.
type SolveRequest struct {
	Strategy      string `json:"strategy,omitempty"`
	Dedupe        bool   `json:"dedupe,omitempty"`
	MaxExpansions int    `json:"max_expansions,omitempty"`

	// Apply replays the found plan on the session's puzzle
	Apply bool `json:"apply,omitempty"`
}

// SolveRun records one solver run against a session
type SolveRun struct {
	ID         string            `json:"id"`
	SessionID  string            `json:"session_id"`
	Strategy   search.Strategy   `json:"strategy"`
	Dedupe     bool              `json:"dedupe"`
	Found      bool              `json:"found"`
	PathCost   int               `json:"path_cost"`
	Expanded   int               `json:"expanded"`
	Operators  []engine.Operator `json:"operators,omitempty"`
	Path       string            `json:"path,omitempty"`
	DepthLimit int               `json:"depth_limit,omitempty"`
	DurationMS int64             `json:"duration_ms"`
	StartedAt  time.Time         `json:"started_at"`
	Error      string            `json:"error,omitempty"`
	Applied    bool              `json:"applied,omitempty"`
}

// SolveResponse is returned by Solve
type SolveResponse struct {
	Run         *SolveRun           `json:"run"`
	PuzzleState *engine.PuzzleState `json:"puzzle_state"`
}

// CompareResult holds one run per requested strategy, in request order.
// Best is the found run with the lowest cost, ties broken by fewer
// expansions; nil when no strategy found a solution.
type CompareResult struct {
	SessionID string      `json:"session_id"`
	Runs      []*SolveRun `json:"runs"`
	Best      *SolveRun   `json:"best,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a grid configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Parts       int    `json:"parts"`
}
