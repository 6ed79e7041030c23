package service

import (
	"context"
	"time"

	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/search"
)

// SolverService defines all puzzle and solver operations
type SolverService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Manual play
	Move(ctx context.Context, sessionID string, op engine.Operator) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.PuzzleState, error)

	// Puzzle State
	GetPuzzleState(ctx context.Context, sessionID string) (*engine.PuzzleState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Search
	Solve(ctx context.Context, sessionID string, req SolveRequest) (*SolveResponse, error)
	Compare(ctx context.Context, sessionID string, strategies []string, req SolveRequest) (*CompareResult, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GridConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GridConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GridConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GridConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles grid configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GridConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GridConfig
	SaveConfig(name string, config *engine.GridConfig) error
}

// Notifier receives session events as they happen. Implementations must not
// block; the websocket hub is the production implementation.
type Notifier interface {
	StateChanged(sessionID string, state *engine.PuzzleState)
	SolveProgress(sessionID, runID string, strategy search.Strategy, progress search.Progress)
	SolveComplete(sessionID string, run *SolveRun)
}

// Session represents an active puzzle session
type Session struct {
	ID     string
	Engine *engine.PuzzleEngine
	Config *engine.GridConfig

	// ConfigID is the config the session was created from; random sessions
	// use "random" and record their Seed.
	ConfigID string
	Seed     int64

	Runs           []*SolveRun
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
