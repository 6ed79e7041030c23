package session

import (
	"time"

	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData represents the JSON structure for persisted sessions.
// The config is stored inline so random sessions and edited config files
// still restore the grid the session was created with.
type PersistedSessionData struct {
	ID             string              `json:"id"`
	ConfigID       string              `json:"config_id"`
	Seed           int64               `json:"seed,omitempty"`
	Config         *engine.GridConfig  `json:"config,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	PuzzleState    *engine.PuzzleState `json:"puzzle_state"`
	Runs           []*service.SolveRun `json:"runs,omitempty"`
}
