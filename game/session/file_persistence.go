package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/service"
)

// FilePersistence implements SessionPersistence with one JSON file per
// session
type FilePersistence struct {
	sessionsDir string

	// configManager resolves files written without an inline config; it
	// may be nil
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	// Create sessions directory if it doesn't exist
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		configManager: configManager,
	}, nil
}

// Save persists a session to a JSON file. The file is written to a
// temporary name first and renamed so readers never see a partial file.
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if !ValidSessionID(session.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, session.ID)
	}

	data := PersistedSessionData{
		ID:             session.ID,
		ConfigID:       session.ConfigID,
		Seed:           session.Seed,
		Config:         session.Config,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		PuzzleState:    session.Engine.GetState(),
		Runs:           session.Runs,
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	if !ValidSessionID(id) {
		return nil, ErrSessionNotFound
	}
	filePath := fp.getFilePath(id)

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	gridConfig := data.Config
	if gridConfig == nil {
		if fp.configManager == nil || data.ConfigID == "" {
			return nil, fmt.Errorf("session %s has no stored config", id)
		}
		gridConfig, err = fp.configManager.LoadConfig(data.ConfigID)
		if err != nil {
			return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigID, err)
		}
	}

	// Create puzzle engine with configuration
	puzzleEngine, err := engine.NewEngine(gridConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create puzzle engine: %w", err)
	}

	// Restore the current grid and history; a file without state starts over
	if data.PuzzleState != nil {
		if data.PuzzleState.MoveHistory == nil {
			data.PuzzleState.MoveHistory = []engine.MoveHistoryEntry{}
		}
		if data.PuzzleState.CurrentMoves == nil {
			data.PuzzleState.CurrentMoves = []engine.MoveHistoryEntry{}
		}
		if err := puzzleEngine.SetState(data.PuzzleState); err != nil {
			return nil, fmt.Errorf("failed to set puzzle state: %w", err)
		}
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         puzzleEngine,
		Config:         gridConfig,
		ConfigID:       data.ConfigID,
		Seed:           data.Seed,
		Runs:           data.Runs,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		// Remove .json extension to get session ID
		sessionID := strings.TrimSuffix(name, ".json")
		if ValidSessionID(sessionID) {
			sessionIDs = append(sessionIDs, sessionID)
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	if !ValidSessionID(id) {
		return false
	}
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID. Files are named
// by the lower-cased ID to match the manager's case-insensitive lookup.
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, strings.ToLower(id)+".json")
}
