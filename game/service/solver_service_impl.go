package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/search"
)

const (
	// DefaultStrategy is used when neither the request nor the config names one
	DefaultStrategy = search.AStarH2

	// maxRunsPerSession bounds the solve runs kept on a session; older runs
	// are dropped first.
	maxRunsPerSession = 50

	progressInterval = 1000
)

// ErrInvalidRequest marks requests rejected before any work is done
var ErrInvalidRequest = errors.New("invalid request")

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	notifier Notifier
	mu       sync.RWMutex
}

// NewSolverService creates a new solver service instance. notifier may be nil.
func NewSolverService(sessions SessionManager, configs ConfigManager, notifier Notifier) SolverService {
	return &solverServiceImpl{
		sessions: sessions,
		configs:  configs,
		notifier: notifier,
	}
}

// getConfigID returns the config_id for a session, falling back to a lookup
// by display name for sessions that predate the field
func (s *solverServiceImpl) getConfigID(sess *Session) string {
	if sess.ConfigID != "" {
		return sess.ConfigID
	}
	if sess.Config == nil {
		return "default"
	}
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == sess.Config.Name {
				return cfg.ConfigID
			}
		}
	}
	return sess.Config.Name
}

func (s *solverServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		ConfigID:       s.getConfigID(sess),
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		PuzzleState:    snapshotState(sess.Engine.GetState()),
		GridConfig:     sess.Config,
		Runs:           append([]*SolveRun(nil), sess.Runs...),
	}
	if sess.Config != nil {
		info.ConfigName = sess.Config.Name
	}
	return info
}

// snapshotState copies the top level of state so callers can read it after
// the service lock is released. History slices are append-only and are
// shared.
func snapshotState(state *engine.PuzzleState) *engine.PuzzleState {
	if state == nil {
		return nil
	}
	cp := *state
	return &cp
}

// CreateSession creates a new puzzle session
func (s *solverServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		config   *engine.GridConfig
		configID string
		seed     int64
		err      error
	)
	switch {
	case req.Random:
		config, seed, err = RandomConfig(req)
		if err != nil {
			return nil, err
		}
		configID = RandomConfigID
	case req.ConfigID != "":
		config, err = s.configs.LoadConfig(req.ConfigID)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w. Available configs: %v", err, configIDs)
				}
				return nil, fmt.Errorf("%w. Use /api/configs to list available configurations", err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", req.ConfigID, err)
		}
		configID = req.ConfigID
	default:
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.ConfigID = configID
	if sess.ConfigID == "" {
		sess.ConfigID = s.getConfigID(sess)
	}
	if req.Random {
		sess.Seed = seed
		sessionsCreated.WithLabelValues("random").Inc()
	} else {
		sessionsCreated.WithLabelValues("config").Inc()
	}

	if err := s.sessions.Save(sess.ID); err != nil {
		fmt.Printf("Warning: Failed to save session %s: %v\n", sess.ID, err)
	}

	return s.sessionInfo(sess), nil
}

// RandomConfig generates a grid from req.Seed and wraps it in a config so
// random sessions persist and reset like configured ones. A zero seed is
// replaced by the current time; the seed used is returned.
func RandomConfig(req CreateSessionRequest) (*engine.GridConfig, int64, error) {
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := engine.DefaultGeneratorOptions()
	opts.Rows, opts.Cols = req.Rows, req.Cols

	grid, err := engine.Generate(rand.New(rand.NewSource(seed)), opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate grid: %w", err)
	}
	return &engine.GridConfig{
		Name:        fmt.Sprintf("random-%d", seed),
		Description: fmt.Sprintf("Random %dx%d grid from seed %d", grid.Rows(), grid.Cols(), seed),
		Layout:      grid.Layout(),
	}, seed, nil
}

// GetSession retrieves session information
func (s *solverServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// UpdateLastAccessed writes the session, so take the write lock
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *solverServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *solverServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move pushes one part of the session's current grid
func (s *solverServiceImpl) Move(ctx context.Context, sessionID string, op engine.Operator) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	prevParts := sess.Engine.GetState().PartCount
	tr, err := sess.Engine.Move(op)
	if err != nil {
		return nil, fmt.Errorf("invalid move %s: %w", op, err)
	}
	state := sess.Engine.GetState()
	last := sess.Engine.GetLastMove()

	result := &MoveResult{
		Success:     last.Success,
		PuzzleState: snapshotState(state),
		Message:     state.Message,
		Feedback:    tr.Feedback,
		Steps:       tr.Steps,
		Cost:        tr.Cost,
		Events:      moveEvents(op, tr, last.Success, prevParts, state),
	}

	if last.Success {
		manualMoves.WithLabelValues("accepted").Inc()
	} else {
		manualMoves.WithLabelValues("rejected").Inc()
	}

	// Auto-save session state after move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to save session %s: %v\n", sessionID, err)
	}
	s.notifyState(sess.ID, state)

	return result, nil
}

// moveEvents generates events from a move
func moveEvents(op engine.Operator, tr engine.Transition, success bool, prevParts int, state *engine.PuzzleState) []PuzzleEvent {
	now := time.Now()
	if !success {
		return []PuzzleEvent{{
			Type:      "blocked",
			Message:   state.Message,
			Timestamp: now,
		}}
	}

	events := []PuzzleEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Part %d moved %s %d steps, cost %d", op.Part, op.Direction, tr.Steps, tr.Cost),
		Timestamp: now,
	}}
	if state.PartCount < prevParts {
		events = append(events, PuzzleEvent{
			Type:      "merge",
			Message:   fmt.Sprintf("Parts assembled: %d -> %d", prevParts, state.PartCount),
			Timestamp: now,
		})
	}
	if state.Assembled {
		events = append(events, PuzzleEvent{
			Type:      "assembled",
			Message:   fmt.Sprintf("All robots assembled with total cost %d", state.TotalCost),
			Timestamp: now,
		})
	}
	return events
}

// Reset restores the session's initial grid
func (s *solverServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.PuzzleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	state := sess.Engine.Reset()
	s.sessions.UpdateLastAccessed(sessionID)

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to save session %s after reset: %v\n", sessionID, err)
	}
	s.notifyState(sess.ID, state)

	return snapshotState(state), nil
}

// GetPuzzleState returns the current puzzle state
func (s *solverServiceImpl) GetPuzzleState(ctx context.Context, sessionID string) (*engine.PuzzleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return snapshotState(sess.Engine.GetState()), nil
}

// GetMoveHistory returns paginated move history
func (s *solverServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Set defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Reverse order (most recent first)
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// resolveStrategy picks the request's strategy, then the config default
func resolveStrategy(sess *Session, name string) (search.Strategy, error) {
	if name == "" && sess.Config != nil {
		name = sess.Config.DefaultStrategy
	}
	if name == "" {
		return DefaultStrategy, nil
	}
	return search.ParseStrategy(name)
}

// searchTarget reads what a run needs from the session under the lock.
// Grids are immutable, so the snapshot can be searched without it.
func (s *solverServiceImpl) searchTarget(sessionID string, req SolveRequest) (*engine.Grid, int, *Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	budget := req.MaxExpansions
	if budget == 0 && sess.Config != nil {
		budget = sess.Config.MaxExpansions
	}
	return sess.Engine.GetGrid(), budget, sess, nil
}

// Solve runs one strategy on the session's current grid. Search failures
// such as an exhausted budget are reported on the run, not as an error.
func (s *solverServiceImpl) Solve(ctx context.Context, sessionID string, req SolveRequest) (*SolveResponse, error) {
	if req.MaxExpansions < 0 {
		return nil, fmt.Errorf("%w: max_expansions must not be negative", ErrInvalidRequest)
	}
	grid, budget, sess, err := s.searchTarget(sessionID, req)
	if err != nil {
		return nil, err
	}
	strategy, err := resolveStrategy(sess, req.Strategy)
	if err != nil {
		return nil, err
	}

	run := s.runSearch(ctx, sess.ID, grid, strategy, req.Dedupe, budget)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err = s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if req.Apply && run.Found {
		switch {
		case sess.Engine.GetGrid() != grid:
			run.Error = "puzzle changed during search; plan not applied"
		default:
			if _, err := sess.Engine.ApplyPlan(run.Operators); err != nil {
				run.Error = fmt.Sprintf("failed to apply plan: %v", err)
			} else {
				run.Applied = true
			}
			s.notifyState(sess.ID, sess.Engine.GetState())
		}
	}
	addRuns(sess, run)

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to save session %s after solve: %v\n", sessionID, err)
	}
	if s.notifier != nil {
		s.notifier.SolveComplete(sess.ID, run)
	}

	return &SolveResponse{
		Run:         run,
		PuzzleState: snapshotState(sess.Engine.GetState()),
	}, nil
}

// Compare runs several strategies concurrently on the same grid snapshot.
// An empty list compares every strategy.
func (s *solverServiceImpl) Compare(ctx context.Context, sessionID string, strategies []string, req SolveRequest) (*CompareResult, error) {
	if req.MaxExpansions < 0 {
		return nil, fmt.Errorf("%w: max_expansions must not be negative", ErrInvalidRequest)
	}
	parsed := make([]search.Strategy, 0, len(strategies))
	for _, name := range strategies {
		st, err := search.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, st)
	}
	if len(parsed) == 0 {
		parsed = append(parsed, search.Strategies...)
	}

	grid, budget, target, err := s.searchTarget(sessionID, req)
	if err != nil {
		return nil, err
	}

	// Each run records its own failure; none aborts its siblings
	runs := make([]*SolveRun, len(parsed))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, st := range parsed {
		g.Go(func() error {
			runs[i] = s.runSearch(gCtx, target.ID, grid, st, req.Dedupe, budget)
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	addRuns(sess, runs...)
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to save session %s after compare: %v\n", sessionID, err)
	}
	if s.notifier != nil {
		for _, run := range runs {
			s.notifier.SolveComplete(sess.ID, run)
		}
	}

	return &CompareResult{
		SessionID: sessionID,
		Runs:      runs,
		Best:      bestRun(runs),
	}, nil
}

// bestRun returns the cheapest found run, preferring fewer expansions
func bestRun(runs []*SolveRun) *SolveRun {
	var best *SolveRun
	for _, run := range runs {
		if !run.Found {
			continue
		}
		if best == nil || run.PathCost < best.PathCost ||
			(run.PathCost == best.PathCost && run.Expanded < best.Expanded) {
			best = run
		}
	}
	return best
}

func addRuns(sess *Session, runs ...*SolveRun) {
	sess.Runs = append(sess.Runs, runs...)
	if extra := len(sess.Runs) - maxRunsPerSession; extra > 0 {
		sess.Runs = append([]*SolveRun(nil), sess.Runs[extra:]...)
	}
}

// runSearch executes one strategy and records it as a SolveRun
func (s *solverServiceImpl) runSearch(ctx context.Context, sessionID string, grid *engine.Grid, strategy search.Strategy, dedupe bool, budget int) *SolveRun {
	run := &SolveRun{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Strategy:  strategy,
		Dedupe:    dedupe,
		StartedAt: time.Now(),
	}

	opts := []search.Option{
		search.WithDedupe(dedupe),
		search.WithMaxExpansions(budget),
	}
	if s.notifier != nil {
		opts = append(opts,
			search.WithProgressInterval(progressInterval),
			search.WithProgress(func(p search.Progress) {
				s.notifier.SolveProgress(sessionID, run.ID, strategy, p)
			}),
		)
	}

	res, err := search.Search(ctx, grid, string(strategy), opts...)
	elapsed := time.Since(run.StartedAt)
	run.DurationMS = elapsed.Milliseconds()
	if res != nil {
		run.Found = res.Found
		run.PathCost = res.PathCost
		run.Expanded = res.Expanded
		run.Operators = res.Operators
		run.Path = res.Path
		run.DepthLimit = res.DepthLimit
	}
	if err != nil {
		run.Error = err.Error()
	}

	label := string(strategy)
	solveRuns.WithLabelValues(label, runOutcome(run, err)).Inc()
	solveExpanded.WithLabelValues(label).Observe(float64(run.Expanded))
	solveDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	if run.Found {
		solvePathCost.WithLabelValues(label).Observe(float64(run.PathCost))
	}
	return run
}

func runOutcome(run *SolveRun, err error) string {
	switch {
	case errors.Is(err, search.ErrBudgetExceeded):
		return "budget"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case err != nil:
		return "error"
	case run.Found:
		return "found"
	}
	return "not_found"
}

func (s *solverServiceImpl) notifyState(sessionID string, state *engine.PuzzleState) {
	if s.notifier != nil {
		s.notifier.StateChanged(sessionID, snapshotState(state))
	}
}

// ListConfigs returns available grid configurations
func (s *solverServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific grid configuration
func (s *solverServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GridConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a grid configuration to disk
func (s *solverServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GridConfig) error {
	if err := engine.ValidateGridConfig(config); err != nil {
		return err
	}
	return s.configs.SaveConfig(configName, config)
}
