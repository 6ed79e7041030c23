// Package service provides the business logic layer for the robot assembly
// puzzle.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Random grid sessions from a seed
//   - Manual moves with paginated move history
//   - Solver runs and strategy comparison
//
// Core Interfaces:
//
// SolverService is the main service interface providing high-level operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages grid configuration loading and validation.
// Notifier receives state and solver events, usually for a websocket hub.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine and search packages. Each session owns a PuzzleEngine. Solver
// runs search an immutable grid snapshot outside the service lock, so a long
// search does not block moves on other sessions; Compare runs several
// strategies at once on the same snapshot.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	svc := service.NewSolverService(sessionMgr, configMgr, hub)
//
//	info, err := svc.CreateSession(ctx, service.CreateSessionRequest{ConfigID: "example1"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := svc.Solve(ctx, info.ID, service.SolveRequest{Strategy: "ASTAR_H2", Apply: true})
//
// Every run is recorded on its session with a UUID, and counted in the
// robot_assembly_solver_* Prometheus metrics.
package service
