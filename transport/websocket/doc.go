// Package websocket pushes puzzle session events to browser clients.
//
// The Hub is the service.Notifier used in server mode. Clients connect with
// a session ID (?sessionId=a1b2) and receive JSON messages for that session
// only:
//   - state_update: the full PuzzleState after a move, reset or applied plan
//   - solve_progress: periodic counters from a running search
//   - solve_complete: the recorded SolveRun
//
// Architecture:
//
// A single Run goroutine owns the client registry. Notifier calls enqueue
// onto a buffered channel and never block the caller; when the queue is full
// the message is dropped and a warning is logged. A client whose send buffer
// is full is disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	svc := service.NewSolverService(sessions, configs, hub)
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("sessionId"))
//	})
package websocket
