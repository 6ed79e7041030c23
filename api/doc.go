// Package api serves the robot assembly solver over HTTP.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({config_id} or {random, seed, rows, cols})
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/unified - Sessions side by side (sessionIds, configId)
//   - GET /api/sessions/{id} - Session details with its solver runs
//   - DELETE /api/sessions/{id} - Delete a session
//
// Puzzle Operations:
//   - GET /api/sessions/{id}/state - Current puzzle state
//   - POST /api/sessions/{id}/move - Slide one part ({part, direction})
//   - POST /api/sessions/{id}/reset - Restore the initial grid
//   - GET /api/sessions/{id}/history - Paginated move history
//
// Search:
//   - POST /api/sessions/{id}/solve - Run one strategy ({strategy, dedupe, max_expansions, apply})
//   - POST /api/sessions/{id}/compare - Run several strategies concurrently
//   - GET /api/strategies - Supported strategies
//
// Configuration:
//   - GET /api/configs - List grid configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Load one configuration
//
// Operations:
//   - GET /ws?session={id} - WebSocket updates for one session
//   - GET /metrics - Prometheus metrics
//   - GET /health - Liveness check
//
// Errors are returned as {"error": "..."}. Unknown sessions and configs map
// to 404, invalid requests, strategies and grids to 400.
package api
