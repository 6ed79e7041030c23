package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/robot-assembly/api"
	"github.com/wricardo/robot-assembly/game/config"
	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/search"
	"github.com/wricardo/robot-assembly/game/service"
	"github.com/wricardo/robot-assembly/game/session"
)

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"echo": body["value"]})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var result map[string]interface{}
	if err := client.apiCall(context.Background(), "POST", "/api", map[string]string{"value": "x"}, &result); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if result["echo"] != "x" {
		t.Errorf("Expected echo x, got %v", result["echo"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"plain error", "Internal Server Error", "API error: 500"},
		{"json error", `{"error":"session not found"}`, "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
			if err == nil {
				t.Fatal("Expected error for HTTP 500 response")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected %q in error message, got: %v", tt.expected, err)
			}
		})
	}
}

func TestClient_apiCall_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := NewClient(server.URL).apiCall(ctx, "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for a cancelled context")
	}
}

func TestClient_createSession(t *testing.T) {
	var received service.CreateSessionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)

		eng, _ := engine.NewEngine(&engine.GridConfig{Name: "Random", Description: "random", Layout: []string{"R_R"}})
		resp := service.SessionInfo{
			ID:          "ab12",
			ConfigID:    service.RandomConfigID,
			ConfigName:  "Random",
			Seed:        received.Seed,
			PuzzleState: eng.GetState(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleCreateSession(context.Background(), toolRequest("create_session", map[string]interface{}{
		"random": true,
		"seed":   float64(42),
		"rows":   float64(5),
	}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}
	text := resultText(t, result)

	if !received.Random || received.Seed != 42 || received.Rows != 5 || received.Cols != 0 {
		t.Errorf("Unexpected request body: %+v", received)
	}
	for _, want := range []string{"Created session: ab12", "Seed: 42", "0 _ 1"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_MissingSessionID(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"get_session":        client.handleGetSession,
		"puzzle_state":       client.handlePuzzleState,
		"move":               client.handleMove,
		"reset_puzzle":       client.handleReset,
		"move_history":       client.handleMoveHistory,
		"solve":              client.handleSolve,
		"compare_strategies": client.handleCompare,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			result, err := handler(ctx, toolRequest(name, map[string]interface{}{}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Error("Expected an error result")
			}
			if text := resultText(t, result); !strings.Contains(text, "session_id is required") {
				t.Errorf("unexpected message: %s", text)
			}
		})
	}
}

func TestClient_handleMove_MissingPart(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleMove(context.Background(), toolRequest("move", map[string]interface{}{
		"session_id": "ab12",
		"direction":  "E",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "part is required") {
		t.Errorf("Expected part is required error, got %+v", result)
	}
}

func TestFormatPuzzleState(t *testing.T) {
	state := &engine.PuzzleState{
		Grid:              engine.MustParseGrid("R_R", "_X_"),
		PartCount:         2,
		TotalCost:         3,
		CurrentMovesCount: 1,
		Message:           "2 parts to assemble",
	}

	result := formatPuzzleState(state)

	expected := []string{
		"Parts: 2 | Cost: 3 | Moves: 1",
		"2 parts to assemble",
		"0 _ 1",
		"_ X _",
		"0: 1 cell(s) [(0,0)]",
		"1: 1 cell(s) [(0,2)]",
	}
	for _, want := range expected {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in formatted state, got: %s", want, result)
		}
	}
	if strings.Contains(result, "ASSEMBLED") {
		t.Error("Unassembled state must not be marked assembled")
	}
}

func TestFormatPuzzleState_Assembled(t *testing.T) {
	state := &engine.PuzzleState{
		Grid:      engine.MustParseGrid("_RR"),
		PartCount: 1,
		Assembled: true,
		TotalCost: 1,
		Message:   "Assembled! Total cost: 1",
	}

	result := formatPuzzleState(state)
	if !strings.Contains(result, "✅ ASSEMBLED") {
		t.Errorf("Expected assembled marker, got: %s", result)
	}
	if strings.Contains(result, "cell(s)") {
		t.Error("Assembled state should not list parts")
	}

	if formatPuzzleState(nil) != "No puzzle state available" {
		t.Error("Expected placeholder for nil state")
	}
}

func TestFormatMoveResult(t *testing.T) {
	result := &service.MoveResult{
		Success:  true,
		Feedback: engine.RobotCollision,
		Steps:    1,
		Cost:     1,
		Message:  "Assembled! Total cost: 1",
		Events: []service.PuzzleEvent{
			{Type: "move", Message: "moved"},
			{Type: "merge", Message: "parts merged: 2 -> 1"},
		},
		PuzzleState: &engine.PuzzleState{Grid: engine.MustParseGrid("_RR"), PartCount: 1, Assembled: true},
	}

	formatted := formatMoveResult(result)
	for _, want := range []string{"✓ Move successful: 1 step(s), cost 1, stopped by robot", "• parts merged: 2 -> 1", "ASSEMBLED"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Expected %q in formatted result, got: %s", want, formatted)
		}
	}
	if strings.Contains(formatted, "• moved") {
		t.Error("Plain move events should not be listed")
	}
}

func TestFormatMoveResult_Failed(t *testing.T) {
	result := &service.MoveResult{
		Success:     false,
		Feedback:    engine.Damage,
		PuzzleState: &engine.PuzzleState{Grid: engine.MustParseGrid("R_R"), PartCount: 2},
	}

	formatted := formatMoveResult(result)
	if !strings.Contains(formatted, "✗ Move failed: blocked by damage") {
		t.Errorf("Expected failure line, got: %s", formatted)
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Moves: []engine.MoveHistoryEntry{
			{MoveNumber: 2, Operator: engine.Operator{Part: 1, Direction: engine.West}, Feedback: engine.Damage, Success: false, PartsAfter: 2},
			{MoveNumber: 1, Operator: engine.Operator{Part: 0, Direction: engine.East}, Feedback: engine.RobotCollision, Steps: 1, Cost: 1, Success: true, PartsAfter: 1},
		},
		TotalMoves: 2,
		Page:       1,
		TotalPages: 1,
	}

	formatted := formatHistory(history)
	expected := []string{
		"Move History (Page 1/1) - Total (cumulative): 2",
		"2. (1,W) ✗ [damage, steps 0, cost 0, parts 2]",
		"1. (0,E) ✓ [robot, steps 1, cost 1, parts 1]",
	}
	for _, want := range expected {
		if !strings.Contains(formatted, want) {
			t.Errorf("Expected %q in history, got: %s", want, formatted)
		}
	}
}

func TestFormatRun(t *testing.T) {
	tests := []struct {
		name     string
		run      *service.SolveRun
		expected []string
	}{
		{
			name:     "nil run",
			run:      nil,
			expected: []string{"No run recorded"},
		},
		{
			name: "found",
			run: &service.SolveRun{
				Strategy:  search.AStarH2,
				Dedupe:    true,
				Found:     true,
				PathCost:  4,
				Expanded:  12,
				Operators: []engine.Operator{{Part: 0, Direction: engine.East}, {Part: 0, Direction: engine.South}},
			},
			expected: []string{"ASTAR_H2 (dedupe): found a plan with cost 4 in 2 move(s)", "Expanded: 12 nodes", "Plan: (0,E) (0,S)"},
		},
		{
			name:     "budget exhausted",
			run:      &service.SolveRun{Strategy: search.DFS, Expanded: 100, Error: "expansion budget exhausted"},
			expected: []string{"DFS: stopped: expansion budget exhausted", "Expanded: 100 nodes"},
		},
		{
			name:     "no plan",
			run:      &service.SolveRun{Strategy: search.ID, DepthLimit: 7},
			expected: []string{"ID: no plan exists", "Depth limit: 7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted := formatRun(tt.run)
			for _, want := range tt.expected {
				if !strings.Contains(formatted, want) {
					t.Errorf("Expected %q in run, got: %s", want, formatted)
				}
			}
		})
	}
}

func TestFormatCompare(t *testing.T) {
	best := &service.SolveRun{Strategy: search.AStarH2, Found: true, PathCost: 3, Expanded: 5}
	result := &service.CompareResult{
		SessionID: "ab12",
		Runs: []*service.SolveRun{
			{Strategy: search.BFS, Found: true, PathCost: 4, Expanded: 40},
			best,
		},
		Best: best,
	}

	formatted := formatCompare(result)
	for _, want := range []string{"session ab12", "STRATEGY", "BFS", "Best: ASTAR_H2 with cost 3 (5 expanded)"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Expected %q in comparison, got: %s", want, formatted)
		}
	}

	if !strings.Contains(formatCompare(&service.CompareResult{SessionID: "ab12"}), "No strategy found a plan") {
		t.Error("Expected a no-plan line without a best run")
	}
}

func TestClient_handleInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleInstructions(context.Background(), toolRequest("puzzle_instructions", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleInstructions failed: %v", err)
	}
	text := resultText(t, result)

	expectedContent := []string{
		"Robot Assembly - Instructions",
		"OBJECTIVE:",
		"GRID LEGEND:",
		"MOVES:",
		"COST:",
		"SEARCH STRATEGIES:",
		"ASTAR_H1 / ASTAR_H2",
	}
	for _, content := range expectedContent {
		if !strings.Contains(text, content) {
			t.Errorf("Expected '%s' in instructions", content)
		}
	}
}

// newAPIServer runs the real REST API over the bundled configs
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewSolverService(session.NewManager(), configManager, nil)
	server := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Integration(t *testing.T) {
	server := newAPIServer(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	call := func(handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) string {
		t.Helper()
		result, err := handler(ctx, toolRequest(name, args))
		if err != nil {
			t.Fatalf("%s failed: %v", name, err)
		}
		text := resultText(t, result)
		if result.IsError {
			t.Fatalf("%s returned an error: %s", name, text)
		}
		return text
	}

	text := call(client.handleListConfigs, "list_configs", nil)
	if !strings.Contains(text, "• pair (Pair)") {
		t.Errorf("Expected pair config, got: %s", text)
	}

	text = call(client.handleListStrategies, "list_strategies", nil)
	if !strings.Contains(text, "ASTAR_H2") || !strings.Contains(text, "Default: ") {
		t.Errorf("Unexpected strategies: %s", text)
	}

	text = call(client.handleCreateSession, "create_session", map[string]interface{}{"config_id": "pair"})
	if !strings.HasPrefix(text, "Created session: ") {
		t.Fatalf("Unexpected create result: %s", text)
	}
	sessionID := strings.TrimSpace(strings.SplitN(strings.TrimPrefix(text, "Created session: "), "\n", 2)[0])
	if len(sessionID) != 4 {
		t.Fatalf("Expected a 4 character session ID, got %q", sessionID)
	}
	sessionArgs := map[string]interface{}{"session_id": sessionID}

	text = call(client.handlePuzzleState, "puzzle_state", sessionArgs)
	if !strings.Contains(text, "Parts: 2") || !strings.Contains(text, "0 _ 1") {
		t.Errorf("Unexpected state: %s", text)
	}

	text = call(client.handleMove, "move", map[string]interface{}{"session_id": sessionID, "part": float64(0), "direction": "E"})
	if !strings.Contains(text, "✓ Move successful") || !strings.Contains(text, "ASSEMBLED") {
		t.Errorf("Unexpected move result: %s", text)
	}

	text = call(client.handleMoveHistory, "move_history", map[string]interface{}{"session_id": sessionID, "page": float64(1), "limit": float64(5)})
	if !strings.Contains(text, "1. (0,E) ✓") {
		t.Errorf("Unexpected history: %s", text)
	}

	text = call(client.handleReset, "reset_puzzle", sessionArgs)
	if !strings.Contains(text, "Puzzle reset successfully") || !strings.Contains(text, "Parts: 2") {
		t.Errorf("Unexpected reset result: %s", text)
	}

	text = call(client.handleSolve, "solve", map[string]interface{}{"session_id": sessionID, "strategy": "BFS", "apply": true})
	if !strings.Contains(text, "BFS: found a plan with cost 1") || !strings.Contains(text, "Plan applied:") {
		t.Errorf("Unexpected solve result: %s", text)
	}

	call(client.handleReset, "reset_puzzle", sessionArgs)
	text = call(client.handleCompare, "compare_strategies", map[string]interface{}{
		"session_id": sessionID,
		"strategies": []interface{}{"BFS", "ASTAR_H1"},
		"dedupe":     true,
	})
	if !strings.Contains(text, "Best: ") || !strings.Contains(text, "cost 1") {
		t.Errorf("Unexpected comparison: %s", text)
	}

	text = call(client.handleGetSession, "get_session", sessionArgs)
	if !strings.Contains(text, "Solver Runs:") {
		t.Errorf("Expected solver runs in session details, got: %s", text)
	}

	text = call(client.handleListSessions, "list_sessions", nil)
	if !strings.Contains(text, "Active Sessions (1)") || !strings.Contains(text, sessionID) {
		t.Errorf("Unexpected session list: %s", text)
	}

	result, err := client.handleGetSession(ctx, toolRequest("get_session", map[string]interface{}{"session_id": "zzzz"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected an error result for an unknown session")
	}

	result, err = client.handleSolve(ctx, toolRequest("solve", map[string]interface{}{"session_id": sessionID, "strategy": "UCS"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "UCS") {
		t.Errorf("Expected an unsupported strategy error, got %+v", result)
	}
}
