package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/robot-assembly/game/engine"
	"github.com/wricardo/robot-assembly/game/search"
	"github.com/wricardo/robot-assembly/game/service"
)

// solveTimeout bounds a single tool call; comparing every strategy on a large
// grid can take a while.
const solveTimeout = 2 * time.Minute

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: solveTimeout,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Robot Assembly Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Robot Assembly Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

OBJECTIVE:
Slide robot parts (R) across the grid until every robot cell forms one connected part.

AVAILABLE TOOLS:
- create_session: Create a session from a config or a random seed
- list_sessions / get_session: Inspect sessions and their solver runs
- puzzle_state: Current grid with part indices
- move: Slide one part (part index + direction N/E/S/W)
- reset_puzzle: Restore the initial grid
- move_history: View past moves
- solve: Run one search strategy, optionally applying the plan
- compare_strategies: Run several strategies side by side
- list_configs / list_strategies: Available grids and strategies
- puzzle_instructions: Rules and cost model

NOTE: part indices change after parts merge. Re-read the state before each manual move.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func solveProperties() map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionIDProperty(),
		"dedupe": map[string]interface{}{
			"type":        "boolean",
			"description": "Skip grids already reached at no higher cost",
		},
		"max_expansions": map[string]interface{}{
			"type":        "integer",
			"description": "Stop after this many expanded nodes (0 uses the config default)",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	strategyNames := make([]string, len(search.Strategies))
	for i, st := range search.Strategies {
		strategyNames[i] = string(st)
	}

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session from a config, or a random grid when random is set",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use (optional, see list_configs)",
				},
				"random": map[string]interface{}{
					"type":        "boolean",
					"description": "Generate a random grid instead of loading a config",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for the random grid (optional)",
				},
				"rows": map[string]interface{}{
					"type":        "integer",
					"description": "Rows of the random grid (optional)",
				},
				"cols": map[string]interface{}{
					"type":        "integer",
					"description": "Columns of the random grid (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session, including its solver runs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Puzzle operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "puzzle_state",
		Description: "Get the current grid, part count and accumulated cost",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handlePuzzleState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide one part until it hits a wall, an obstacle or another part",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"part": map[string]interface{}{
					"type":        "integer",
					"description": "Index of the part to move, as shown in puzzle_state",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"N", "E", "S", "W"},
					"description": "Direction to slide",
				},
			},
			Required: []string{"session_id", "part", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_puzzle",
		Description: "Reset the puzzle to its initial grid",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionIDProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	// Search
	solveProps := solveProperties()
	solveProps["strategy"] = map[string]interface{}{
		"type":        "string",
		"enum":        strategyNames,
		"description": "Search strategy (optional, defaults to the config's strategy)",
	}
	solveProps["apply"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Apply the found plan to the session",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Search for a plan that assembles every part",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: solveProps,
			Required:   []string{"session_id"},
		},
	}, c.handleSolve)

	compareProps := solveProperties()
	compareProps["strategies"] = map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type": "string",
			"enum": strategyNames,
		},
		"description": "Strategies to compare (optional, defaults to all)",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "compare_strategies",
		Description: "Run several strategies concurrently on the current grid and compare cost and expanded nodes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: compareProps,
			Required:   []string{"session_id"},
		},
	}, c.handleCompare)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_strategies",
		Description: "List the supported search strategies",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListStrategies)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available grid configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "puzzle_instructions",
		Description: "Get the puzzle rules, cost model and strategy overview",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// intArg reads a JSON number argument; ok is false when it is missing
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func solveRequestArgs(args map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{}
	if dedupe, ok := args["dedupe"].(bool); ok {
		body["dedupe"] = dedupe
	}
	if budget, ok := intArg(args, "max_expansions"); ok {
		body["max_expansions"] = budget
	}
	return body
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]interface{}{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if random, _ := args["random"].(bool); random {
		body["random"] = true
	}
	for _, key := range []string{"seed", "rows", "cols"} {
		if v, ok := intArg(args, key); ok {
			body[key] = v
		}
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created session: %s\n%s", session.ID, formatSessionInfo(&session))), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		parts := 0
		if s.PuzzleState != nil {
			parts = s.PuzzleState.PartCount
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Parts: %d, Runs: %d, Created: %s)\n",
			s.ID, s.ConfigID, parts, len(s.Runs), s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	if len(session.Runs) > 0 {
		result += "\n\nSolver Runs:\n" + formatRuns(session.Runs)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePuzzleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.PuzzleState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPuzzleState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	part, ok := intArg(args, "part")
	if !ok {
		return mcp.NewToolResultError("part is required"), nil
	}
	direction, _ := args["direction"].(string)

	body := map[string]interface{}{
		"part":      part,
		"direction": direction,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string              `json:"message"`
		State   *engine.PuzzleState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatPuzzleState(response.State))), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/solve")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := solveRequestArgs(args)
	if strategy, _ := args["strategy"].(string); strategy != "" {
		body["strategy"] = strategy
	}
	if apply, _ := args["apply"].(bool); apply {
		body["apply"] = true
	}

	var resp service.SolveResponse
	if err := c.apiCall(ctx, "POST", path, body, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRun(resp.Run)
	if resp.Run != nil && resp.Run.Applied {
		result += "\n\nPlan applied:\n" + formatPuzzleState(resp.PuzzleState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/compare")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := solveRequestArgs(args)
	if raw, ok := args["strategies"].([]interface{}); ok {
		strategies := make([]string, 0, len(raw))
		for _, s := range raw {
			if name, ok := s.(string); ok {
				strategies = append(strategies, name)
			}
		}
		body["strategies"] = strategies
	}

	var result service.CompareResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCompare(&result)), nil
}

func (c *Client) handleListStrategies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Strategies []map[string]string `json:"strategies"`
		Default    string              `json:"default"`
	}
	if err := c.apiCall(ctx, "GET", "/api/strategies", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Search Strategies:\n\n")
	for _, st := range response.Strategies {
		fmt.Fprintf(&b, "• %s: %s\n", st["name"], st["description"])
	}
	fmt.Fprintf(&b, "\nDefault: %s\n", response.Default)
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Grid: %dx%d, Parts: %d\n\n",
			config.ConfigID, config.Name, config.Description, config.Rows, config.Cols, config.Parts)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Robot Assembly - Instructions

OBJECTIVE:
Assemble every robot cell into a single connected part.

GRID LEGEND:
• R - robot cell (in puzzle_state shown as its part index 0, 1, 2, ...)
• X - obstacle
• _ - empty cell

MOVES:
• A move picks one part and a direction (N, E, S, W)
• The part slides as a rigid body until any of its cells would hit a wall,
  an obstacle or another part
• Parts that end up side by side merge into one part and move together
  from then on
• A part that cannot take a single step does not move; the move is rejected

COST:
• Each move costs steps x cells: sliding a 3-cell part 2 steps costs 6
• Part indices are renumbered after every merge, so re-read the state

SEARCH STRATEGIES:
• BFS - fewest moves
• DFS - first plan found, no optimality
• ID - iterative deepening on path cost
• GREEDY_H1 / GREEDY_H2 - fast, guided by a heuristic, not optimal
• ASTAR_H1 / ASTAR_H2 - cost optimal; H2 (pair gap) expands far fewer nodes

TIPS:
• Use compare_strategies to see how the strategies trade cost for expansions
• Set dedupe to prune grids already reached at no higher cost
• Set max_expansions to bound a search on large grids
• solve with apply replays the plan so you can inspect the result`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	config := session.ConfigID
	if session.ConfigName != "" && session.ConfigName != config {
		config = fmt.Sprintf("%s (%s)", session.ConfigID, session.ConfigName)
	}
	header := fmt.Sprintf("Session: %s\nConfig: %s\n", session.ID, config)
	if session.Seed != 0 {
		header += fmt.Sprintf("Seed: %d\n", session.Seed)
	}
	header += fmt.Sprintf("Created: %s\n\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
	return header + formatPuzzleState(session.PuzzleState)
}

func formatPuzzleState(state *engine.PuzzleState) string {
	if state == nil || state.Grid == nil {
		return "No puzzle state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parts: %d | Cost: %d | Moves: %d\n", state.PartCount, state.TotalCost, state.CurrentMovesCount)
	if state.Assembled {
		b.WriteString("✅ ASSEMBLED\n")
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "%s\n", state.Message)
	}
	b.WriteString("\n")
	b.WriteString(state.Grid.String())
	b.WriteString("\n")

	if !state.Assembled {
		b.WriteString("\nParts:\n")
		for i, p := range state.Grid.Parts() {
			fmt.Fprintf(&b, "  %d: %d cell(s) %s\n", i, p.Size(), p)
		}
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ Move successful: %d step(s), cost %d, stopped by %s\n", result.Steps, result.Cost, result.Feedback)
	} else {
		fmt.Fprintf(&b, "✗ Move failed: blocked by %s\n", result.Feedback)
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	for _, ev := range result.Events {
		if ev.Type == "merge" || ev.Type == "assembled" {
			fmt.Fprintf(&b, "• %s\n", ev.Message)
		}
	}
	b.WriteString("\n")
	b.WriteString(formatPuzzleState(result.PuzzleState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) - Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		fmt.Fprintf(&b, "%d. %s %s [%s, steps %d, cost %d, parts %d]\n",
			move.MoveNumber, move.Operator, status, move.Feedback, move.Steps, move.Cost, move.PartsAfter)
	}

	return b.String()
}

func formatRun(run *service.SolveRun) string {
	if run == nil {
		return "No run recorded"
	}

	var b strings.Builder
	dedupe := ""
	if run.Dedupe {
		dedupe = " (dedupe)"
	}
	fmt.Fprintf(&b, "%s%s: ", run.Strategy, dedupe)
	switch {
	case run.Found:
		fmt.Fprintf(&b, "found a plan with cost %d in %d move(s)\n", run.PathCost, len(run.Operators))
	case run.Error != "":
		fmt.Fprintf(&b, "stopped: %s\n", run.Error)
	default:
		b.WriteString("no plan exists\n")
	}
	fmt.Fprintf(&b, "Expanded: %d nodes in %dms\n", run.Expanded, run.DurationMS)
	if run.DepthLimit > 0 {
		fmt.Fprintf(&b, "Depth limit: %d\n", run.DepthLimit)
	}
	if len(run.Operators) > 0 {
		ops := make([]string, len(run.Operators))
		for i, op := range run.Operators {
			ops[i] = op.String()
		}
		fmt.Fprintf(&b, "Plan: %s\n", strings.Join(ops, " "))
	}
	return b.String()
}

func formatRuns(runs []*service.SolveRun) string {
	var b strings.Builder
	for _, run := range runs {
		status := "not found"
		if run.Found {
			status = fmt.Sprintf("cost %d", run.PathCost)
		} else if run.Error != "" {
			status = run.Error
		}
		fmt.Fprintf(&b, "- %s %s: %s, %d expanded\n", run.StartedAt.Format("15:04:05"), run.Strategy, status, run.Expanded)
	}
	return b.String()
}

func formatCompare(result *service.CompareResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Strategy comparison for session %s\n\n", result.SessionID)
	fmt.Fprintf(&b, "%-10s %-6s %8s %10s %8s\n", "STRATEGY", "FOUND", "COST", "EXPANDED", "MS")
	for _, run := range result.Runs {
		cost := "-"
		if run.Found {
			cost = fmt.Sprint(run.PathCost)
		}
		fmt.Fprintf(&b, "%-10s %-6v %8s %10d %8d\n", run.Strategy, run.Found, cost, run.Expanded, run.DurationMS)
	}
	if result.Best != nil {
		fmt.Fprintf(&b, "\nBest: %s with cost %d (%d expanded)\n", result.Best.Strategy, result.Best.PathCost, result.Best.Expanded)
	} else {
		b.WriteString("\nNo strategy found a plan\n")
	}
	return b.String()
}
