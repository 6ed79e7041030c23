// Package mcp exposes the robot assembly REST API as Model Context Protocol
// tools.
//
// The client is a thin proxy: every tool call becomes one HTTP request
// against a running API server, and the JSON response is rendered as text
// for the agent. No puzzle state is kept here.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - puzzle_state, move, reset_puzzle, move_history
//   - solve, compare_strategies, list_strategies
//   - list_configs, puzzle_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// The same MCP server also backs the /mcp HTTP endpoint, where request
// bodies are passed to HandleMessage.
package mcp
