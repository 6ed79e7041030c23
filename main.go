// Command robot-assembly serves the robot assembly solver.
//
// Modes:
//   - server (default): REST API for sessions and solver runs, solve progress
//     over WebSocket, Prometheus metrics, and MCP over HTTP at /mcp
//   - stdio-mcp: MCP over stdio, proxying the API at -api-url when it answers
//     and an internal loopback API otherwise
//
// Grid configs are read from -config-dir and sessions are persisted as JSON
// files under -sessions-dir. An ngrok tunnel can publish the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/robot-assembly/api"
	"github.com/wricardo/robot-assembly/game/config"
	"github.com/wricardo/robot-assembly/game/service"
	"github.com/wricardo/robot-assembly/game/session"
	"github.com/wricardo/robot-assembly/transport/mcp"
	"github.com/wricardo/robot-assembly/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

const (
	Version = "1.0.0"
	AppName = "Robot Assembly Solver"
)

const (
	sessionMaxIdle     = 24 * time.Hour
	cleanupInterval    = time.Hour
	syncInterval       = 5 * time.Second
	shutdownTimeout    = 10 * time.Second
	healthCheckTimeout = 2 * time.Second
	solveWriteWindow   = 3 * time.Minute
)

var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	configDir    = flag.String("config-dir", envDefault("CONFIG_DIR", "configs"), "Directory of grid configs (*.json, *.yaml)")
	sessionsDir  = flag.String("sessions-dir", envDefault("SESSIONS_DIR", "sessions"), "Directory where sessions are persisted")
	apiURL       = flag.String("api-url", envDefault("SOLVER_API_URL", "http://localhost:8080"), "Solver API reused by stdio-mcp when reachable")
	debug        = flag.Bool("debug", false, "Log file and line numbers")
	version      = flag.Bool("version", false, "Print the version and exit")
	ngrokEnabled = flag.Bool("ngrok", false, "Publish the server through an ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "ngrok auth token (defaults to NGROK_AUTHTOKEN)")
	ngrokDomain  = flag.String("ngrok-domain", "", "ngrok domain (defaults to NGROK_DOMAIN)")
)

// envDefault returns the value of the environment variable key, or fallback
// when it is unset.
func envDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(out, "Usage: %s [OPTIONS] [server|stdio-mcp]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(out, "\nTo solve a single grid without a server, use cmd/solve:\n")
		fmt.Fprintf(out, "  solve run -c example1 -s ASTAR_H2 --dedupe\n")
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		return
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	mode := "server"
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// solver runs stream progress through the hub, so it starts first
	hub := websocket.NewHub()
	go hub.Run(ctx)

	solverService, err := initializeServices(ctx, hub)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	log.Printf("%s v%s (%s): configs from %s, sessions in %s", AppName, Version, mode, *configDir, *sessionsDir)

	switch mode {
	case "server", "http":
		runHTTPServer(ctx, solverService, hub)
	case "stdio-mcp", "mcp":
		runStdioMCP(solverService, hub)
	default:
		log.Fatalf("Unknown mode %q: use server or stdio-mcp", mode)
	}
}

// newHandler mounts the REST API and the MCP endpoint on one mux. The MCP
// tools call back into the API at baseURL.
func newHandler(solverService service.SolverService, hub *websocket.Hub, baseURL string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", api.NewServer(solverService, hub))
	mux.Handle("/mcp", mcpHandler(mcp.NewClient(baseURL).GetMCPServer()))
	return mux
}

// mcpHandler answers one JSON-RPC message per POST.
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		defer r.Body.Close()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}

		data, err := json.Marshal(mcpServer.HandleMessage(r.Context(), body))
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}

// logEndpoints lists where clients reach the solver under base.
func logEndpoints(base string) {
	ws := "ws" + strings.TrimPrefix(base, "http")
	log.Printf("  sessions: %s/api/sessions", base)
	log.Printf("  solve:    %s/api/sessions/<id>/solve", base)
	log.Printf("  progress: %s/ws?sessionId=<id>", ws)
	log.Printf("  metrics:  %s/metrics", base)
	log.Printf("  mcp:      %s/mcp", base)
}

// runHTTPServer serves until ctx is canceled, then drains in-flight solves
// for up to shutdownTimeout.
func runHTTPServer(ctx context.Context, solverService service.SolverService, hub *websocket.Hub) {
	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	baseURL := "http://" + addr
	handler := newHandler(solverService, hub, baseURL)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: solveWriteWindow,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Solver listening on %s", addr)
		logEndpoints(baseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if tunnel, ok := resolveTunnel(); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveTunnel(ctx, tunnel, handler)
		}()
	}

	<-ctx.Done()
	log.Println("Shutting down, waiting for running solves...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

type tunnelSettings struct {
	authToken string
	domain    string
}

// resolveTunnel merges the ngrok flags with the NGROK_* environment. ok is
// false when no tunnel was requested or no auth token is available.
func resolveTunnel() (settings tunnelSettings, ok bool) {
	enabled := *ngrokEnabled
	if env := os.Getenv("NGROK_ENABLED"); env == "true" || env == "1" {
		enabled = true
	}
	if !enabled {
		return settings, false
	}

	settings = tunnelSettings{
		authToken: firstNonEmpty(*ngrokAuth, os.Getenv("NGROK_AUTHTOKEN"), os.Getenv("NGROK_AUTH_TOKEN")),
		domain:    firstNonEmpty(*ngrokDomain, os.Getenv("NGROK_DOMAIN")),
	}
	if settings.authToken == "" {
		log.Println("Warning: ngrok requested without an auth token (set -ngrok-auth or NGROK_AUTHTOKEN)")
		return settings, false
	}
	return settings, true
}

// serveTunnel publishes handler through ngrok until ctx is canceled.
func serveTunnel(ctx context.Context, settings tunnelSettings, handler http.Handler) {
	var endpoint ngrokConfig.Tunnel
	if settings.domain != "" {
		endpoint = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(settings.domain))
	} else {
		endpoint = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, endpoint, ngrok.WithAuthtoken(settings.authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	log.Printf("Public tunnel at %s", tun.URL())
	logEndpoints(tun.URL())

	if err := http.Serve(tun, handler); err != nil && ctx.Err() == nil {
		log.Printf("Tunnel server error: %v", err)
	}
}

// initializeServices wires session/config managers and the solver service.
// It also starts background routines, bound to ctx, that prune stale sessions.
func initializeServices(ctx context.Context, notifier service.Notifier) (service.SolverService, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(*sessionsDir, configManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	go sessionCleanupRoutine(ctx, sessionManager)
	go filesystemSyncRoutine(ctx, sessionManager, persistence)

	return service.NewSolverService(sessionManager, configManager, notifier), nil
}

// sessionCleanupRoutine evicts sessions idle for longer than sessionMaxIdle.
// Their files stay on disk.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxIdle); removed > 0 {
				log.Printf("Evicted %d idle sessions", removed)
			}
		}
	}
}

// filesystemSyncRoutine drops sessions whose files were deleted under
// -sessions-dir. It returns at once without persistence.
func filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence) {
	if persistence == nil {
		return
	}

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			syncWithFilesystem(manager, persistence)
		}
	}
}

// syncWithFilesystem drops in-memory sessions whose files were deleted and
// reports how many were pruned.
func syncWithFilesystem(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, sess := range manager.List() {
		if persistence.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			log.Printf("Session %s file removed, dropped from memory", sess.ID)
		}
	}
	return pruned
}

// runStdioMCP blocks serving MCP over stdio.
func runStdioMCP(solverService service.SolverService, hub *websocket.Hub) {
	baseURL := *apiURL
	if apiAvailable(baseURL) {
		log.Printf("MCP stdio proxying the solver API at %s", baseURL)
	} else {
		internalURL, stop, err := startInternalAPI(solverService, hub)
		if err != nil {
			log.Fatalf("Failed to start internal API: %v", err)
		}
		defer stop()
		baseURL = internalURL
		log.Printf("No solver API at %s, MCP stdio proxying an internal one at %s", *apiURL, baseURL)
	}

	if err := server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}

// apiAvailable reports whether a solver API answers /health at baseURL.
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: healthCheckTimeout}
	resp, err := client.Get(strings.TrimSuffix(baseURL, "/") + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalAPI serves the REST API on a free loopback port. The listener
// is bound before it returns, so the URL is usable at once.
func startInternalAPI(solverService service.SolverService, hub *websocket.Hub) (baseURL string, stop func(), err error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on loopback: %w", err)
	}

	srv := &http.Server{Handler: api.NewServer(solverService, hub)}
	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Internal API error: %v", err)
		}
	}()

	return "http://" + listener.Addr().String(), func() { srv.Close() }, nil
}
