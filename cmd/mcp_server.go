package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/desktop-raise/internal/model"
	"github.com/mj1618/desktop-raise/internal/platform"
	"github.com/mj1618/desktop-raise/internal/version"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with the window manager and cache.
type mcpServer struct {
	wm         platform.WindowManager
	cache      *mcpWindowCache
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// newMCPServer creates and configures an MCP server with all desktop-raise tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	wm, err := windowManager()
	if err != nil {
		return nil, err
	}
	return newMCPServerWith(wm, cfg), nil
}

func newMCPServerWith(wm platform.WindowManager, cfg MCPConfig) *mcpServer {
	s := &mcpServer{
		wm:    wm,
		cache: newMCPWindowCache(cfg.CacheTTL),
	}
	s.mcp = mcpserver.NewMCPServer(
		"desktop-raise",
		version.Version,
	)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// list
	s.mcp.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("List windows managed by the window manager"),
			mcp.WithString("title", mcp.Description("Filter by title substring (case-insensitive)")),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
		),
		s.handleList,
	)

	// raise
	s.mcp.AddTool(
		mcp.NewTool("raise",
			mcp.WithDescription("Show a window and bring it to the foreground. Returns once the window is shown; focusing continues in the background."),
			mcp.WithString("title", mcp.Description("Exact window title"), mcp.Required()),
			mcp.WithString("session_type", mcp.Description("Override XDG_SESSION_TYPE ('wayland' toggles visibility, anything else uses wmctrl)")),
			mcp.WithBoolean("wait", mcp.Description("Wait for the background focus and menu tasks before returning (default: false)")),
		),
		s.handleRaise,
	)

	// focus
	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Focus a window by exact title with wmctrl, retrying until it succeeds or retries run out"),
			mcp.WithString("title", mcp.Description("Exact window title"), mcp.Required()),
			mcp.WithNumber("retries", mcp.Description("Retries after the first attempt")),
		),
		s.handleFocus,
	)

	// session
	s.mcp.AddTool(
		mcp.NewTool("session",
			mcp.WithDescription("Report the session type and the raise strategy it selects"),
		),
		s.handleSession,
	)
}

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *mcpServer) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	title := stringParam(params, "title", "")
	pid := intParam(params, "pid", 0)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	list := func(ctx context.Context) ([]model.Window, error) {
		return s.cache.listWindows(ctx, s.wm)
	}
	result, err := executeList(ctx, list, title, pid)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleRaise(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	title := stringParam(params, "title", "")

	sessionType := platform.EnvSessionType
	if _, ok := params["session_type"]; ok {
		st := stringParam(params, "session_type", "")
		sessionType = func() string { return st }
	}
	// The server outlives the call, so by default background tasks are left
	// running.
	wait := boolParam(params, "wait", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	result, err := executeRaise(s.wm, title, sessionType, wait)
	s.cache.invalidate()
	if err != nil {
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	title := stringParam(params, "title", "")
	retries := intParam(params, "retries", -1)

	// The retry loop can run for over a second; lock per attempt so list and
	// raise calls are not blocked meanwhile.
	result, err := executeFocus(ctx, lockedFocuser{mu: &s.providerMu, f: s.wm}, title, retries, 0)
	if err != nil {
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *mcpServer) handleSession(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(resultToText(executeSession(platform.EnvSessionType()))), nil
}

// lockedFocuser serializes each focus attempt with other window-manager calls.
type lockedFocuser struct {
	mu *sync.Mutex
	f  platform.Focuser
}

func (l lockedFocuser) FocusByTitle(ctx context.Context, title string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.FocusByTitle(ctx, title)
}
