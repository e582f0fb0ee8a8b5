package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/postpad/postpad/internal/feed"
	"github.com/postpad/postpad/internal/workflow"
)

// mcpServer wraps the MCP server with the shared application wiring. The
// desktop is a single exclusive resource, so providerMu serializes every
// tool call that touches input, clipboard, or screen.
type mcpServer struct {
	app        *app
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all postpad tools.
func newMCPServer(cmd *cobra.Command, cfg MCPConfig) (*mcpServer, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{app: a}
	s.mcp = mcpserver.NewMCPServer(
		"postpad",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
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
	// windows
	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List windows that belong to the target editor"),
			mcp.WithBoolean("visible", mcp.Description("Only list visible windows")),
		),
		s.handleWindows,
	)

	// find_icon
	s.mcp.AddTool(
		mcp.NewTool("find_icon",
			mcp.WithDescription("Capture the screen and locate the editor icon by template matching. Returns the best match location and confidence."),
			mcp.WithNumber("threshold", mcp.Description("Override the configured confidence threshold")),
		),
		s.handleFindIcon,
	)

	// launch
	s.mcp.AddTool(
		mcp.NewTool("launch",
			mcp.WithDescription("Launch the editor by double-clicking its desktop icon and waiting for a window to appear"),
		),
		s.handleLaunch,
	)

	// close
	s.mcp.AddTool(
		mcp.NewTool("close",
			mcp.WithDescription("Close all editor windows, discarding unsaved changes"),
		),
		s.handleClose,
	)

	// write_post
	s.mcp.AddTool(
		mcp.NewTool("write_post",
			mcp.WithDescription("Type a single post into the running editor and save it to the output directory"),
			mcp.WithNumber("id", mcp.Description("Post ID, used for the output file name"), mcp.Required()),
			mcp.WithString("title", mcp.Description("Post title")),
			mcp.WithString("body", mcp.Description("Post body")),
		),
		s.handleWritePost,
	)

	// fetch
	s.mcp.AddTool(
		mcp.NewTool("fetch",
			mcp.WithDescription("Fetch posts from the feed API"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of posts to return (0 = all)")),
		),
		s.handleFetch,
	)

	// run
	s.mcp.AddTool(
		mcp.NewTool("run",
			mcp.WithDescription("Run the full transcription workflow: fetch posts, then launch the editor, type, and save each one"),
			mcp.WithNumber("max-posts", mcp.Description("Override the configured post cap")),
		),
		s.handleRun,
	)
}

// toolResult serializes a result struct to YAML for the MCP response.
func toolResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	visible := BoolParam(params, "visible", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	wins := s.app.tracker.List()
	if visible {
		wins = s.app.tracker.Visible()
	}
	return toolResult(WindowsResult{OK: true, Count: len(wins), Windows: wins})
}

func (s *mcpServer) handleFindIcon(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	threshold := FloatParam(params, "threshold", s.app.cfg.Match.Threshold)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	best, err := s.app.matcher.BestMatch()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := FindResult{Action: "find", Confidence: best.Score, Threshold: threshold}
	if best.Template != "" && best.Score >= threshold {
		center := best.Center()
		res.OK = true
		res.X = center.X
		res.Y = center.Y
		res.Template = best.Template
	}
	return toolResult(res)
}

func (s *mcpServer) handleLaunch(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	ok := s.app.controller.EnsureOpen()
	return toolResult(StateResult{OK: ok, Action: "launch"})
}

func (s *mcpServer) handleClose(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	ok := s.app.controller.EnsureClosed()
	return toolResult(StateResult{OK: ok, Action: "close"})
}

func (s *mcpServer) handleWritePost(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	post := feed.Post{
		ID:    IntParam(params, "id", 0),
		Title: StringParam(params, "title", ""),
		Body:  StringParam(params, "body", ""),
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if err := os.MkdirAll(s.app.cfg.Output.Dir, 0o755); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dest := filepath.Join(s.app.cfg.Output.Dir, workflow.FileName(post.ID))
	if err := s.app.writer.Write(workflow.FormatPost(post), dest); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolResult(WriteResult{OK: true, Action: "write", Path: dest})
}

func (s *mcpServer) handleFetch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	limit := IntParam(params, "limit", 0)

	client := feed.NewClient(s.app.cfg.API.URL, s.app.cfg.API.Timeout)
	posts, err := client.Fetch(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return toolResult(FetchResult{OK: true, Count: len(posts), Posts: posts})
}

func (s *mcpServer) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	maxPosts := IntParam(params, "max-posts", s.app.cfg.Timing.MaxPosts)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if len(s.app.templates) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no icon templates found in %s", s.app.cfg.Templates.Dir)), nil
	}

	client := feed.NewClient(s.app.cfg.API.URL, s.app.cfg.API.Timeout)
	driver := workflow.NewDriver(client, s.app.controller, s.app.writer, s.app.cfg.Output.Dir, maxPosts, s.app.logger)
	summary := driver.Run(ctx)

	return toolResult(RunResult{
		OK:        summary.Succeeded > 0 || summary.Fetched == 0,
		Action:    "run",
		Fetched:   summary.Fetched,
		Succeeded: summary.Succeeded,
		Skipped:   summary.Skipped,
	})
}
