package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/version"
)

// mcpServer wraps the MCP server with the session every tool shares.
type mcpServer struct {
	session    *session
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// newMCPServer creates and configures an MCP server with all computer-use tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	sess.screens = newScreenCache(cfg.CacheTTL)

	s := &mcpServer{session: sess}
	s.mcp = mcpserver.NewMCPServer(
		"computer-use",
		version.Version,
		mcpserver.WithToolCapabilities(false),
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
		logger.Info("serving MCP over streamable HTTP", "port", cfg.Port)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the screen as PNG. Returns the image unless file is given."),
			mcp.WithString("file", mcp.Description("Write the PNG to this path instead of returning it")),
			mcp.WithString("display", mcp.Description("Capture only this display (1-based index)")),
			mcp.WithNumber("scale", mcp.Description("Scale factor in (0, 1] (default 1)")),
		),
		s.handleScreenshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Click at absolute screen coordinates"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle, double")),
		),
		s.stepHandler("click"),
	)

	s.mcp.AddTool(
		mcp.NewTool("move",
			mcp.WithDescription("Move the cursor to absolute screen coordinates"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
		),
		s.stepHandler("move"),
	)

	s.mcp.AddTool(
		mcp.NewTool("drag",
			mcp.WithDescription("Press at one point, move to another and release"),
			mcp.WithNumber("fromX", mcp.Description("Start X coordinate"), mcp.Required()),
			mcp.WithNumber("fromY", mcp.Description("Start Y coordinate"), mcp.Required()),
			mcp.WithNumber("toX", mcp.Description("End X coordinate"), mcp.Required()),
			mcp.WithNumber("toY", mcp.Description("End Y coordinate"), mcp.Required()),
		),
		s.stepHandler("drag"),
	)

	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text at the current keyboard focus"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
		),
		s.stepHandler("type"),
	)

	s.mcp.AddTool(
		mcp.NewTool("key",
			mcp.WithDescription("Press a key combination"),
			mcp.WithString("key", mcp.Description("Key combo (e.g. 'cmd+c', 'Return', 'ctrl+shift+a')"), mcp.Required()),
		),
		s.stepHandler("key"),
	)

	s.mcp.AddTool(
		mcp.NewTool("cursor",
			mcp.WithDescription("Get the current cursor position"),
		),
		s.stepHandler("cursor"),
	)

	s.mcp.AddTool(
		mcp.NewTool("scroll",
			mcp.WithDescription("Scroll the view under the cursor"),
			mcp.WithString("direction", mcp.Description("up, down, left or right"), mcp.Required()),
			mcp.WithNumber("amount", mcp.Description("Lines to scroll (default 3, max 100)")),
		),
		s.stepHandler("scroll"),
	)

	s.mcp.AddTool(
		mcp.NewTool("screen-size",
			mcp.WithDescription("Get the main display size and every attached display"),
			mcp.WithBoolean("refresh", mcp.Description("Bypass the geometry cache")),
		),
		s.stepHandler("screen-size"),
	)

	s.mcp.AddTool(
		mcp.NewTool("do",
			mcp.WithDescription("Execute multiple actions in a batch. Each step is an object with a single key naming the action. Supports: click, move, drag, type, key, cursor, scroll, screen-size, screenshot, sleep"),
			mcp.WithArray("steps", mcp.Description("Array of step objects, e.g. [{\"click\": {\"x\": 10, \"y\": 20}}]"), mcp.Required()),
			mcp.WithBoolean("stop-on-error", mcp.Description("Stop on first error (default: true)")),
		),
		s.handleDo,
	)
}

// envelopeResult renders a step outcome as the JSON envelope the CLI
// prints with --json.
func envelopeResult(data any, err error) *mcp.CallToolResult {
	env := output.Success(data)
	if err != nil {
		env = output.Failure(err.Error())
	}
	b, merr := json.Marshal(env)
	if merr != nil {
		return mcp.NewToolResultError(merr.Error())
	}
	if err != nil {
		return mcp.NewToolResultError(string(b))
	}
	return mcp.NewToolResultText(string(b))
}

// stepHandler exposes one entry of the step table as a tool. Calls are
// serialized so concurrent requests never interleave input events.
func (s *mcpServer) stepHandler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := request.GetArguments()

		s.providerMu.Lock()
		defer s.providerMu.Unlock()

		result, err := executeStep(ctx, s.session, name, params)
		return envelopeResult(result, err), nil
	}
}

func (s *mcpServer) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	res, err := screenshotStep(ctx, s.session, params)
	if err != nil {
		return envelopeResult(nil, err), nil
	}
	shot := res.(ScreenshotResult)
	if shot.File != "" {
		return envelopeResult(shot, nil), nil
	}

	summary := shot
	summary.Base64Image = ""
	b, _ := json.Marshal(output.Success(summary))
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     shot.Base64Image,
				MIMEType: "image/png",
			},
			mcp.TextContent{
				Type: "text",
				Text: string(b),
			},
		},
	}, nil
}

func (s *mcpServer) handleDo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	stopOnError := boolParam(params, "stop-on-error", true)

	arr, ok := params["steps"].([]any)
	if !ok {
		return envelopeResult(nil, fmt.Errorf("steps must be an array")), nil
	}
	steps, err := parseSteps(arr)
	if err != nil {
		return envelopeResult(nil, err), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	result, stepErr := runSteps(ctx, s.session, steps, stopOnError)
	if stepErr != nil {
		env := output.Failure(stepErr.Error())
		env.Data = result
		b, _ := json.Marshal(env)
		return mcp.NewToolResultError(string(b)), nil
	}
	return envelopeResult(result, nil), nil
}
