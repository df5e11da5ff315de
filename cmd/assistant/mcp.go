package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"assistant"
	"assistant/internal/decl"
	"assistant/internal/host/handler"
	"assistant/internal/host/registry"
	"assistant/internal/host/server"
	"assistant/internal/platform"
	"assistant/session"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve an MCP ask_user tool backed by an embedded dialog host",
	Long: `Start a Model Context Protocol server whose ask_user tool stages a
dialog form for the human operator and blocks until it is submitted.
An embedded dialog host runs alongside so the operator can attach a
terminal surface to the staged form:

  assistant attach --url ws://localhost:8765/bridge?session=<id>

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("port", 8766, "HTTP port for streamable-http transport")
	mcpCmd.Flags().String("bridge-port", ":8765", "Listen address of the embedded dialog host")
	mcpCmd.Flags().Duration("default-timeout", 15*time.Minute, "Session timeout when the declaration has none")
}

// askServer holds the MCP server and the embedded host it stages
// dialogs on.
type askServer struct {
	reg        *registry.Registry
	bridgeAddr string
	timeout    time.Duration
	mcp        *mcpserver.MCPServer
}

func runMCP(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	bridgeAddr, _ := cmd.Flags().GetString("bridge-port")
	defaultTimeout, _ := cmd.Flags().GetDuration("default-timeout")

	reg, err := registry.New(128, 0)
	if err != nil {
		return fmt.Errorf("failed to build session registry: %w", err)
	}

	opener := platform.NewOpener()
	picker := platform.NewPicker(os.Getenv("ASSISTANT_PICKER"))
	dialogs := handler.NewDialogHandler(reg, defaultTimeout, opener, picker)
	srv := server.New(bridgeAddr, server.NewMux(dialogs, handler.NewDebugHandler(reg)))
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Embedded host error: %v", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	s := &askServer{
		reg:        reg,
		bridgeAddr: bridgeAddr,
		timeout:    defaultTimeout,
	}
	s.mcp = mcpserver.NewMCPServer(
		"assistant",
		"1.0.0",
	)
	s.registerTools()

	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *askServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("ask_user",
			mcp.WithDescription("Present a dialog form to the human operator and wait for the submitted values. The operator fills the form in an attached surface; the tool returns the result record."),
			mcp.WithString("declaration", mcp.Required(), mcp.Description("JSON form declaration: {\"title\": \"...\", \"elements\": [{\"type\": \"input-text\", \"name\": \"...\"}, ...]}")),
			mcp.WithNumber("timeout", mcp.Description("Seconds to wait for the submission (default: the declaration's timeout)")),
		),
		s.handleAskUser,
	)
}

func (s *askServer) handleAskUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	raw, _ := params["declaration"].(string)
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("declaration is required"), nil
	}
	f, err := decl.ParseJSON([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := f.ToDialog()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	timeout := f.SessionTimeout()
	if secs, ok := params["timeout"].(float64); ok && secs > 0 {
		timeout = time.Duration(secs * float64(time.Second))
	}
	if timeout <= 0 {
		timeout = s.timeout
	}

	sess := session.New(d.Elements(), session.Config{
		Timeout:    timeout,
		Validators: d.Validators(),
		Opener:     platform.NewOpener(),
		Picker:     platform.NewPicker(os.Getenv("ASSISTANT_PICKER")),
	})
	s.reg.Stage(sess, assistant.InputNames(d.Elements()))
	log.Printf("dialog %s: staged via ask_user, attach with: assistant attach --url ws://localhost%s/bridge?session=%s",
		sess.ID(), s.bridgeAddr, sess.ID())

	out, err := s.reg.Outcome(ctx, sess.ID())
	if err != nil {
		// The agent gave up; release the operator's form too.
		sess.Close(session.ErrCanceled)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if out.Err != nil {
		return mcp.NewToolResultError(out.Err.Error()), nil
	}
	b, err := yaml.Marshal(out.Record)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
