// Package mcp exposes the forge operations as MCP tools, so agent
// frameworks can drive the editor through the same gated protocol the
// SDK enforces — constitution checks included, on the editor side of the
// tool boundary where an agent cannot skip them.
package mcp

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

// Config holds MCP server configuration.
type Config struct {
	Host        string
	Port        int
	Timeout     time.Duration
	Verify      bool
	HistoryPath string
}

// Server wraps the MCP SDK server around one forge client.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *forge.Client
}

// New creates an MCP server with a client connected per cfg.
func New(cfg Config) (*Server, error) {
	opts := []forge.Option{
		forge.WithHost(cfg.Host),
		forge.WithPort(cfg.Port),
		forge.WithVerify(cfg.Verify),
	}
	if cfg.Timeout != 0 {
		opts = append(opts, forge.WithTimeout(cfg.Timeout))
	}
	if cfg.HistoryPath != "" {
		opts = append(opts, forge.WithHistory(cfg.HistoryPath))
	}

	client, err := forge.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("mcp: create forge client: %w", err)
	}
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client; the caller keeps ownership of
// its lifecycle only if it never calls Close on the server.
func NewWithClient(client *forge.Client) *Server {
	s := &Server{
		client: client,
		mcpServer: mcpsdk.NewServer(
			&mcpsdk.Implementation{
				Name:    "ueagentforge",
				Version: "0.1.0",
			},
			nil,
		),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases the underlying client.
func (s *Server) Close() error {
	return s.client.Close()
}

// registerTools adds all forge tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_ping",
		Description: "Check the Unreal Editor's UEAgentForge plugin is alive and report its version and constitution state.",
	}, s.handlePing)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_list_actors",
		Description: "List every actor in the current level with label, class, and location.",
	}, s.handleListActors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_spawn_actor",
		Description: "Spawn an actor in the level. The editor's constitution is consulted first; blocked spawns return the violations.",
	}, s.handleSpawnActor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_delete_actor",
		Description: "Delete the labeled actor from the level. Constitution-gated like all mutations.",
	}, s.handleDeleteActor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_run_verification",
		Description: "Run the editor's phased verification protocol (1=PreFlight, 2=Snapshot+Rollback, 4=PostVerify, 8=BuildCheck; OR bits together).",
	}, s.handleRunVerification)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_check_policy",
		Description: "Ask the editor's constitution whether a described action would be permitted, without executing anything.",
	}, s.handleCheckPolicy)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_perf_stats",
		Description: "Sample the editor's performance counters: draw calls, GPU frame time, memory, actor count.",
	}, s.handlePerfStats)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "forge_execute",
		Description: "Execute any plugin command by name with JSON arguments. Escape hatch for commands without a dedicated tool.",
	}, s.handleExecute)
}
