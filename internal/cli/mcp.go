package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	forgemcp "github.com/ueagentforge/forge/internal/mcp"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs forgectl as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes constitution-gated editor tools: ping, actors, spawn, delete,\n" +
		"verification, policy checks, perf stats, and raw command execution.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := forgemcp.New(forgemcp.Config{
		Host:        flagHost,
		Port:        flagPort,
		Timeout:     flagTimeout,
		Verify:      !flagNoVerify,
		HistoryPath: flagHistory,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(os.Stderr, "forgectl MCP server running on stdio (editor %s:%d)\n", flagHost, flagPort)
	return srv.Run(ctx)
}
