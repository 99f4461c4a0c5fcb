// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes the documentation agent to LLM clients via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docagent/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM clients",
		Long: `Start an MCP (Model Context Protocol) server over stdio, exposing
the documentation agent's tools: ask_documentation, clear_conversation
and retrieve_segments.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  docagent mcp

  # Configure in an MCP client config:
  # {
  #   "mcpServers": {
  #     "docagent": {
  #       "command": "docagent",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	defer p.Close()

	server := mcpserver.NewMCPServer(
		"Documentation Agent",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, p.agent, p.retriever)

	if !quiet {
		log.Println("Documentation agent MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
