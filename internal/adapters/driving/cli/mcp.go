package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geodist/internal/adapters/driving/mcp"
	"github.com/custodia-labs/geodist/internal/logger"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
	Long:  `Expose manifold distance estimation to AI assistants over MCP.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server.

Without --port the server speaks MCP over stdin/stdout. With --port it serves
streamable HTTP on that port, with Prometheus metrics at /metrics.`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve over HTTP on this port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if manifoldService == nil {
		return errors.New("manifold service not configured")
	}

	manifold := newReloadableManifold(manifoldService)
	server, err := mcp.NewServer(&mcp.Ports{
		Manifold: manifold,
		Centroid: centroidService,
		Settings: settingsService,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if configWatcher != nil {
		go func() {
			if err := configWatcher.Watch(ctx, onConfigReload(manifold, manifoldFactory)); err != nil {
				logger.Warn("config watch stopped: %v", err)
			}
		}()
	}

	if mcpPort == 0 {
		return server.Run(ctx)
	}

	extra := map[string]http.Handler{}
	if metricsHandler != nil {
		extra["/metrics"] = metricsHandler
	}
	addr := fmt.Sprintf(":%d", mcpPort)
	logger.Info("MCP server listening on %s", addr)
	return server.RunHTTP(ctx, addr, extra)
}
