package cmd

import (
	"fmt"

	"github.com/mibeco/q-history-mcp-server/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	Long: `Run q-history as a Model Context Protocol server over stdio.

Exposes list_conversations, search_conversations, get_conversation_details,
and export_conversation as tools for a calling agent. Storage locations are
resolved once at startup; a machine with no Q CLI history fails here rather
than on the first tool call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		locations, err := resolveLocations()
		if err != nil {
			return fmt.Errorf("failed to resolve storage locations: %w", err)
		}

		return mcp.StartServer(locations)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
