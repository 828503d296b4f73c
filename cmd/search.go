package cmd

import (
	"fmt"

	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/spf13/cobra"
)

var (
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search conversations by content",
	Long: `Search Q CLI conversations by text content.

The query is matched case-insensitively against the raw stored records, so it
also finds text inside context fields that the list preview does not surface.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		locations, err := resolveLocations()
		if err != nil {
			return fmt.Errorf("failed to resolve storage locations: %w", err)
		}

		engine := internal.NewEngine(locations)
		results, err := engine.Search(query, searchLimit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Println(headerStyle.Render(fmt.Sprintf("No conversations matching %q", query)))
			return nil
		}

		displaySummaries(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum number of results to show")
}
