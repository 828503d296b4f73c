package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/mibeco/q-history-mcp-server/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <conversation-id>",
	Short: "Export a conversation to file",
	Long: `Export one conversation to a file (md, json, jsonl, yaml).

By default exports to the current directory as conversation-<id>.<ext>.
Use --output to specify a custom path; the format's extension is appended
when the path has none, and intermediate directories are created.

Examples:
  q-history export 4108aad0-a795-49b2-8ef0-1f8b99b83f67
  q-history export 4108aad0 --format yaml
  q-history export 4108aad0 -o ~/notes/dijkstra.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversationID := args[0]

		locations, err := resolveLocations()
		if err != nil {
			return fmt.Errorf("failed to resolve storage locations: %w", err)
		}

		engine := internal.NewEngine(locations)
		detail, err := engine.GetDetail(conversationID)
		if err != nil {
			return err
		}

		outputPath := exportOutput
		if outputPath == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			shortID := detail.ID
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			outputPath = filepath.Join(cwd, "conversation-"+shortID)
		}

		written, err := export.WriteFile(detail, outputPath, exportFormat)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d message(s) to %s\n", len(detail.Messages), written)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (md, json, jsonl, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: conversation-<id>.<ext> in current directory)")
}
