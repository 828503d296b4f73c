package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <conversation-id>",
	Short: "Inspect a raw record and its detected schema",
	Long: `Show one conversation's raw storage representation together with the
schema variant the format detector assigned to it.

Useful when a conversation lists with "No content": the record may be in a
shape the normalizer does not recognize, and the raw dump shows why.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locations, err := resolveLocations()
		if err != nil {
			return fmt.Errorf("failed to resolve storage locations: %w", err)
		}

		engine := internal.NewEngine(locations)
		rec, variant, err := engine.GetRaw(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Key:      %s\n", rec.Key)
		fmt.Printf("Source:   %s\n", rec.Source)
		fmt.Printf("Variant:  %s\n", variant)
		if rec.Workspace != "" {
			fmt.Printf("Workspace: %s\n", rec.Workspace)
		}
		if rec.Source == internal.SourceStore {
			fmt.Printf("Ordinal:  %d\n", rec.Ordinal)
		} else {
			fmt.Printf("Modified: %s\n", rec.ModTime)
		}
		fmt.Println()

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, rec.Content, "", "  "); err != nil {
			// Not valid JSON; dump as-is
			fmt.Println(string(rec.Content))
			return nil
		}
		fmt.Println(pretty.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
