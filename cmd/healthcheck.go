package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check if q-history can locate and access conversation data",
	Long: `Check the health of q-history by verifying:
  • Storage location resolution
  • Keyed store accessibility
  • History directory accessibility
  • Conversation count

Useful for debugging storage issues when conversations are missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("Q History Health Check"))
		fmt.Println()

		// Step 1: Resolve storage locations
		fmt.Println(infoStyle.Render("Step 1: Resolving storage locations..."))
		locations, err := resolveLocations()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to resolve storage locations:"), err)
			fmt.Println()
			fmt.Println("Ensure the Q CLI is installed and has conversation history,")
			fmt.Println("or point at a store explicitly with --database / --history-dir.")
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Storage locations resolved"))
		if healthcheckVerbose {
			fmt.Printf("   Database:    %s\n", orNone(locations.DatabasePath))
			fmt.Printf("   History dir: %s\n", orNone(locations.HistoryDir))
		}
		fmt.Println()

		// Step 2: Check the keyed store
		fmt.Println(infoStyle.Render("Step 2: Checking keyed store..."))
		storeRecords := 0
		if locations.HasDatabase() {
			records, err := internal.NewStore(locations.DatabasePath).LoadRecords()
			if err != nil {
				fmt.Println(warningStyle.Render("⚠ Keyed store exists but is unreadable:"), err)
			} else {
				storeRecords = len(records)
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ Keyed store readable, %d record(s)", storeRecords)))
			}
		} else {
			fmt.Println(warningStyle.Render("⚠ Keyed store not found"))
		}
		fmt.Println()

		// Step 3: Check the history directory
		fmt.Println(infoStyle.Render("Step 3: Checking history directory..."))
		historyRecords := 0
		if locations.HasHistoryDir() {
			records, err := internal.NewHistoryDir(locations.HistoryDir).LoadRecords()
			if err != nil {
				fmt.Println(warningStyle.Render("⚠ History directory exists but cannot be scanned:"), err)
			} else {
				historyRecords = len(records)
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ History directory readable, %d file(s)", historyRecords)))
			}
		} else {
			fmt.Println(warningStyle.Render("⚠ History directory not found"))
		}
		fmt.Println()

		// Step 4: Normalize everything
		fmt.Println(infoStyle.Render("Step 4: Normalizing conversations..."))
		engine := internal.NewEngine(locations)
		summaries, err := engine.List(0)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to list conversations:"), err)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %d conversation(s) with content", len(summaries))))
		if healthcheckVerbose {
			for i, summary := range summaries {
				if i >= 5 {
					fmt.Printf("   ... and %d more\n", len(summaries)-5)
					break
				}
				fmt.Printf("   [%d] %s (%d message(s))\n", i+1, summary.ID, summary.MessageCount)
			}
		}
		fmt.Println()

		// Summary
		fmt.Println(sectionStyle.Render("Summary"))
		fmt.Println()
		total := storeRecords + historyRecords
		switch {
		case len(summaries) > 0:
			fmt.Println(successStyle.Render("✓ Health check passed"))
			return nil
		case total > 0:
			fmt.Println(warningStyle.Render("⚠ Records exist but none normalized to content"))
			fmt.Println("   Run `q-history inspect <id>` on one to see its raw shape.")
			return nil
		default:
			fmt.Println(errorStyle.Render("✗ Health check failed: no conversation data found"))
			return fmt.Errorf("health check failed: no conversation data found")
		}
	},
}

func orNone(path string) string {
	if path == "" {
		return "(not found)"
	}
	return path
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "detail", false, "Show per-step detail")
}
