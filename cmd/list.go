package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/spf13/cobra"
)

var (
	listLimit int
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	workspaceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversations",
	Long:  `List recent Q CLI conversations with previews, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		locations, err := resolveLocations()
		if err != nil {
			return fmt.Errorf("failed to resolve storage locations: %w", err)
		}

		engine := internal.NewEngine(locations)
		summaries, err := engine.List(listLimit)
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}

		displaySummaries(summaries)
		return nil
	},
}

func displaySummaries(summaries []internal.ConversationSummary) {
	if len(summaries) == 0 {
		fmt.Println(headerStyle.Render("No conversations found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d conversation(s)", len(summaries)))
	fmt.Println(header)
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Workspace")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Created")+"\t"+titleStyle.Render("Preview")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 120))

	for _, summary := range summaries {
		shortID := clip(summary.ID, 8, "")
		workspace := clip(summary.Workspace, 25, "...")
		preview := clip(summary.Preview, 50, "...")

		created := "—"
		if !summary.CreatedAt.IsZero() {
			created = humanize.Time(summary.CreatedAt)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(shortID),
			workspaceStyle.Render(workspace),
			countStyle.Render(strconv.Itoa(summary.MessageCount)),
			dateStyle.Render(created),
			preview,
		)
	}

	_ = w.Flush()
	fmt.Println()
	printTip(summaries)
}

// clip caps a column value at max characters, counting runes so multibyte
// text is never cut mid-character. The suffix replaces the tail when it fits.
func clip(s string, max int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := max - len(suffix)
	if cut < 0 {
		cut = max
		suffix = ""
	}
	return string(runes[:cut]) + suffix
}

func printTip(summaries []internal.ConversationSummary) {
	fmt.Println(idStyle.Render("Tip: use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(summaries[0].ID) +
		idStyle.Render(") with `q-history show <id>`"))
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 50, "Maximum number of conversations to show")
}
