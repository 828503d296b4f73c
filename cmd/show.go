package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/spf13/cobra"
)

var (
	showMessageLimit int
)

var (
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var showCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show one conversation",
	Long: `Show the full message history of one conversation.

Accepts the conversation id shown by 'q-history list'; for keyed-store
records a substring of the storage key also works.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locations, err := resolveLocations()
		if err != nil {
			return fmt.Errorf("failed to resolve storage locations: %w", err)
		}

		engine := internal.NewEngine(locations)
		detail, err := engine.GetDetail(args[0])
		if err != nil {
			return err
		}

		messages := detail.Messages
		truncated := false
		if showMessageLimit > 0 && len(messages) > showMessageLimit {
			messages = messages[:showMessageLimit]
			truncated = true
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Conversation %s (%d message(s))", detail.ID, len(detail.Messages))))
		fmt.Println()

		for _, msg := range messages {
			label := userStyle.Render(string(msg.Role))
			if msg.Role == internal.RoleAssistant {
				label = assistantStyle.Render(string(msg.Role))
			}
			if msg.Timestamp != "" {
				label += " " + timestampStyle.Render("("+msg.Timestamp+")")
			}
			fmt.Println(label)
			fmt.Println(msg.Body)
			fmt.Println()
		}

		if truncated {
			fmt.Println(idStyle.Render(fmt.Sprintf("... %d more message(s), rerun with --limit 0 to see all", len(detail.Messages)-len(messages))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showMessageLimit, "limit", "n", 0, "Maximum number of messages to show (0 = all)")
}
