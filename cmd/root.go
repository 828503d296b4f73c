package cmd

import (
	"fmt"
	"os"

	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	databaseArg string
	historyArg  string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "q-history",
	Short: "Browse and export Amazon Q CLI conversation history",
	Long: `A read-only browser for the Amazon Q Developer CLI conversation archive.

The archive has gone through several incompatible on-disk formats. This tool
finds whichever storage your machine has (the keyed SQLite store and/or the
per-conversation history files), detects each record's schema, and normalizes
everything into one shape for listing, search, viewing, and export.

Quick Start:
  q-history list                      # List recent conversations
  q-history search "dijkstra"         # Find conversations by content
  q-history show <conversation-id>    # View one conversation
  q-history export <id> -o notes.md   # Export as Markdown
  q-history mcp                       # Run as an MCP server over stdio`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&databaseArg, "database", "", "Custom path to the Q CLI data.sqlite3 store")
	rootCmd.PersistentFlags().StringVar(&historyArg, "history-dir", "", "Custom path to the chat-history directory")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// resolveLocations applies the precedence: command-line flags, then the
// user's config file, then per-OS probing.
func resolveLocations() (internal.StorageLocations, error) {
	dbPath := databaseArg
	historyDir := historyArg

	cfg := internal.LoadConfig()
	if dbPath == "" {
		dbPath = cfg.Database
	}
	if historyDir == "" {
		historyDir = cfg.HistoryDir
	}

	return internal.ResolveStorageLocations(dbPath, historyDir)
}
