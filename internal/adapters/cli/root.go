package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

var (
	// Global flags
	configPath string
	playerID   int
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fort",
		Short: "Fort CLI - manage halidom facilities, carpenters and currencies",
		Long: `Fort CLI drives the fort build scheduler directly against the configured database.

Every command runs as a single transaction for one player.

Examples:
  fort list --player-id 1
  fort build --plant SMITHY --x 10 --z 4
  fort levelup 12
  fort at-once 12 --payment wyrmite
  fort end 12
  fort carpenter add --payment diamantium
  fort wallet grant --currency coin --amount 50000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/dragalia)")
	rootCmd.PersistentFlags().IntVar(&playerID, "player-id", 0,
		"Player ID (defaults to 'fort config set-player')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Fort operations live at the top level
	for _, cmd := range newFortCommands() {
		rootCmd.AddCommand(cmd)
	}

	// Add command groups
	rootCmd.AddCommand(NewCarpenterCommand())
	rootCmd.AddCommand(NewWalletCommand())
	rootCmd.AddCommand(NewMaterialCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError prefixes domain failures with their result code
func formatError(err error) string {
	if code, ok := shared.CodeOf(err); ok {
		return fmt.Sprintf("Error [%s]: %v", code, err)
	}
	return fmt.Sprintf("Error: %v", err)
}
