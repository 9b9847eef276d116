package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage fort configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (DF_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default player, default skip payment) are stored in
~/.dragalia/config.json

Examples:
  fort config show
  fort config set-player --player-id 1
  fort config set-skip-payment wyrmite
  fort config clear-player`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlayerCommand())
	cmd.AddCommand(newConfigSetSkipPaymentCommand())
	cmd.AddCommand(newConfigClearPlayerCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  fort config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Fort Configuration")
			fmt.Fprintln(out, "==================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultPlayerID != nil {
				fmt.Fprintf(out, "  Default Player:   ID=%d\n", *userCfg.DefaultPlayerID)
			} else {
				fmt.Fprintf(out, "  Default Player:   (not set)\n")
			}
			if userCfg.DefaultSkipPayment != "" {
				fmt.Fprintf(out, "  Skip Payment:     %s\n", userCfg.DefaultSkipPayment)
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nFort:")
			fmt.Fprintf(out, "  Time Skip Unit:   %s\n", cfg.Fort.TimeSkipUnit)
			if cfg.Fort.RateLimit.Enabled() {
				fmt.Fprintf(out, "  Rate Limit:       %g req/s (burst: %d)\n",
					cfg.Fort.RateLimit.Requests, cfg.Fort.RateLimit.Burst)
			} else {
				fmt.Fprintf(out, "  Rate Limit:       disabled\n")
			}

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Address:          %s%s\n", cfg.Metrics.Address(), cfg.Metrics.Path)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetPlayerCommand creates the config set-player subcommand
func newConfigSetPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-player",
		Short: "Set default player",
		Long: `Set the default player to use for commands.

The default player will be used when --player-id is not given.

Example:
  fort config set-player --player-id 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID <= 0 {
				return fmt.Errorf("--player-id flag is required")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetDefaultPlayer(playerID); err != nil {
				return fmt.Errorf("failed to set default player: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default player set successfully")
			fmt.Fprintf(out, "  Player ID:    %d\n", playerID)
			fmt.Fprintf(out, "\nCommands will now use this player by default.\n")
			fmt.Fprintf(out, "Override with the --player-id flag.\n")

			return nil
		},
	}

	return cmd
}

// newConfigSetSkipPaymentCommand creates the config set-skip-payment subcommand
func newConfigSetSkipPaymentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-skip-payment <payment-type>",
		Short: "Set the default payment for 'fort at-once'",
		Long: `Set the currency 'fort at-once' uses when --payment is omitted.

Example:
  fort config set-skip-payment halidom-hustle-hammer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := skipInput{PaymentType: normalizeEnum(args[0])}
			if err := validateInput(&input); err != nil {
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetDefaultSkipPayment(input.PaymentType); err != nil {
				return fmt.Errorf("failed to set default skip payment: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default skip payment set to %s\n", input.PaymentType)
			return nil
		},
	}

	return cmd
}

// newConfigClearPlayerCommand creates the config clear-player subcommand
func newConfigClearPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-player",
		Short: "Clear default player setting",
		Long: `Remove the default player setting.

After clearing, you must explicitly specify --player-id
for all commands that require player context.

Example:
  fort config clear-player`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultPlayer(); err != nil {
				return fmt.Errorf("failed to clear default player: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default player cleared")
			fmt.Fprintln(out, "\nYou must now specify --player-id for all commands.")

			return nil
		},
	}

	return cmd
}

// maskPassword hides the password component of a database URL
func maskPassword(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	if _, ok := u.User.Password(); !ok {
		return rawURL
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
