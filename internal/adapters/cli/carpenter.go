package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	fortCommands "github.com/gmcclure382/DragaliaAPI/internal/application/fort/commands"
)

// carpenterInput is the validated form of the carpenter add flags
type carpenterInput struct {
	PaymentType string `validate:"required,oneof=WYRMITE DIAMANTIUM"`
}

// NewCarpenterCommand creates the carpenter command with subcommands
func NewCarpenterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carpenter",
		Short: "Manage carpenters",
		Long: `Manage the player's carpenters.

A fort starts with 2 carpenters and can own at most 5. The third, fourth
and fifth carpenter cost 250, 400 and 750 wyrmite or diamantium.

Examples:
  fort carpenter add --payment wyrmite`,
	}

	cmd.AddCommand(newCarpenterAddCommand())

	return cmd
}

// newCarpenterAddCommand creates the carpenter add subcommand
func newCarpenterAddCommand() *cobra.Command {
	var payment string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Buy one more carpenter",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			input := carpenterInput{PaymentType: normalizeEnum(payment)}
			if err := validateInput(&input); err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.AddCarpenterCommand{
				PlayerID:    pid,
				PaymentType: input.PaymentType,
			})
			if err != nil {
				return fmt.Errorf("failed to add carpenter: %w", err)
			}

			result := response.(*fortCommands.AddCarpenterResponse)
			out := a.out()
			fmt.Fprintf(out, "✓ Carpenter hired for %d %s\n", result.Cost, input.PaymentType)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}

	cmd.Flags().StringVar(&payment, "payment", "", "wyrmite or diamantium (required)")
	cmd.MarkFlagRequired("payment")

	return cmd
}
