package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	fortCommands "github.com/gmcclure382/DragaliaAPI/internal/application/fort/commands"
	fortQueries "github.com/gmcclure382/DragaliaAPI/internal/application/fort/queries"
)

// grantInput is the validated form of the wallet grant flags
type grantInput struct {
	Currency string `validate:"required,oneof=COIN WYRMITE DIAMANTIUM HALIDOM_HUSTLE_HAMMER DEW_POINT"`
	Amount   int    `validate:"min=1"`
}

// materialInput is the validated form of the material grant flags
type materialInput struct {
	Material string `validate:"required"`
	Quantity int    `validate:"min=1"`
}

// NewWalletCommand creates the wallet command with subcommands
func NewWalletCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Inspect and credit currencies",
		Long: `Inspect and credit the player's currencies and materials.

Granting is admin tooling: every grant is written to the payment ledger.

Examples:
  fort wallet show
  fort wallet grant --currency coin --amount 50000
  fort wallet grant --currency wyrmite --amount 1200`,
	}

	cmd.AddCommand(newWalletShowCommand())
	cmd.AddCommand(newWalletGrantCommand())

	return cmd
}

// newWalletShowCommand creates the wallet show subcommand
func newWalletShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show currencies and materials",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			response, err := a.send(ctx, &fortQueries.GetWalletQuery{PlayerID: pid})
			if err != nil {
				return fmt.Errorf("failed to get wallet: %w", err)
			}

			result := response.(*fortQueries.GetWalletResponse)
			out := a.out()
			printBalances(out, "Currencies:", result.Currencies)
			fmt.Fprintln(out)
			printBalances(out, "Materials:", result.Materials)
			return nil
		}),
	}
}

// newWalletGrantCommand creates the wallet grant subcommand
func newWalletGrantCommand() *cobra.Command {
	var input grantInput

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Credit a currency",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			input.Currency = normalizeEnum(input.Currency)
			if err := validateInput(&input); err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.GrantCurrencyCommand{
				PlayerID:    pid,
				PaymentType: input.Currency,
				Amount:      input.Amount,
			})
			if err != nil {
				return fmt.Errorf("failed to grant currency: %w", err)
			}

			result := response.(*fortCommands.GrantCurrencyResponse)
			out := a.out()
			fmt.Fprintf(out, "✓ Granted %d %s\n\n", input.Amount, input.Currency)
			printBalances(out, "Currencies:", result.Balances)
			return nil
		}),
	}

	cmd.Flags().StringVar(&input.Currency, "currency", "", "coin, wyrmite, diamantium, halidom-hustle-hammer or dew-point (required)")
	cmd.Flags().IntVar(&input.Amount, "amount", 0, "Amount to credit (required)")
	cmd.MarkFlagRequired("currency")
	cmd.MarkFlagRequired("amount")

	return cmd
}

// NewMaterialCommand creates the material command with subcommands
func NewMaterialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material",
		Short: "Credit construction materials",
		Long: `Credit construction materials (admin tooling).

Examples:
  fort material grant --material oak --quantity 500
  fort material grant --material 201003 --quantity 350`,
	}

	cmd.AddCommand(newMaterialGrantCommand())

	return cmd
}

// newMaterialGrantCommand creates the material grant subcommand
func newMaterialGrantCommand() *cobra.Command {
	var input materialInput

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Credit a material",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			if err := validateInput(&input); err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.GrantMaterialCommand{
				PlayerID: pid,
				Material: input.Material,
				Quantity: input.Quantity,
			})
			if err != nil {
				return fmt.Errorf("failed to grant material: %w", err)
			}

			result := response.(*fortCommands.GrantMaterialResponse)
			out := a.out()
			fmt.Fprintf(out, "✓ Granted %d %s\n\n", input.Quantity, input.Material)
			printBalances(out, "Materials:", result.Quantities)
			return nil
		}),
	}

	cmd.Flags().StringVar(&input.Material, "material", "", "Material name or id (required)")
	cmd.Flags().IntVar(&input.Quantity, "quantity", 0, "Quantity to credit (required)")
	cmd.MarkFlagRequired("material")
	cmd.MarkFlagRequired("quantity")

	return cmd
}
