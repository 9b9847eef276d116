package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	fortCommands "github.com/gmcclure382/DragaliaAPI/internal/application/fort/commands"
	fortQueries "github.com/gmcclure382/DragaliaAPI/internal/application/fort/queries"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/config"
)

// positionInput is the validated form of the position flags
type positionInput struct {
	X int `validate:"min=0"`
	Z int `validate:"min=0"`
}

// buildInput is the validated form of the build flags
type buildInput struct {
	Plant string `validate:"required"`
	X     int    `validate:"min=0"`
	Z     int    `validate:"min=0"`
}

// skipInput is the validated form of the at-once flags
type skipInput struct {
	PaymentType string `validate:"required,oneof=WYRMITE DIAMANTIUM HALIDOM_HUSTLE_HAMMER"`
}

// newFortCommands creates the top-level fort operations
func newFortCommands() []*cobra.Command {
	return []*cobra.Command{
		newDetailCommand(),
		newListCommand(),
		newBuildCommand(),
		newLevelupCommand(),
		newAtOnceCommand(),
		newEndCommand(),
		newCancelCommand(),
		newCancelBuildCommand(),
		newMoveCommand(),
	}
}

// newDetailCommand creates the detail subcommand
func newDetailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detail",
		Short: "Show carpenter capacity and usage",
		Long: `Show how many carpenters the player owns, how many are working,
and the premium price of the next carpenter.

Example:
  fort detail --player-id 1`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			response, err := a.send(ctx, &fortQueries.GetFortDetailQuery{PlayerID: pid})
			if err != nil {
				return fmt.Errorf("failed to get fort detail: %w", err)
			}

			result := response.(*fortQueries.GetFortDetailResponse)
			out := a.out()
			fmt.Fprintf(out, "Fort Detail (player %d)\n", pid)
			printCarpenters(out, result.Carpenter)
			if result.NextCarpenterCost > 0 {
				fmt.Fprintf(out, "Next carpenter: %d wyrmite or diamantium\n", result.NextCarpenterCost)
			} else {
				fmt.Fprintln(out, "Next carpenter: limit reached")
			}
			return nil
		}),
	}
}

// newListCommand creates the list subcommand
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every facility with its construction status",
		Long: `List every facility the player has placed.

Status is NEUTRAL when idle, CONSTRUCTION while a level-0 placement is
being built and LEVEL_UP while an upgrade is running. A remaining time of
"ready" means the window has elapsed and 'fort end' will resolve it.

Example:
  fort list --player-id 1`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			response, err := a.send(ctx, &fortQueries.GetBuildListQuery{PlayerID: pid})
			if err != nil {
				return fmt.Errorf("failed to list builds: %w", err)
			}

			result := response.(*fortQueries.GetBuildListResponse)
			out := a.out()
			if len(result.Builds) == 0 {
				fmt.Fprintln(out, "No facilities placed")
			} else {
				printBuildTable(out, result.Builds)
			}
			fmt.Fprintln(out)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}
}

// newBuildCommand creates the build subcommand
func newBuildCommand() *cobra.Command {
	var input buildInput

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Place a new facility",
		Long: `Place a new facility at level 0.

Placement needs a free carpenter and charges the level-1 coin and
material cost. Plants may be given by name or numeric id.

Examples:
  fort build --plant SMITHY --x 10 --z 4
  fort build --plant 100301 --x 0 --z 0`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			if err := validateInput(&input); err != nil {
				return err
			}
			plantID, err := fort.ParsePlantID(input.Plant)
			if err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.BuildStartCommand{
				PlayerID:  pid,
				PlantID:   int(plantID),
				PositionX: input.X,
				PositionZ: input.Z,
			})
			if err != nil {
				return fmt.Errorf("failed to place %s: %w", plantID, err)
			}

			result := response.(*fortCommands.BuildResponse)
			out := a.out()
			fmt.Fprintln(out, "✓ Facility placed")
			printBuild(out, result.Build)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}

	cmd.Flags().StringVar(&input.Plant, "plant", "", "Plant name or id (required)")
	cmd.Flags().IntVar(&input.X, "x", 0, "X position")
	cmd.Flags().IntVar(&input.Z, "z", 0, "Z position")
	cmd.MarkFlagRequired("plant")

	return cmd
}

// newLevelupCommand creates the levelup subcommand
func newLevelupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "levelup <build-id>",
		Short: "Start upgrading a facility",
		Long: `Start upgrading a facility to its next level.

The upgrade holds a carpenter until it is resolved with 'fort end',
'fort at-once' or cancelled with 'fort cancel'.

Example:
  fort levelup 12`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.LevelupStartCommand{PlayerID: pid, BuildID: buildID})
			if err != nil {
				return fmt.Errorf("failed to start levelup: %w", err)
			}

			result := response.(*fortCommands.BuildResponse)
			out := a.out()
			fmt.Fprintln(out, "✓ Levelup started")
			printBuild(out, result.Build)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}
}

// newAtOnceCommand creates the at-once subcommand
func newAtOnceCommand() *cobra.Command {
	var payment string

	cmd := &cobra.Command{
		Use:   "at-once <build-id>",
		Short: "Finish a running construction immediately",
		Long: `Finish a running construction immediately.

Wyrmite and diamantium cost one unit per started skip unit (12 minutes by
default) of remaining time. A halidom hustle hammer always costs one.
Without --payment the default from 'fort config set-skip-payment' is used.

Examples:
  fort at-once 12 --payment wyrmite
  fort at-once 12 --payment halidom-hustle-hammer`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			input := skipInput{PaymentType: normalizeEnum(payment)}
			if input.PaymentType == "" {
				input.PaymentType = normalizeEnum(defaultSkipPayment())
			}
			if err := validateInput(&input); err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.LevelupAtOnceCommand{
				PlayerID:    pid,
				BuildID:     buildID,
				PaymentType: input.PaymentType,
			})
			if err != nil {
				return fmt.Errorf("failed to complete construction: %w", err)
			}

			result := response.(*fortCommands.LevelupAtOnceResponse)
			out := a.out()
			fmt.Fprintf(out, "✓ Construction completed for %d %s\n", result.Cost, input.PaymentType)
			printBuild(out, result.Build)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}

	cmd.Flags().StringVar(&payment, "payment", "", "wyrmite, diamantium or halidom-hustle-hammer")

	return cmd
}

// defaultSkipPayment reads the preferred skip currency from the user config
func defaultSkipPayment() string {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return ""
	}
	userCfg, err := handler.Load()
	if err != nil {
		return ""
	}
	return userCfg.DefaultSkipPayment
}

// newEndCommand creates the end subcommand
func newEndCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "end <build-id>",
		Short: "Resolve a construction whose timer has elapsed",
		Long: `Resolve a construction whose timer has elapsed.

The facility gains one level and its carpenter is released.

Example:
  fort end 12`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.EndLevelupCommand{PlayerID: pid, BuildID: buildID})
			if err != nil {
				return fmt.Errorf("failed to end levelup: %w", err)
			}

			result := response.(*fortCommands.BuildResponse)
			out := a.out()
			fmt.Fprintln(out, "✓ Levelup completed")
			printBuild(out, result.Build)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}
}

// newCancelCommand creates the cancel subcommand
func newCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <build-id>",
		Short: "Cancel a running upgrade without refund",
		Long: `Cancel a running upgrade. The level is unchanged and nothing is refunded.

Example:
  fort cancel 12`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.CancelLevelupCommand{PlayerID: pid, BuildID: buildID})
			if err != nil {
				return fmt.Errorf("failed to cancel levelup: %w", err)
			}

			result := response.(*fortCommands.BuildResponse)
			out := a.out()
			fmt.Fprintln(out, "✓ Levelup cancelled")
			printBuild(out, result.Build)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}
}

// newCancelBuildCommand creates the cancel-build subcommand
func newCancelBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-build <build-id>",
		Short: "Remove a level-0 placement",
		Long: `Remove a facility that never completed its first construction.
Facilities above level 0 cannot be removed this way.

Example:
  fort cancel-build 12`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.CancelBuildCommand{PlayerID: pid, BuildID: buildID})
			if err != nil {
				return fmt.Errorf("failed to cancel build: %w", err)
			}

			result := response.(*fortCommands.CancelBuildResponse)
			out := a.out()
			fmt.Fprintf(out, "✓ Build %d removed\n", result.BuildID)
			printCarpenters(out, result.Carpenter)
			return nil
		}),
	}
}

// newMoveCommand creates the move subcommand
func newMoveCommand() *cobra.Command {
	var input positionInput

	cmd := &cobra.Command{
		Use:   "move <build-id>",
		Short: "Move a facility",
		Long: `Move a facility to a new position. Moving is free and does not
affect a running construction.

Example:
  fort move 12 --x 3 --z 9`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, pid int, args []string) error {
			buildID, err := parseBuildID(args[0])
			if err != nil {
				return err
			}
			if err := validateInput(&input); err != nil {
				return err
			}

			response, err := a.send(ctx, &fortCommands.MoveBuildCommand{
				PlayerID:  pid,
				BuildID:   buildID,
				PositionX: input.X,
				PositionZ: input.Z,
			})
			if err != nil {
				return fmt.Errorf("failed to move build: %w", err)
			}

			result := response.(*fortCommands.BuildResponse)
			out := a.out()
			fmt.Fprintln(out, "✓ Facility moved")
			printBuild(out, result.Build)
			return nil
		}),
	}

	cmd.Flags().IntVar(&input.X, "x", 0, "X position")
	cmd.Flags().IntVar(&input.Z, "z", 0, "Z position")

	return cmd
}
