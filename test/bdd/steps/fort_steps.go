package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/persistence"
	fortCommands "github.com/gmcclure382/DragaliaAPI/internal/application/fort/commands"
	fortQueries "github.com/gmcclure382/DragaliaAPI/internal/application/fort/queries"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/application/setup"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
	"github.com/gmcclure382/DragaliaAPI/test/helpers"
)

// fortContext drives the fort handlers through a real mediator over the shared test database
type fortContext struct {
	clock    *shared.MockClock
	repos    *helpers.TestRepositories
	mediator mediator.Mediator

	// builds maps scenario aliases to build ids
	builds   map[string]int64
	response mediator.Response
	err      error
}

func (c *fortContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	c.clock = shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	c.repos = helpers.NewTestRepositories(helpers.SharedTestDB, c.clock)
	c.builds = make(map[string]int64)
	c.response = nil
	c.err = nil

	catalog, err := fort.DefaultCatalog()
	if err != nil {
		return err
	}

	c.mediator = mediator.NewMediator()
	registry := setup.NewHandlerRegistry(c.repos.UnitOfWork, catalog, c.clock, services.DefaultSchedulerOptions())
	return registry.RegisterFortHandlers(c.mediator)
}

func (c *fortContext) send(request mediator.Request) {
	c.response, c.err = c.mediator.Send(context.Background(), request)
}

func (c *fortContext) buildID(alias string) (int64, error) {
	id, ok := c.builds[alias]
	if !ok {
		return 0, fmt.Errorf("no build named %q in this scenario", alias)
	}
	return id, nil
}

// Given steps

func (c *fortContext) theClockIsAt(value string) error {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	c.clock.SetTime(t)
	return nil
}

func (c *fortContext) playerHasTheWallet(playerID int, table *godog.Table) error {
	return eachRow(table, func(row *messages.PickleTableRow) error {
		amount, err := strconv.Atoi(getCellValueFromTable(table, row, "amount"))
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		_, err = c.mediator.Send(context.Background(), &fortCommands.GrantCurrencyCommand{
			PlayerID:    playerID,
			PaymentType: getCellValueFromTable(table, row, "currency"),
			Amount:      amount,
		})
		return err
	})
}

func (c *fortContext) playerHasTheMaterials(playerID int, table *godog.Table) error {
	return eachRow(table, func(row *messages.PickleTableRow) error {
		quantity, err := strconv.Atoi(getCellValueFromTable(table, row, "quantity"))
		if err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}
		_, err = c.mediator.Send(context.Background(), &fortCommands.GrantMaterialCommand{
			PlayerID: playerID,
			Material: getCellValueFromTable(table, row, "material"),
			Quantity: quantity,
		})
		return err
	})
}

func (c *fortContext) playerHasPlaced(playerID int, plant, alias string) error {
	if err := c.playerPlaces(playerID, plant, alias); err != nil {
		return err
	}
	if c.err != nil {
		return fmt.Errorf("failed to place %s: %w", plant, c.err)
	}
	return nil
}

func (c *fortContext) playerHasStartedUpgrading(playerID int, alias string) error {
	if err := c.playerStartsUpgrading(playerID, alias); err != nil {
		return err
	}
	if c.err != nil {
		return fmt.Errorf("failed to start upgrading %s: %w", alias, c.err)
	}
	return nil
}

// When steps

func (c *fortContext) playerPlaces(playerID int, plant, alias string) error {
	plantID, err := fort.ParsePlantID(plant)
	if err != nil {
		return err
	}

	c.send(&fortCommands.BuildStartCommand{PlayerID: playerID, PlantID: int(plantID)})
	if c.err == nil {
		c.builds[alias] = c.response.(*fortCommands.BuildResponse).Build.BuildID
	}
	return nil
}

func (c *fortContext) playerStartsUpgrading(playerID int, alias string) error {
	id, err := c.buildID(alias)
	if err != nil {
		return err
	}
	c.send(&fortCommands.LevelupStartCommand{PlayerID: playerID, BuildID: id})
	return nil
}

func (c *fortContext) playerEndsTheUpgradeOf(playerID int, alias string) error {
	id, err := c.buildID(alias)
	if err != nil {
		return err
	}
	c.send(&fortCommands.EndLevelupCommand{PlayerID: playerID, BuildID: id})
	return nil
}

func (c *fortContext) playerCancelsTheUpgradeOf(playerID int, alias string) error {
	id, err := c.buildID(alias)
	if err != nil {
		return err
	}
	c.send(&fortCommands.CancelLevelupCommand{PlayerID: playerID, BuildID: id})
	return nil
}

func (c *fortContext) playerCancelsTheConstructionOf(playerID int, alias string) error {
	id, err := c.buildID(alias)
	if err != nil {
		return err
	}
	c.send(&fortCommands.CancelBuildCommand{PlayerID: playerID, BuildID: id})
	return nil
}

func (c *fortContext) playerFinishesAtOnceWith(playerID int, alias, paymentType string) error {
	id, err := c.buildID(alias)
	if err != nil {
		return err
	}
	c.send(&fortCommands.LevelupAtOnceCommand{PlayerID: playerID, BuildID: id, PaymentType: paymentType})
	return nil
}

func (c *fortContext) playerHiresACarpenterWith(playerID int, paymentType string) error {
	c.send(&fortCommands.AddCarpenterCommand{PlayerID: playerID, PaymentType: paymentType})
	return nil
}

func (c *fortContext) timePasses(amount int, unit string) error {
	switch unit {
	case "second", "seconds":
		c.clock.Advance(time.Duration(amount) * time.Second)
	case "minute", "minutes":
		c.clock.Advance(time.Duration(amount) * time.Minute)
	default:
		return fmt.Errorf("unsupported time unit %q", unit)
	}
	return nil
}

// Then steps

func (c *fortContext) theCommandShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got: %w", c.err)
	}
	return nil
}

func (c *fortContext) theCommandShouldFailWithResultCode(expected string) error {
	if c.err == nil {
		return fmt.Errorf("expected %s, but the command succeeded", expected)
	}
	code, ok := shared.CodeOf(c.err)
	if !ok {
		return fmt.Errorf("expected %s, got non-domain error: %v", expected, c.err)
	}
	if code.String() != expected {
		return fmt.Errorf("expected %s, got %s (%v)", expected, code, c.err)
	}
	return nil
}

func (c *fortContext) theCommandShouldBeRejectedAsAnInvalidOperation() error {
	if !errors.Is(c.err, shared.ErrInvalidOperation) {
		return fmt.Errorf("expected an invalid operation error, got: %v", c.err)
	}
	return nil
}

func (c *fortContext) theCommandShouldCost(expected int) error {
	if err := c.theCommandShouldSucceed(); err != nil {
		return err
	}

	var cost int
	switch resp := c.response.(type) {
	case *fortCommands.LevelupAtOnceResponse:
		cost = resp.Cost
	case *fortCommands.AddCarpenterResponse:
		cost = resp.Cost
	default:
		return fmt.Errorf("response %T carries no cost", c.response)
	}

	if cost != expected {
		return fmt.Errorf("expected cost %d, got %d", expected, cost)
	}
	return nil
}

func (c *fortContext) playerShouldHaveCarpentersWorking(playerID, working, capacity int) error {
	resp, err := c.mediator.Send(context.Background(), &fortQueries.GetFortDetailQuery{PlayerID: playerID})
	if err != nil {
		return fmt.Errorf("failed to read fort detail: %w", err)
	}

	carpenter := resp.(*fortQueries.GetFortDetailResponse).Carpenter
	if carpenter.WorkingCarpenterNum != working || carpenter.CarpenterNum != capacity {
		return fmt.Errorf("expected %d of %d carpenters working, got %d of %d",
			working, capacity, carpenter.WorkingCarpenterNum, carpenter.CarpenterNum)
	}
	return nil
}

func (c *fortContext) findBuild(playerID int, alias string) (*types.BuildDTO, error) {
	id, err := c.buildID(alias)
	if err != nil {
		return nil, err
	}

	resp, err := c.mediator.Send(context.Background(), &fortQueries.GetBuildListQuery{PlayerID: playerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}

	for _, build := range resp.(*fortQueries.GetBuildListResponse).Builds {
		if build.BuildID == id {
			return build, nil
		}
	}
	return nil, nil
}

func (c *fortContext) buildShouldBeAtLevelWithStatus(playerID int, alias string, level int, status string) error {
	build, err := c.findBuild(playerID, alias)
	if err != nil {
		return err
	}
	if build == nil {
		return fmt.Errorf("build %q not found", alias)
	}
	if build.Level != level {
		return fmt.Errorf("expected %s at level %d, got %d", alias, level, build.Level)
	}
	if build.BuildStatus != status {
		return fmt.Errorf("expected %s to be %s, got %s", alias, status, build.BuildStatus)
	}
	return nil
}

func (c *fortContext) buildShouldNoLongerExist(playerID int, alias string) error {
	build, err := c.findBuild(playerID, alias)
	if err != nil {
		return err
	}
	if build != nil {
		return fmt.Errorf("expected %s to be deleted, found level %d", alias, build.Level)
	}
	return nil
}

func (c *fortContext) playerShouldHave(playerID, expected int, name string) error {
	resp, err := c.mediator.Send(context.Background(), &fortQueries.GetWalletQuery{PlayerID: playerID})
	if err != nil {
		return fmt.Errorf("failed to read wallet: %w", err)
	}

	wallet := resp.(*fortQueries.GetWalletResponse)
	actual, ok := wallet.Currencies[name]
	if !ok {
		actual = wallet.Materials[name]
	}
	if actual != expected {
		return fmt.Errorf("expected %d %s, got %d", expected, name, actual)
	}
	return nil
}

func (c *fortContext) missionProgressShouldBe(playerID int, event string, expected int) error {
	pid, err := shared.NewPlayerID(playerID)
	if err != nil {
		return err
	}

	if event != persistence.MissionEventFortLevelup {
		plantID, err := fort.ParsePlantID(event)
		if err != nil {
			return err
		}
		event = persistence.PlantUpgradedEvent(plantID)
	}

	actual, err := c.repos.Missions.Progress(context.Background(), pid, event)
	if err != nil {
		return fmt.Errorf("failed to read mission progress: %w", err)
	}
	if actual != expected {
		return fmt.Errorf("expected %s progress %d, got %d", event, expected, actual)
	}
	return nil
}

// eachRow calls fn for every data row of table
func eachRow(table *godog.Table, fn func(row *messages.PickleTableRow) error) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("table must have header and data rows")
	}
	for _, row := range table.Rows[1:] {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

// getCellValueFromTable gets a cell value from a table row by column name
// It uses the first row (table.Rows[0]) as the header to find the column index
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}

// InitializeFortScenario registers the fort scheduling steps
func InitializeFortScenario(ctx *godog.ScenarioContext) {
	fortCtx := &fortContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, fortCtx.reset()
	})

	// Setup steps
	ctx.Step(`^the clock is at "([^"]*)"$`, fortCtx.theClockIsAt)
	ctx.Step(`^player (\d+) has the wallet:$`, fortCtx.playerHasTheWallet)
	ctx.Step(`^player (\d+) has the materials:$`, fortCtx.playerHasTheMaterials)
	ctx.Step(`^player (\d+) has placed a "([^"]*)" named "([^"]*)"$`, fortCtx.playerHasPlaced)
	ctx.Step(`^player (\d+) has started upgrading "([^"]*)"$`, fortCtx.playerHasStartedUpgrading)

	// Command steps
	ctx.Step(`^player (\d+) places a "([^"]*)" named "([^"]*)"$`, fortCtx.playerPlaces)
	ctx.Step(`^player (\d+) starts upgrading "([^"]*)"$`, fortCtx.playerStartsUpgrading)
	ctx.Step(`^player (\d+) ends the upgrade of "([^"]*)"$`, fortCtx.playerEndsTheUpgradeOf)
	ctx.Step(`^player (\d+) cancels the upgrade of "([^"]*)"$`, fortCtx.playerCancelsTheUpgradeOf)
	ctx.Step(`^player (\d+) cancels the construction of "([^"]*)"$`, fortCtx.playerCancelsTheConstructionOf)
	ctx.Step(`^player (\d+) finishes "([^"]*)" at once with "([^"]*)"$`, fortCtx.playerFinishesAtOnceWith)
	ctx.Step(`^player (\d+) hires a carpenter with "([^"]*)"$`, fortCtx.playerHiresACarpenterWith)
	ctx.Step(`^(\d+) (seconds?|minutes?) pass(?:es)?$`, fortCtx.timePasses)

	// Assertion steps
	ctx.Step(`^the command should succeed$`, fortCtx.theCommandShouldSucceed)
	ctx.Step(`^the command should fail with result code "([^"]*)"$`, fortCtx.theCommandShouldFailWithResultCode)
	ctx.Step(`^the command should be rejected as an invalid operation$`, fortCtx.theCommandShouldBeRejectedAsAnInvalidOperation)
	ctx.Step(`^the command should cost (\d+)$`, fortCtx.theCommandShouldCost)
	ctx.Step(`^player (\d+) should have (\d+) of (\d+) carpenters working$`, fortCtx.playerShouldHaveCarpentersWorking)
	ctx.Step(`^player (\d+) should see "([^"]*)" at level (\d+) with status "([^"]*)"$`, fortCtx.buildShouldBeAtLevelWithStatus)
	ctx.Step(`^player (\d+) should no longer have "([^"]*)"$`, fortCtx.buildShouldNoLongerExist)
	ctx.Step(`^player (\d+) should have (\d+) "([^"]*)"$`, fortCtx.playerShouldHave)
	ctx.Step(`^player (\d+) mission progress for "([^"]*)" should be (\d+)$`, fortCtx.missionProgressShouldBe)
}
