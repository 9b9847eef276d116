package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/commands"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
	"github.com/gmcclure382/DragaliaAPI/test/helpers"
)

var testNow = time.Date(2023, 4, 18, 18, 32, 34, 0, time.UTC)

func newFixture() (*helpers.FortMocks, *helpers.MockUnitOfWork, *services.SchedulerFactory, *shared.MockClock) {
	mocks := helpers.NewFortMocks()
	uow := helpers.NewMockUnitOfWork(mocks.Store())
	clock := shared.NewMockClock(testNow)
	factory := services.NewSchedulerFactory(fort.MustDefaultCatalog(), clock, services.DefaultSchedulerOptions())
	return mocks, uow, factory, clock
}

func TestBuildStartHandler_ReturnsPlacedBuild(t *testing.T) {
	// Arrange
	mocks, uow, factory, _ := newFixture()
	handler := commands.NewBuildStartHandler(uow, factory)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.BuildStartCommand{
		PlayerID:  1,
		PlantID:   int(fort.PlantBlueFlowers),
		PositionX: 2,
		PositionZ: 3,
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.BuildResponse)
	assert.Equal(t, "BLUE_FLOWERS", result.Build.PlantName)
	assert.Equal(t, 0, result.Build.Level)
	assert.Equal(t, 10100100, result.Build.FortPlantDetailID)
	assert.Equal(t, "NEUTRAL", result.Build.BuildStatus)
	assert.True(t, result.Build.IsNew)
	assert.Equal(t, 2, result.Carpenter.CarpenterNum)
	assert.Equal(t, 0, result.Carpenter.WorkingCarpenterNum)
	assert.Equal(t, 1, uow.Runs())
	assert.Len(t, mocks.Payments.Calls(), 1)
}

func TestLevelupStartHandler_ReportsWorkingCarpenter(t *testing.T) {
	mocks, uow, factory, _ := newFixture()
	id := mocks.Forts.Seed(fort.ReconstructBuild(0, shared.MustNewPlayerID(1), fort.PlantDragonata, 20, 0, 0, nil, false))
	handler := commands.NewLevelupStartHandler(uow, factory)

	resp, err := handler.Handle(context.Background(), &commands.LevelupStartCommand{PlayerID: 1, BuildID: int64(id)})

	require.NoError(t, err)
	result := resp.(*commands.BuildResponse)
	assert.Equal(t, "LEVEL_UP", result.Build.BuildStatus)
	assert.Equal(t, 10060121, result.Build.FortPlantDetailID)
	assert.Equal(t, int64(21600), result.Build.RemainTime)
	assert.Equal(t, testNow.Unix(), result.Build.BuildStartDate)
	assert.Equal(t, 1, result.Carpenter.WorkingCarpenterNum)
}

func TestLevelupAtOnceHandler_ParsesPaymentType(t *testing.T) {
	mocks, uow, factory, _ := newFixture()
	window := &fort.BuildWindow{Start: testNow, End: testNow.Add(7 * 24 * time.Hour)}
	id := mocks.Forts.Seed(fort.ReconstructBuild(0, shared.MustNewPlayerID(1), fort.PlantSmithy, 2, 0, 0, window, false))
	handler := commands.NewLevelupAtOnceHandler(uow, factory)

	resp, err := handler.Handle(context.Background(), &commands.LevelupAtOnceCommand{
		PlayerID:    1,
		BuildID:     int64(id),
		PaymentType: "wyrmite",
	})

	require.NoError(t, err)
	result := resp.(*commands.LevelupAtOnceResponse)
	assert.Equal(t, 840, result.Cost)
	assert.Equal(t, 3, result.Build.Level)
	assert.Equal(t, 0, result.Carpenter.WorkingCarpenterNum)
	assert.Equal(t, 1, mocks.Missions.Levelups())
}

func TestLevelupAtOnceHandler_UnknownPaymentType(t *testing.T) {
	_, uow, factory, _ := newFixture()
	handler := commands.NewLevelupAtOnceHandler(uow, factory)

	_, err := handler.Handle(context.Background(), &commands.LevelupAtOnceCommand{PlayerID: 1, BuildID: 1, PaymentType: "gold"})

	assert.ErrorContains(t, err, "invalid payment type")
	assert.Zero(t, uow.Runs())
}

func TestEndLevelupHandler_UsesSingleInstantPerUnitOfWork(t *testing.T) {
	mocks, uow, factory, clock := newFixture()
	window := &fort.BuildWindow{Start: testNow, End: testNow.Add(time.Minute)}
	id := mocks.Forts.Seed(fort.ReconstructBuild(0, shared.MustNewPlayerID(1), fort.PlantSmithy, 2, 0, 0, window, false))
	handler := commands.NewEndLevelupHandler(uow, factory)

	_, err := handler.Handle(context.Background(), &commands.EndLevelupCommand{PlayerID: 1, BuildID: int64(id)})
	assert.ErrorIs(t, err, shared.ErrInvalidOperation)

	clock.Advance(time.Minute)
	resp, err := handler.Handle(context.Background(), &commands.EndLevelupCommand{PlayerID: 1, BuildID: int64(id)})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.(*commands.BuildResponse).Build.Level)
}

func TestCancelBuildHandler_DeletesPlacement(t *testing.T) {
	mocks, uow, factory, _ := newFixture()
	id := mocks.Forts.Seed(fort.NewBuild(shared.MustNewPlayerID(1), fort.PlantBlueFlowers, 1, 1))
	handler := commands.NewCancelBuildHandler(uow, factory)

	resp, err := handler.Handle(context.Background(), &commands.CancelBuildCommand{PlayerID: 1, BuildID: int64(id)})

	require.NoError(t, err)
	assert.Equal(t, int64(id), resp.(*commands.CancelBuildResponse).BuildID)
	assert.Equal(t, []fort.BuildID{id}, mocks.Forts.Deleted())
}

func TestMoveBuildHandler_RejectsInvalidIDs(t *testing.T) {
	_, uow, factory, _ := newFixture()
	handler := commands.NewMoveBuildHandler(uow, factory)

	_, err := handler.Handle(context.Background(), &commands.MoveBuildCommand{PlayerID: 0, BuildID: 1})
	assert.ErrorContains(t, err, "invalid player ID")

	_, err = handler.Handle(context.Background(), &commands.MoveBuildCommand{PlayerID: 1, BuildID: 0})
	assert.ErrorContains(t, err, "invalid build ID")

	assert.Zero(t, uow.Runs())
}

func TestAddCarpenterHandler(t *testing.T) {
	_, uow, factory, _ := newFixture()
	handler := commands.NewAddCarpenterHandler(uow, factory)

	resp, err := handler.Handle(context.Background(), &commands.AddCarpenterCommand{PlayerID: 1, PaymentType: "DIAMANTIUM"})

	require.NoError(t, err)
	result := resp.(*commands.AddCarpenterResponse)
	assert.Equal(t, 250, result.Cost)
	assert.Equal(t, 3, result.Carpenter.CarpenterNum)
}

func TestGrantHandlers(t *testing.T) {
	mocks, uow, _, _ := newFixture()

	resp, err := commands.NewGrantCurrencyHandler(uow).Handle(context.Background(), &commands.GrantCurrencyCommand{
		PlayerID: 1, PaymentType: "coin", Amount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 500, resp.(*commands.GrantCurrencyResponse).Balances["COIN"])
	assert.Equal(t, 500, mocks.Payments.Balance(fort.PaymentTypeCoin))

	mocks.Inventory.SetQuantity(fort.MaterialOak, 5)
	resp, err = commands.NewGrantMaterialHandler(uow).Handle(context.Background(), &commands.GrantMaterialCommand{
		PlayerID: 1, Material: "oak", Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.(*commands.GrantMaterialResponse).Quantities["OAK"])

	_, err = commands.NewGrantCurrencyHandler(uow).Handle(context.Background(), &commands.GrantCurrencyCommand{
		PlayerID: 1, PaymentType: "coin", Amount: 0,
	})
	assert.Error(t, err)
}

func TestHandlers_RejectWrongRequestType(t *testing.T) {
	_, uow, factory, _ := newFixture()

	_, err := commands.NewBuildStartHandler(uow, factory).Handle(context.Background(), &commands.MoveBuildCommand{})

	assert.ErrorContains(t, err, "invalid request type")
}
