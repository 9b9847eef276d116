package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/persistence"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
	"github.com/gmcclure382/DragaliaAPI/test/helpers"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestFortRepository_AddAndGetBuilding(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	playerID := shared.MustNewPlayerID(1)

	build := fort.NewBuild(playerID, fort.PlantDragontree, 10, 14)

	// Act
	err := repo.AddBuild(ctx, build)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, build.ID())

	found, err := repo.GetBuilding(ctx, playerID, build.ID())
	require.NoError(t, err)
	assert.Equal(t, fort.PlantDragontree, found.PlantID())
	assert.Equal(t, 0, found.Level())
	assert.Equal(t, 10, found.PositionX())
	assert.Equal(t, 14, found.PositionZ())
	assert.True(t, found.IsNew())
	assert.True(t, found.IsIdle(), "epoch dates must load as an idle build")
}

func TestFortRepository_StoresIdleBuildAsEpoch(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	playerID := shared.MustNewPlayerID(1)

	build := fort.NewBuild(playerID, fort.PlantSmithy, 0, 0)
	require.NoError(t, repo.AddBuild(ctx, build))

	var model persistence.FortBuildModel
	require.NoError(t, db.Where("build_id = ?", int64(build.ID())).First(&model).Error)

	assert.True(t, model.BuildStartDate.Equal(time.Unix(0, 0)))
	assert.True(t, model.BuildEndDate.Equal(time.Unix(0, 0)))
}

func TestFortRepository_UpdateBuildRoundTripsWindow(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	playerID := shared.MustNewPlayerID(1)

	build := fort.NewBuild(playerID, fort.PlantDragonata, 2, 3)
	require.NoError(t, repo.AddBuild(ctx, build))

	require.NoError(t, build.StartLevelup(testNow, 6*time.Hour))
	build.MoveTo(7, 8)
	require.NoError(t, repo.UpdateBuild(ctx, build))

	found, err := repo.GetBuilding(ctx, playerID, build.ID())
	require.NoError(t, err)

	window, ok := found.Window()
	require.True(t, ok)
	assert.True(t, window.Start.Equal(testNow))
	assert.True(t, window.End.Equal(testNow.Add(6*time.Hour)))
	assert.Equal(t, 7, found.PositionX())
	assert.Equal(t, 8, found.PositionZ())

	// Resolving writes the sentinel back
	require.NoError(t, found.CompleteLevelup(testNow.Add(6*time.Hour)))
	require.NoError(t, repo.UpdateBuild(ctx, found))

	resolved, err := repo.GetBuilding(ctx, playerID, build.ID())
	require.NoError(t, err)
	assert.True(t, resolved.IsIdle())
	assert.Equal(t, 1, resolved.Level())
}

func TestFortRepository_GetBuildingNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)

	_, err := repo.GetBuilding(context.Background(), shared.MustNewPlayerID(1), fort.BuildID(999))

	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.ResultCodeCommonDataNotFound))
}

func TestFortRepository_BuildsAreScopedToOwner(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	owner := shared.MustNewPlayerID(1)
	other := shared.MustNewPlayerID(2)

	build := fort.NewBuild(owner, fort.PlantRupieMine, 1, 1)
	require.NoError(t, repo.AddBuild(ctx, build))

	_, err := repo.GetBuilding(ctx, other, build.ID())
	assert.True(t, shared.HasCode(err, shared.ResultCodeCommonDataNotFound))

	builds, err := repo.ListBuilds(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, builds)
}

func TestFortRepository_ListBuildsOrderedByID(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	playerID := shared.MustNewPlayerID(1)

	for _, plant := range []fort.PlantID{fort.PlantSmithy, fort.PlantDragontree, fort.PlantFlameAltar} {
		require.NoError(t, repo.AddBuild(ctx, fort.NewBuild(playerID, plant, 0, 0)))
	}

	builds, err := repo.ListBuilds(ctx, playerID)

	require.NoError(t, err)
	require.Len(t, builds, 3)
	assert.Equal(t, fort.PlantSmithy, builds[0].PlantID())
	assert.Equal(t, fort.PlantDragontree, builds[1].PlantID())
	assert.Equal(t, fort.PlantFlameAltar, builds[2].PlantID())
	assert.Less(t, builds[0].ID(), builds[1].ID())
	assert.Less(t, builds[1].ID(), builds[2].ID())
}

func TestFortRepository_DeleteBuild(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	playerID := shared.MustNewPlayerID(1)

	build := fort.NewBuild(playerID, fort.PlantWaterAltar, 0, 0)
	require.NoError(t, repo.AddBuild(ctx, build))

	require.NoError(t, repo.DeleteBuild(ctx, build))

	_, err := repo.GetBuilding(ctx, playerID, build.ID())
	assert.True(t, shared.HasCode(err, shared.ResultCodeCommonDataNotFound))

	// Deleting twice reports the missing row
	err = repo.DeleteBuild(ctx, build)
	assert.True(t, shared.HasCode(err, shared.ResultCodeCommonDataNotFound))
}

func TestFortRepository_GetActiveCarpentersCountsOpenWindows(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	playerID := shared.MustNewPlayerID(1)

	idle := fort.NewBuild(playerID, fort.PlantSmithy, 0, 0)
	running := fort.NewBuild(playerID, fort.PlantDragontree, 1, 0)
	elapsed := fort.NewBuild(playerID, fort.PlantFlameAltar, 2, 0)
	for _, b := range []*fort.Build{idle, running, elapsed} {
		require.NoError(t, repo.AddBuild(ctx, b))
	}

	require.NoError(t, running.StartLevelup(testNow, time.Hour))
	require.NoError(t, repo.UpdateBuild(ctx, running))
	// A window that has already elapsed still holds its carpenter
	require.NoError(t, elapsed.StartLevelup(testNow.Add(-2*time.Hour), time.Hour))
	require.NoError(t, repo.UpdateBuild(ctx, elapsed))

	// Another player's open window is not counted
	foreign := fort.NewBuild(shared.MustNewPlayerID(2), fort.PlantSmithy, 0, 0)
	require.NoError(t, repo.AddBuild(ctx, foreign))
	require.NoError(t, foreign.StartLevelup(testNow, time.Hour))
	require.NoError(t, repo.UpdateBuild(ctx, foreign))

	active, err := repo.GetActiveCarpenters(ctx, playerID)

	require.NoError(t, err)
	assert.Equal(t, 2, active)
}

func TestFortRepository_FortDetailDefaultsAndUpdate(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()
	playerID := shared.MustNewPlayerID(5)

	detail, err := repo.GetFortDetail(ctx, playerID)
	require.NoError(t, err)
	assert.Equal(t, fort.DefaultCarpenters, detail.CarpenterNum)

	require.NoError(t, repo.UpdateFortMaximumCarpenter(ctx, playerID, 3))

	detail, err = repo.GetFortDetail(ctx, playerID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.CarpenterNum)
}

func TestFortRepository_ListPlayerIDs(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormFortRepository(db)
	ctx := context.Background()

	for _, id := range []int{3, 1, 2} {
		_, err := repo.GetFortDetail(ctx, shared.MustNewPlayerID(id))
		require.NoError(t, err)
	}

	ids, err := repo.ListPlayerIDs(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
}
