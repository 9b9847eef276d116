package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/types"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

func TestNewBuildDTO_LevellingDragontree(t *testing.T) {
	now := time.Date(2023, 4, 18, 18, 0, 0, 0, time.UTC)
	window := &fort.BuildWindow{Start: now.Add(-time.Hour), End: now.Add(90*time.Minute + 500*time.Millisecond)}
	build := fort.ReconstructBuild(3, shared.MustNewPlayerID(1), fort.PlantDragontree, 5, 2, 3, window, false)

	dto := types.NewBuildDTO(build, now)

	assert.Equal(t, int64(3), dto.BuildID)
	assert.Equal(t, 10030106, dto.FortPlantDetailID)
	assert.Equal(t, "LEVEL_UP", dto.BuildStatus)
	assert.Equal(t, window.Start.Unix(), dto.BuildStartDate)
	assert.Equal(t, int64(90*60+1), dto.RemainTime)
}

func TestNewBuildDTO_IdleHasZeroDates(t *testing.T) {
	build := fort.ReconstructBuild(4, shared.MustNewPlayerID(1), fort.PlantSmithy, 2, 0, 0, nil, true)

	dto := types.NewBuildDTO(build, time.Now())

	assert.Equal(t, "NEUTRAL", dto.BuildStatus)
	assert.Equal(t, 10040102, dto.FortPlantDetailID)
	assert.Zero(t, dto.BuildStartDate)
	assert.Zero(t, dto.BuildEndDate)
	assert.Zero(t, dto.RemainTime)
	assert.True(t, dto.IsNew)
}
