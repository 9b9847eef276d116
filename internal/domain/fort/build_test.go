package fort_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

var testNow = time.Date(2023, 4, 18, 18, 32, 34, 0, time.UTC)

func inProgressBuild(level int, start, end time.Time) *fort.Build {
	return fort.ReconstructBuild(
		1,
		shared.MustNewPlayerID(1),
		fort.PlantSmithy,
		level,
		2, 3,
		&fort.BuildWindow{Start: start, End: end},
		false,
	)
}

func TestNewBuild_PlacedIdleAtLevelZero(t *testing.T) {
	b := fort.NewBuild(shared.MustNewPlayerID(1), fort.PlantBlueFlowers, 2, 3)

	assert.Equal(t, 0, b.Level())
	assert.True(t, b.IsIdle())
	assert.True(t, b.IsNew())
	assert.False(t, b.OccupiesCarpenter())
	assert.Equal(t, 2, b.PositionX())
	assert.Equal(t, 3, b.PositionZ())
	assert.Equal(t, fort.BuildStateIdle, b.State(testNow))
}

func TestBuild_State(t *testing.T) {
	b := inProgressBuild(3, testNow, testNow.Add(time.Hour))

	assert.Equal(t, fort.BuildStateInProgress, b.State(testNow))
	assert.Equal(t, fort.BuildStateInProgress, b.State(testNow.Add(59*time.Minute)))
	assert.Equal(t, fort.BuildStateCompletable, b.State(testNow.Add(time.Hour)))
	assert.Equal(t, fort.BuildStateCompletable, b.State(testNow.Add(2*time.Hour)))
	assert.True(t, b.OccupiesCarpenter(), "completable builds keep their carpenter")
}

func TestBuild_StartLevelup_OpensWindow(t *testing.T) {
	b := fort.ReconstructBuild(1, shared.MustNewPlayerID(1), fort.PlantDragonata, 20, 0, 0, nil, false)

	require.NoError(t, b.StartLevelup(testNow, 21600*time.Second))

	w, ok := b.Window()
	require.True(t, ok)
	assert.Equal(t, testNow, w.Start)
	assert.Equal(t, testNow.Add(6*time.Hour), w.End)
	assert.Equal(t, 20, b.Level())
}

func TestBuild_StartLevelup_AlreadyBuilding(t *testing.T) {
	b := inProgressBuild(3, testNow, testNow.Add(time.Hour))

	err := b.StartLevelup(testNow, time.Hour)

	assert.True(t, errors.Is(err, shared.ErrInvalidOperation))
}

func TestBuild_CompleteLevelup(t *testing.T) {
	b := inProgressBuild(2, testNow.Add(-time.Hour), testNow.Add(-time.Minute))

	require.NoError(t, b.CompleteLevelup(testNow))

	assert.Equal(t, 3, b.Level())
	assert.True(t, b.IsIdle())
}

func TestBuild_CompleteLevelup_AtExactEnd(t *testing.T) {
	b := inProgressBuild(2, testNow.Add(-time.Hour), testNow)

	require.NoError(t, b.CompleteLevelup(testNow))
	assert.Equal(t, 3, b.Level())
}

func TestBuild_CompleteLevelup_NotComplete(t *testing.T) {
	end := testNow.Add(time.Second)
	b := inProgressBuild(2, testNow, end)

	err := b.CompleteLevelup(testNow)

	assert.True(t, errors.Is(err, shared.ErrInvalidOperation))
	assert.Equal(t, 2, b.Level())
	w, ok := b.Window()
	require.True(t, ok)
	assert.Equal(t, end, w.End)
}

func TestBuild_CompleteLevelup_Twice(t *testing.T) {
	b := inProgressBuild(2, testNow.Add(-time.Hour), testNow.Add(-time.Minute))
	require.NoError(t, b.CompleteLevelup(testNow))

	err := b.CompleteLevelup(testNow)

	assert.True(t, errors.Is(err, shared.ErrInvalidOperation))
	assert.Equal(t, 3, b.Level(), "second resolution must not increment again")
}

func TestBuild_CompleteLevelupNow_IgnoresRemainingTime(t *testing.T) {
	b := inProgressBuild(5, testNow, testNow.Add(7*24*time.Hour))

	require.NoError(t, b.CompleteLevelupNow())

	assert.Equal(t, 6, b.Level())
	assert.True(t, b.IsIdle())
}

func TestBuild_CancelLevelup(t *testing.T) {
	b := inProgressBuild(2, testNow, testNow.Add(24*time.Hour))

	require.NoError(t, b.CancelLevelup())

	assert.Equal(t, 2, b.Level())
	assert.True(t, b.IsIdle())
}

func TestBuild_CancelLevelup_Idle(t *testing.T) {
	b := fort.ReconstructBuild(1, shared.MustNewPlayerID(1), fort.PlantSmithy, 3, 0, 0, nil, false)

	err := b.CancelLevelup()

	assert.True(t, errors.Is(err, shared.ErrInvalidOperation))
	assert.Equal(t, 3, b.Level())
	assert.True(t, b.IsIdle())
}

func TestBuild_CancelBuild_RequiresLevelZero(t *testing.T) {
	b := inProgressBuild(1, testNow, testNow.Add(time.Hour))

	err := b.CancelBuild()

	assert.True(t, errors.Is(err, shared.ErrInvalidOperation))
	assert.False(t, b.IsIdle())
}

func TestBuild_MoveTo_IgnoresState(t *testing.T) {
	b := inProgressBuild(20, testNow, testNow.Add(time.Hour))

	b.MoveTo(4, 5)

	assert.Equal(t, 4, b.PositionX())
	assert.Equal(t, 5, b.PositionZ())
	assert.Equal(t, fort.BuildStateInProgress, b.State(testNow))
}

func TestBuild_StatusAndDetailID(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		window     *fort.BuildWindow
		wantStatus fort.BuildStatus
		wantDetail int
	}{
		{"idle", 5, nil, fort.BuildStatusNeutral, 10030105},
		{"levelling", 5, &fort.BuildWindow{Start: testNow, End: testNow.Add(time.Second)}, fort.BuildStatusLevelUp, 10030106},
		{"first construction", 0, &fort.BuildWindow{Start: testNow, End: testNow.Add(time.Second)}, fort.BuildStatusConstruction, 10030101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := fort.ReconstructBuild(4, shared.MustNewPlayerID(1), fort.PlantDragontree, tt.level, 0, 0, tt.window, false)
			assert.Equal(t, tt.wantStatus, b.Status())
			assert.Equal(t, tt.wantDetail, b.DetailID())
		})
	}
}

func TestBuild_RemainingTime(t *testing.T) {
	b := inProgressBuild(1, testNow, testNow.Add(90*time.Second))

	assert.Equal(t, 90*time.Second, b.RemainingTime(testNow))
	assert.Equal(t, time.Duration(0), b.RemainingTime(testNow.Add(2*time.Minute)))
}
