package fort_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

func TestDefaultCatalog_Loads(t *testing.T) {
	c, err := fort.DefaultCatalog()
	require.NoError(t, err)

	assert.Contains(t, c.Plants(), fort.PlantDragonata)
	assert.Equal(t, 1, c.MaxLevel(fort.PlantBlueFlowers))
}

func TestCatalog_DragonataLevel21(t *testing.T) {
	c := fort.MustDefaultCatalog()

	d, err := c.NextLevel(fort.PlantDragonata, 20)
	require.NoError(t, err)

	assert.Equal(t, 21, d.Level)
	assert.Equal(t, 3200, d.Cost)
	assert.Equal(t, 21600*time.Second, d.BuildTime)
	assert.Equal(t, map[fort.Material]int{fort.MaterialPapiermache: -350}, d.MaterialDeltas())
}

func TestCatalog_BlueFlowersPlacement(t *testing.T) {
	d, err := fort.MustDefaultCatalog().Detail(fort.PlantBlueFlowers, 1)
	require.NoError(t, err)

	assert.Equal(t, 300, d.Cost)
	assert.Empty(t, d.Materials)
}

func TestCatalog_NextLevel_AtMax(t *testing.T) {
	_, err := fort.MustDefaultCatalog().NextLevel(fort.PlantBlueFlowers, 1)

	assert.True(t, shared.HasCode(err, shared.ResultCodeFortLevelMax))
}

func TestCatalog_UnknownPlant(t *testing.T) {
	_, err := fort.MustDefaultCatalog().NextLevel(fort.PlantID(999999), 0)

	assert.True(t, shared.HasCode(err, shared.ResultCodeCommonDataNotFound))
}

func TestParseCatalog_RejectsGaps(t *testing.T) {
	data := []byte(`[
		{"plant_id": 1, "level": 1, "cost": 10, "time": 60, "materials": []},
		{"plant_id": 1, "level": 3, "cost": 30, "time": 60, "materials": []}
	]`)

	_, err := fort.ParseCatalog(data)

	assert.ErrorContains(t, err, "missing level 2")
}

func TestParseCatalog_RejectsNonPositiveTime(t *testing.T) {
	data := []byte(`[{"plant_id": 1, "level": 1, "cost": 10, "time": 0, "materials": []}]`)

	_, err := fort.ParseCatalog(data)

	assert.Error(t, err)
}
