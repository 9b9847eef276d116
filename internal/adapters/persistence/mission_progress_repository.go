package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/metrics"
	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

const (
	// MissionEventFortLevelup counts every resolved fort levelup
	MissionEventFortLevelup = "FORT_LEVELUP"
	// missionEventPlantUpgradedPrefix is followed by the plant name
	missionEventPlantUpgradedPrefix = "FORT_PLANT_UPGRADED:"
)

// PlantUpgradedEvent returns the mission event key for plantID
func PlantUpgradedEvent(plantID fort.PlantID) string {
	return missionEventPlantUpgradedPrefix + plantID.String()
}

// GormMissionProgression implements fort.MissionProgression by persisting event counters.
// A failed write is logged and never fails the fort operation that emitted it.
type GormMissionProgression struct {
	db *gorm.DB
}

// NewGormMissionProgression creates a new mission progression recorder
func NewGormMissionProgression(db *gorm.DB) *GormMissionProgression {
	return &GormMissionProgression{db: db}
}

// OnFortPlantUpgraded records that plantID reached level
func (r *GormMissionProgression) OnFortPlantUpgraded(ctx context.Context, playerID shared.PlayerID, plantID fort.PlantID, level int) {
	r.increment(ctx, playerID, PlantUpgradedEvent(plantID), level)
}

// OnFortLevelup records one fort levelup
func (r *GormMissionProgression) OnFortLevelup(ctx context.Context, playerID shared.PlayerID) {
	r.increment(ctx, playerID, MissionEventFortLevelup, 0)
}

// Progress returns the counter for event, zero when never recorded
func (r *GormMissionProgression) Progress(ctx context.Context, playerID shared.PlayerID, event string) (int, error) {
	var model MissionProgressModel
	result := r.db.WithContext(ctx).
		Where("player_id = ? AND event = ?", playerID.Value(), event).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to find mission progress: %w", result.Error)
	}
	return model.Count, nil
}

func (r *GormMissionProgression) increment(ctx context.Context, playerID shared.PlayerID, event string, value int) {
	// Nested transaction becomes a savepoint, so a failed write cannot poison the enclosing unit of work
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model MissionProgressModel
		result := tx.Where("player_id = ? AND event = ?", playerID.Value(), event).First(&model)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		model.PlayerID = playerID.Value()
		model.Event = event
		model.Count++
		if value > model.LastValue {
			model.LastValue = value
		}
		return tx.Save(&model).Error
	})
	if err != nil {
		logging.LoggerFromContext(ctx).Log("ERROR", "Failed to record mission progress", map[string]interface{}{
			"player_id": playerID.Value(),
			"event":     event,
			"error":     err.Error(),
		})
		return
	}

	metrics.RecordMissionEvent(event)
}
