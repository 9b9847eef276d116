package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// GormFortRepository implements fort.FortRepository using GORM
type GormFortRepository struct {
	db *gorm.DB
}

// NewGormFortRepository creates a new GORM fort repository
func NewGormFortRepository(db *gorm.DB) *GormFortRepository {
	return &GormFortRepository{db: db}
}

// GetBuilding retrieves one of the player's builds
func (r *GormFortRepository) GetBuilding(ctx context.Context, playerID shared.PlayerID, buildID fort.BuildID) (*fort.Build, error) {
	var model FortBuildModel
	result := r.db.WithContext(ctx).
		Where("build_id = ? AND player_id = ?", int64(buildID), playerID.Value()).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fort.NewBuildNotFoundError(buildID, playerID)
		}
		return nil, fmt.Errorf("failed to find build: %w", result.Error)
	}

	return r.modelToBuild(&model)
}

// ListBuilds retrieves every build the player owns, ordered by id
func (r *GormFortRepository) ListBuilds(ctx context.Context, playerID shared.PlayerID) ([]*fort.Build, error) {
	var models []FortBuildModel
	result := r.db.WithContext(ctx).
		Where("player_id = ?", playerID.Value()).
		Order("build_id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list builds: %w", result.Error)
	}

	builds := make([]*fort.Build, 0, len(models))
	for i := range models {
		build, err := r.modelToBuild(&models[i])
		if err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}

	return builds, nil
}

// AddBuild inserts a build and assigns the generated id
func (r *GormFortRepository) AddBuild(ctx context.Context, build *fort.Build) error {
	model := r.buildToModel(build)
	model.BuildID = 0

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add build: %w", err)
	}

	build.AssignID(fort.BuildID(model.BuildID))
	return nil
}

// UpdateBuild persists level, position, window and isNew
func (r *GormFortRepository) UpdateBuild(ctx context.Context, build *fort.Build) error {
	model := r.buildToModel(build)

	// Map form so zero values (level 0, epoch dates, is_new=false) are written
	result := r.db.WithContext(ctx).
		Model(&FortBuildModel{}).
		Where("build_id = ? AND player_id = ?", model.BuildID, model.PlayerID).
		Updates(map[string]interface{}{
			"level":            model.Level,
			"position_x":       model.PositionX,
			"position_z":       model.PositionZ,
			"build_start_date": model.BuildStartDate,
			"build_end_date":   model.BuildEndDate,
			"is_new":           model.IsNew,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update build: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fort.NewBuildNotFoundError(build.ID(), build.PlayerID())
	}

	return nil
}

// DeleteBuild removes a build
func (r *GormFortRepository) DeleteBuild(ctx context.Context, build *fort.Build) error {
	result := r.db.WithContext(ctx).
		Where("build_id = ? AND player_id = ?", int64(build.ID()), build.PlayerID().Value()).
		Delete(&FortBuildModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete build: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fort.NewBuildNotFoundError(build.ID(), build.PlayerID())
	}

	return nil
}

// GetFortDetail retrieves the player's fort detail, creating the default row on first access
func (r *GormFortRepository) GetFortDetail(ctx context.Context, playerID shared.PlayerID) (*fort.FortDetail, error) {
	model, err := r.ensureFortDetail(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &fort.FortDetail{PlayerID: playerID, CarpenterNum: model.CarpenterNum}, nil
}

// UpdateFortMaximumCarpenter sets the carpenter capacity
func (r *GormFortRepository) UpdateFortMaximumCarpenter(ctx context.Context, playerID shared.PlayerID, carpenterNum int) error {
	if _, err := r.ensureFortDetail(ctx, playerID); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&FortDetailModel{}).
		Where("player_id = ?", playerID.Value()).
		Update("carpenter_num", carpenterNum)
	if result.Error != nil {
		return fmt.Errorf("failed to update carpenter count: %w", result.Error)
	}

	return nil
}

// GetActiveCarpenters counts the player's builds with an open construction window
func (r *GormFortRepository) GetActiveCarpenters(ctx context.Context, playerID shared.PlayerID) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&FortBuildModel{}).
		Where("player_id = ? AND build_end_date <> ?", playerID.Value(), epoch).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count active carpenters: %w", result.Error)
	}

	return int(count), nil
}

// ListPlayerIDs returns every player with a fort detail row, ascending
func (r *GormFortRepository) ListPlayerIDs(ctx context.Context) ([]int, error) {
	var ids []int
	result := r.db.WithContext(ctx).
		Model(&FortDetailModel{}).
		Order("player_id ASC").
		Pluck("player_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list players: %w", result.Error)
	}

	return ids, nil
}

// ensureFortDetail returns the player's detail row, inserting the default when missing
func (r *GormFortRepository) ensureFortDetail(ctx context.Context, playerID shared.PlayerID) (*FortDetailModel, error) {
	var model FortDetailModel
	result := r.db.WithContext(ctx).Where("player_id = ?", playerID.Value()).First(&model)
	if result.Error == nil {
		return &model, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find fort detail: %w", result.Error)
	}

	model = FortDetailModel{PlayerID: playerID.Value(), CarpenterNum: fort.DefaultCarpenters}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to create fort detail: %w", err)
	}

	// Re-read in case a concurrent request inserted first
	if err := r.db.WithContext(ctx).Where("player_id = ?", playerID.Value()).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to find fort detail: %w", err)
	}

	return &model, nil
}

// modelToBuild converts database model to domain entity
func (r *GormFortRepository) modelToBuild(model *FortBuildModel) (*fort.Build, error) {
	playerID, err := shared.NewPlayerID(model.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID in database: %w", err)
	}

	var window *fort.BuildWindow
	if !model.BuildEndDate.Equal(epoch) {
		window = &fort.BuildWindow{
			Start: model.BuildStartDate.UTC(),
			End:   model.BuildEndDate.UTC(),
		}
	}

	return fort.ReconstructBuild(
		fort.BuildID(model.BuildID),
		playerID,
		fort.PlantID(model.PlantID),
		model.Level,
		model.PositionX,
		model.PositionZ,
		window,
		model.IsNew,
	), nil
}

// buildToModel converts domain entity to database model
func (r *GormFortRepository) buildToModel(build *fort.Build) *FortBuildModel {
	model := &FortBuildModel{
		BuildID:        int64(build.ID()),
		PlayerID:       build.PlayerID().Value(),
		PlantID:        int(build.PlantID()),
		Level:          build.Level(),
		PositionX:      build.PositionX(),
		PositionZ:      build.PositionZ(),
		BuildStartDate: epoch,
		BuildEndDate:   epoch,
		IsNew:          build.IsNew(),
	}

	if window, ok := build.Window(); ok {
		model.BuildStartDate = window.Start.UTC()
		model.BuildEndDate = window.End.UTC()
	}

	return model
}
