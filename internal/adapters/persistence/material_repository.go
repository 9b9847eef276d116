package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// GormMaterialRepository implements fort.InventoryRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GORM material repository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// UpdateQuantity adds every delta. All deltas are checked before any row is written,
// so a shortfall leaves the inventory untouched.
func (r *GormMaterialRepository) UpdateQuantity(ctx context.Context, playerID shared.PlayerID, deltas map[fort.Material]int) error {
	if len(deltas) == 0 {
		return nil
	}

	materials := make([]fort.Material, 0, len(deltas))
	for material := range deltas {
		materials = append(materials, material)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i] < materials[j] })

	current := make(map[fort.Material]int, len(materials))
	for _, material := range materials {
		quantity, err := r.quantity(ctx, playerID, material)
		if err != nil {
			return err
		}
		if quantity+deltas[material] < 0 {
			return fort.NewMaterialShortError(material, -deltas[material], quantity)
		}
		current[material] = quantity
	}

	for _, material := range materials {
		model := &MaterialModel{
			PlayerID:   playerID.Value(),
			MaterialID: int(material),
			Quantity:   current[material] + deltas[material],
		}
		if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
			return fmt.Errorf("failed to update material %s: %w", material, err)
		}
	}

	return nil
}

// Quantities returns every material row the player holds
func (r *GormMaterialRepository) Quantities(ctx context.Context, playerID shared.PlayerID) (map[fort.Material]int, error) {
	var models []MaterialModel
	if err := r.db.WithContext(ctx).Where("player_id = ?", playerID.Value()).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	quantities := make(map[fort.Material]int, len(models))
	for _, model := range models {
		quantities[fort.Material(model.MaterialID)] = model.Quantity
	}
	return quantities, nil
}

func (r *GormMaterialRepository) quantity(ctx context.Context, playerID shared.PlayerID, material fort.Material) (int, error) {
	var model MaterialModel
	result := r.db.WithContext(ctx).
		Where("player_id = ? AND material_id = ?", playerID.Value(), int(material)).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to find material %s: %w", material, result.Error)
	}
	return model.Quantity, nil
}
