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

// NewGormStore binds every fort collaborator to db
func NewGormStore(db *gorm.DB, clock shared.Clock) fort.Store {
	wallet := NewGormWalletRepository(db, clock)
	return fort.Store{
		Forts:     NewGormFortRepository(db),
		Payments:  wallet,
		Wallet:    wallet,
		Inventory: NewGormMaterialRepository(db),
		Missions:  NewGormMissionProgression(db),
	}
}

// GormUnitOfWork implements fort.UnitOfWork with one database transaction per call.
//
// On PostgreSQL the player's fort_details row is locked FOR UPDATE, serializing units of
// work for the same player. SQLite connections are limited to a single writer, which
// serializes every unit of work.
type GormUnitOfWork struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormUnitOfWork creates a new GORM unit of work
func NewGormUnitOfWork(db *gorm.DB, clock shared.Clock) *GormUnitOfWork {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormUnitOfWork{db: db, clock: clock}
}

// Execute runs fn inside a transaction; any error rolls every write back
func (u *GormUnitOfWork) Execute(ctx context.Context, playerID shared.PlayerID, fn func(ctx context.Context, store fort.Store) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPlayer(tx, playerID); err != nil {
			return err
		}
		return fn(ctx, NewGormStore(tx, u.clock))
	})
}

// lockPlayer ensures the player's fort_details row exists and holds its row lock
func lockPlayer(tx *gorm.DB, playerID shared.PlayerID) error {
	detail := FortDetailModel{PlayerID: playerID.Value(), CarpenterNum: fort.DefaultCarpenters}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&detail).Error; err != nil {
		return fmt.Errorf("failed to create fort detail: %w", err)
	}

	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var locked FortDetailModel
	if err := query.Where("player_id = ?", playerID.Value()).First(&locked).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("fort detail for player %d vanished during lock", playerID.Value())
		}
		return fmt.Errorf("failed to lock fort detail: %w", err)
	}

	return nil
}
