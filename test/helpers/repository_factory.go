package helpers

import (
	"gorm.io/gorm"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/persistence"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// TestRepositories holds all real repository instances for integration tests
type TestRepositories struct {
	DB         *gorm.DB
	Forts      *persistence.GormFortRepository
	Wallet     *persistence.GormWalletRepository
	Materials  *persistence.GormMaterialRepository
	Missions   *persistence.GormMissionProgression
	UnitOfWork *persistence.GormUnitOfWork
}

// NewTestRepositories creates all real repository instances over db
// clock is used for ledger timestamps (usually a MockClock in tests)
func NewTestRepositories(db *gorm.DB, clock shared.Clock) *TestRepositories {
	return &TestRepositories{
		DB:         db,
		Forts:      persistence.NewGormFortRepository(db),
		Wallet:     persistence.NewGormWalletRepository(db, clock),
		Materials:  persistence.NewGormMaterialRepository(db),
		Missions:   persistence.NewGormMissionProgression(db),
		UnitOfWork: persistence.NewGormUnitOfWork(db, clock),
	}
}
