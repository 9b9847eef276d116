package fort

import (
	"context"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// FortRepository persists a player's builds and fort detail
type FortRepository interface {
	// GetBuilding returns the build or a CommonDataNotFound domain error
	GetBuilding(ctx context.Context, playerID shared.PlayerID, buildID BuildID) (*Build, error)

	// ListBuilds returns every build the player owns, ordered by id
	ListBuilds(ctx context.Context, playerID shared.PlayerID) ([]*Build, error)

	// AddBuild stores a new build and assigns its id
	AddBuild(ctx context.Context, build *Build) error

	// UpdateBuild persists level, position and window changes
	UpdateBuild(ctx context.Context, build *Build) error

	// DeleteBuild removes the build
	DeleteBuild(ctx context.Context, build *Build) error

	// GetFortDetail returns the player's fort detail, creating the default on first access
	GetFortDetail(ctx context.Context, playerID shared.PlayerID) (*FortDetail, error)

	// UpdateFortMaximumCarpenter sets the carpenter capacity
	UpdateFortMaximumCarpenter(ctx context.Context, playerID shared.PlayerID, carpenterNum int) error

	// GetActiveCarpenters counts builds with an open construction window
	GetActiveCarpenters(ctx context.Context, playerID shared.PlayerID) (int, error)
}

// PaymentService debits a currency from the player's wallet
type PaymentService interface {
	// ProcessPayment charges amount of paymentType; fails with ShopInsufficientFunds
	ProcessPayment(ctx context.Context, playerID shared.PlayerID, paymentType PaymentType, amount int) error
}

// Wallet credits and reads a player's currency balances
type Wallet interface {
	// Grant adds amount of paymentType; amount must be positive
	Grant(ctx context.Context, playerID shared.PlayerID, paymentType PaymentType, amount int) error

	// Balances returns every currency the player holds
	Balances(ctx context.Context, playerID shared.PlayerID) (map[PaymentType]int, error)
}

// InventoryRepository applies material deltas
type InventoryRepository interface {
	// UpdateQuantity adds each delta; a negative result fails with CommonMaterialShort
	UpdateQuantity(ctx context.Context, playerID shared.PlayerID, deltas map[Material]int) error

	// Quantities returns every material count the player holds
	Quantities(ctx context.Context, playerID shared.PlayerID) (map[Material]int, error)
}

// MissionProgression receives fort events. Calls do not fail the operation.
type MissionProgression interface {
	OnFortPlantUpgraded(ctx context.Context, playerID shared.PlayerID, plantID PlantID, level int)
	OnFortLevelup(ctx context.Context, playerID shared.PlayerID)
}

// Store bundles the collaborators bound to one unit of work
type Store struct {
	Forts     FortRepository
	Payments  PaymentService
	Wallet    Wallet
	Inventory InventoryRepository
	Missions  MissionProgression
}

// UnitOfWork runs fn with collaborators that commit together or not at all.
// Implementations serialize units of work for the same player.
type UnitOfWork interface {
	Execute(ctx context.Context, playerID shared.PlayerID, fn func(ctx context.Context, store Store) error) error
}
