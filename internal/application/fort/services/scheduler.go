package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// SchedulerOptions tunes the scheduler
type SchedulerOptions struct {
	// TimeSkipUnit is the span of remaining time one premium currency unit skips
	TimeSkipUnit time.Duration
}

// DefaultSchedulerOptions returns the production tuning
func DefaultSchedulerOptions() SchedulerOptions {
	return SchedulerOptions{TimeSkipUnit: fort.DefaultTimeSkipUnit}
}

// Scheduler is the fort build scheduling engine.
//
// A Scheduler is bound to one unit of work's Store. It holds no locks; callers serialize
// per player through the unit of work. Each operation samples the clock exactly once and
// performs every check before its first side effect.
type Scheduler struct {
	store      fort.Store
	catalog    *fort.Catalog
	clock      shared.Clock
	carpenters *CarpenterTracker
	opts       SchedulerOptions
}

// NewScheduler creates a scheduler over store
func NewScheduler(store fort.Store, catalog *fort.Catalog, clock shared.Clock, opts SchedulerOptions) *Scheduler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if opts.TimeSkipUnit <= 0 {
		opts.TimeSkipUnit = fort.DefaultTimeSkipUnit
	}

	return &Scheduler{
		store:      store,
		catalog:    catalog,
		clock:      clock,
		carpenters: NewCarpenterTracker(store.Forts),
		opts:       opts,
	}
}

// SchedulerFactory binds schedulers to the Store of a unit of work
type SchedulerFactory struct {
	catalog *fort.Catalog
	clock   shared.Clock
	opts    SchedulerOptions
}

// NewSchedulerFactory creates a factory sharing catalog, clock and options
func NewSchedulerFactory(catalog *fort.Catalog, clock shared.Clock, opts SchedulerOptions) *SchedulerFactory {
	if catalog == nil {
		catalog = fort.MustDefaultCatalog()
	}
	return &SchedulerFactory{catalog: catalog, clock: clock, opts: opts}
}

// New returns a scheduler over store whose clock is frozen at the current instant,
// so every check in one unit of work observes the same time
func (f *SchedulerFactory) New(store fort.Store) *Scheduler {
	clock := f.clock
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return NewScheduler(store, f.catalog, shared.NewFixedClock(clock.Now()), f.opts)
}

// Catalog returns the facility catalog schedulers are built with
func (f *SchedulerFactory) Catalog() *fort.Catalog {
	return f.catalog
}

// Now returns the scheduler's current instant
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Carpenters exposes the tracker bound to this scheduler's store
func (s *Scheduler) Carpenters() *CarpenterTracker {
	return s.carpenters
}

// AddCarpenter buys one more carpenter and returns the new pool with the amount paid
func (s *Scheduler) AddCarpenter(
	ctx context.Context,
	playerID shared.PlayerID,
	paymentType fort.PaymentType,
) (fort.CarpenterPool, int, error) {
	pool, cost, err := s.carpenters.AddCarpenter(ctx, playerID, paymentType, s.store.Payments)
	if err != nil {
		return fort.CarpenterPool{}, 0, err
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Carpenter added", map[string]interface{}{
		"player_id":     playerID.Value(),
		"payment_type":  paymentType.String(),
		"cost":          cost,
		"carpenter_num": pool.Capacity(),
	})

	return pool, cost, nil
}

// BuildStart places a new level-0 facility.
//
// Placement needs a free carpenter but does not hold one afterwards.
func (s *Scheduler) BuildStart(
	ctx context.Context,
	playerID shared.PlayerID,
	plantID fort.PlantID,
	x, z int,
) (*fort.Build, error) {
	if err := s.carpenters.TryAcquire(ctx, playerID); err != nil {
		return nil, err
	}

	detail, err := s.catalog.Detail(plantID, 1)
	if err != nil {
		return nil, err
	}

	if err := s.pay(ctx, playerID, detail); err != nil {
		return nil, err
	}

	build := fort.NewBuild(playerID, plantID, x, z)
	if err := s.store.Forts.AddBuild(ctx, build); err != nil {
		return nil, fmt.Errorf("failed to add build: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Build placed", map[string]interface{}{
		"player_id":  playerID.Value(),
		"build_id":   int64(build.ID()),
		"plant":      plantID.String(),
		"position_x": x,
		"position_z": z,
		"coin_cost":  detail.Cost,
	})

	return build, nil
}

// LevelupStart opens a construction window for the next level
func (s *Scheduler) LevelupStart(ctx context.Context, playerID shared.PlayerID, buildID fort.BuildID) (*fort.Build, error) {
	now := s.clock.Now()

	build, err := s.store.Forts.GetBuilding(ctx, playerID, buildID)
	if err != nil {
		return nil, err
	}

	if !build.IsIdle() {
		return nil, shared.NewInvalidOperationError("build %d is already under construction", buildID)
	}

	if err := s.carpenters.TryAcquire(ctx, playerID); err != nil {
		return nil, err
	}

	detail, err := s.catalog.NextLevel(build.PlantID(), build.Level())
	if err != nil {
		return nil, err
	}

	if err := s.pay(ctx, playerID, detail); err != nil {
		return nil, err
	}

	if err := build.StartLevelup(now, detail.BuildTime); err != nil {
		return nil, err
	}

	if err := s.store.Forts.UpdateBuild(ctx, build); err != nil {
		return nil, fmt.Errorf("failed to update build: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Levelup started", map[string]interface{}{
		"player_id":    playerID.Value(),
		"build_id":     int64(buildID),
		"plant":        build.PlantID().String(),
		"target_level": detail.Level,
		"duration":     detail.BuildTime.String(),
	})

	return build, nil
}

// LevelupAtOnce pays to finish an open window immediately and returns the amount paid
func (s *Scheduler) LevelupAtOnce(
	ctx context.Context,
	playerID shared.PlayerID,
	paymentType fort.PaymentType,
	buildID fort.BuildID,
) (*fort.Build, int, error) {
	now := s.clock.Now()

	if err := fort.ValidateTimeSkipPayment(paymentType); err != nil {
		return nil, 0, err
	}

	build, err := s.store.Forts.GetBuilding(ctx, playerID, buildID)
	if err != nil {
		return nil, 0, err
	}

	if build.IsIdle() {
		return nil, 0, shared.NewInvalidOperationError("build %d has no levelup in progress", buildID)
	}

	cost, err := fort.TimeSkipCost(paymentType, build.RemainingTime(now), s.opts.TimeSkipUnit)
	if err != nil {
		return nil, 0, err
	}

	if cost > 0 {
		if err := s.store.Payments.ProcessPayment(ctx, playerID, paymentType, cost); err != nil {
			return nil, 0, fmt.Errorf("failed to pay for instant completion: %w", err)
		}
	}

	if err := build.CompleteLevelupNow(); err != nil {
		return nil, 0, err
	}

	if err := s.finish(ctx, build); err != nil {
		return nil, 0, err
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Levelup completed instantly", map[string]interface{}{
		"player_id":    playerID.Value(),
		"build_id":     int64(buildID),
		"payment_type": paymentType.String(),
		"cost":         cost,
		"level":        build.Level(),
	})

	return build, cost, nil
}

// EndLevelup resolves a window whose end time has passed
func (s *Scheduler) EndLevelup(ctx context.Context, playerID shared.PlayerID, buildID fort.BuildID) (*fort.Build, error) {
	now := s.clock.Now()

	build, err := s.store.Forts.GetBuilding(ctx, playerID, buildID)
	if err != nil {
		return nil, err
	}

	if err := build.CompleteLevelup(now); err != nil {
		return nil, err
	}

	if err := s.finish(ctx, build); err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Levelup completed", map[string]interface{}{
		"player_id": playerID.Value(),
		"build_id":  int64(buildID),
		"level":     build.Level(),
	})

	return build, nil
}

// CancelLevelup closes an open window without refund
func (s *Scheduler) CancelLevelup(ctx context.Context, playerID shared.PlayerID, buildID fort.BuildID) (*fort.Build, error) {
	build, err := s.store.Forts.GetBuilding(ctx, playerID, buildID)
	if err != nil {
		return nil, err
	}

	if err := build.CancelLevelup(); err != nil {
		return nil, err
	}

	if err := s.store.Forts.UpdateBuild(ctx, build); err != nil {
		return nil, fmt.Errorf("failed to update build: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Levelup cancelled", map[string]interface{}{
		"player_id": playerID.Value(),
		"build_id":  int64(buildID),
		"level":     build.Level(),
	})

	return build, nil
}

// CancelBuild removes a level-0 facility
func (s *Scheduler) CancelBuild(ctx context.Context, playerID shared.PlayerID, buildID fort.BuildID) error {
	build, err := s.store.Forts.GetBuilding(ctx, playerID, buildID)
	if err != nil {
		return err
	}

	if err := build.CancelBuild(); err != nil {
		return err
	}

	if err := s.store.Forts.DeleteBuild(ctx, build); err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Build cancelled", map[string]interface{}{
		"player_id": playerID.Value(),
		"build_id":  int64(buildID),
	})

	return nil
}

// Move relocates a facility
func (s *Scheduler) Move(ctx context.Context, playerID shared.PlayerID, buildID fort.BuildID, x, z int) (*fort.Build, error) {
	build, err := s.store.Forts.GetBuilding(ctx, playerID, buildID)
	if err != nil {
		return nil, err
	}

	build.MoveTo(x, z)

	if err := s.store.Forts.UpdateBuild(ctx, build); err != nil {
		return nil, fmt.Errorf("failed to update build: %w", err)
	}

	return build, nil
}

// BuildList returns the player's builds together with the instant they were observed
func (s *Scheduler) BuildList(ctx context.Context, playerID shared.PlayerID) ([]*fort.Build, time.Time, error) {
	now := s.clock.Now()

	builds, err := s.store.Forts.ListBuilds(ctx, playerID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to list builds: %w", err)
	}

	return builds, now, nil
}

// FortDetail returns the player's carpenter pool
func (s *Scheduler) FortDetail(ctx context.Context, playerID shared.PlayerID) (fort.CarpenterPool, error) {
	return s.carpenters.Pool(ctx, playerID)
}

// pay charges the coin and material cost of a catalog row
func (s *Scheduler) pay(ctx context.Context, playerID shared.PlayerID, detail fort.PlantDetail) error {
	if err := s.store.Payments.ProcessPayment(ctx, playerID, fort.PaymentTypeCoin, detail.Cost); err != nil {
		return fmt.Errorf("failed to pay coin cost: %w", err)
	}

	if err := s.store.Inventory.UpdateQuantity(ctx, playerID, detail.MaterialDeltas()); err != nil {
		return fmt.Errorf("failed to deduct materials: %w", err)
	}

	return nil
}

// finish persists a resolved levelup and notifies mission progression
func (s *Scheduler) finish(ctx context.Context, build *fort.Build) error {
	if err := s.store.Forts.UpdateBuild(ctx, build); err != nil {
		return fmt.Errorf("failed to update build: %w", err)
	}

	if s.store.Missions != nil {
		s.store.Missions.OnFortPlantUpgraded(ctx, build.PlayerID(), build.PlantID(), build.Level())
		s.store.Missions.OnFortLevelup(ctx, build.PlayerID())
	}

	return nil
}
