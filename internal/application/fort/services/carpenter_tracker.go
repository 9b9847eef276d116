package services

import (
	"context"
	"fmt"

	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// CarpenterTracker reads carpenter capacity and usage for a player.
//
// The active count is always recomputed from open build windows so it cannot drift
// from the builds themselves.
type CarpenterTracker struct {
	repo fort.FortRepository
}

// NewCarpenterTracker creates a tracker over the given repository
func NewCarpenterTracker(repo fort.FortRepository) *CarpenterTracker {
	return &CarpenterTracker{repo: repo}
}

// Pool returns the player's current capacity and active count
func (t *CarpenterTracker) Pool(ctx context.Context, playerID shared.PlayerID) (fort.CarpenterPool, error) {
	detail, err := t.repo.GetFortDetail(ctx, playerID)
	if err != nil {
		return fort.CarpenterPool{}, fmt.Errorf("failed to get fort detail: %w", err)
	}

	active, err := t.repo.GetActiveCarpenters(ctx, playerID)
	if err != nil {
		return fort.CarpenterPool{}, fmt.Errorf("failed to count active carpenters: %w", err)
	}

	return fort.NewCarpenterPool(detail.CarpenterNum, active), nil
}

// ActiveCarpenters returns the number of builds holding a carpenter
func (t *CarpenterTracker) ActiveCarpenters(ctx context.Context, playerID shared.PlayerID) (int, error) {
	pool, err := t.Pool(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return pool.Active(), nil
}

// Capacity returns the player's carpenter count
func (t *CarpenterTracker) Capacity(ctx context.Context, playerID shared.PlayerID) (int, error) {
	pool, err := t.Pool(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return pool.Capacity(), nil
}

// TryAcquire fails with FortBuildCarpenterBusy when no carpenter is free
func (t *CarpenterTracker) TryAcquire(ctx context.Context, playerID shared.PlayerID) error {
	pool, err := t.Pool(ctx, playerID)
	if err != nil {
		return err
	}
	return pool.TryAcquire()
}

// AddCarpenter buys one more carpenter.
//
// Payment is taken before capacity is raised, so a failed payment leaves the fort
// unchanged even without an enclosing transaction.
func (t *CarpenterTracker) AddCarpenter(
	ctx context.Context,
	playerID shared.PlayerID,
	paymentType fort.PaymentType,
	payments fort.PaymentService,
) (fort.CarpenterPool, int, error) {
	pool, err := t.Pool(ctx, playerID)
	if err != nil {
		return fort.CarpenterPool{}, 0, err
	}

	cost, err := pool.ExtensionCost(paymentType)
	if err != nil {
		return fort.CarpenterPool{}, 0, err
	}

	if err := payments.ProcessPayment(ctx, playerID, paymentType, cost); err != nil {
		return fort.CarpenterPool{}, 0, fmt.Errorf("failed to pay for carpenter: %w", err)
	}

	capacity := pool.Capacity() + 1
	if err := t.repo.UpdateFortMaximumCarpenter(ctx, playerID, capacity); err != nil {
		return fort.CarpenterPool{}, 0, fmt.Errorf("failed to update carpenter count: %w", err)
	}

	return fort.NewCarpenterPool(capacity, pool.Active()), cost, nil
}
