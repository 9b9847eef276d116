package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
)

// DefaultSweepInterval is how often carpenter gauges are refreshed
const DefaultSweepInterval = 30 * time.Second

// PlayerLister enumerates the players whose gauges should be refreshed
type PlayerLister interface {
	ListPlayerIDs(ctx context.Context) ([]int, error)
}

// RefreshFunc re-reads one player's carpenter pool. Implementations record the gauges.
type RefreshFunc func(ctx context.Context, playerID int) error

// CarpenterSweeper periodically refreshes the active-carpenter gauges.
// Command handlers already update the gauges of the player they touch; the sweeper
// catches windows that elapse with nobody issuing a command.
type CarpenterSweeper struct {
	players  PlayerLister
	refresh  RefreshFunc
	interval time.Duration
	logger   logging.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCarpenterSweeper creates a sweeper. A non-positive interval uses DefaultSweepInterval.
func NewCarpenterSweeper(players PlayerLister, refresh RefreshFunc, interval time.Duration, logger logging.Logger) *CarpenterSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &CarpenterSweeper{
		players:  players,
		refresh:  refresh,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately and then one per interval until Stop or ctx is done
func (s *CarpenterSweeper) Start(ctx context.Context) {
	go func() {
		defer close(s.doneCh)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.SweepOnce(ctx)
		for {
			select {
			case <-ticker.C:
				s.SweepOnce(ctx)
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the sweeper and waits for the running sweep to finish
func (s *CarpenterSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
}

// SweepOnce refreshes every player and returns how many refreshes succeeded
func (s *CarpenterSweeper) SweepOnce(ctx context.Context) int {
	ids, err := s.players.ListPlayerIDs(ctx)
	if err != nil {
		s.log("ERROR", "Failed to list players for carpenter sweep", map[string]interface{}{
			"error": err.Error(),
		})
		return 0
	}

	refreshed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if err := s.refresh(ctx, id); err != nil {
			s.log("WARN", "Failed to refresh carpenter gauges", map[string]interface{}{
				"player_id": id,
				"error":     err.Error(),
			})
			continue
		}
		refreshed++
	}

	s.log("DEBUG", "Carpenter sweep complete", map[string]interface{}{
		"players":   len(ids),
		"refreshed": refreshed,
	})
	return refreshed
}

func (s *CarpenterSweeper) log(level, message string, metadata map[string]interface{}) {
	if s.logger != nil {
		s.logger.Log(level, message, metadata)
	}
}
