package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlayerLister struct {
	ids []int
	err error
}

func (s *stubPlayerLister) ListPlayerIDs(ctx context.Context) ([]int, error) {
	return s.ids, s.err
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+" "+message)
}

func TestCarpenterSweeper_SweepOnceRefreshesEveryPlayer(t *testing.T) {
	var refreshed []int
	refresh := func(ctx context.Context, playerID int) error {
		refreshed = append(refreshed, playerID)
		if playerID == 2 {
			return errors.New("locked")
		}
		return nil
	}
	logger := &recordingLogger{}
	sweeper := NewCarpenterSweeper(&stubPlayerLister{ids: []int{1, 2, 3}}, refresh, time.Minute, logger)

	count := sweeper.SweepOnce(context.Background())

	assert.Equal(t, 2, count)
	assert.Equal(t, []int{1, 2, 3}, refreshed)
	assert.Contains(t, logger.entries, "WARN Failed to refresh carpenter gauges")
}

func TestCarpenterSweeper_ListFailure(t *testing.T) {
	logger := &recordingLogger{}
	sweeper := NewCarpenterSweeper(&stubPlayerLister{err: errors.New("db down")}, func(ctx context.Context, playerID int) error {
		t.Fatal("refresh must not run when listing fails")
		return nil
	}, time.Minute, logger)

	assert.Equal(t, 0, sweeper.SweepOnce(context.Background()))
	assert.Contains(t, logger.entries, "ERROR Failed to list players for carpenter sweep")
}

func TestCarpenterSweeper_StartSweepsImmediatelyAndStops(t *testing.T) {
	swept := make(chan int, 16)
	refresh := func(ctx context.Context, playerID int) error {
		swept <- playerID
		return nil
	}
	sweeper := NewCarpenterSweeper(&stubPlayerLister{ids: []int{4}}, refresh, time.Hour, nil)

	sweeper.Start(context.Background())

	select {
	case id := <-swept:
		assert.Equal(t, 4, id)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "sweeper did not run on start")
	}

	sweeper.Stop()
	sweeper.Stop() // idempotent
}

func TestCarpenterSweeper_DefaultInterval(t *testing.T) {
	sweeper := NewCarpenterSweeper(&stubPlayerLister{}, nil, 0, nil)
	assert.Equal(t, DefaultSweepInterval, sweeper.interval)
}
