package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
)

type levelupStartRequest struct{}

func TestFortMetricsCollector_RecordsConstruction(t *testing.T) {
	c := NewFortMetricsCollector()

	c.RecordBuildPlaced(1, "SMITHY")
	c.RecordLevelupStarted(1, "DRAGONATA", 20)
	c.RecordLevelupStarted(1, "DRAGONATA", 21)
	c.RecordLevelupCompleted(1, "DRAGONATA", 21, false)
	c.RecordLevelupCompleted(1, "DRAGONATA", 22, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.buildsPlaced.WithLabelValues("SMITHY")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.levelupsStarted.WithLabelValues("DRAGONATA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.levelupsCompleted.WithLabelValues("DRAGONATA", "timer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.levelupsCompleted.WithLabelValues("DRAGONATA", "instant")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.levelReached))
}

func TestFortMetricsCollector_RecordsSpend(t *testing.T) {
	c := NewFortMetricsCollector()

	c.RecordCarpenterHire(1, "WYRMITE", 250)
	c.RecordCarpenterHire(1, "WYRMITE", 400)
	c.RecordTimeSkip(1, "HALIDOM_HUSTLE_HAMMER", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.carpenterHires.WithLabelValues("WYRMITE")))
	assert.Equal(t, 650.0, testutil.ToFloat64(c.carpenterSpend.WithLabelValues("WYRMITE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.timeSkipsTotal.WithLabelValues("HALIDOM_HUSTLE_HAMMER")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.timeSkipSpend.WithLabelValues("HALIDOM_HUSTLE_HAMMER")))
}

func TestFortMetricsCollector_CarpenterGaugesTrackLatestValue(t *testing.T) {
	c := NewFortMetricsCollector()

	c.RecordCarpenterUsage(7, 2, 3)
	c.RecordCarpenterUsage(7, 1, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.activeCarpenters.WithLabelValues("7")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.carpenterNum.WithLabelValues("7")))
}

func TestFortMetricsCollector_RegisterWithoutRegistryIsNoop(t *testing.T) {
	previous := Registry
	Registry = nil
	t.Cleanup(func() { Registry = previous })

	assert.NoError(t, NewFortMetricsCollector().Register())
	assert.False(t, IsEnabled())
}

func TestFortMetricsCollector_Register(t *testing.T) {
	previous := Registry
	InitRegistry()
	t.Cleanup(func() { Registry = previous })

	c := NewFortMetricsCollector()
	require.NoError(t, c.Register())
	c.RecordMissionEvent("FORT_LEVELUP")

	assert.True(t, IsEnabled())
	count, err := testutil.GatherAndCount(GetRegistry(), "dragalia_fort_mission_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Registering the same collector twice is rejected by the registry
	assert.Error(t, c.Register())
}

func TestGlobalRecorders(t *testing.T) {
	c := NewFortMetricsCollector()
	SetGlobalFortCollector(c)
	t.Cleanup(func() { SetGlobalFortCollector(nil) })

	RecordBuildPlaced(1, "RUPIE_MINE")
	RecordMissionEvent("FORT_PLANT_UPGRADED:RUPIE_MINE")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.buildsPlaced.WithLabelValues("RUPIE_MINE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.missionEvents.WithLabelValues("FORT_PLANT_UPGRADED:RUPIE_MINE")))

	// Without a collector the global helpers do nothing
	SetGlobalFortCollector(nil)
	assert.NotPanics(t, func() { RecordTimeSkip(1, "WYRMITE", 10) })
}

func TestPrometheusMiddleware_LabelsResultCode(t *testing.T) {
	c := NewCommandMetricsCollector()
	middleware := PrometheusMiddleware(c)
	ctx := context.Background()

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "done", nil
	}
	busy := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, fmt.Errorf("failed to start levelup: %w", fort.NewCarpenterBusyError(2, 2))
	}
	broken := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("connection reset")
	}

	response, err := middleware(ctx, &levelupStartRequest{}, ok)
	require.NoError(t, err)
	assert.Equal(t, "done", response)

	_, err = middleware(ctx, &levelupStartRequest{}, busy)
	require.Error(t, err)
	_, err = middleware(ctx, &levelupStartRequest{}, broken)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("levelupStartRequest", "success", "SUCCESS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("levelupStartRequest", "error", "FORT_BUILD_CARPENTER_BUSY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("levelupStartRequest", "error", "INTERNAL")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	middleware := PrometheusMiddleware(nil)

	response, err := middleware(context.Background(), &levelupStartRequest{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, response)
}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "levelupStartRequest", extractCommandName(&levelupStartRequest{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}
