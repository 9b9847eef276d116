package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// FortMetricsCollector handles fort construction metrics
type FortMetricsCollector struct {
	// Construction metrics
	buildsPlaced      *prometheus.CounterVec
	levelupsStarted   *prometheus.CounterVec
	levelupsCompleted *prometheus.CounterVec
	levelReached      *prometheus.HistogramVec

	// Spend metrics
	carpenterHires *prometheus.CounterVec
	carpenterSpend *prometheus.CounterVec
	timeSkipsTotal *prometheus.CounterVec
	timeSkipSpend  *prometheus.CounterVec

	// Pool metrics
	activeCarpenters *prometheus.GaugeVec
	carpenterNum     *prometheus.GaugeVec

	// Mission metrics
	missionEvents *prometheus.CounterVec
}

// NewFortMetricsCollector creates a new fort metrics collector
func NewFortMetricsCollector() *FortMetricsCollector {
	return &FortMetricsCollector{
		buildsPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "builds_placed_total",
				Help:      "Total number of facilities placed by plant",
			},
			[]string{"plant"},
		),

		levelupsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "levelups_started_total",
				Help:      "Total number of construction windows opened by plant",
			},
			[]string{"plant"},
		),

		levelupsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "levelups_completed_total",
				Help:      "Total number of resolved levelups by plant and completion mode",
			},
			[]string{"plant", "mode"},
		),

		levelReached: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "level_reached",
				Help:      "Distribution of levels reached on completion",
				Buckets:   []float64{1, 5, 10, 15, 20, 25, 30},
			},
			[]string{"plant"},
		),

		carpenterHires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carpenter_hires_total",
				Help:      "Total number of carpenters purchased",
			},
			[]string{"payment_type"},
		),

		carpenterSpend: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carpenter_spend_total",
				Help:      "Premium currency spent on carpenters",
			},
			[]string{"payment_type"},
		),

		timeSkipsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "time_skips_total",
				Help:      "Total number of instant completions",
			},
			[]string{"payment_type"},
		),

		timeSkipSpend: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "time_skip_spend_total",
				Help:      "Currency spent on instant completions",
			},
			[]string{"payment_type"},
		),

		activeCarpenters: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "active_carpenters",
				Help:      "Carpenters currently held by open construction windows",
			},
			[]string{"player_id"},
		),

		carpenterNum: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carpenter_capacity",
				Help:      "Carpenters owned by each player",
			},
			[]string{"player_id"},
		),

		missionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "mission_events_total",
				Help:      "Mission progression events emitted by the fort",
			},
			[]string{"event"},
		),
	}
}

// Register registers all fort metrics with the Prometheus registry
func (c *FortMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.buildsPlaced,
		c.levelupsStarted,
		c.levelupsCompleted,
		c.levelReached,
		c.carpenterHires,
		c.carpenterSpend,
		c.timeSkipsTotal,
		c.timeSkipSpend,
		c.activeCarpenters,
		c.carpenterNum,
		c.missionEvents,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordBuildPlaced counts a placement
func (c *FortMetricsCollector) RecordBuildPlaced(playerID int, plant string) {
	c.buildsPlaced.WithLabelValues(plant).Inc()
}

// RecordLevelupStarted counts an opened window
func (c *FortMetricsCollector) RecordLevelupStarted(playerID int, plant string, level int) {
	c.levelupsStarted.WithLabelValues(plant).Inc()
}

// RecordLevelupCompleted counts a resolved levelup
func (c *FortMetricsCollector) RecordLevelupCompleted(playerID int, plant string, level int, instant bool) {
	mode := "timer"
	if instant {
		mode = "instant"
	}
	c.levelupsCompleted.WithLabelValues(plant, mode).Inc()
	c.levelReached.WithLabelValues(plant).Observe(float64(level))
}

// RecordCarpenterHire counts a purchased carpenter and its price
func (c *FortMetricsCollector) RecordCarpenterHire(playerID int, paymentType string, cost int) {
	c.carpenterHires.WithLabelValues(paymentType).Inc()
	c.carpenterSpend.WithLabelValues(paymentType).Add(float64(cost))
}

// RecordTimeSkip counts an instant completion and its price
func (c *FortMetricsCollector) RecordTimeSkip(playerID int, paymentType string, cost int) {
	c.timeSkipsTotal.WithLabelValues(paymentType).Inc()
	c.timeSkipSpend.WithLabelValues(paymentType).Add(float64(cost))
}

// RecordCarpenterUsage updates the pool gauges for a player
func (c *FortMetricsCollector) RecordCarpenterUsage(playerID int, active int, capacity int) {
	label := strconv.Itoa(playerID)
	c.activeCarpenters.WithLabelValues(label).Set(float64(active))
	c.carpenterNum.WithLabelValues(label).Set(float64(capacity))
}

// RecordMissionEvent counts a mission progression event
func (c *FortMetricsCollector) RecordMissionEvent(event string) {
	c.missionEvents.WithLabelValues(event).Inc()
}
