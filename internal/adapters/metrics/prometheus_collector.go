package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "dragalia"
	// Subsystem for fort metrics
	subsystem = "fort"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalFortCollector is the singleton fort metrics collector
	// Set by SetGlobalFortCollector() when metrics are enabled
	globalFortCollector FortMetricsRecorder
)

// FortMetricsRecorder defines the interface for recording fort events
// This interface is used by application code to record metrics
type FortMetricsRecorder interface {
	RecordBuildPlaced(playerID int, plant string)
	RecordLevelupStarted(playerID int, plant string, level int)
	RecordLevelupCompleted(playerID int, plant string, level int, instant bool)
	RecordCarpenterHire(playerID int, paymentType string, cost int)
	RecordTimeSkip(playerID int, paymentType string, cost int)
	RecordCarpenterUsage(playerID int, active int, capacity int)
	RecordMissionEvent(event string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalFortCollector sets the global fort metrics collector
func SetGlobalFortCollector(collector FortMetricsRecorder) {
	globalFortCollector = collector
}

// RecordBuildPlaced records a new facility placement globally
func RecordBuildPlaced(playerID int, plant string) {
	if globalFortCollector != nil {
		globalFortCollector.RecordBuildPlaced(playerID, plant)
	}
}

// RecordLevelupStarted records an opened construction window globally
func RecordLevelupStarted(playerID int, plant string, level int) {
	if globalFortCollector != nil {
		globalFortCollector.RecordLevelupStarted(playerID, plant, level)
	}
}

// RecordLevelupCompleted records a resolved levelup globally
func RecordLevelupCompleted(playerID int, plant string, level int, instant bool) {
	if globalFortCollector != nil {
		globalFortCollector.RecordLevelupCompleted(playerID, plant, level, instant)
	}
}

// RecordCarpenterHire records a purchased carpenter globally
func RecordCarpenterHire(playerID int, paymentType string, cost int) {
	if globalFortCollector != nil {
		globalFortCollector.RecordCarpenterHire(playerID, paymentType, cost)
	}
}

// RecordTimeSkip records currency spent on instant completion globally
func RecordTimeSkip(playerID int, paymentType string, cost int) {
	if globalFortCollector != nil {
		globalFortCollector.RecordTimeSkip(playerID, paymentType, cost)
	}
}

// RecordCarpenterUsage records the player's carpenter pool globally
func RecordCarpenterUsage(playerID int, active int, capacity int) {
	if globalFortCollector != nil {
		globalFortCollector.RecordCarpenterUsage(playerID, active, capacity)
	}
}

// RecordMissionEvent records a mission progression event globally
func RecordMissionEvent(event string) {
	if globalFortCollector != nil {
		globalFortCollector.RecordMissionEvent(event)
	}
}
