package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// This middleware wraps all command/query execution and records:
// - Execution duration (histogram)
// - Outcome counts labelled with the domain result code (counter)
//
// Command names are extracted via reflection and simplified to remove package prefixes.
// For example: "*commands.LevelupStartCommand" becomes "LevelupStartCommand"
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), resultCodeLabel(err))

		return response, err
	}
}

// resultCodeLabel maps an error onto the result_code label
func resultCodeLabel(err error) string {
	if err == nil {
		return shared.ResultCodeSuccess.String()
	}
	if code, ok := shared.CodeOf(err); ok {
		return code.String()
	}
	return "INTERNAL"
}

// extractCommandName extracts a clean command name from the request using reflection
// Examples:
//   - "*commands.LevelupStartCommand" → "LevelupStartCommand"
//   - "*queries.GetBuildListQuery" → "GetBuildListQuery"
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")

	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
