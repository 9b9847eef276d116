package mediator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/shared"
)

// LoggingMiddleware attaches logger to the context and logs failed requests.
// Domain and validation failures are logged at WARN, anything else at ERROR.
func LoggingMiddleware(logger logging.Logger) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		if logger != nil {
			ctx = logging.WithLogger(ctx, logger)
		}

		response, err := next(ctx, request)
		if err == nil {
			return response, nil
		}

		metadata := map[string]interface{}{
			"request": requestName(request),
			"error":   err.Error(),
		}
		if scoped, ok := request.(PlayerScoped); ok {
			metadata["player_id"] = scoped.ScopePlayerID()
		}

		level := "ERROR"
		if code, ok := shared.CodeOf(err); ok {
			metadata["result_code"] = code.String()
			level = "WARN"
		} else if isClientError(err) {
			level = "WARN"
		}

		logging.LoggerFromContext(ctx).Log(level, "Request failed", metadata)
		return response, err
	}
}

func isClientError(err error) bool {
	var validationErr *shared.ValidationError
	return errors.Is(err, shared.ErrInvalidOperation) || errors.As(err, &validationErr)
}

func requestName(request Request) string {
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
