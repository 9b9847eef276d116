package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
)

func TestStdLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "info", "json")

	logger.Log("INFO", "levelup started", map[string]interface{}{"build_id": 4})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "levelup started", entry["msg"])
	assert.Equal(t, float64(4), entry["build_id"])
}

func TestStdLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "warn", "text")

	logger.Log("INFO", "ignored", nil)
	logger.Log("WARN", "kept", map[string]interface{}{"b": 2, "a": 1})

	out := buf.String()
	assert.NotContains(t, out, "ignored")
	assert.Contains(t, out, "kept a=1 b=2")
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	assert.NotPanics(t, func() { logger.Log("INFO", "nothing", nil) })
}
