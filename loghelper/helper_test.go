package loghelper_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovanec/cascade"
	"github.com/vovanec/cascade/loghelper"
)

func logRecord(t *testing.T, args ...any) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := loghelper.NewLogger(loghelper.WithOutput(&buf))
	logger.Error("failed", loghelper.Attr(args...))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestAttrTracedError(t *testing.T) {
	c := cascade.Lift(errors.New("boom"), cascade.At("a", 10))
	c.Push(cascade.At("b", 20))

	rec := logRecord(t, c)

	assert.Equal(t, map[string]any{
		"msg":    "boom",
		"origin": "a:10",
		"trace":  []any{"a:10", "b:20"},
	}, rec["error"])
}

func TestAttrWrappedTracedError(t *testing.T) {
	c := cascade.Lift(errors.New("boom"), cascade.At("a", 10))
	err := fmt.Errorf("handler: %w", c)

	rec := logRecord(t, err)

	errGroup, ok := rec["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "handler: boom", errGroup["msg"])
	assert.Equal(t, "a:10", errGroup["origin"])
}

func TestAttrPlainError(t *testing.T) {
	rec := logRecord(t, errors.New("boom"))
	assert.Equal(t, map[string]any{"msg": "boom"}, rec["error"])
}

func TestAttrContext(t *testing.T) {
	ctx := loghelper.Context(context.Background(),
		slog.String("request", "r1"),
	)
	child := loghelper.Context(ctx, slog.String("user", "u1"))

	rec := logRecord(t, child, "extra", 1)
	assert.Equal(t, "r1", rec["request"])
	assert.Equal(t, "u1", rec["user"])
	assert.EqualValues(t, 1, rec["extra"])

	parent := logRecord(t, ctx)
	assert.NotContains(t, parent, "user")
}

func TestAttrEmpty(t *testing.T) {
	assert.Equal(t, slog.Attr{}, loghelper.Attr())
	assert.Equal(t, "k", loghelper.Attr("k", "v").Key)
}

func TestNewLoggerOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := loghelper.NewLogger(
		loghelper.WithOutput(&buf),
		loghelper.WithLevel(slog.LevelWarn),
		loghelper.WithText(),
	)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewLoggerWithSource(t *testing.T) {
	var buf bytes.Buffer
	logger := loghelper.NewLogger(
		loghelper.WithOutput(&buf),
		loghelper.WithSource(true),
	)
	logger.Info("with source")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Contains(t, rec, slog.SourceKey)
}
