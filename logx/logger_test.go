package logx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvlasov/rangereach/logx"
)

func TestDefaultLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logx.NewDefaultLogger(logx.LevelWarn, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	require.Empty(t, buf.String())

	logger.Warn("warn message")
	require.Contains(t, buf.String(), "WARN")
	require.Contains(t, buf.String(), "warn message")
}

func TestDefaultLogger_WithFieldAttachesKeyValue(t *testing.T) {
	var buf bytes.Buffer
	logger := logx.NewDefaultLogger(logx.LevelDebug, &buf)

	scoped := logger.WithField("prefix", "/tmp/fixture")
	scoped.Info("loaded")

	require.Contains(t, buf.String(), "prefix=/tmp/fixture")
	require.Contains(t, buf.String(), "loaded")
}

func TestDefaultLogger_WithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	base := logx.NewDefaultLogger(logx.LevelDebug, &buf)

	scoped := base.WithFields(map[string]interface{}{"a": 1, "b": 2})
	base.Info("from base")
	require.NotContains(t, buf.String(), "a=1")

	buf.Reset()
	scoped.Info("from scoped")
	require.Contains(t, buf.String(), "a=1")
	require.Contains(t, buf.String(), "b=2")
}

func TestDefaultLogger_FieldsChainAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	base := logx.NewDefaultLogger(logx.LevelDebug, &buf)

	chained := base.WithField("a", 1).WithField("b", 2)
	chained.Error("boom")

	require.Contains(t, buf.String(), "a=1")
	require.Contains(t, buf.String(), "b=2")
	require.Contains(t, buf.String(), "ERROR")
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	var logger logx.Logger = logx.NullLogger{}
	require.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x")
		logger.Warn("x")
		logger.Error("x")
		logger = logger.WithField("k", "v").WithFields(map[string]interface{}{"j": 1})
		logger.Info("still fine")
	})
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logx.LevelDebug, logx.ParseLevel("debug"))
	require.Equal(t, logx.LevelWarn, logx.ParseLevel("warning"))
	require.Equal(t, logx.LevelError, logx.ParseLevel("ERROR"))
	require.Equal(t, logx.LevelInfo, logx.ParseLevel("unknown-garbage"))
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", logx.LevelDebug.String())
	require.Equal(t, "INFO", logx.LevelInfo.String())
	require.Equal(t, "WARN", logx.LevelWarn.String())
	require.Equal(t, "ERROR", logx.LevelError.String())
}
