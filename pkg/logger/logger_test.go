package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevels(t *testing.T) {
	for _, tc := range []struct {
		name          string
		expectedLevel zapcore.Level
	}{
		{name: "Debug", expectedLevel: zapcore.DebugLevel},
		{name: "Info", expectedLevel: zapcore.InfoLevel},
		{name: "Warn", expectedLevel: zapcore.WarnLevel},
		{name: "Error", expectedLevel: zapcore.ErrorLevel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			observerLogger, logs := observer.New(zap.DebugLevel)
			dut := ZapLogger{zap.New(observerLogger)}
			const testMessage = "ABC"
			switch tc.name {
			case "Debug":
				dut.Debug(testMessage)
			case "Info":
				dut.Info(testMessage)
			case "Warn":
				dut.Warn(testMessage)
			case "Error":
				dut.Error(testMessage)
			default:
				t.Errorf("%s: unknown name", tc.name)
			}
			require.Equal(t, 1, logs.Len())

			entry := logs.All()[0]
			require.Equal(t, testMessage, entry.Message)
			require.Empty(t, entry.ContextMap())
			require.Equal(t, tc.expectedLevel, entry.Level)
		})
	}
}

func TestLevelsWithContext(t *testing.T) {
	for _, tc := range []struct {
		name          string
		expectedLevel zapcore.Level
	}{
		{name: "DebugWithContext", expectedLevel: zapcore.DebugLevel},
		{name: "InfoWithContext", expectedLevel: zapcore.InfoLevel},
		{name: "WarnWithContext", expectedLevel: zapcore.WarnLevel},
		{name: "ErrorWithContext", expectedLevel: zapcore.ErrorLevel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			observerLogger, logs := observer.New(zap.DebugLevel)
			dut := ZapLogger{zap.New(observerLogger)}
			const testMessage = "ABC"
			ctx := context.Background()
			switch tc.name {
			case "DebugWithContext":
				dut.DebugWithContext(ctx, testMessage)
			case "InfoWithContext":
				dut.InfoWithContext(ctx, testMessage)
			case "WarnWithContext":
				dut.WarnWithContext(ctx, testMessage)
			case "ErrorWithContext":
				dut.ErrorWithContext(ctx, testMessage)
			default:
				t.Errorf("%s: unknown name", tc.name)
			}
			require.Equal(t, 1, logs.Len())

			entry := logs.All()[0]
			require.Equal(t, testMessage, entry.Message)
			require.Empty(t, entry.ContextMap())
			require.Equal(t, tc.expectedLevel, entry.Level)
		})
	}
}

func TestWithFields(t *testing.T) {
	observerLogger, logs := observer.New(zap.DebugLevel)
	logger := ZapLogger{zap.New(observerLogger)}

	const testMessage = "ABC"

	childLogger := logger.With(
		zap.String("TestOption", "Message"),
	)

	childLogger.Info(testMessage)

	// The child entry carries the context fields.
	expectedZapFields := map[string]interface{}{
		"TestOption": "Message",
	}
	childMessage := logs.All()[0]
	require.Equal(t, expectedZapFields, childMessage.ContextMap())

	// The parent logger stays untouched.
	logger.Info(testMessage)
	parentMessage := logs.All()[1]
	require.Empty(t, parentMessage.ContextMap())
}

func TestNewLogger(t *testing.T) {
	t.Run("none_level_is_noop", func(t *testing.T) {
		logger, err := NewLogger("json", "none")
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("unknown_level_errors", func(t *testing.T) {
		_, err := NewLogger("json", "loud")
		require.Error(t, err)
	})

	t.Run("text_format", func(t *testing.T) {
		logger, err := NewLogger("text", "info")
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}
