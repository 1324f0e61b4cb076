package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplaceCapturesEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	defer restore()

	Info("plain", zap.String("city", "Sao Paulo"))
	Warnf("formatted %d", 2)
	Errorw("structured", "country", "BR")
	Debug("debug line")

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, "plain", entries[0].Message)
	assert.Equal(t, "Sao Paulo", entries[0].ContextMap()["city"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "formatted 2", entries[1].Message)
	assert.Equal(t, "BR", entries[2].ContextMap()["country"])
	assert.Equal(t, zapcore.DebugLevel, entries[3].Level)
}

func TestReplaceRestore(t *testing.T) {
	first, firstLogs := observer.New(zapcore.InfoLevel)
	restoreFirst := Replace(zap.New(first))
	defer restoreFirst()

	second, secondLogs := observer.New(zapcore.InfoLevel)
	restoreSecond := Replace(zap.New(second))

	Info("to second")
	restoreSecond()
	Info("to first")

	assert.Equal(t, 1, secondLogs.Len())
	assert.Equal(t, 1, firstLogs.Len())
	assert.Equal(t, "to first", firstLogs.All()[0].Message)
}
