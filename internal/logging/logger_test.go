package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewLoggerWithPath_JSONToStderr(t *testing.T) {
	var buf bytes.Buffer
	result := newLoggerWithPath(Config{Level: "info", Format: FormatJSON, Output: OutputStderr}, &buf)

	assert.False(t, result.UsingFile)
	result.Logger.Debug().Msg("hidden")
	result.Logger.Info().Str("k", "v").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "v", entry["k"])
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "profgrid.log")
	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatConsole, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Debug().Msg("to file")
	require.NoError(t, result.Close())
	require.NoError(t, result.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`, "files always get JSON lines")
}

func TestNewLoggerWithPath_FallbackToStderr(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	var buf bytes.Buffer
	result := newLoggerWithPath(Config{
		Format: FormatJSON,
		Output: OutputFile,
		File:   filepath.Join(blocker, "profgrid.log"),
	}, &buf)

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)

	result.Logger.Info().Msg("still logged")
	assert.Contains(t, buf.String(), "still logged")
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	id := GetOrGenerateTraceID(ctx)
	_, err := ulid.Parse(id)
	require.NoError(t, err, "trace IDs are ULIDs")

	ctx = ContextWithTraceID(ctx, id)
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
}

func TestTraceHook_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLoggerWithPath(Config{Format: FormatJSON}, &buf).Logger

	ctx := ContextWithTraceID(context.Background(), "trace-123")
	logger.Info().Ctx(ctx).Msg("with trace")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])
}

func TestComponentLoggerAndContext(t *testing.T) {
	var buf bytes.Buffer
	base := newLoggerWithPath(Config{Format: FormatJSON}, &buf).Logger
	logger := ComponentLogger(base, "grid")

	ctx := logger.WithContext(context.Background())
	FromContext(ctx).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "grid", entry["component"])

	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil context is tolerated.
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	PrintLogPathMessage(&buf, "/tmp/x.log")
	PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "/tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}
