package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestWithViewIDAddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	ctx = WithComponent(ctx, "views")
	ctx = WithViewID(ctx, "v1")
	FromContext(ctx).Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "views", line["component"])
	assert.Equal(t, "v1", line["view_id"])
	assert.Equal(t, "hello", line["message"])
}

func TestFromContextWithoutLoggerIsNoop(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	log.Info().Msg("dropped")
}

func TestNewWithFile(t *testing.T) {
	t.Run("no directory", func(t *testing.T) {
		var buf bytes.Buffer
		logger, cleanup, err := NewWithFile(Config{Level: zerolog.InfoLevel, Format: "json", Output: &buf}, FileConfig{})
		require.NoError(t, err)
		defer cleanup()

		logger.Info().Msg("console only")
		assert.Contains(t, buf.String(), "console only")
	})

	t.Run("file and stderr", func(t *testing.T) {
		dir := t.TempDir()
		var buf bytes.Buffer
		logger, cleanup, err := NewWithFile(
			Config{Level: zerolog.InfoLevel, Format: "json", Output: &buf},
			FileConfig{Dir: dir, MaxSizeMB: 1, WriteToStderr: true},
		)
		require.NoError(t, err)

		logger.Info().Str("view_id", "v1").Msg("both")
		cleanup()

		data, err := os.ReadFile(filepath.Join(dir, LogFileName))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"view_id":"v1"`)
		assert.Contains(t, buf.String(), "both")
	})
}

func TestWithSessionID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, Format: "json", Output: &buf})

	ctx := WithSessionID(WithContext(context.Background(), logger), "20251217_205106_a7b3")
	FromContext(ctx).Info().Msg("x")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "a7b3", line["session"])
	assert.Regexp(t, `^\d{8}_\d{6}_[0-9a-f]{4}$`, GenerateSessionID())
}
