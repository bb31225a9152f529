package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govalues/bigdecimal/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for s, want := range tests {
		got, err := ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, want, got, "ParseLevel(%q)", s)
	}

	_, err := ParseLevel("fatal")
	assert.ErrorContains(t, err, `unknown log level "fatal"`)
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, config.LogConfig{Level: "info", Format: "text"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("evaluated expression", "result", "57.9")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INF evaluated expression")
	assert.Contains(t, out, "result=57.9")
	assert.NotContains(t, out, "\x1b[", "a buffer is not a terminal, so output is not colorized")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)

	log.Debug("applied operator", "op", "+")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "applied operator", entry["msg"])
	assert.Equal(t, "+", entry["op"])
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, config.LogConfig{Level: "loud", Format: "text"})
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, config.LogConfig{Level: "info", Format: "xml"})
	assert.ErrorContains(t, err, `unknown log format "xml"`)
}
