package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doshyw/celeste-progression/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Production(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{Environment: "production", LogLevel: "info"}, &buf)

	WithError(WithRequestID(log, "req-1"), errors.New("boom")).Info("Progression built", "player", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Progression built", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "boom", line["error"])
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{Environment: "development", LogLevel: "warn"}, &buf)

	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.log")
	log, closeLog, err := Setup(&config.Config{LogFile: path, LogLevel: "info"})
	require.NoError(t, err)

	log.Info("written to file")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))
}
