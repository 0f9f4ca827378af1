package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = LevelWarn
	cfg.Console = &buf

	log, err := New(cfg)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.String("engine", "Google"))
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"engine": "Google"`)
}

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "searchkit.log")
	cfg := DefaultConfig()
	cfg.Console = &bytes.Buffer{}
	cfg.OutputPath = path

	log, err := New(cfg)
	require.NoError(t, err)

	log.Info("report written", zap.String("path", "/tmp/x.html"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"report written"`)
	assert.Contains(t, string(data), `"path":"/tmp/x.html"`)
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "verbose"

	_, err := New(cfg)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Info("discarded") })
}
