package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type panickingHandler struct{ slog.Handler }

func (panickingHandler) Handle(context.Context, slog.Record) error { panic("sink exploded") }

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelInfo)

	log.Info("site added", "key", "http://dir/inquire")
	log.Debug("hidden")

	assert.Contains(t, buf.String(), `"msg":"site added"`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSafeHandlerSwallowsSinkFailures(t *testing.T) {
	t.Run("write error", func(t *testing.T) {
		log := NewWithWriter(failingWriter{}, slog.LevelInfo)
		assert.NotPanics(t, func() { log.Warn("directory unreachable") })
	})

	t.Run("panic in handler", func(t *testing.T) {
		h := NewSafeHandler(panickingHandler{slog.NewTextHandler(&bytes.Buffer{}, nil)})
		log := slog.New(h)
		assert.NotPanics(t, func() { log.Error("remote fault") })
	})
}

func TestOpen(t *testing.T) {
	t.Run("creates file sink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "diag.log")
		log, closer, err := Open(path, slog.LevelInfo)
		require.NoError(t, err)
		defer closer.Close()
		log.Info("ready")
	})

	t.Run("fails fast on unusable path", func(t *testing.T) {
		_, _, err := Open(filepath.Join(t.TempDir(), "missing", "diag.log"), slog.LevelInfo)
		require.Error(t, err)
	})
}

func TestNewForPath(t *testing.T) {
	t.Run("stdout without a path", func(t *testing.T) {
		log, closer, err := NewForPath("")
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.NoError(t, closer.Close())
	})

	t.Run("writes to the configured file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "esb.log")
		log, closer, err := NewForPath(path)
		require.NoError(t, err)
		log.Info("directory refreshed", "sites", 2)
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"directory refreshed"`)
	})

	t.Run("unusable path is an error", func(t *testing.T) {
		_, _, err := NewForPath(filepath.Join(t.TempDir(), "missing", "esb.log"))
		require.Error(t, err)
	})
}
