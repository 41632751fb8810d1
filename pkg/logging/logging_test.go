package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelDebug)

	ctx := AppendCtx(context.Background(), slog.String("name", "ctl"))
	ctx = AppendCtx(ctx, slog.Int("plane", 2))
	log.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "ctl", rec["name"])
	assert.Equal(t, float64(2), rec["plane"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn)
	log.Info("dropped")
	assert.Empty(t, buf.String())
	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestAppendCtx_DoesNotAlias(t *testing.T) {
	base := AppendCtx(context.Background(), slog.String("a", "1"))
	c1 := AppendCtx(base, slog.String("b", "2"))
	c2 := AppendCtx(base, slog.String("c", "3"))

	a1 := c1.Value(ctxKey{}).([]slog.Attr)
	a2 := c2.Value(ctxKey{}).([]slog.Attr)
	require.Len(t, a1, 2)
	require.Len(t, a2, 2)
	assert.Equal(t, "b", a1[1].Key)
	assert.Equal(t, "c", a2[1].Key)
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl.log")
	w := RotatingFile(path, 0)
	_, err := w.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.FileExists(t, path)
}
