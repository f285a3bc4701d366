package silog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.abhg.dev/gmoji/internal/silog"
)

func TestLogger_levels(t *testing.T) {
	var buf bytes.Buffer
	logger := silog.New(&buf, &silog.Options{Level: silog.LevelInfo})

	logger.Debug("quiet")
	logger.Infof("hello %s", "world")
	logger.Warn("careful", "count", 3)

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "INF hello world")
	assert.Contains(t, out, "WRN careful")
	assert.Contains(t, out, "count=3")
}

func TestLogger_setLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := silog.New(&buf, &silog.Options{Level: silog.LevelInfo})

	logger.Debug("before")
	logger.SetLevel(silog.LevelDebug)
	logger.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "DBG after")
	assert.Equal(t, silog.LevelDebug, logger.Level())
}

func TestLogger_withPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := silog.New(&buf, nil).WithPrefix("git commit")

	logger.Info("hello")

	assert.Contains(t, buf.String(), "INF git commit: hello")
}

func TestNop(t *testing.T) {
	logger := silog.Nop()
	logger.Info("nothing to see")
	assert.Greater(t, logger.Level(), silog.LevelDebug)
}
