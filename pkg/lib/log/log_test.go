package log

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetOutput 测试切换输出目标
func TestSetOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	logger := Logger("test")
	logger.Info("test message", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "test message")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "component=test")
}

// TestSetOutput_ExistingLogger 已创建的 LazyLogger 跟随输出切换
func TestSetOutput_ExistingLogger(t *testing.T) {
	logger := Logger("test2")

	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	logger.Warn("after switch")
	assert.Contains(t, buf.String(), "after switch")
}

// TestSetLevel 测试级别过滤
func TestSetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	SetLevel(LevelWarn)
	defer SetLevel(LevelInfo)

	logger := Logger("level")
	logger.Info("hidden")
	logger.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

// TestTruncateID 测试 ID 截取
func TestTruncateID(t *testing.T) {
	assert.Equal(t, "12D3KooW", TruncateID("12D3KooWabcdef", 8))
	assert.Equal(t, "short", TruncateID("short", 8))
	assert.Equal(t, "", TruncateID("", 8))
}

// TestSetDefault 测试替换基础 logger
func TestSetDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: LevelVar()})))
	defer SetOutput(os.Stderr)

	Logger("json").Info("structured", "key", "value")
	assert.Contains(t, buf.String(), `"msg":"structured"`)
	assert.Contains(t, buf.String(), `"component":"json"`)

	// nil 被忽略
	SetDefault(nil)
	assert.NotNil(t, Default())
}
