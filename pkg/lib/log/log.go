// Package log 提供 go-getipfs 统一日志接口
//
// 基于 Go 标准库 log/slog 封装。各组件通过 Logger("component")
// 获取 LazyLogger，每次日志调用都读取当前的基础 logger，
// 因此可以在运行时切换输出目标与级别。
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// base 当前基础 logger
var base atomic.Pointer[slog.Logger]

// level 当前日志级别（SetOutput 重建 handler 时沿用）
var level = new(slog.LevelVar)

// SetDefault 使用调用方提供的 logger 作为基础 logger
func SetDefault(l *slog.Logger) {
	if l == nil {
		return
	}
	base.Store(l)
}

// Default 返回当前基础 logger
func Default() *slog.Logger {
	return base.Load()
}

// SetOutput 设置日志输出目标
//
// 以文本格式重建基础 logger，保留当前级别。
//
// 示例：
//
//	file, _ := os.OpenFile("getipfs.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
//	log.SetOutput(file)
func SetOutput(w io.Writer) {
	base.Store(newTextLogger(w))
}

// LevelVar 返回共享的级别变量
//
// 调用方自建 handler 时使用，使 SetLevel 对其同样生效。
func LevelVar() *slog.LevelVar {
	return level
}

// SetLevel 设置日志级别
func SetLevel(l slog.Level) {
	level.Set(l)
}

func newTextLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 使用方式：
//
//	var logger = log.Logger("resolver")
//	logger.Info("宿主节点可用", "peerID", id)
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

func (l *LazyLogger) logger() *slog.Logger {
	return base.Load().With("component", l.component)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.logger().Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.logger().Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.logger().Error(msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger().DebugContext(ctx, msg, args...)
}

// InfoContext 带 context 的 Info 日志
func (l *LazyLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger().InfoContext(ctx, msg, args...)
}

// WarnContext 带 context 的 Warn 日志
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger().WarnContext(ctx, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.logger().With(args...)
}

// ============================================================================
//                              工具函数
// ============================================================================

// TruncateID 安全截取 ID 用于日志显示
//
// 避免在日志中直接使用 id[:8] 导致 slice bounds out of range。
func TruncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}

func init() {
	level.Set(slog.LevelInfo)
	base.Store(newTextLogger(os.Stderr))
}
