package resolver

import "context"

type attemptKey struct{}

// WithAttempt 在 context 中附加解析尝试 ID（仅用于日志）
func WithAttempt(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptKey{}, id)
}

// AttemptFrom 取出解析尝试 ID
func AttemptFrom(ctx context.Context) string {
	id, _ := ctx.Value(attemptKey{}).(string)
	return id
}
