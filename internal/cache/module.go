package cache

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-getipfs/internal/connector"
	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/internal/resolver"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	Resolver  *resolver.Resolver
	Connector *connector.Connector
	Metrics   *metrics.Metrics `optional:"true"`
}

// ProvideCache 提供单例缓存
func ProvideCache(input ModuleInput) *Cache {
	return New(input.Resolver, input.Connector, input.Metrics)
}

// Module 返回 Fx 模块
var Module = fx.Module("cache",
	fx.Provide(ProvideCache),
	fx.Invoke(registerLifecycle),
)

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, c *Cache) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// 等待后台连接任务结束
			if err := c.Close(ctx); err != nil {
				logger.Warn("等待后台连接任务超时", "error", err)
			}
			return nil
		},
	})
}
