package resolver

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	Env     interfaces.Env
	Loader  interfaces.Loader
	Metrics *metrics.Metrics `optional:"true"`
}

// ProvideResolver 提供解析器
func ProvideResolver(input ModuleInput) *Resolver {
	return New(input.Env, input.Loader, input.Metrics)
}

// Module 返回 Fx 模块
var Module = fx.Module("resolver",
	fx.Provide(ProvideResolver),
)
