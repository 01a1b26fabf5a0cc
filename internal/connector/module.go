package connector

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-getipfs/internal/metrics"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	Clock   clock.Clock      `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

// ProvideConnector 提供连接器
func ProvideConnector(input ModuleInput) *Connector {
	return New(input.Clock, input.Metrics)
}

// Module 返回 Fx 模块
var Module = fx.Module("connector",
	fx.Provide(ProvideConnector),
)
