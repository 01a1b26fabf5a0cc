package loader

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-getipfs/config"
	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
)

// ConfigFromUnified 从统一配置创建加载器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		CacheSize:   cfg.Loader.CacheSize,
		HTTPTimeout: cfg.Loader.Timeout.Duration(),
	}
}

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	Env        interfaces.MutableEnv
	Metrics    *metrics.Metrics `optional:"true"`
	UnifiedCfg *config.Config   `optional:"true"`

	// Override 调用方提供的加载器，存在时替代默认实现
	Override interfaces.Loader `name:"loader_override" optional:"true"`
}

// ModuleOutput 模块输出
type ModuleOutput struct {
	fx.Out

	Loader interfaces.Loader
}

// ProvideLoader 提供动态加载器
func ProvideLoader(input ModuleInput) (ModuleOutput, error) {
	if input.Override != nil {
		return ModuleOutput{Loader: input.Override}, nil
	}
	l, err := New(ConfigFromUnified(input.UnifiedCfg), input.Env, input.Metrics)
	if err != nil {
		return ModuleOutput{}, err
	}
	return ModuleOutput{Loader: l}, nil
}

// Module 返回 Fx 模块
var Module = fx.Module("loader",
	fx.Provide(ProvideLoader),
)
