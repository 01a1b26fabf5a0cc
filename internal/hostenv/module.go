package hostenv

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
)

// ModuleInput 模块输入依赖
type ModuleInput struct {
	fx.In

	// Env 调用方提供的宿主环境
	Env interfaces.Env `name:"host_env" optional:"true"`
}

// ModuleOutput 模块输出
type ModuleOutput struct {
	fx.Out

	Env        interfaces.Env
	MutableEnv interfaces.MutableEnv
}

// ProvideEnv 提供宿主环境
//
// 未提供时使用进程级绑定表；提供的环境不可写时，
// 以 Overlay 包装，动态加载的节点包写入覆盖层。
func ProvideEnv(input ModuleInput) ModuleOutput {
	var env interfaces.MutableEnv
	switch e := input.Env.(type) {
	case nil:
		env = Global()
	case interfaces.MutableEnv:
		env = e
	default:
		env = Overlay(e)
	}
	return ModuleOutput{Env: env, MutableEnv: env}
}

// Module 返回 Fx 模块
var Module = fx.Module("hostenv",
	fx.Provide(ProvideEnv),
)
