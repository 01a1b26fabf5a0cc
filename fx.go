package getipfs

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/dep2p/go-getipfs/internal/cache"
	"github.com/dep2p/go-getipfs/internal/connector"
	"github.com/dep2p/go-getipfs/internal/hostenv"
	"github.com/dep2p/go-getipfs/internal/loader"
	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/internal/resolver"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
)

var fxLogger = log.Logger("getipfs/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 宿主环境、指标
//  2. 加载器 → 解析器 → 连接器
//  3. 单例缓存
func buildFxApp(cfg *buildConfig, g *Getter) *fx.App {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置与外部依赖注入
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(cfg.base),
	}

	if cfg.env != nil {
		env := cfg.env
		modules = append(modules, fx.Provide(fx.Annotate(
			func() interfaces.Env { return env },
			fx.ResultTags(`name:"host_env"`),
		)))
	}
	if cfg.loader != nil {
		l := cfg.loader
		modules = append(modules, fx.Provide(fx.Annotate(
			func() interfaces.Loader { return l },
			fx.ResultTags(`name:"loader_override"`),
		)))
		fxLogger.Debug("使用自定义加载器")
	}
	if cfg.clock != nil {
		clk := cfg.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}
	if cfg.registerer != nil {
		reg := cfg.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 内部模块
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		hostenv.Module,
		metrics.Module,
		loader.Module,
		resolver.Module,
		connector.Module,
		cache.Module,
	)

	// ════════════════════════════════════════════════════════════════════════
	// 3. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(cfg.userFxOptions) > 0 {
		modules = append(modules, cfg.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 4. Getter 组件注入与 Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	zl := cfg.fxLogger
	modules = append(modules,
		fx.Populate(&g.cache),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zl}
		}),
	)

	return fx.New(modules...)
}
