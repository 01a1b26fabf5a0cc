// Package resolver 实现节点句柄解析
//
// 解析分两条路径，严格按顺序执行：
//
//  1. 宿主路径：查询宿主环境的 "ipfs" 绑定；需要启用的节点以协商后的
//     能力集合启用；健康探测通过即返回宿主来源的句柄。
//  2. 动态路径：通过 Loader 获取节点包（调用方覆盖或默认远程来源），
//     以延迟启动、空初始节点构造句柄，健康探测通过即返回动态来源的句柄。
//
// 任何一步都不在内部重试；所有失败都降级为带分类的 Outcome，不返回 error。
package resolver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/dep2p/go-getipfs/config"
	"github.com/dep2p/go-getipfs/internal/capability"
	"github.com/dep2p/go-getipfs/internal/hostenv"
	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/internal/probe"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
	"github.com/dep2p/go-getipfs/pkg/types"
)

var logger = log.Logger("resolver")

// Resolver 节点句柄解析器
type Resolver struct {
	env     interfaces.Env
	loader  interfaces.Loader
	prober  *probe.Prober
	metrics *metrics.Metrics
}

// New 创建解析器
//
// m 可以为 nil。
func New(env interfaces.Env, loader interfaces.Loader, m *metrics.Metrics) *Resolver {
	return &Resolver{
		env:     env,
		loader:  loader,
		prober:  probe.New(m),
		metrics: m,
	}
}

// Resolve 解析一个可用的节点句柄
//
// cfg 为 nil 时使用默认配置。
func (r *Resolver) Resolve(ctx context.Context, cfg *config.Config) Outcome {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	start := time.Now()
	attempt := AttemptFrom(ctx)

	out := r.resolveHost(ctx, cfg)
	if out.Working() {
		out.Host = types.OutcomeWorking
		logger.Info("宿主节点可用", "attempt", attempt, "duration", time.Since(start))
		r.observe(out)
		return out
	}

	logger.Info("宿主节点不可用，加载动态节点",
		"attempt", attempt,
		"hostOutcome", out.Kind.String(),
		"reason", out.Err)

	dyn := r.resolveDynamic(ctx, cfg)
	dyn.Host = out.Kind
	if dyn.Working() {
		logger.Info("动态节点可用", "attempt", attempt, "duration", time.Since(start))
	} else {
		dyn.Err = multierr.Append(out.Err, dyn.Err)
		logger.Warn("动态节点不可用",
			"attempt", attempt,
			"outcome", dyn.Kind.String(),
			"error", dyn.Err,
			"duration", time.Since(start))
	}
	r.observe(dyn)
	return dyn
}

func (r *Resolver) observe(out Outcome) {
	r.metrics.ObserveResolution(out.Kind.String(), out.Source.String())
}

// ============================================================================
//                              宿主路径
// ============================================================================

func (r *Resolver) resolveHost(ctx context.Context, cfg *config.Config) Outcome {
	node, ok := hostenv.LookupNode(r.env)
	if !ok {
		return failed(types.OutcomeNoHostHandle, ErrNoHostHandle)
	}

	if enabler, ok := node.(interfaces.Enabler); ok {
		permissions := capability.Normalize(cfg.Permissions)
		logger.Debug("启用宿主节点", "permissions", permissions)

		var enabled interfaces.Node
		err := guard(func() (err error) {
			enabled, err = enabler.Enable(ctx, permissions)
			return err
		})
		if err != nil {
			return failed(types.OutcomeHostUnhealthy, fmt.Errorf("%w: enable: %w", ErrHostUnhealthy, err))
		}
		if enabled == nil {
			return failed(types.OutcomeHostUnhealthy, fmt.Errorf("%w: enable returned no node", ErrHostUnhealthy))
		}
		node = enabled
	}

	if !r.prober.IsWorking(ctx, node, cfg.Probe.Timeout.Duration()) {
		return failed(types.OutcomeHostUnhealthy, fmt.Errorf("%w: probe failed", ErrHostUnhealthy))
	}
	return working(node, types.SourceHost)
}

// ============================================================================
//                              动态路径
// ============================================================================

func (r *Resolver) resolveDynamic(ctx context.Context, cfg *config.Config) Outcome {
	if r.loader == nil {
		return failed(types.OutcomeDynamicLoadFailed, fmt.Errorf("%w: no loader", ErrDynamicLoadFailed))
	}

	locator := cfg.Loader.Locator()
	pkg, err := r.acquire(ctx, locator, cfg.Loader.Timeout.Duration())
	if err != nil {
		return failed(types.OutcomeDynamicLoadFailed, fmt.Errorf("%w: %w", ErrDynamicLoadFailed, err))
	}
	if pkg == nil {
		// 加载器只发布了绑定
		var ok bool
		if pkg, ok = hostenv.LookupPackage(r.env); !ok {
			return failed(types.OutcomeDynamicLoadFailed,
				fmt.Errorf("%w: %s produced no package", ErrDynamicLoadFailed, locator))
		}
	}

	var node interfaces.Node
	err = guard(func() (err error) {
		node, err = pkg.Create(ctx, types.DeferredStart())
		return err
	})
	if err != nil {
		return failed(types.OutcomeDynamicUnhealthy, fmt.Errorf("%w: create: %w", ErrDynamicUnhealthy, err))
	}

	if !r.prober.IsWorking(ctx, node, cfg.Probe.Timeout.Duration()) {
		return failed(types.OutcomeDynamicUnhealthy, fmt.Errorf("%w: probe failed", ErrDynamicUnhealthy))
	}
	return working(node, types.SourceDynamic)
}

func (r *Resolver) acquire(ctx context.Context, locator interfaces.Locator, timeout time.Duration) (pkg interfaces.Package, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	err = guard(func() (err error) {
		pkg, err = r.loader.Acquire(ctx, locator)
		return err
	})
	return pkg, err
}

// guard 执行 fn，将 panic 转换为错误
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
