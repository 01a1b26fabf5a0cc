// Package cache 实现进程级单例节点句柄缓存
//
// 缓存最多持有一个句柄，一旦写入不再替换或清空：
//
//	Empty → Resolving → Cached（+ Connecting → Connected | Unconnected）
//	Empty → Resolving → Empty（解析失败，不缓存失败结果）
//
// 并发调用共享同一次进行中的解析（singleflight），包括它的失败结果。
// 解析成功后，节点连接作为后台任务执行，返回句柄不等待连接完成。
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dep2p/go-getipfs/config"
	"github.com/dep2p/go-getipfs/internal/connector"
	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/internal/resolver"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
	"github.com/dep2p/go-getipfs/pkg/types"
)

var logger = log.Logger("cache")

// Resolver 节点句柄解析
type Resolver interface {
	Resolve(ctx context.Context, cfg *config.Config) resolver.Outcome
}

// Connector 节点连接
type Connector interface {
	Connect(ctx context.Context, node interfaces.Node, peers []string, retry types.RetryState, timeout time.Duration) connector.Report
}

const flightKey = "resolve"

// Cache 单例节点句柄缓存
type Cache struct {
	resolver  Resolver
	connector Connector
	metrics   *metrics.Metrics

	group singleflight.Group

	mu        sync.RWMutex
	node      interfaces.Node
	source    types.Source
	state     State
	connState ConnState
	report    connector.Report
	closed    bool

	// connected 后台连接任务结束时关闭
	connected chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New 创建缓存
//
// m 可以为 nil。
func New(r Resolver, c Connector, m *metrics.Metrics) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		resolver:  r,
		connector: c,
		metrics:   m,
		connected: make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Get 返回缓存的句柄，未缓存时解析
//
// 已缓存时立即返回，不重新解析、探测或连接。
// 两条路径都失败时返回 *ResolutionError（errors.Is(err, ErrNoUsableNode)），缓存保持为空。
// ctx 只约束调用方的等待；解析本身在独立于 ctx 取消的上下文中完成，
// 结果对其他调用方仍然有效。
func (c *Cache) Get(ctx context.Context, cfg *config.Config) (interfaces.Node, error) {
	if node := c.Cached(); node != nil {
		c.metrics.ObserveCacheLookup(true)
		return node, nil
	}
	c.metrics.ObserveCacheLookup(false)

	if cfg == nil {
		cfg = config.NewConfig()
	}
	resolveCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(flightKey, func() (any, error) {
		return c.resolve(resolveCtx, cfg)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug("共享进行中的解析结果")
		}
		return res.Val.(interfaces.Node), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) resolve(ctx context.Context, cfg *config.Config) (interfaces.Node, error) {
	c.mu.Lock()
	if c.node != nil {
		node := c.node
		c.mu.Unlock()
		return node, nil
	}
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.state = StateResolving
	c.mu.Unlock()

	attempt := uuid.NewString()
	logger.Info("开始解析节点", "attempt", attempt)

	out := c.resolver.Resolve(resolver.WithAttempt(ctx, attempt), cfg)
	if !out.Working() {
		c.mu.Lock()
		c.state = StateEmpty
		c.mu.Unlock()
		logger.Error("没有可用节点",
			"attempt", attempt,
			"host", out.Host.String(),
			"dynamic", out.Kind.String(),
			"error", out.Err)
		return nil, &ResolutionError{Outcome: out.Kind, Host: out.Host, Attempt: attempt, Err: out.Err}
	}

	peers := cfg.PeersFor(out.Source)

	c.mu.Lock()
	c.node = out.Node
	c.source = out.Source
	c.state = StateCached
	if c.closed {
		// Close 已返回，不再启动后台任务
		c.connState = ConnUnconnected
		c.report = connector.Report{Node: out.Node, Canceled: true}
		close(c.connected)
		c.mu.Unlock()
		logger.Info("节点已缓存，缓存已关闭，跳过连接", "attempt", attempt, "source", out.Source.String())
		return out.Node, nil
	}
	c.connState = ConnConnecting
	c.wg.Add(1)
	c.mu.Unlock()

	logger.Info("节点已缓存",
		"attempt", attempt,
		"source", out.Source.String(),
		"peers", len(peers))

	c.startConnect(out.Node, peers, cfg.Connect)
	return out.Node, nil
}

// startConnect 启动后台连接任务
//
// 调用方须已在持有 c.mu 时执行 c.wg.Add(1)。
func (c *Cache) startConnect(node interfaces.Node, peers []string, cfg config.ConnectConfig) {
	go func() {
		defer c.wg.Done()
		defer close(c.connected)

		var report connector.Report
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("后台连接任务 panic", "panic", r)
				}
			}()
			report = c.connector.Connect(c.ctx, node, peers, cfg.RetryState(), cfg.Timeout.Duration())
		}()

		state := ConnUnconnected
		switch {
		case report.Success():
			state = ConnConnected
		case report.Rounds == 0 && !report.Canceled:
			state = ConnIdle
		}

		c.mu.Lock()
		c.report = report
		c.connState = state
		c.mu.Unlock()

		logger.Debug("后台连接任务结束",
			"state", state.String(),
			"rounds", report.Rounds,
			"connected", len(report.Connected))
	}()
}

// ============================================================================
//                              状态查询
// ============================================================================

// Cached 返回已缓存的句柄，未缓存时返回 nil
func (c *Cache) Cached() interfaces.Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.node
}

// Source 返回已缓存句柄的来源
func (c *Cache) Source() types.Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// State 返回缓存状态
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// ConnState 返回后台连接状态
func (c *Cache) ConnState() ConnState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connState
}

// WaitConnected 等待后台连接任务结束并返回连接结果
//
// 未缓存句柄时返回 ErrNotCached。
func (c *Cache) WaitConnected(ctx context.Context) (connector.Report, error) {
	if c.State() != StateCached {
		return connector.Report{}, ErrNotCached
	}
	select {
	case <-c.connected:
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.report, nil
	case <-ctx.Done():
		return connector.Report{}, ctx.Err()
	}
}

// Close 取消后台连接任务并等待其结束
//
// 已缓存的句柄保留。
func (c *Cache) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
