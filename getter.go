package getipfs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-getipfs/internal/cache"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
)

var logger = log.Logger("getipfs")

// startTimeout Fx 应用启动超时
const startTimeout = 15 * time.Second

// Getter 节点句柄获取器
//
// 每个 Getter 持有一个单例缓存：首次成功的 Get 之后，
// 所有调用都返回同一个句柄。
type Getter struct {
	app   *fx.App
	base  *buildConfig
	cache *cache.Cache

	mu     sync.Mutex
	closed bool
}

// New 创建并启动 Getter
//
// 示例：
//
//	g, err := getipfs.New(getipfs.WithEnv(env))
//	if err != nil {
//	    return err
//	}
//	defer g.Close(context.Background())
//
//	node, err := g.Get(ctx, getipfs.WithRemotePeers(addrs...))
func New(opts ...BuildOption) (*Getter, error) {
	cfg := newBuildConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	g := &Getter{base: cfg}
	app := buildFxApp(cfg, g)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return nil, fmt.Errorf("start fx app: %w", err)
	}
	g.app = app

	logger.Debug("Getter 已启动", "version", Version)
	return g, nil
}

// Get 返回可用的节点句柄
//
// 已缓存时立即返回，选项不再生效。否则依次尝试宿主节点与动态节点，
// 成功后在后台连接配置的节点地址，不等待连接完成。
// 两条路径都失败时返回满足 errors.Is(err, ErrNoUsableNode) 的错误。
func (g *Getter) Get(ctx context.Context, opts ...Option) (Node, error) {
	if node := g.cache.Cached(); node != nil {
		return g.cache.Get(ctx, nil)
	}

	cfg := g.base.base.Clone()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return g.cache.Get(ctx, cfg)
}

// Cached 返回已缓存的句柄，未缓存时返回 nil
func (g *Getter) Cached() Node {
	return g.cache.Cached()
}

// Source 返回已缓存句柄的来源
func (g *Getter) Source() Source {
	return g.cache.Source()
}

// State 返回缓存状态
func (g *Getter) State() State {
	return g.cache.State()
}

// ConnState 返回后台连接状态
func (g *Getter) ConnState() ConnState {
	return g.cache.ConnState()
}

// WaitConnected 等待后台连接结束并返回连接结果
func (g *Getter) WaitConnected(ctx context.Context) (ConnectReport, error) {
	return g.cache.WaitConnected(ctx)
}

// Close 停止后台连接任务
//
// 已缓存的句柄仍可通过 Cached 取得。
func (g *Getter) Close(ctx context.Context) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()

	if err := g.app.Stop(ctx); err != nil {
		logger.Warn("停止 Getter 失败", "error", err)
		return err
	}
	return nil
}
