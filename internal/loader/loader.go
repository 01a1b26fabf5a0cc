// Package loader 实现动态加载协作者
//
// 宿主环境没有提供可用节点时，解析器通过 Loader 获取节点包：
//   - Factory 来源：调用方直接提供的构造函数，原样返回
//   - Remote 来源：通过 kubo.Fetch 校验远程 RPC 端点，成功结果按地址缓存
//
// 获取成功的节点包会发布到宿主环境的 "Ipfs" 绑定。
// 获取失败不缓存，下一次解析会重新尝试。
package loader

import (
	"context"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-getipfs/internal/kubo"
	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
)

var logger = log.Logger("loader")

// Config 加载器配置
type Config struct {
	// CacheSize 远程节点包缓存容量，0 表示不缓存
	CacheSize int

	// HTTPTimeout RPC 客户端超时
	HTTPTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		CacheSize:   8,
		HTTPTimeout: 10 * time.Second,
	}
}

// Loader 动态加载器
type Loader struct {
	env     interfaces.MutableEnv
	client  *http.Client
	cache   *lru.Cache[string, *kubo.Package]
	metrics *metrics.Metrics
}

var _ interfaces.Loader = (*Loader)(nil)

// New 创建加载器
//
// env 为 nil 时不发布节点包；m 可以为 nil。
func New(cfg Config, env interfaces.MutableEnv, m *metrics.Metrics) (*Loader, error) {
	l := &Loader{
		env:     env,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
		metrics: m,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, *kubo.Package](cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		l.cache = cache
	}
	return l, nil
}

// Acquire 获取节点包
func (l *Loader) Acquire(ctx context.Context, locator interfaces.Locator) (interfaces.Package, error) {
	pkg, err := l.acquire(ctx, locator)
	l.metrics.ObserveLoad(err == nil)
	if err != nil {
		logger.Warn("获取节点包失败", "source", locator.String(), "error", err)
		return nil, err
	}

	if l.env != nil {
		l.env.Set(interfaces.BindingPackage, pkg)
	}
	logger.Debug("获取节点包成功", "source", locator.String())
	return pkg, nil
}

func (l *Loader) acquire(ctx context.Context, locator interfaces.Locator) (interfaces.Package, error) {
	if locator.IsZero() {
		return nil, ErrNoSource
	}
	if locator.Factory != nil {
		return locator.Factory, nil
	}
	return l.fetch(ctx, locator.Remote)
}

func (l *Loader) fetch(ctx context.Context, remote string) (interfaces.Package, error) {
	if l.cache != nil {
		if pkg, ok := l.cache.Get(remote); ok {
			logger.Debug("节点包缓存命中", "source", remote)
			return pkg, nil
		}
	}

	pkg, err := kubo.Fetch(ctx, remote, l.client)
	if err != nil {
		return nil, &LoadError{Source: remote, Err: err}
	}
	if l.cache != nil {
		l.cache.Add(remote, pkg)
	}
	return pkg, nil
}

// Forget 删除某个远程来源的缓存
func (l *Loader) Forget(remote string) {
	if l.cache != nil {
		l.cache.Remove(remote)
	}
}

// Cached 返回缓存中的节点包数量
func (l *Loader) Cached() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}
