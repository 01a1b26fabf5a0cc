package getipfs

import (
	"context"
	"sync"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "go-getipfs " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              进程级入口
// ════════════════════════════════════════════════════════════════════════════

var (
	defaultOnce   sync.Once
	defaultGetter *Getter
	defaultErr    error
)

// Default 返回进程级 Getter
//
// 首次调用时创建，使用进程级宿主绑定（见 SetHostNode）。
func Default() (*Getter, error) {
	defaultOnce.Do(func() {
		defaultGetter, defaultErr = New()
	})
	return defaultGetter, defaultErr
}

// Get 使用进程级 Getter 获取节点句柄
//
// 示例：
//
//	node, err := getipfs.Get(ctx,
//	    getipfs.WithPeers("/dnsaddr/bootstrap.libp2p.io/p2p/QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN"),
//	)
//	if errors.Is(err, getipfs.ErrNoUsableNode) {
//	    // 宿主节点与动态节点都不可用
//	}
func Get(ctx context.Context, opts ...Option) (Node, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.Get(ctx, opts...)
}
