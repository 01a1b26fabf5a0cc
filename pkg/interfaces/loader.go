package interfaces

import "context"

// Locator 节点包来源
//
// Factory 与 Remote 二选一；Factory 优先。
type Locator struct {
	// Factory 直接提供的节点包
	Factory Factory

	// Remote 远程来源地址（URL 或 multiaddr）
	Remote string
}

// IsZero 是否未指定任何来源
func (l Locator) IsZero() bool {
	return l.Factory == nil && l.Remote == ""
}

// String 返回来源的可读表示（用于日志）
func (l Locator) String() string {
	if l.Factory != nil {
		return "factory"
	}
	if l.Remote == "" {
		return "<none>"
	}
	return l.Remote
}

// Loader 动态加载协作者
//
// 获取失败（网络错误、包格式错误）不是致命错误，
// 解析器会将其报告为 DynamicLoadFailed。
type Loader interface {
	// Acquire 获取节点包
	Acquire(ctx context.Context, locator Locator) (Package, error)
}
