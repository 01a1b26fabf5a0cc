package types

// CreateOptions 节点构造选项
//
// 动态加载路径总是以 Start=false、空 Bootstrap 构造节点，
// 由 PeerConnector 显式控制全部连接行为。
type CreateOptions struct {
	// Start 构造后是否立即开始联网
	Start bool

	// Bootstrap 初始节点地址列表
	Bootstrap []string
}

// DeferredStart 返回延迟启动、无初始节点的构造选项
func DeferredStart() CreateOptions {
	return CreateOptions{Start: false, Bootstrap: []string{}}
}
