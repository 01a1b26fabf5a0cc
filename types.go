package getipfs

import (
	"github.com/dep2p/go-getipfs/internal/cache"
	"github.com/dep2p/go-getipfs/internal/connector"
	"github.com/dep2p/go-getipfs/internal/hostenv"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Node 节点句柄
type Node = interfaces.Node

// Factory 函数形式的节点包
type Factory = interfaces.Factory

// CreateOptions 节点构造选项
type CreateOptions = types.CreateOptions

// IDInfo 节点身份
type IDInfo = types.IDInfo

// Source 句柄来源
type Source = types.Source

// State 缓存状态
type State = cache.State

// ConnState 后台连接状态
type ConnState = cache.ConnState

// ConnectReport 后台连接结果
type ConnectReport = connector.Report

// 来源与状态常量
const (
	SourceHost    = types.SourceHost
	SourceDynamic = types.SourceDynamic

	StateEmpty     = cache.StateEmpty
	StateResolving = cache.StateResolving
	StateCached    = cache.StateCached

	ConnIdle        = cache.ConnIdle
	ConnConnecting  = cache.ConnConnecting
	ConnConnected   = cache.ConnConnected
	ConnUnconnected = cache.ConnUnconnected
)

// SetHostNode 设置进程级宿主节点（"ipfs" 绑定）
//
// 必须在首次 Get 之前调用才会生效。node 为 nil 时清除绑定。
func SetHostNode(node Node) {
	hostenv.SetNode(node)
}
