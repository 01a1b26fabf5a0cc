// Package interfaces 定义 go-getipfs 公共接口
//
// 本文件定义 Node 与 Enabler 接口。
package interfaces

import (
	"context"

	"github.com/dep2p/go-getipfs/pkg/types"
)

// Node 点对点网络节点句柄
//
// 句柄一旦被 SingletonCache 缓存，即由缓存独占持有，
// 之后所有调用方共享只读访问。
type Node interface {
	// ID 查询节点身份
	ID(ctx context.Context) (types.IDInfo, error)

	// ConnectPeer 连接到指定节点地址（multiaddr）
	ConnectPeer(ctx context.Context, addr string) error
}

// Enabler 需要显式启用的宿主节点
//
// 宿主提供的节点可能是能力受限的代理，必须先以一组能力名称启用，
// 启用结果才是可用的节点句柄。
type Enabler interface {
	// Enable 以给定能力集合启用节点，返回替换后的句柄
	Enable(ctx context.Context, permissions []string) (Node, error)
}
