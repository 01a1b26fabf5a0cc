package kubo

import (
	"context"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/types"
)

// Gate 需要显式启用的宿主节点
//
// 启用前所有节点调用都返回 ErrNotEnabled；
// Enable 返回只允许所请求能力的 Node。
type Gate struct {
	node *Node
}

var (
	_ interfaces.Node    = (*Gate)(nil)
	_ interfaces.Enabler = (*Gate)(nil)
)

// NewGate 以 node 为底层创建 Gate
func NewGate(node *Node) *Gate {
	return &Gate{node: node}
}

// Endpoint 返回底层 RPC 端点
func (g *Gate) Endpoint() string {
	return g.node.endpoint
}

// ID 启用前不可用
func (g *Gate) ID(context.Context) (types.IDInfo, error) {
	return types.IDInfo{}, ErrNotEnabled
}

// ConnectPeer 启用前不可用
func (g *Gate) ConnectPeer(context.Context, string) error {
	return ErrNotEnabled
}

// Enable 以给定能力集合启用节点
func (g *Gate) Enable(ctx context.Context, permissions []string) (interfaces.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("启用宿主节点", "endpoint", g.node.endpoint, "permissions", permissions)
	return g.node.Restrict(permissions), nil
}
