package interfaces

import (
	"context"

	"github.com/dep2p/go-getipfs/pkg/types"
)

// Package 可构造节点的节点包
type Package interface {
	// Create 按选项构造节点句柄
	Create(ctx context.Context, opts types.CreateOptions) (Node, error)
}

// Factory 函数形式的节点包
//
// 调用方可以直接提供 Factory 作为加载覆盖，跳过远程获取。
type Factory func(ctx context.Context, opts types.CreateOptions) (Node, error)

// Create 实现 Package 接口
func (f Factory) Create(ctx context.Context, opts types.CreateOptions) (Node, error) {
	return f(ctx, opts)
}

// 确保 Factory 实现了 Package 接口
var _ Package = Factory(nil)
