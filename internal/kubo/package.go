package kubo

import (
	"context"
	"fmt"
	"net/http"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/types"
)

// Package 绑定到一个 RPC 端点的节点包
type Package struct {
	endpoint string
	client   *http.Client
	version  VersionInfo
}

var _ interfaces.Package = (*Package)(nil)

// Endpoint 返回 RPC 端点
func (p *Package) Endpoint() string {
	return p.endpoint
}

// Version 返回获取时端点报告的版本
func (p *Package) Version() VersionInfo {
	return p.version
}

// Create 构造节点句柄
//
// Start 为 false 时不产生任何网络连接；
// Start 为 true 时依次连接 Bootstrap 中的地址，单个失败只记录日志。
func (p *Package) Create(ctx context.Context, opts types.CreateOptions) (interfaces.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node := NewNode(p.endpoint, p.client)
	if !opts.Start {
		return node, nil
	}
	for _, addr := range opts.Bootstrap {
		if err := node.ConnectPeer(ctx, addr); err != nil {
			logger.Warn("初始节点连接失败", "addr", addr, "error", err)
		}
	}
	return node, nil
}

// Fetch 从远程端点获取节点包
//
// 端点必须应答 /api/v0/version 且版本非空，否则返回 ErrMalformedPackage。
func Fetch(ctx context.Context, endpoint string, client *http.Client) (*Package, error) {
	client = httpClient(client)
	sh := shell.NewShellWithClient(endpoint, client)

	v, err := version(ctx, sh, endpoint)
	if err != nil {
		return nil, err
	}
	if v.Version == "" {
		return nil, fmt.Errorf("%w: %s reported empty version", ErrMalformedPackage, endpoint)
	}

	logger.Info("获取节点包", "endpoint", endpoint, "version", v.Version)
	return &Package{endpoint: endpoint, client: client, version: v}, nil
}

// DiscoverLocal 发现本机守护进程
//
// 读取 $IPFS_PATH/api（默认 ~/.ipfs/api），返回需要启用的 Gate。
func DiscoverLocal() (*Gate, error) {
	sh := shell.NewLocalShell()
	if sh == nil {
		return nil, ErrNoLocalDaemon
	}
	return NewGate(&Node{sh: sh, endpoint: "local"}), nil
}
