// Package kubo 基于 Kubo RPC API 实现节点句柄
//
// 通过 github.com/ipfs/go-ipfs-api 访问 Kubo 守护进程：
//   - Node: 可用节点，ID 对应 /api/v0/id，ConnectPeer 对应 /api/v0/swarm/connect
//   - Gate: 需要显式启用的宿主节点，启用后得到受能力集合限制的 Node
//   - Package: 绑定到一个 RPC 端点的节点包，按选项构造 Node
//   - Fetch: 校验远程端点并返回 Package
//   - DiscoverLocal: 通过 $IPFS_PATH/api 发现本机守护进程
package kubo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
	"github.com/dep2p/go-getipfs/pkg/types"
)

var logger = log.Logger("kubo")

// DefaultHTTPTimeout RPC 客户端默认超时
const DefaultHTTPTimeout = 30 * time.Second

// VersionInfo /api/v0/version 的返回内容
type VersionInfo struct {
	Version string `json:"Version"`
	Commit  string `json:"Commit,omitempty"`
	Repo    string `json:"Repo,omitempty"`
	System  string `json:"System,omitempty"`
	Golang  string `json:"Golang,omitempty"`
}

// Node Kubo RPC 节点句柄
//
// allowed 为 nil 时不限制命令；否则只允许集合内的能力。
type Node struct {
	sh       *shell.Shell
	endpoint string
	allowed  map[string]struct{}
}

var _ interfaces.Node = (*Node)(nil)

// NewNode 创建指向 endpoint 的节点句柄
//
// endpoint 可以是 URL（http://127.0.0.1:5001）或 multiaddr（/ip4/127.0.0.1/tcp/5001）。
// client 为 nil 时使用 DefaultHTTPTimeout 的客户端。
func NewNode(endpoint string, client *http.Client) *Node {
	return &Node{
		sh:       shell.NewShellWithClient(endpoint, httpClient(client)),
		endpoint: endpoint,
	}
}

func httpClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: DefaultHTTPTimeout}
}

// Endpoint 返回 RPC 端点
func (n *Node) Endpoint() string {
	return n.endpoint
}

// Restrict 返回只允许 permissions 中能力的副本
func (n *Node) Restrict(permissions []string) *Node {
	allowed := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		allowed[p] = struct{}{}
	}
	return &Node{sh: n.sh, endpoint: n.endpoint, allowed: allowed}
}

// Permissions 返回已启用的能力，未限制时返回 nil
func (n *Node) Permissions() []string {
	if n.allowed == nil {
		return nil
	}
	out := make([]string, 0, len(n.allowed))
	for p := range n.allowed {
		out = append(out, p)
	}
	return out
}

func (n *Node) allow(capability, command string) error {
	if n.allowed == nil {
		return nil
	}
	if _, ok := n.allowed[capability]; ok {
		return nil
	}
	return &RPCError{Command: command, Endpoint: n.endpoint, Err: ErrPermissionDenied}
}

// ID 查询节点身份
func (n *Node) ID(ctx context.Context) (types.IDInfo, error) {
	const cmd = "id"
	if err := n.allow(types.CapID, cmd); err != nil {
		return types.IDInfo{}, err
	}
	var out types.IDInfo
	if err := n.sh.Request(cmd).Exec(ctx, &out); err != nil {
		return types.IDInfo{}, &RPCError{Command: cmd, Endpoint: n.endpoint, Err: err}
	}
	return out, nil
}

// ConnectPeer 连接到指定节点地址
func (n *Node) ConnectPeer(ctx context.Context, addr string) error {
	const cmd = "swarm/connect"
	if err := n.allow(types.CapSwarm, cmd); err != nil {
		return err
	}
	if _, err := ma.NewMultiaddr(addr); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidAddr, addr, err)
	}
	if err := n.sh.Request(cmd, addr).Exec(ctx, nil); err != nil {
		return &RPCError{Command: cmd, Endpoint: n.endpoint, Err: err}
	}
	logger.Debug("节点连接成功", "addr", addr, "endpoint", n.endpoint)
	return nil
}

// Version 查询节点版本
func (n *Node) Version(ctx context.Context) (VersionInfo, error) {
	const cmd = "version"
	if err := n.allow(types.CapVersion, cmd); err != nil {
		return VersionInfo{}, err
	}
	return version(ctx, n.sh, n.endpoint)
}

func version(ctx context.Context, sh *shell.Shell, endpoint string) (VersionInfo, error) {
	var out VersionInfo
	if err := sh.Request("version").Exec(ctx, &out); err != nil {
		return VersionInfo{}, &RPCError{Command: "version", Endpoint: endpoint, Err: err}
	}
	return out, nil
}
