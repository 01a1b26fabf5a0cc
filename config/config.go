// Package config 提供 go-getipfs 的配置管理
//
// Config 是节点解析的不可变输入：
//   - Permissions: 向宿主节点请求的能力集合（可选）
//   - Peers / HostPeers / RemotePeers: 连接阶段使用的节点地址
//   - Loader: 动态加载来源（直接 Factory 或远程地址）
//   - Probe / Connect: 健康探测与连接重试策略
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Peers = []string{"/dnsaddr/bootstrap.libp2p.io/p2p/QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN"}
//	cfg.Connect.Attempts = 3
//
//	// 从 JSON 加载
//	cfg, err := config.LoadFile("getipfs.json")
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dep2p/go-getipfs/pkg/types"
)

// Config 是 go-getipfs 的完整配置结构
type Config struct {
	// Permissions 向需要显式启用的宿主节点请求的能力
	//
	// nil 表示未指定，使用默认能力集合；
	// 非 nil（包括空切片）表示调用方自定义，协商时只补齐 id 与 version。
	Permissions []string `json:"permissions"`

	// Peers 无论句柄来源都会尝试连接的节点地址
	Peers []string `json:"peers,omitempty"`

	// HostPeers 仅当使用宿主节点时追加的地址
	HostPeers []string `json:"host_peers,omitempty"`

	// RemotePeers 仅当使用动态加载节点时追加的地址
	RemotePeers []string `json:"remote_peers,omitempty"`

	// Loader 动态加载配置
	Loader LoaderConfig `json:"loader"`

	// Probe 健康探测配置
	Probe ProbeConfig `json:"probe"`

	// Connect 节点连接配置
	Connect ConnectConfig `json:"connect"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Loader:  DefaultLoaderConfig(),
		Probe:   DefaultProbeConfig(),
		Connect: DefaultConnectConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	for _, p := range c.Permissions {
		if p == "" {
			return errors.New("permission name cannot be empty")
		}
	}
	if err := validateAddrs("peers", c.Peers); err != nil {
		return err
	}
	if err := validateAddrs("host_peers", c.HostPeers); err != nil {
		return err
	}
	if err := validateAddrs("remote_peers", c.RemotePeers); err != nil {
		return err
	}
	if err := c.Loader.Validate(); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	if err := c.Probe.Validate(); err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	if err := c.Connect.Validate(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

// Clone 深拷贝配置
//
// Permissions 的 nil 与空切片语义会被保留。
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Permissions != nil {
		out.Permissions = slices.Clone(c.Permissions)
	}
	out.Peers = slices.Clone(c.Peers)
	out.HostPeers = slices.Clone(c.HostPeers)
	out.RemotePeers = slices.Clone(c.RemotePeers)
	return &out
}

// PeersFor 返回指定来源需要连接的节点地址
//
// 结果为 Peers 与来源专属列表的并集，保持首次出现顺序并去重。
func (c *Config) PeersFor(source types.Source) []string {
	var extra []string
	switch source {
	case types.SourceHost:
		extra = c.HostPeers
	case types.SourceDynamic:
		extra = c.RemotePeers
	}

	seen := make(map[string]struct{}, len(c.Peers)+len(extra))
	out := make([]string, 0, len(c.Peers)+len(extra))
	for _, list := range [][]string{c.Peers, extra} {
		for _, addr := range list {
			if _, ok := seen[addr]; ok {
				continue
			}
			seen[addr] = struct{}{}
			out = append(out, addr)
		}
	}
	return out
}
