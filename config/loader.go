package config

import (
	"errors"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
)

// DefaultRemoteSource 默认远程节点包来源（本机 Kubo RPC API）
const DefaultRemoteSource = "/ip4/127.0.0.1/tcp/5001"

// LoaderConfig 动态加载配置
type LoaderConfig struct {
	// RemoteSource 远程来源地址（URL 或 multiaddr）
	RemoteSource string `json:"remote_source,omitempty"`

	// Factory 直接提供的节点包，优先于 RemoteSource
	//
	// 仅能通过代码设置。
	Factory interfaces.Factory `json:"-"`

	// Timeout 远程获取的 HTTP 超时
	Timeout Duration `json:"timeout,omitempty"`

	// CacheSize 已获取节点包的缓存容量
	CacheSize int `json:"cache_size,omitempty"`
}

// DefaultLoaderConfig 返回默认加载配置
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		RemoteSource: DefaultRemoteSource,
		Timeout:      10 * second,
		CacheSize:    8,
	}
}

// Validate 验证加载配置
func (c LoaderConfig) Validate() error {
	if c.Factory == nil && c.RemoteSource != "" {
		if err := validateRemote(c.RemoteSource); err != nil {
			return err
		}
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	if c.CacheSize < 0 {
		return errors.New("cache_size cannot be negative")
	}
	return nil
}

// Locator 返回动态加载来源
//
// Factory 优先；未设置 RemoteSource 时回退到 DefaultRemoteSource。
func (c LoaderConfig) Locator() interfaces.Locator {
	if c.Factory != nil {
		return interfaces.Locator{Factory: c.Factory}
	}
	remote := c.RemoteSource
	if remote == "" {
		remote = DefaultRemoteSource
	}
	return interfaces.Locator{Remote: remote}
}
