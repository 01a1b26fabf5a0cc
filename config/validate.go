package config

import (
	"fmt"
	"net/url"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
)

// validateAddrs 验证节点地址列表
//
// 每个地址都必须是合法的 multiaddr。
func validateAddrs(field string, addrs []string) error {
	for i, addr := range addrs {
		if _, err := ma.NewMultiaddr(addr); err != nil {
			return fmt.Errorf("%s[%d]: invalid multiaddr %q: %w", field, i, addr, err)
		}
	}
	return nil
}

// validateRemote 验证远程来源地址
//
// 支持 multiaddr（"/ip4/127.0.0.1/tcp/5001"）与 http(s) URL。
func validateRemote(remote string) error {
	if strings.HasPrefix(remote, "/") {
		if _, err := ma.NewMultiaddr(remote); err != nil {
			return fmt.Errorf("invalid remote_source multiaddr %q: %w", remote, err)
		}
		return nil
	}
	u, err := url.Parse(remote)
	if err != nil {
		return fmt.Errorf("invalid remote_source url %q: %w", remote, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("remote_source %q: unsupported scheme %q", remote, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("remote_source %q: missing host", remote)
	}
	return nil
}
