package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现在 JSON 中的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "permissions": ["id", "version", "add"],
//	  "peers": ["/ip4/104.131.131.82/tcp/4001/p2p/QmaCpDMGvV2BGHeYERUEnRQAwe3N8SzbUtfsmvsqQLuvuJ"],
//	  "remote_peers": [],
//	  "loader": {"remote_source": "/ip4/127.0.0.1/tcp/5001", "timeout": "10s"},
//	  "connect": {"attempts": 2, "delay": "1s", "timeout": "10s"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: empty config path")
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return FromJSON(data)
}

// ToJSON 将配置序列化为 JSON
//
// Loader.Factory 不参与序列化。
func (c *Config) ToJSON() ([]byte, error) {
	if c == nil {
		return nil, errors.New("config is nil")
	}
	return json.MarshalIndent(c, "", "  ")
}
