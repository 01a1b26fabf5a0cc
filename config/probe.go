package config

import "errors"

// ProbeConfig 健康探测配置
type ProbeConfig struct {
	// Timeout 单次身份查询超时，0 表示不设超时
	Timeout Duration `json:"timeout,omitempty"`
}

// DefaultProbeConfig 返回默认健康探测配置
func DefaultProbeConfig() ProbeConfig {
	return ProbeConfig{Timeout: 5 * second}
}

// Validate 验证健康探测配置
func (c ProbeConfig) Validate() error {
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}
