package config

import (
	"errors"
	"time"

	"github.com/dep2p/go-getipfs/pkg/types"
)

const second = Duration(time.Second)

// ConnectConfig 节点连接配置
//
// 轮间延迟是固定值（非指数退避），属于可调策略。
type ConnectConfig struct {
	// Attempts 最多尝试的轮数
	Attempts int `json:"attempts"`

	// Delay 两轮之间的等待时间
	Delay Duration `json:"delay,omitempty"`

	// Timeout 单个地址连接超时，0 表示不设超时
	Timeout Duration `json:"timeout,omitempty"`
}

// DefaultConnectConfig 返回默认连接配置
func DefaultConnectConfig() ConnectConfig {
	return ConnectConfig{
		Attempts: 2,
		Delay:    1 * second,
		Timeout:  10 * second,
	}
}

// Validate 验证连接配置
func (c ConnectConfig) Validate() error {
	if c.Attempts < 0 {
		return errors.New("attempts cannot be negative")
	}
	if c.Delay < 0 {
		return errors.New("delay cannot be negative")
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}

// RetryState 返回初始重试状态
func (c ConnectConfig) RetryState() types.RetryState {
	return types.RetryState{
		Attempts: c.Attempts,
		Delay:    c.Delay.Duration(),
	}
}
