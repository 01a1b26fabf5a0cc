// Package probe 实现节点句柄的健康探测
//
// 探测只发起一次身份查询：ID 与 AgentVersion 均非空即为可用。
// 探测失败是正常信号，不是异常：查询错误、超时、返回不完整，
// 甚至句柄实现内部 panic，都只会得到 false。
package probe

import (
	"context"
	"time"

	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
)

var logger = log.Logger("probe")

// Prober 健康探测器
type Prober struct {
	metrics *metrics.Metrics
}

// New 创建健康探测器
//
// m 可以为 nil。
func New(m *metrics.Metrics) *Prober {
	return &Prober{metrics: m}
}

// IsWorking 检查节点句柄是否可用
//
// timeout 为单次身份查询的超时，0 表示只受 ctx 约束。
// nil 句柄直接返回 false。
func (p *Prober) IsWorking(ctx context.Context, node interfaces.Node, timeout time.Duration) bool {
	ok := p.check(ctx, node, timeout)
	if p != nil {
		p.metrics.ObserveProbe(ok)
	}
	return ok
}

func (p *Prober) check(ctx context.Context, node interfaces.Node, timeout time.Duration) (ok bool) {
	if node == nil {
		logger.Debug("探测对象为空")
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("身份查询 panic", "panic", r)
			ok = false
		}
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	info, err := node.ID(ctx)
	if err != nil {
		logger.Debug("身份查询失败", "error", err, "duration", time.Since(start))
		return false
	}
	if !info.Valid() {
		logger.Debug("身份信息不完整",
			"id", log.TruncateID(info.ID, 16),
			"agentVersion", info.AgentVersion)
		return false
	}

	logger.Debug("节点健康",
		"id", log.TruncateID(info.ID, 16),
		"agentVersion", info.AgentVersion,
		"duration", time.Since(start))
	return true
}

// IsWorking 使用无指标的探测器检查节点句柄
func IsWorking(ctx context.Context, node interfaces.Node) bool {
	return New(nil).IsWorking(ctx, node, 0)
}
