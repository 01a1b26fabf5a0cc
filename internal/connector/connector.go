// Package connector 实现有界重试的节点连接
//
// 每一轮并发连接全部地址，只要有一个成功即结束（部分成功视为成功）；
// 全部失败时等待固定间隔进入下一轮，直到轮数用尽。
// 连接失败只记录日志，从不向调用方返回错误。
package connector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-getipfs/internal/metrics"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
	"github.com/dep2p/go-getipfs/pkg/types"
)

var logger = log.Logger("connector")

// Report 连接结果
type Report struct {
	// Node 连接所用的句柄，原样返回
	Node interfaces.Node

	// Rounds 实际执行的轮数
	Rounds int

	// Connected 成功连接的地址（按输入顺序）
	Connected []string

	// Failed 最后一轮失败的地址（按输入顺序）
	Failed []string

	// Exhausted 轮数用尽且没有任何成功
	Exhausted bool

	// Canceled 连接过程被 context 取消
	Canceled bool
}

// Success 是否至少连接了一个节点
func (r Report) Success() bool {
	return len(r.Connected) > 0
}

// Connector 节点连接器
type Connector struct {
	clock   clock.Clock
	metrics *metrics.Metrics
}

// New 创建连接器
//
// clk 为 nil 时使用系统时钟；m 可以为 nil。
func New(clk clock.Clock, m *metrics.Metrics) *Connector {
	if clk == nil {
		clk = clock.New()
	}
	return &Connector{clock: clk, metrics: m}
}

// Connect 以有界重试连接节点
//
// retry.Attempts 为 0 或 peers 为空时立即返回，不发起任何连接。
// timeout 为单个地址的连接超时，0 表示只受 ctx 约束。
// 重复地址只尝试一次。
// 最后一轮失败后直接返回，不再等待 retry.Delay。
func (c *Connector) Connect(ctx context.Context, node interfaces.Node, peers []string, retry types.RetryState, timeout time.Duration) Report {
	report := Report{Node: node}
	peers = dedupe(peers)
	if node == nil || len(peers) == 0 {
		return report
	}

	start := c.clock.Now()
	for !retry.Exhausted() {
		if ctx.Err() != nil {
			report.Canceled = true
			return report
		}

		report.Rounds++
		c.metrics.ObserveRound()
		connected, failed := c.round(ctx, node, peers, timeout)
		report.Failed = failed

		if len(connected) > 0 {
			report.Connected = connected
			logger.Info("节点连接完成",
				"round", report.Rounds,
				"connected", len(connected),
				"failed", len(failed),
				"duration", c.clock.Since(start))
			return report
		}

		retry = retry.Next()
		logger.Debug("本轮连接全部失败",
			"round", report.Rounds,
			"remaining", retry.Attempts,
			"delay", retry.Delay)
		if retry.Exhausted() {
			break
		}
		if !c.wait(ctx, retry.Delay) {
			report.Canceled = true
			return report
		}
	}

	report.Exhausted = true
	logger.Warn("所有节点连接失败",
		"rounds", report.Rounds,
		"peers", len(peers),
		"duration", c.clock.Since(start))
	return report
}

func (c *Connector) wait(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-c.clock.After(delay):
		return true
	case <-ctx.Done():
		return false
	}
}

// round 并发连接全部地址，等待本轮全部完成
func (c *Connector) round(ctx context.Context, node interfaces.Node, peers []string, timeout time.Duration) (connected, failed []string) {
	type connResult struct {
		index int
		err   error
	}
	results := make(chan connResult, len(peers))
	var wg sync.WaitGroup

	for i, addr := range peers {
		wg.Add(1)
		go func(i int, addr string) {
			defer wg.Done()
			err := c.attempt(ctx, node, addr, timeout)
			c.metrics.ObservePeerAttempt(err == nil)
			if err != nil {
				logger.Debug("节点连接失败", "addr", addr, "error", err)
			}
			results <- connResult{index: i, err: err}
		}(i, addr)
	}

	wg.Wait()
	close(results)

	ok := make([]bool, len(peers))
	for res := range results {
		ok[res.index] = res.err == nil
	}
	for i, addr := range peers {
		if ok[i] {
			connected = append(connected, addr)
		} else {
			failed = append(failed, addr)
		}
	}
	return connected, failed
}

func (c *Connector) attempt(ctx context.Context, node interfaces.Node, addr string, timeout time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = c.clock.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return node.ConnectPeer(ctx, addr)
}

func dedupe(peers []string) []string {
	if len(peers) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(peers))
	out := make([]string, 0, len(peers))
	for _, p := range peers {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
