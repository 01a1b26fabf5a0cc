package types

import "time"

// RetryState 节点连接重试状态
//
// 按值传递；每完成一轮失败的连接尝试，Attempts 减一。
// Attempts 为 0 时连接流程结束（不返回错误）。
type RetryState struct {
	// Attempts 剩余尝试轮数
	Attempts int

	// Delay 两轮之间的固定等待时间
	Delay time.Duration
}

// Exhausted 是否已无剩余轮数
func (r RetryState) Exhausted() bool {
	return r.Attempts <= 0
}

// Next 返回消耗一轮之后的状态
func (r RetryState) Next() RetryState {
	if r.Attempts <= 0 {
		return RetryState{Delay: r.Delay}
	}
	return RetryState{Attempts: r.Attempts - 1, Delay: r.Delay}
}
