package resolver

import "errors"

// 预定义错误
//
// 每个失败分类对应一个哨兵错误，Outcome.Err 可用 errors.Is 判断。
var (
	// ErrNoHostHandle 宿主环境未提供节点
	ErrNoHostHandle = errors.New("resolver: no host handle")

	// ErrHostUnhealthy 宿主节点启用失败或健康探测失败
	ErrHostUnhealthy = errors.New("resolver: host handle unhealthy")

	// ErrDynamicLoadFailed 动态加载节点包失败
	ErrDynamicLoadFailed = errors.New("resolver: dynamic load failed")

	// ErrDynamicUnhealthy 动态构造的节点构造失败或健康探测失败
	ErrDynamicUnhealthy = errors.New("resolver: dynamic handle unhealthy")
)
