package types

// OutcomeKind 解析结果分类
//
// 只有 OutcomeWorking 表示得到了可用句柄，其余均为失败分类。
// OutcomeNoHostHandle 与 OutcomeHostUnhealthy 只描述宿主路径的结果，
// 解析流程会在它们之后继续尝试动态加载路径。
type OutcomeKind int

const (
	// OutcomeUnknown 未解析
	OutcomeUnknown OutcomeKind = iota

	// OutcomeWorking 得到可用句柄
	OutcomeWorking

	// OutcomeNoHostHandle 宿主环境未提供节点
	OutcomeNoHostHandle

	// OutcomeHostUnhealthy 宿主节点存在但启用失败或健康探测失败
	OutcomeHostUnhealthy

	// OutcomeDynamicLoadFailed 动态加载节点包失败
	OutcomeDynamicLoadFailed

	// OutcomeDynamicUnhealthy 动态构造的节点构造失败或健康探测失败
	OutcomeDynamicUnhealthy
)

// String 返回结果分类的字符串表示
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeWorking:
		return "working"
	case OutcomeNoHostHandle:
		return "no_host_handle"
	case OutcomeHostUnhealthy:
		return "host_unhealthy"
	case OutcomeDynamicLoadFailed:
		return "dynamic_load_failed"
	case OutcomeDynamicUnhealthy:
		return "dynamic_unhealthy"
	default:
		return "unknown"
	}
}

// IsWorking 是否为可用结果
func (k OutcomeKind) IsWorking() bool {
	return k == OutcomeWorking
}
