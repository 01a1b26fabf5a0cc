package cache

// State 缓存状态
type State int

const (
	// StateEmpty 未缓存句柄
	StateEmpty State = iota

	// StateResolving 正在解析
	StateResolving

	// StateCached 已缓存句柄，此后不再改变
	StateCached
)

// String 返回状态的字符串表示
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateResolving:
		return "resolving"
	case StateCached:
		return "cached"
	default:
		return "unknown"
	}
}

// ConnState 后台连接状态
type ConnState int

const (
	// ConnIdle 未进行连接（未缓存、没有地址或轮数为 0）
	ConnIdle ConnState = iota

	// ConnConnecting 后台连接进行中
	ConnConnecting

	// ConnConnected 至少连接了一个节点
	ConnConnected

	// ConnUnconnected 轮数用尽或被取消，没有任何成功
	ConnUnconnected
)

// String 返回连接状态的字符串表示
func (s ConnState) String() string {
	switch s {
	case ConnIdle:
		return "idle"
	case ConnConnecting:
		return "connecting"
	case ConnConnected:
		return "connected"
	case ConnUnconnected:
		return "unconnected"
	default:
		return "unknown"
	}
}
