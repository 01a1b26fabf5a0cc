package types

// Source 节点句柄来源
//
// 来源标签决定连接阶段使用哪一组来源专属节点地址：
//   - SourceHost 使用 HostPeers
//   - SourceDynamic 使用 RemotePeers
type Source int

const (
	// SourceUnknown 未知来源（尚未解析）
	SourceUnknown Source = iota

	// SourceHost 宿主环境预先提供的节点
	SourceHost

	// SourceDynamic 动态加载后构造的节点
	SourceDynamic
)

// String 返回来源的字符串表示
func (s Source) String() string {
	switch s {
	case SourceHost:
		return "host"
	case SourceDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}
