package types

// ============================================================================
//                              能力名称
// ============================================================================

// 向需要显式启用的宿主节点请求的能力名称
const (
	// CapID 身份查询
	CapID = "id"

	// CapVersion 版本查询
	CapVersion = "version"

	// CapAdd 写入内容
	CapAdd = "add"

	// CapCat 读取内容
	CapCat = "cat"

	// CapDAG DAG 访问
	CapDAG = "dag"

	// CapSwarm 网络（swarm）访问
	CapSwarm = "swarm"
)

// DefaultPermissions 返回默认能力集合
//
// 每次调用返回新切片，调用方可以自由修改。
func DefaultPermissions() []string {
	return []string{CapID, CapVersion, CapAdd, CapCat, CapDAG, CapSwarm}
}

// RequiredPermissions 返回协商结果中必须包含的能力
func RequiredPermissions() []string {
	return []string{CapID, CapVersion}
}
