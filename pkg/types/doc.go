// Package types 定义 go-getipfs 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - identity.go   - IDInfo 身份查询结果
//   - source.go     - Source 节点句柄来源标签
//   - outcome.go    - OutcomeKind 解析结果分类
//   - retry.go      - RetryState 连接重试状态
//   - create.go     - CreateOptions 节点构造选项
//   - capability.go - 能力（权限）名称常量
package types
