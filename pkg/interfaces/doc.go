// Package interfaces 定义 go-getipfs 公共接口
//
// 接口只描述本模块实际消费的节点能力面：
//
//   - Node: 身份查询 + 连接节点
//   - Enabler: 宿主节点可选的能力启用操作
//   - Package / Factory: 可构造节点的节点包
//   - Env: 宿主环境的全局绑定查询
//   - Loader: 动态加载节点包的协作者
//
// 可选能力通过显式的接口断言判断，而不是探测结构体字段。
package interfaces
