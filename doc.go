// Package getipfs 获取一个可用的 IPFS 节点句柄
//
// go-getipfs 优先复用宿主环境已提供的 IPFS 节点（"ipfs" 绑定），
// 宿主节点不可用时动态加载节点包（"Ipfs" 绑定）创建新节点，
// 成功后在后台连接配置的节点地址。首次成功的结果在 Getter 内缓存，
// 之后的调用直接返回同一个句柄。
//
// # 快速开始
//
//	import "github.com/dep2p/go-getipfs"
//
//	node, err := getipfs.Get(ctx,
//	    getipfs.WithPermissions("id", "version", "swarm"),
//	    getipfs.WithRemotePeers("/ip4/104.131.131.82/tcp/4001/p2p/QmaCpDMGvV2BGHeYERUEnRQAwe3N8SzbUtfsmvsqQLuvuJ"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	info, _ := node.ID(ctx)
//	fmt.Println(info.ID)
//
// # 解析顺序
//
//  1. 宿主路径：读取 "ipfs" 绑定。绑定需要授权时按请求的能力启用，
//     然后在探测超时内调用 ID 确认节点可用。
//  2. 动态路径：通过 Factory 或远程来源取得节点包，以延迟启动方式
//     创建节点并探测。
//  3. 两条路径都失败时返回 ErrNoUsableNode，缓存保持为空，下次调用重新解析。
//
// # 后台连接
//
// 句柄缓存后，Get 立即返回；Peers 与对应来源的 HostPeers 或 RemotePeers
// 在后台并发连接。任一地址成功即结束，否则按 Connect.Attempts 与
// Connect.Delay 重试。WaitConnected 可等待连接结果。
//
// # 依赖注入
//
// 内部组件通过 Uber Fx 组装：
//
//	hostenv → metrics → loader → resolver → connector → cache
//
// New 接受 BuildOption 替换宿主环境、加载器、时钟与指标注册表，
// 测试中常用 WithEnv 与 WithLoader。
package getipfs
