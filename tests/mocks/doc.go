// Package mocks 提供统一的测试 Mock 实现
//
// # 核心 Mock
//
//   - MockNode: 模拟 interfaces.Node，支持自定义身份与连接结果，并发安全
//   - MockEnabler: 模拟需要显式启用的宿主节点（interfaces.Node + interfaces.Enabler）
//   - MockPackage: 模拟 interfaces.Package，记录构造选项
//   - MockEnv: 模拟 interfaces.MutableEnv
//   - MockLoader: 基于 gomock 的 interfaces.Loader
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
//
// # 使用示例
//
// 基础用法:
//
//	import "github.com/dep2p/go-getipfs/tests/mocks"
//
//	func TestMyFunction(t *testing.T) {
//	    node := mocks.NewMockNode(types.IDInfo{ID: "12D3KooW...", AgentVersion: "kubo/0.29.0/"})
//	    info, _ := node.ID(context.Background())
//	    if info.ID == "" {
//	        t.Error("unexpected ID")
//	    }
//	}
//
// 自定义行为:
//
//	node := mocks.NewMockNode(info)
//	node.ConnectPeerFunc = func(ctx context.Context, addr string) error {
//	    return errors.New("connection refused")
//	}
//
// 验证调用:
//
//	ctrl := gomock.NewController(t)
//	loader := mocks.NewMockLoader(ctrl)
//	loader.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(pkg, nil).Times(1)
package mocks
