package mocks

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/types"
)

// ErrNotEnabled MockEnabler 启用前的调用错误
var ErrNotEnabled = errors.New("mocks: node not enabled")

// ============================================================================
//                              MockNode
// ============================================================================

// MockNode 模拟 Node 接口实现
//
// 所有方法并发安全：连接阶段会并发调用 ConnectPeer。
type MockNode struct {
	// 基本属性
	Info types.IDInfo

	// 可覆盖的方法
	IDFunc          func(ctx context.Context) (types.IDInfo, error)
	ConnectPeerFunc func(ctx context.Context, addr string) error

	mu           sync.Mutex
	idCalls      int
	connectCalls []string
}

var _ interfaces.Node = (*MockNode)(nil)

// NewMockNode 创建返回固定身份的 MockNode
func NewMockNode(info types.IDInfo) *MockNode {
	return &MockNode{Info: info}
}

// NewHealthyNode 创建身份完整的 MockNode
func NewHealthyNode(id string) *MockNode {
	return NewMockNode(types.IDInfo{ID: id, AgentVersion: "kubo/0.29.0/mock"})
}

// ID 查询节点身份
func (m *MockNode) ID(ctx context.Context) (types.IDInfo, error) {
	m.mu.Lock()
	m.idCalls++
	fn := m.IDFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return m.Info, nil
}

// ConnectPeer 连接节点
func (m *MockNode) ConnectPeer(ctx context.Context, addr string) error {
	m.mu.Lock()
	m.connectCalls = append(m.connectCalls, addr)
	fn := m.ConnectPeerFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, addr)
	}
	return nil
}

// IDCalls 返回 ID 调用次数
func (m *MockNode) IDCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.idCalls
}

// ConnectCalls 返回 ConnectPeer 调用的地址（按调用顺序）
func (m *MockNode) ConnectCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.connectCalls)
}

// ============================================================================
//                              MockEnabler
// ============================================================================

// MockEnabler 模拟需要显式启用的宿主节点
//
// 启用前 ID 与 ConnectPeer 均返回 ErrNotEnabled；
// Enable 默认返回 Enabled 字段。
type MockEnabler struct {
	// Enabled Enable 的默认返回值
	Enabled interfaces.Node

	// 可覆盖的方法
	EnableFunc func(ctx context.Context, permissions []string) (interfaces.Node, error)

	mu          sync.Mutex
	enableCalls [][]string
}

var (
	_ interfaces.Node    = (*MockEnabler)(nil)
	_ interfaces.Enabler = (*MockEnabler)(nil)
)

// NewMockEnabler 创建启用后返回 enabled 的 MockEnabler
func NewMockEnabler(enabled interfaces.Node) *MockEnabler {
	return &MockEnabler{Enabled: enabled}
}

// ID 启用前不可用
func (m *MockEnabler) ID(context.Context) (types.IDInfo, error) {
	return types.IDInfo{}, ErrNotEnabled
}

// ConnectPeer 启用前不可用
func (m *MockEnabler) ConnectPeer(context.Context, string) error {
	return ErrNotEnabled
}

// Enable 以给定能力启用节点
func (m *MockEnabler) Enable(ctx context.Context, permissions []string) (interfaces.Node, error) {
	m.mu.Lock()
	m.enableCalls = append(m.enableCalls, slices.Clone(permissions))
	fn := m.EnableFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, permissions)
	}
	return m.Enabled, nil
}

// EnableCalls 返回每次 Enable 收到的能力集合
func (m *MockEnabler) EnableCalls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.enableCalls)
}

// ============================================================================
//                              MockPackage
// ============================================================================

// MockPackage 模拟 Package 接口实现
type MockPackage struct {
	// Node Create 的默认返回值
	Node interfaces.Node

	// 可覆盖的方法
	CreateFunc func(ctx context.Context, opts types.CreateOptions) (interfaces.Node, error)

	mu          sync.Mutex
	createCalls []types.CreateOptions
}

var _ interfaces.Package = (*MockPackage)(nil)

// NewMockPackage 创建构造结果为 node 的 MockPackage
func NewMockPackage(node interfaces.Node) *MockPackage {
	return &MockPackage{Node: node}
}

// Create 构造节点
func (m *MockPackage) Create(ctx context.Context, opts types.CreateOptions) (interfaces.Node, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, opts)
	fn := m.CreateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, opts)
	}
	return m.Node, nil
}

// CreateCalls 返回 Create 收到的选项
func (m *MockPackage) CreateCalls() []types.CreateOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.createCalls)
}
