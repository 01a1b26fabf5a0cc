package mocks

import (
	"sync"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
)

// MockEnv 模拟 MutableEnv 接口实现
type MockEnv struct {
	// 可覆盖的方法
	LookupFunc func(name string) (any, bool)

	mu       sync.Mutex
	bindings map[string]any
	lookups  []string
}

var _ interfaces.MutableEnv = (*MockEnv)(nil)

// NewMockEnv 创建空的 MockEnv
func NewMockEnv() *MockEnv {
	return &MockEnv{bindings: make(map[string]any)}
}

// WithNode 设置宿主节点绑定
func (m *MockEnv) WithNode(node interfaces.Node) *MockEnv {
	m.Set(interfaces.BindingNode, node)
	return m
}

// Lookup 查询绑定
func (m *MockEnv) Lookup(name string) (any, bool) {
	m.mu.Lock()
	m.lookups = append(m.lookups, name)
	fn := m.LookupFunc
	v, ok := m.bindings[name]
	m.mu.Unlock()

	if fn != nil {
		return fn(name)
	}
	return v, ok
}

// Set 设置绑定
func (m *MockEnv) Set(name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bindings == nil {
		m.bindings = make(map[string]any)
	}
	m.bindings[name] = value
}

// Lookups 返回查询过的绑定名称
func (m *MockEnv) Lookups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lookups))
	copy(out, m.lookups)
	return out
}
