// Package hostenv 实现宿主环境的全局绑定
//
// 宿主环境通过两个约定名称向解析器暴露节点：
//   - "ipfs": 宿主预先提供的节点句柄
//   - "Ipfs": 动态加载之后可用的节点包
//
// 集成代码（例如 cmd/getipfs 发现的本机守护进程）在解析之前写入 "ipfs"；
// 动态加载器在获取节点包之后写入 "Ipfs"。
package hostenv

import (
	"sync"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
)

var logger = log.Logger("hostenv")

// Bindings 并发安全的全局绑定表
//
// parent 非空时，本表未命中的名称继续向 parent 查询；
// 写入只影响本表。
type Bindings struct {
	mu     sync.RWMutex
	values map[string]any
	parent interfaces.Env
}

var _ interfaces.MutableEnv = (*Bindings)(nil)

// New 创建空的绑定表
func New() *Bindings {
	return &Bindings{values: make(map[string]any)}
}

// Overlay 创建以 parent 为底层的可写绑定表
func Overlay(parent interfaces.Env) *Bindings {
	b := New()
	b.parent = parent
	return b
}

// Lookup 查询绑定
//
// 值为 nil 的绑定视为不存在。
func (b *Bindings) Lookup(name string) (any, bool) {
	b.mu.RLock()
	v, ok := b.values[name]
	parent := b.parent
	b.mu.RUnlock()

	if ok && v != nil {
		return v, true
	}
	if parent != nil {
		return parent.Lookup(name)
	}
	return nil, false
}

// Set 设置绑定，value 为 nil 等同于 Delete
func (b *Bindings) Set(name string, value any) {
	if value == nil {
		b.Delete(name)
		return
	}
	b.mu.Lock()
	b.values[name] = value
	b.mu.Unlock()
	logger.Debug("设置全局绑定", "name", name)
}

// Delete 删除绑定
func (b *Bindings) Delete(name string) {
	b.mu.Lock()
	delete(b.values, name)
	b.mu.Unlock()
}

// Names 返回本表中已设置的绑定名称
func (b *Bindings) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.values))
	for name := range b.values {
		names = append(names, name)
	}
	return names
}

// ============================================================================
//                              进程级绑定表
// ============================================================================

var global = New()

// Global 返回进程级绑定表
func Global() *Bindings {
	return global
}

// SetNode 在进程级绑定表中设置宿主节点
func SetNode(node interfaces.Node) {
	if node == nil {
		global.Delete(interfaces.BindingNode)
		return
	}
	global.Set(interfaces.BindingNode, node)
}

// LookupNode 从环境中取出宿主节点
//
// 绑定不存在或类型不是 Node 时返回 false。
func LookupNode(env interfaces.Env) (interfaces.Node, bool) {
	if env == nil {
		return nil, false
	}
	v, ok := env.Lookup(interfaces.BindingNode)
	if !ok {
		return nil, false
	}
	node, ok := v.(interfaces.Node)
	return node, ok && node != nil
}

// LookupPackage 从环境中取出节点包
func LookupPackage(env interfaces.Env) (interfaces.Package, bool) {
	if env == nil {
		return nil, false
	}
	v, ok := env.Lookup(interfaces.BindingPackage)
	if !ok {
		return nil, false
	}
	pkg, ok := v.(interfaces.Package)
	return pkg, ok && pkg != nil
}
