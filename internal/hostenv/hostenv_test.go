package hostenv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/tests/mocks"
)

// TestBindings_SetLookup 测试设置与查询
func TestBindings_SetLookup(t *testing.T) {
	b := New()

	_, ok := b.Lookup(interfaces.BindingNode)
	assert.False(t, ok)

	node := mocks.NewHealthyNode("host")
	b.Set(interfaces.BindingNode, node)

	v, ok := b.Lookup(interfaces.BindingNode)
	require.True(t, ok)
	assert.Same(t, node, v)

	// 名称区分大小写
	_, ok = b.Lookup(interfaces.BindingPackage)
	assert.False(t, ok)

	b.Set(interfaces.BindingNode, nil)
	_, ok = b.Lookup(interfaces.BindingNode)
	assert.False(t, ok)
}

// TestBindings_Overlay 测试覆盖层读写
func TestBindings_Overlay(t *testing.T) {
	parent := mocks.NewMockEnv()
	hostNode := mocks.NewHealthyNode("host")
	parent.Set(interfaces.BindingNode, hostNode)

	b := Overlay(parent)
	v, ok := b.Lookup(interfaces.BindingNode)
	require.True(t, ok)
	assert.Same(t, hostNode, v)

	pkg := mocks.NewMockPackage(nil)
	b.Set(interfaces.BindingPackage, pkg)

	_, ok = parent.Lookup(interfaces.BindingPackage)
	assert.False(t, ok, "覆盖层写入不影响底层")

	got, ok := LookupPackage(b)
	require.True(t, ok)
	assert.Same(t, pkg, got)
}

// TestLookupNode 测试类型检查
func TestLookupNode(t *testing.T) {
	_, ok := LookupNode(nil)
	assert.False(t, ok)

	b := New()
	b.Set(interfaces.BindingNode, "not a node")
	_, ok = LookupNode(b)
	assert.False(t, ok)

	node := mocks.NewHealthyNode("host")
	b.Set(interfaces.BindingNode, node)
	got, ok := LookupNode(b)
	require.True(t, ok)
	assert.Same(t, node, got)

	b.Set(interfaces.BindingPackage, 42)
	_, ok = LookupPackage(b)
	assert.False(t, ok)
}

// TestGlobal_SetNode 测试进程级绑定
func TestGlobal_SetNode(t *testing.T) {
	node := mocks.NewHealthyNode("global")
	SetNode(node)
	defer SetNode(nil)

	got, ok := LookupNode(Global())
	require.True(t, ok)
	assert.Same(t, node, got)

	SetNode(nil)
	_, ok = LookupNode(Global())
	assert.False(t, ok)
}

// TestBindings_Concurrent 测试并发读写
func TestBindings_Concurrent(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Set(interfaces.BindingPackage, mocks.NewMockPackage(nil))
		}()
		go func() {
			defer wg.Done()
			b.Lookup(interfaces.BindingPackage)
		}()
	}
	wg.Wait()
	assert.Equal(t, []string{interfaces.BindingPackage}, b.Names())
}

// TestModule_Default 未提供环境时使用进程级绑定表
func TestModule_Default(t *testing.T) {
	var env interfaces.MutableEnv
	app := fxtest.New(t, Module, fx.Populate(&env))
	app.RequireStart()
	defer app.RequireStop()

	assert.Same(t, Global(), env)
}

// TestModule_Custom 提供可写环境时直接使用
func TestModule_Custom(t *testing.T) {
	custom := mocks.NewMockEnv()
	var env interfaces.Env

	app := fxtest.New(t,
		fx.Provide(fx.Annotate(
			func() interfaces.Env { return custom },
			fx.ResultTags(`name:"host_env"`),
		)),
		Module,
		fx.Populate(&env),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Same(t, custom, env)
}

type readOnlyEnv struct{ node interfaces.Node }

func (e readOnlyEnv) Lookup(name string) (any, bool) {
	if name == interfaces.BindingNode {
		return e.node, true
	}
	return nil, false
}

// TestModule_ReadOnly 只读环境被覆盖层包装
func TestModule_ReadOnly(t *testing.T) {
	node := mocks.NewHealthyNode("ro")
	var env interfaces.MutableEnv

	app := fxtest.New(t,
		fx.Provide(fx.Annotate(
			func() interfaces.Env { return readOnlyEnv{node: node} },
			fx.ResultTags(`name:"host_env"`),
		)),
		Module,
		fx.Populate(&env),
	)
	app.RequireStart()
	defer app.RequireStop()

	got, ok := LookupNode(env)
	require.True(t, ok)
	assert.Same(t, node, got)

	env.Set(interfaces.BindingPackage, mocks.NewMockPackage(nil))
	_, ok = LookupPackage(env)
	assert.True(t, ok)
}
