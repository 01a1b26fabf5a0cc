package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-getipfs/config"
	"github.com/dep2p/go-getipfs/internal/hostenv"
	"github.com/dep2p/go-getipfs/internal/kubo"
	"github.com/dep2p/go-getipfs/internal/kubo/kubotest"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/types"
	"github.com/dep2p/go-getipfs/tests/mocks"
)

func newTestLoader(t *testing.T, env interfaces.MutableEnv) *Loader {
	t.Helper()
	l, err := New(DefaultConfig(), env, nil)
	require.NoError(t, err)
	return l
}

// TestAcquire_Factory Factory 来源原样返回并发布
func TestAcquire_Factory(t *testing.T) {
	env := hostenv.New()
	l := newTestLoader(t, env)

	node := mocks.NewHealthyNode("factory")
	factory := interfaces.Factory(func(context.Context, types.CreateOptions) (interfaces.Node, error) {
		return node, nil
	})

	pkg, err := l.Acquire(context.Background(), interfaces.Locator{Factory: factory, Remote: "ignored"})
	require.NoError(t, err)

	got, err := pkg.Create(context.Background(), types.DeferredStart())
	require.NoError(t, err)
	assert.Same(t, node, got)

	published, ok := hostenv.LookupPackage(env)
	require.True(t, ok)
	assert.NotNil(t, published)
}

// TestAcquire_Remote 远程来源通过 RPC 校验并缓存
func TestAcquire_Remote(t *testing.T) {
	srv := kubotest.NewServer(t)
	env := hostenv.New()
	l := newTestLoader(t, env)

	pkg, err := l.Acquire(context.Background(), interfaces.Locator{Remote: srv.URL})
	require.NoError(t, err)
	require.IsType(t, &kubo.Package{}, pkg)
	assert.Equal(t, 1, srv.Calls("version"))
	assert.Equal(t, 1, l.Cached())

	// 第二次命中缓存
	again, err := l.Acquire(context.Background(), interfaces.Locator{Remote: srv.URL})
	require.NoError(t, err)
	assert.Same(t, pkg, again)
	assert.Equal(t, 1, srv.Calls("version"))

	l.Forget(srv.URL)
	assert.Equal(t, 0, l.Cached())

	published, ok := hostenv.LookupPackage(env)
	require.True(t, ok)
	assert.Same(t, pkg, published)
}

// TestAcquire_RemoteFailureNotCached 失败结果不缓存
func TestAcquire_RemoteFailureNotCached(t *testing.T) {
	srv := kubotest.NewServer(t)
	srv.SetVersion("")
	env := hostenv.New()
	l := newTestLoader(t, env)

	_, err := l.Acquire(context.Background(), interfaces.Locator{Remote: srv.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, kubo.ErrMalformedPackage)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, srv.URL, loadErr.Source)
	assert.Equal(t, 0, l.Cached())

	_, ok := hostenv.LookupPackage(env)
	assert.False(t, ok)

	srv.SetVersion("0.29.0")
	_, err = l.Acquire(context.Background(), interfaces.Locator{Remote: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("version"))
}

// TestAcquire_NoSource 未指定来源
func TestAcquire_NoSource(t *testing.T) {
	l := newTestLoader(t, nil)
	_, err := l.Acquire(context.Background(), interfaces.Locator{})
	assert.ErrorIs(t, err, ErrNoSource)
}

// TestAcquire_NoCache 缓存容量为 0
func TestAcquire_NoCache(t *testing.T) {
	srv := kubotest.NewServer(t)
	l, err := New(Config{}, nil, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := l.Acquire(context.Background(), interfaces.Locator{Remote: srv.URL})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, srv.Calls("version"))
	assert.Equal(t, 0, l.Cached())
}

// TestModule 测试 Fx 模块
func TestModule(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Loader.CacheSize = 2

	var got interfaces.Loader
	app := fxtest.New(t,
		fx.Supply(cfg),
		hostenv.Module,
		Module,
		fx.Populate(&got),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.IsType(t, &Loader{}, got)
}

// TestModule_Override 调用方提供的加载器优先
func TestModule_Override(t *testing.T) {
	override := &stubLoader{}

	var got interfaces.Loader
	app := fxtest.New(t,
		fx.Provide(fx.Annotate(
			func() interfaces.Loader { return override },
			fx.ResultTags(`name:"loader_override"`),
		)),
		hostenv.Module,
		Module,
		fx.Populate(&got),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Same(t, override, got)
}

type stubLoader struct{}

func (*stubLoader) Acquire(context.Context, interfaces.Locator) (interfaces.Package, error) {
	return nil, errors.New("stub")
}
