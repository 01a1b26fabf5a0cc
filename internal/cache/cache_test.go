package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-getipfs/config"
	"github.com/dep2p/go-getipfs/internal/connector"
	"github.com/dep2p/go-getipfs/internal/resolver"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/types"
	"github.com/dep2p/go-getipfs/tests/mocks"
)

// mockResolver 模拟解析器
type mockResolver struct {
	ResolveFunc func(ctx context.Context, cfg *config.Config) resolver.Outcome

	calls atomic.Int32
}

func (m *mockResolver) Resolve(ctx context.Context, cfg *config.Config) resolver.Outcome {
	m.calls.Add(1)
	return m.ResolveFunc(ctx, cfg)
}

func workingResolver(node interfaces.Node, source types.Source) *mockResolver {
	return &mockResolver{
		ResolveFunc: func(context.Context, *config.Config) resolver.Outcome {
			return resolver.Outcome{Kind: types.OutcomeWorking, Node: node, Source: source}
		},
	}
}

func failingResolver() *mockResolver {
	return &mockResolver{
		ResolveFunc: func(context.Context, *config.Config) resolver.Outcome {
			return resolver.Outcome{
				Kind: types.OutcomeDynamicLoadFailed,
				Host: types.OutcomeHostUnhealthy,
				Err:  errors.Join(resolver.ErrHostUnhealthy, resolver.ErrDynamicLoadFailed),
			}
		},
	}
}

func newTestCache(t *testing.T, r Resolver) *Cache {
	t.Helper()
	c := New(r, connector.New(clock.NewMock(), nil), nil)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

// TestGet_CachesHandle 第二次调用返回同一句柄且不重新解析
func TestGet_CachesHandle(t *testing.T) {
	node := mocks.NewHealthyNode("n")
	r := workingResolver(node, types.SourceDynamic)
	c := newTestCache(t, r)

	assert.Equal(t, StateEmpty, c.State())
	assert.Nil(t, c.Cached())

	first, err := c.Get(context.Background(), nil)
	require.NoError(t, err)
	second, err := c.Get(context.Background(), nil)
	require.NoError(t, err)

	assert.Same(t, node, first)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), r.calls.Load())
	assert.Equal(t, StateCached, c.State())
	assert.Equal(t, types.SourceDynamic, c.Source())
}

// TestGet_FailureNotCached 失败结果不缓存，下次调用重新解析
func TestGet_FailureNotCached(t *testing.T) {
	r := failingResolver()
	c := newTestCache(t, r)

	_, err := c.Get(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoUsableNode)
	assert.ErrorIs(t, err, resolver.ErrHostUnhealthy)

	var resErr *ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, types.OutcomeDynamicLoadFailed, resErr.Outcome)
	assert.Equal(t, types.OutcomeHostUnhealthy, resErr.Host)
	assert.NotEmpty(t, resErr.Attempt)

	assert.Equal(t, StateEmpty, c.State())
	assert.Nil(t, c.Cached())

	// 第二次调用重新解析，成功后缓存
	node := mocks.NewHealthyNode("n")
	r.ResolveFunc = workingResolver(node, types.SourceHost).ResolveFunc
	got, err := c.Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Same(t, node, got)
	assert.Equal(t, int32(2), r.calls.Load())
}

// TestGet_Concurrent 并发调用共享一次解析
func TestGet_Concurrent(t *testing.T) {
	node := mocks.NewHealthyNode("n")
	release := make(chan struct{})
	r := &mockResolver{
		ResolveFunc: func(context.Context, *config.Config) resolver.Outcome {
			<-release
			return resolver.Outcome{Kind: types.OutcomeWorking, Node: node, Source: types.SourceHost}
		},
	}
	c := newTestCache(t, r)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]interfaces.Node, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := c.Get(context.Background(), nil)
			assert.NoError(t, err)
			results[i] = n
		}(i)
	}

	require.Eventually(t, func() bool { return c.State() == StateResolving }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), r.calls.Load())
	for _, n := range results {
		assert.Same(t, node, n)
	}
}

// TestGet_CallerCanceled 调用方取消不影响进行中的解析
func TestGet_CallerCanceled(t *testing.T) {
	node := mocks.NewHealthyNode("n")
	release := make(chan struct{})
	r := &mockResolver{
		ResolveFunc: func(ctx context.Context, _ *config.Config) resolver.Outcome {
			<-release
			if ctx.Err() != nil {
				return resolver.Outcome{Kind: types.OutcomeDynamicUnhealthy, Err: ctx.Err()}
			}
			return resolver.Outcome{Kind: types.OutcomeWorking, Node: node, Source: types.SourceHost}
		},
	}
	c := newTestCache(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx, nil)
		errCh <- err
	}()

	require.Eventually(t, func() bool { return c.State() == StateResolving }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return c.State() == StateCached }, time.Second, time.Millisecond)
	assert.Same(t, node, c.Cached())
}

// TestGet_PeerSelection 按来源选择连接地址
func TestGet_PeerSelection(t *testing.T) {
	tests := []struct {
		name   string
		source types.Source
		want   []string
	}{
		{"host", types.SourceHost, []string{"/ip4/10.0.0.1/tcp/4001", "/ip4/10.0.0.2/tcp/4001"}},
		{"dynamic", types.SourceDynamic, []string{"/ip4/10.0.0.1/tcp/4001", "/ip4/10.0.0.3/tcp/4001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mocks.NewHealthyNode("n")
			c := newTestCache(t, workingResolver(node, tt.source))

			cfg := config.NewConfig()
			cfg.Peers = []string{"/ip4/10.0.0.1/tcp/4001"}
			cfg.HostPeers = []string{"/ip4/10.0.0.2/tcp/4001"}
			cfg.RemotePeers = []string{"/ip4/10.0.0.3/tcp/4001"}

			_, err := c.Get(context.Background(), cfg)
			require.NoError(t, err)

			report, err := c.WaitConnected(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, report.Rounds)
			assert.Equal(t, tt.want, report.Connected)
			assert.ElementsMatch(t, tt.want, node.ConnectCalls())
			assert.Equal(t, ConnConnected, c.ConnState())
		})
	}
}

// TestGet_DoesNotWaitForConnect 返回句柄不等待连接完成
func TestGet_DoesNotWaitForConnect(t *testing.T) {
	node := mocks.NewHealthyNode("n")
	block := make(chan struct{})
	node.ConnectPeerFunc = func(ctx context.Context, _ string) error {
		select {
		case <-block:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c := newTestCache(t, workingResolver(node, types.SourceHost))

	cfg := config.NewConfig()
	cfg.Peers = []string{"/ip4/10.0.0.1/tcp/4001"}
	cfg.Connect.Timeout = 0

	got, err := c.Get(context.Background(), cfg)
	require.NoError(t, err)
	assert.Same(t, node, got)
	assert.Equal(t, ConnConnecting, c.ConnState())

	close(block)
	report, err := c.WaitConnected(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Success())
	assert.Equal(t, ConnConnected, c.ConnState())
}

// TestGet_NoPeers 没有地址时连接状态为 idle
func TestGet_NoPeers(t *testing.T) {
	c := newTestCache(t, workingResolver(mocks.NewHealthyNode("n"), types.SourceHost))

	_, err := c.Get(context.Background(), nil)
	require.NoError(t, err)

	report, err := c.WaitConnected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Rounds)
	assert.Equal(t, ConnIdle, c.ConnState())
}

// TestGet_ConnectFailureNotFatal 连接失败不影响句柄
func TestGet_ConnectFailureNotFatal(t *testing.T) {
	node := mocks.NewHealthyNode("n")
	node.ConnectPeerFunc = func(context.Context, string) error { return errors.New("refused") }
	c := newTestCache(t, workingResolver(node, types.SourceHost))

	cfg := config.NewConfig()
	cfg.Peers = []string{"/ip4/10.0.0.1/tcp/4001"}
	cfg.Connect.Attempts = 1

	got, err := c.Get(context.Background(), cfg)
	require.NoError(t, err)
	assert.Same(t, node, got)

	report, err := c.WaitConnected(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Exhausted)
	assert.Equal(t, ConnUnconnected, c.ConnState())
	assert.Same(t, node, c.Cached())
}

// TestWaitConnected_NotCached 未缓存时返回 ErrNotCached
func TestWaitConnected_NotCached(t *testing.T) {
	c := newTestCache(t, failingResolver())
	_, err := c.WaitConnected(context.Background())
	assert.ErrorIs(t, err, ErrNotCached)
}

// TestClose 关闭后保留句柄，拒绝新的解析
func TestClose(t *testing.T) {
	node := mocks.NewHealthyNode("n")
	c := newTestCache(t, workingResolver(node, types.SourceHost))
	_, err := c.Get(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, c.Close(context.Background()))
	assert.Same(t, node, c.Cached())

	empty := newTestCache(t, failingResolver())
	require.NoError(t, empty.Close(context.Background()))
	_, err = empty.Get(context.Background(), nil)
	assert.ErrorIs(t, err, ErrClosed)
}

// TestState_String 测试状态字符串
func TestState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "resolving", StateResolving.String())
	assert.Equal(t, "cached", StateCached.String())
	assert.Equal(t, "connecting", ConnConnecting.String())
	assert.Equal(t, "unconnected", ConnUnconnected.String())
}

// TestModule 测试 Fx 模块
func TestModule(t *testing.T) {
	var c *Cache
	app := fxtest.New(t,
		fx.Provide(
			func() interfaces.Env { return mocks.NewMockEnv() },
			func() interfaces.Loader { return nil },
		),
		resolver.Module,
		connector.Module,
		Module,
		fx.Populate(&c),
	)
	app.RequireStart()

	require.NotNil(t, c)
	_, err := c.Get(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoUsableNode)

	app.RequireStop()
}

// TestClose_DuringResolve 解析进行中关闭时，句柄仍缓存但不启动后台连接
func TestClose_DuringResolve(t *testing.T) {
	node := mocks.NewHealthyNode("n")
	release := make(chan struct{})
	r := &mockResolver{
		ResolveFunc: func(context.Context, *config.Config) resolver.Outcome {
			<-release
			return resolver.Outcome{Kind: types.OutcomeWorking, Node: node, Source: types.SourceHost}
		},
	}
	c := newTestCache(t, r)

	cfg := config.NewConfig()
	cfg.Peers = []string{"/ip4/127.0.0.1/tcp/4001"}

	type result struct {
		node interfaces.Node
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		n, err := c.Get(context.Background(), cfg)
		resCh <- result{n, err}
	}()

	require.Eventually(t, func() bool { return c.State() == StateResolving }, time.Second, time.Millisecond)
	require.NoError(t, c.Close(context.Background()))
	close(release)

	res := <-resCh
	require.NoError(t, res.err)
	assert.Same(t, node, res.node)
	assert.Equal(t, StateCached, c.State())
	assert.Equal(t, ConnUnconnected, c.ConnState())

	report, err := c.WaitConnected(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Canceled)
	assert.Zero(t, report.Rounds)
	assert.Empty(t, node.ConnectCalls())
}
