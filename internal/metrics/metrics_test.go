package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// TestMetrics_Observe 测试计数器累加
func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveResolution("working", "host")
	m.ObserveResolution("working", "host")
	m.ObserveResolution("dynamic_load_failed", "unknown")
	m.ObserveProbe(true)
	m.ObserveProbe(false)
	m.ObserveProbe(false)
	m.ObserveRound()
	m.ObservePeerAttempt(true)
	m.ObservePeerAttempt(false)
	m.ObserveCacheLookup(true)
	m.ObserveCacheLookup(false)
	m.ObserveLoad(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues("working", "host")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues("dynamic_load_failed", "unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.probes.WithLabelValues(ProbeHealthy)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.probes.WithLabelValues(ProbeUnhealthy)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.connectRounds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.peerAttempts.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.peerAttempts.WithLabelValues(ResultFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues(ResultSuccess)))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Positive(t, count)
}

// TestMetrics_NilSafe nil 接收者不 panic
func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveResolution("working", "host")
		m.ObserveProbe(true)
		m.ObserveRound()
		m.ObservePeerAttempt(false)
		m.ObserveCacheLookup(true)
		m.ObserveLoad(false)
	})
}

// TestNew_ReuseRegistered 重复注册复用已有 collector
func TestNew_ReuseRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m1, err := New(reg)
	require.NoError(t, err)
	m2, err := New(reg)
	require.NoError(t, err)

	m1.ObserveRound()
	m2.ObserveRound()
	assert.Equal(t, 2.0, testutil.ToFloat64(m1.connectRounds))
}

// TestNew_NilRegisterer 未提供 Registerer 时使用独立 Registry
func TestNew_NilRegisterer(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, m)
}

// TestModule 测试 Fx 模块
func TestModule(t *testing.T) {
	var m *Metrics
	reg := prometheus.NewRegistry()

	app := fxtest.New(t,
		fx.Provide(func() prometheus.Registerer { return reg }),
		Module,
		fx.Populate(&m),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, m)
	m.ObserveProbe(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.probes.WithLabelValues(ProbeHealthy)))
}
