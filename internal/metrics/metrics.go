// Package metrics 提供 go-getipfs 的 Prometheus 指标
//
// 所有方法对 nil 接收者安全：未装配指标时调用方无需判空。
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace 指标命名空间
const Namespace = "getipfs"

// 标签取值
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	ProbeHealthy   = "healthy"
	ProbeUnhealthy = "unhealthy"
)

// Metrics 节点解析相关指标
type Metrics struct {
	resolutions   *prometheus.CounterVec
	probes        *prometheus.CounterVec
	connectRounds prometheus.Counter
	peerAttempts  *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	loads         *prometheus.CounterVec
}

// New 创建指标并注册到 reg
//
// reg 为 nil 时使用独立的 Registry。
// 同名指标已注册时复用已有的 collector。
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolutions_total",
			Help:      "Node resolutions by outcome and source.",
		}, []string{"outcome", "source"}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "probes_total",
			Help:      "Health probes by result.",
		}, []string{"result"}),
		connectRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "connect_rounds_total",
			Help:      "Peer connection rounds started.",
		}),
		peerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "peer_attempts_total",
			Help:      "Individual peer connection attempts by result.",
		}, []string{"result"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_lookups_total",
			Help:      "Singleton cache lookups by result.",
		}, []string{"result"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "package_loads_total",
			Help:      "Dynamic package acquisitions by result.",
		}, []string{"result"}),
	}

	var err error
	if m.resolutions, err = register(reg, m.resolutions); err != nil {
		return nil, err
	}
	if m.probes, err = register(reg, m.probes); err != nil {
		return nil, err
	}
	if m.connectRounds, err = register(reg, m.connectRounds); err != nil {
		return nil, err
	}
	if m.peerAttempts, err = register(reg, m.peerAttempts); err != nil {
		return nil, err
	}
	if m.cacheLookups, err = register(reg, m.cacheLookups); err != nil {
		return nil, err
	}
	if m.loads, err = register(reg, m.loads); err != nil {
		return nil, err
	}
	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ============================================================================
//                              记录方法
// ============================================================================

// ObserveResolution 记录一次解析结果
func (m *Metrics) ObserveResolution(outcome, source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome, source).Inc()
}

// ObserveProbe 记录一次健康探测
func (m *Metrics) ObserveProbe(healthy bool) {
	if m == nil {
		return
	}
	if healthy {
		m.probes.WithLabelValues(ProbeHealthy).Inc()
		return
	}
	m.probes.WithLabelValues(ProbeUnhealthy).Inc()
}

// ObserveRound 记录一轮连接
func (m *Metrics) ObserveRound() {
	if m == nil {
		return
	}
	m.connectRounds.Inc()
}

// ObservePeerAttempt 记录单个节点连接尝试
func (m *Metrics) ObservePeerAttempt(ok bool) {
	if m == nil {
		return
	}
	m.peerAttempts.WithLabelValues(result(ok)).Inc()
}

// ObserveCacheLookup 记录缓存命中或未命中
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveLoad 记录一次节点包获取
func (m *Metrics) ObserveLoad(ok bool) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
