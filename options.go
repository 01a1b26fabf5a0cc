package getipfs

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dep2p/go-getipfs/config"
	"github.com/dep2p/go-getipfs/pkg/interfaces"
)

// ════════════════════════════════════════════════════════════════════════════
//                              构建选项
// ════════════════════════════════════════════════════════════════════════════

// BuildOption Getter 构建选项
type BuildOption func(*buildConfig) error

// buildConfig 内部构建配置
type buildConfig struct {
	base          *config.Config
	env           interfaces.Env
	loader        interfaces.Loader
	clock         clock.Clock
	registerer    prometheus.Registerer
	fxLogger      *zap.Logger
	userFxOptions []fx.Option
}

func newBuildConfig() *buildConfig {
	return &buildConfig{
		base:     config.NewConfig(),
		fxLogger: zap.NewNop(),
	}
}

// WithEnv 使用指定的宿主环境
//
// 默认使用进程级绑定表。环境不可写时，动态加载的节点包写入覆盖层。
func WithEnv(env interfaces.Env) BuildOption {
	return func(b *buildConfig) error {
		if env == nil {
			return errors.New("宿主环境不能为空")
		}
		b.env = env
		return nil
	}
}

// WithLoader 使用指定的动态加载器替代默认实现
func WithLoader(loader interfaces.Loader) BuildOption {
	return func(b *buildConfig) error {
		if loader == nil {
			return errors.New("加载器不能为空")
		}
		b.loader = loader
		return nil
	}
}

// WithClock 使用指定的时钟（连接重试间隔）
func WithClock(clk clock.Clock) BuildOption {
	return func(b *buildConfig) error {
		if clk == nil {
			return errors.New("时钟不能为空")
		}
		b.clock = clk
		return nil
	}
}

// WithRegisterer 将指标注册到 reg
//
// 默认注册到独立的 Registry。
func WithRegisterer(reg prometheus.Registerer) BuildOption {
	return func(b *buildConfig) error {
		b.registerer = reg
		return nil
	}
}

// WithBaseConfig 设置每次 Get 的基础配置
//
// 基础配置中的 Loader.CacheSize 与 Loader.Timeout 同时用于构建加载器。
func WithBaseConfig(cfg *config.Config) BuildOption {
	return func(b *buildConfig) error {
		if cfg == nil {
			return errors.New("基础配置不能为空")
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid base config: %w", err)
		}
		b.base = cfg.Clone()
		return nil
	}
}

// WithFxLogger 使用 zap logger 输出 Fx 事件
//
// 默认丢弃 Fx 事件日志。
func WithFxLogger(l *zap.Logger) BuildOption {
	return func(b *buildConfig) error {
		if l == nil {
			l = zap.NewNop()
		}
		b.fxLogger = l
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) BuildOption {
	return func(b *buildConfig) error {
		b.userFxOptions = append(b.userFxOptions, opts...)
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              解析选项
// ════════════════════════════════════════════════════════════════════════════

// Option 单次 Get 的配置选项
//
// 选项作用于基础配置的副本；句柄已缓存时不再生效。
type Option func(*config.Config) error

// WithConfig 以 cfg 替换基础配置
func WithConfig(cfg *config.Config) Option {
	return func(c *config.Config) error {
		if cfg == nil {
			return errors.New("配置不能为空")
		}
		*c = *cfg.Clone()
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置并替换基础配置
func WithConfigFile(path string) Option {
	return func(c *config.Config) error {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		*c = *loaded
		return nil
	}
}

// WithPermissions 设置向宿主节点请求的能力
//
// 不调用时使用默认能力集合；调用时 id 与 version 总会被补齐。
func WithPermissions(permissions ...string) Option {
	return func(c *config.Config) error {
		c.Permissions = append([]string{}, permissions...)
		return nil
	}
}

// WithPeers 设置无论来源都要连接的节点地址
func WithPeers(addrs ...string) Option {
	return func(c *config.Config) error {
		c.Peers = append([]string(nil), addrs...)
		return nil
	}
}

// WithHostPeers 设置使用宿主节点时追加的节点地址
func WithHostPeers(addrs ...string) Option {
	return func(c *config.Config) error {
		c.HostPeers = append([]string(nil), addrs...)
		return nil
	}
}

// WithRemotePeers 设置使用动态节点时追加的节点地址
func WithRemotePeers(addrs ...string) Option {
	return func(c *config.Config) error {
		c.RemotePeers = append([]string(nil), addrs...)
		return nil
	}
}

// WithFactory 使用 f 作为动态加载来源
func WithFactory(f Factory) Option {
	return func(c *config.Config) error {
		if f == nil {
			return errors.New("节点包不能为空")
		}
		c.Loader.Factory = f
		return nil
	}
}

// WithRemoteSource 使用 remote 作为动态加载来源
//
// remote 可以是 URL（http://127.0.0.1:5001）或 multiaddr（/ip4/127.0.0.1/tcp/5001）。
func WithRemoteSource(remote string) Option {
	return func(c *config.Config) error {
		if remote == "" {
			return errors.New("远程来源不能为空")
		}
		c.Loader.RemoteSource = remote
		return nil
	}
}

// WithConnectRetry 设置连接轮数与轮间间隔
func WithConnectRetry(attempts int, delay time.Duration) Option {
	return func(c *config.Config) error {
		if attempts < 0 || delay < 0 {
			return fmt.Errorf("invalid connect retry: attempts=%d delay=%s", attempts, delay)
		}
		c.Connect.Attempts = attempts
		c.Connect.Delay = config.Duration(delay)
		return nil
	}
}

// WithConnectTimeout 设置单个地址的连接超时
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *config.Config) error {
		c.Connect.Timeout = config.Duration(timeout)
		return nil
	}
}

// WithProbeTimeout 设置健康探测超时
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *config.Config) error {
		c.Probe.Timeout = config.Duration(timeout)
		return nil
	}
}

// WithLoaderTimeout 设置动态加载超时
func WithLoaderTimeout(timeout time.Duration) Option {
	return func(c *config.Config) error {
		c.Loader.Timeout = config.Duration(timeout)
		return nil
	}
}
