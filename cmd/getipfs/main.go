// Package main 提供 getipfs 命令行入口
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-getipfs"
	"github.com/dep2p/go-getipfs/config"
	"github.com/dep2p/go-getipfs/internal/kubo"
	"github.com/dep2p/go-getipfs/pkg/lib/log"
)

var logger = log.Logger("getipfs/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖（「这次运行」想怎么连）
//   JSON 配置文件：持久化配置（能力、节点地址、超时）
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	// ─────────────────────────────────────────────────────────────────────
	// 运行时参数
	// ─────────────────────────────────────────────────────────────────────
	configFile  = flag.String("config", "", "配置文件路径")
	remote      = flag.String("remote", "", "动态加载使用的 Kubo RPC 端点（URL 或 multiaddr）")
	peers       = flag.String("peers", "", "始终连接的节点地址（逗号分隔）")
	permissions = flag.String("permissions", "", "向宿主节点请求的能力（逗号分隔）")
	noHost      = flag.Bool("no-host", false, "不探测本机 Kubo 守护进程")
	wait        = flag.Duration("wait", 30*time.Second, "等待后台连接完成的最长时间（0 = 不等待）")

	// ─────────────────────────────────────────────────────────────────────
	// 运维参数
	// ─────────────────────────────────────────────────────────────────────
	metricsAddr = flag.String("metrics-addr", "", "Prometheus 指标监听地址（如 127.0.0.1:9090）")
	verbose     = flag.Bool("v", false, "输出 Debug 日志")
	logFormat   = flag.String("log-format", "text", "日志格式 (text/json)")

	// ─────────────────────────────────────────────────────────────────────
	// 信息显示
	// ─────────────────────────────────────────────────────────────────────
	showVersion = flag.Bool("version", false, "显示版本信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(getipfs.VersionInfo())
		return nil
	}
	if err := setupLogging(os.Stderr, *logFormat); err != nil {
		return err
	}
	if *verbose {
		log.SetLevel(log.LevelDebug)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// ═══════════════════════════════════════════════════════════════════
	// 1. 配置（配置文件 → 环境变量 → 命令行参数）
	// ═══════════════════════════════════════════════════════════════════
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	// ═══════════════════════════════════════════════════════════════════
	// 2. 宿主节点（本机 Kubo 守护进程）
	// ═══════════════════════════════════════════════════════════════════
	if !*noHost {
		gate, err := kubo.DiscoverLocal()
		switch {
		case err == nil:
			getipfs.SetHostNode(gate)
			logger.Info("发现本机 Kubo 守护进程", "endpoint", gate.Endpoint())
		case errors.Is(err, kubo.ErrNoLocalDaemon):
			logger.Info("未发现本机 Kubo 守护进程")
		default:
			logger.Warn("探测本机 Kubo 守护进程失败", "error", err)
		}
	}

	// ═══════════════════════════════════════════════════════════════════
	// 3. 指标
	// ═══════════════════════════════════════════════════════════════════
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if *metricsAddr != "" {
		srv := serveMetrics(*metricsAddr, reg)
		defer func() { _ = srv.Close() }()
	}

	// ═══════════════════════════════════════════════════════════════════
	// 4. 获取节点句柄
	// ═══════════════════════════════════════════════════════════════════
	g, err := getipfs.New(
		getipfs.WithBaseConfig(cfg),
		getipfs.WithRegisterer(reg),
	)
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		_ = g.Close(stopCtx)
	}()

	node, err := g.Get(ctx)
	if err != nil {
		return err
	}
	info, err := node.ID(ctx)
	if err != nil {
		return fmt.Errorf("查询节点身份失败: %w", err)
	}
	printNodeInfo(g.Source(), info)

	// ═══════════════════════════════════════════════════════════════════
	// 5. 等待后台连接
	// ═══════════════════════════════════════════════════════════════════
	if *wait > 0 {
		waitCtx, waitCancel := context.WithTimeout(ctx, *wait)
		defer waitCancel()
		report, err := g.WaitConnected(waitCtx)
		if err != nil {
			fmt.Printf("连接未完成: %v\n", err)
		} else {
			printReport(report)
		}
	}

	if *metricsAddr != "" {
		fmt.Println("指标服务运行中，按 Ctrl+C 退出")
		<-ctx.Done()
	}
	return nil
}

// loadConfig 按优先级合并配置
func loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	if *remote != "" {
		cfg.Loader.RemoteSource = *remote
	}
	if *peers != "" {
		cfg.Peers = splitList(*peers)
	}
	if isFlagSet("permissions") {
		cfg.Permissions = splitList(*permissions)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging 按格式设置日志输出
func setupLogging(w io.Writer, format string) error {
	switch format {
	case "", "text":
		log.SetOutput(w)
	case "json":
		log.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: log.LevelVar()})))
	default:
		return fmt.Errorf("未知日志格式: %s", format)
	}
	return nil
}

// serveMetrics 启动指标 HTTP 服务
func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("指标服务异常退出", "error", err)
		}
	}()
	logger.Info("指标服务已启动", "addr", addr)
	return srv
}

// printNodeInfo 输出节点信息
func printNodeInfo(source getipfs.Source, info getipfs.IDInfo) {
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Printf("  来源:     %s\n", source)
	fmt.Printf("  节点 ID:  %s\n", info.ID)
	if info.AgentVersion != "" {
		fmt.Printf("  版本:     %s\n", info.AgentVersion)
	}
	for _, addr := range info.Addresses {
		fmt.Printf("  地址:     %s\n", addr)
	}
	fmt.Println("═══════════════════════════════════════════════════════")
}

// printReport 输出连接结果
func printReport(r getipfs.ConnectReport) {
	switch {
	case r.Rounds == 0:
		fmt.Println("未配置节点地址，跳过连接")
	case r.Success():
		fmt.Printf("已连接 %d 个节点（%d 轮）\n", len(r.Connected), r.Rounds)
	default:
		fmt.Printf("连接失败（%d 轮）: %s\n", r.Rounds, strings.Join(r.Failed, ", "))
	}
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
