package main

import (
	"os"
	"strconv"
	"time"

	"github.com/dep2p/go-getipfs/config"
)

// 环境变量（GETIPFS_ 前缀）
const (
	envPrefix       = "GETIPFS_"
	envRemote       = "REMOTE_SOURCE"
	envPeers        = "PEERS"
	envHostPeers    = "HOST_PEERS"
	envRemotePeers  = "REMOTE_PEERS"
	envAttempts     = "CONNECT_ATTEMPTS"
	envDelay        = "CONNECT_DELAY"
	envProbeTimeout = "PROBE_TIMEOUT"
)

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
// 无法解析的值被忽略。
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv(envPrefix + envRemote); v != "" {
		cfg.Loader.RemoteSource = v
	}
	if v := os.Getenv(envPrefix + envPeers); v != "" {
		cfg.Peers = splitList(v)
	}
	if v := os.Getenv(envPrefix + envHostPeers); v != "" {
		cfg.HostPeers = splitList(v)
	}
	if v := os.Getenv(envPrefix + envRemotePeers); v != "" {
		cfg.RemotePeers = splitList(v)
	}
	if v := os.Getenv(envPrefix + envAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Connect.Attempts = n
		}
	}
	if v := os.Getenv(envPrefix + envDelay); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Connect.Delay = config.Duration(d)
		}
	}
	if v := os.Getenv(envPrefix + envProbeTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Probe.Timeout = config.Duration(d)
		}
	}
}
