// Package kubotest 提供模拟 Kubo RPC API 的测试服务器
package kubotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dep2p/go-getipfs/pkg/types"
)

// DefaultPeerID 测试服务器默认节点 ID
const DefaultPeerID = "12D3KooWGRUVh7RkChqChFrYQDGz3Dmmp8z5FCsSxiFpHG7p3XdZ"

// Server 模拟的 Kubo 守护进程
//
// 支持 id、version、swarm/connect 三个命令。
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	identity types.IDInfo
	version  string
	failing  map[string]bool
	connects []string
	calls    map[string]int
}

// NewServer 启动测试服务器，测试结束时自动关闭
func NewServer(tb testing.TB) *Server {
	tb.Helper()
	s := &Server{
		identity: types.IDInfo{
			ID:              DefaultPeerID,
			AgentVersion:    "kubo/0.29.0/",
			ProtocolVersion: "ipfs/0.1.0",
		},
		version: "0.29.0",
		failing: make(map[string]bool),
		calls:   make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	tb.Cleanup(s.Close)
	return s
}

// SetIdentity 设置 id 命令的返回内容
func (s *Server) SetIdentity(info types.IDInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = info
}

// SetVersion 设置 version 命令返回的版本
func (s *Server) SetVersion(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = v
}

// FailPeer 让指定地址的连接失败
func (s *Server) FailPeer(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[addr] = true
}

// Connects 返回收到的 swarm/connect 地址
func (s *Server) Connects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.connects))
	copy(out, s.connects)
	return out
}

// Calls 返回命令被调用的次数
func (s *Server) Calls(cmd string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[cmd]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	cmd := strings.TrimPrefix(r.URL.Path, "/api/v0/")

	s.mu.Lock()
	s.calls[cmd]++
	identity := s.identity
	version := s.version
	s.mu.Unlock()

	switch cmd {
	case "id":
		writeJSON(w, identity)
	case "version":
		writeJSON(w, map[string]string{"Version": version, "System": "amd64/linux"})
	case "swarm/connect":
		addr := r.URL.Query().Get("arg")
		s.mu.Lock()
		s.connects = append(s.connects, addr)
		fail := s.failing[addr]
		s.mu.Unlock()
		if fail {
			writeError(w, http.StatusInternalServerError, "connect "+addr+" failure: dial backoff")
			return
		}
		writeJSON(w, map[string][]string{"Strings": {"connect " + addr + " success"}})
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"Message": msg, "Code": 0, "Type": "error"})
}
