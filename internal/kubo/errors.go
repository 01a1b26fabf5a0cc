package kubo

import (
	"errors"
	"fmt"
)

// 预定义错误
var (
	// ErrPermissionDenied 调用的命令不在已启用的能力集合中
	ErrPermissionDenied = errors.New("kubo: permission denied")

	// ErrNotEnabled 节点尚未启用
	ErrNotEnabled = errors.New("kubo: node not enabled")

	// ErrMalformedPackage 远程来源的应答不是可用的 Kubo 节点
	ErrMalformedPackage = errors.New("kubo: malformed package")

	// ErrNoLocalDaemon 未发现本机守护进程
	ErrNoLocalDaemon = errors.New("kubo: no local daemon")

	// ErrInvalidAddr 节点地址不是合法的 multiaddr
	ErrInvalidAddr = errors.New("kubo: invalid peer address")
)

// RPCError RPC 调用错误
type RPCError struct {
	Command  string
	Endpoint string
	Err      error
}

// Error 实现 error 接口
func (e *RPCError) Error() string {
	return fmt.Sprintf("kubo %s %s: %v", e.Endpoint, e.Command, e.Err)
}

// Unwrap 返回底层错误
func (e *RPCError) Unwrap() error {
	return e.Err
}
