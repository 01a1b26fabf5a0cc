package cache

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-getipfs/pkg/types"
)

// 预定义错误
var (
	// ErrNoUsableNode 宿主路径与动态路径均未得到可用句柄
	ErrNoUsableNode = errors.New("getipfs: no usable node")

	// ErrNotCached 尚未缓存句柄
	ErrNotCached = errors.New("cache: no cached node")

	// ErrClosed 缓存已关闭
	ErrClosed = errors.New("cache: closed")
)

// ResolutionError 解析失败错误
//
// errors.Is(err, ErrNoUsableNode) 恒为 true；
// Err 包含宿主路径与动态路径的全部原因。
type ResolutionError struct {
	// Outcome 最终结果分类
	Outcome types.OutcomeKind

	// Host 宿主路径结果分类
	Host types.OutcomeKind

	// Attempt 解析尝试 ID
	Attempt string

	// Err 失败原因
	Err error
}

// Error 实现 error 接口
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%v (host: %s, dynamic: %s): %v", ErrNoUsableNode, e.Host, e.Outcome, e.Err)
}

// Unwrap 返回底层错误
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is(err, ErrNoUsableNode)
func (e *ResolutionError) Is(target error) bool {
	return target == ErrNoUsableNode
}
