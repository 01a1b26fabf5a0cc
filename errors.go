package getipfs

import "github.com/dep2p/go-getipfs/internal/cache"

// 公共错误定义
var (
	// ErrNoUsableNode 宿主节点与动态节点都不可用
	//
	// Get 返回的错误满足 errors.Is(err, ErrNoUsableNode)，
	// 可用 errors.As 取出 *ResolutionError 查看两条路径的失败原因。
	ErrNoUsableNode = cache.ErrNoUsableNode

	// ErrNotCached 尚未缓存句柄
	ErrNotCached = cache.ErrNotCached

	// ErrClosed Getter 已关闭
	ErrClosed = cache.ErrClosed
)

// ResolutionError 解析失败错误
type ResolutionError = cache.ResolutionError
