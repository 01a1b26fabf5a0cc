package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dep2p/go-getipfs/internal/connector"
)

// DefaultWaitTimeout 默认等待超时
const DefaultWaitTimeout = 5 * time.Second

// ConnectWaiter 可等待后台连接结果的对象
type ConnectWaiter interface {
	WaitConnected(ctx context.Context) (connector.Report, error)
}

// WaitConnected 等待后台连接结束，超时或出错则 fail 测试
//
// 示例:
//
//	report := testutil.WaitConnected(t, g)
//	assert.Equal(t, 1, report.Rounds)
func WaitConnected(t testing.TB, w ConnectWaiter) connector.Report {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultWaitTimeout)
	defer cancel()

	report, err := w.WaitConnected(ctx)
	if err != nil {
		t.Fatalf("等待后台连接失败: %v", err)
	}
	return report
}
