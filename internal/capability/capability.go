// Package capability 计算向宿主节点请求的能力集合
//
// 需要显式启用的宿主节点以一组能力名称启用。调用方可以指定自定义列表；
// 无论输入如何，结果总是包含身份查询（id）与版本查询（version），
// 因为健康探测依赖这两个能力。
package capability

import (
	"slices"

	"github.com/dep2p/go-getipfs/pkg/types"
)

// Normalize 计算协商后的能力集合
//
// requested 为 nil 表示未指定，返回默认能力集合；
// 否则保持输入顺序，缺失的 id 与 version 依次追加到末尾。
// 不修改 requested，总是返回新切片。
func Normalize(requested []string) []string {
	if requested == nil {
		return types.DefaultPermissions()
	}

	required := types.RequiredPermissions()
	out := make([]string, 0, len(requested)+len(required))
	out = append(out, requested...)
	for _, name := range required {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Missing 返回 granted 中缺失的必需能力
func Missing(granted []string) []string {
	var missing []string
	for _, name := range types.RequiredPermissions() {
		if !slices.Contains(granted, name) {
			missing = append(missing, name)
		}
	}
	return missing
}
