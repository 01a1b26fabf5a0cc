package resolver

import (
	"github.com/dep2p/go-getipfs/pkg/interfaces"
	"github.com/dep2p/go-getipfs/pkg/types"
)

// Outcome 一次解析的结果
type Outcome struct {
	// Kind 最终结果分类
	Kind types.OutcomeKind

	// Node 可用句柄，仅 Kind 为 OutcomeWorking 时非空
	Node interfaces.Node

	// Source 句柄来源，决定连接阶段使用的节点地址
	Source types.Source

	// Host 宿主路径的结果分类
	Host types.OutcomeKind

	// Err 失败原因，包含宿主路径与动态路径的全部原因
	Err error
}

// Working 是否得到了可用句柄
func (o Outcome) Working() bool {
	return o.Kind.IsWorking() && o.Node != nil
}

func working(node interfaces.Node, source types.Source) Outcome {
	return Outcome{Kind: types.OutcomeWorking, Node: node, Source: source}
}

func failed(kind types.OutcomeKind, err error) Outcome {
	return Outcome{Kind: kind, Err: err}
}
