// Package testutil 提供测试辅助工具
package testutil

// 测试数据固件
//
// 提供测试中常用的节点地址，确保测试一致性。

const (
	// BootstrapPeer 带 /p2p 后缀的公网引导节点地址
	BootstrapPeer = "/ip4/104.131.131.82/tcp/4001/p2p/QmaCpDMGvV2BGHeYERUEnRQAwe3N8SzbUtfsmvsqQLuvuJ"

	// LoopbackPeer 本机节点地址
	LoopbackPeer = "/ip4/127.0.0.1/tcp/4001"

	// DNSPeer DNS 形式的节点地址
	DNSPeer = "/dns4/node.example.org/tcp/4001"
)
