package types

// IDInfo 节点身份查询结果
//
// 对应 Kubo RPC `/api/v0/id` 的返回内容。
// 健康探测只关心 ID 与 AgentVersion 两个字段。
type IDInfo struct {
	// ID 节点 Peer ID
	ID string `json:"ID"`

	// PublicKey 节点公钥（base64）
	PublicKey string `json:"PublicKey,omitempty"`

	// Addresses 节点监听地址
	Addresses []string `json:"Addresses,omitempty"`

	// AgentVersion 节点实现版本，例如 "kubo/0.29.0/"
	AgentVersion string `json:"AgentVersion"`

	// ProtocolVersion 协议版本
	ProtocolVersion string `json:"ProtocolVersion,omitempty"`
}

// Valid 检查身份信息是否完整
//
// 只有 ID 与 AgentVersion 均非空时返回 true。
func (i IDInfo) Valid() bool {
	return i.ID != "" && i.AgentVersion != ""
}
