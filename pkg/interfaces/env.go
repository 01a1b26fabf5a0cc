package interfaces

// 宿主环境全局绑定名称
//
// 这两个名称是对外约定，不可更改。
const (
	// BindingNode 宿主预先提供的节点句柄
	BindingNode = "ipfs"

	// BindingPackage 动态加载后可用的节点包
	BindingPackage = "Ipfs"
)

// Env 宿主环境
//
// 解析器通过 Env 查询宿主是否预先提供了节点，
// 以及动态加载之后节点包是否可用。
type Env interface {
	// Lookup 查询全局绑定
	Lookup(name string) (any, bool)
}

// MutableEnv 可写的宿主环境
//
// 动态加载器获取节点包后，将其发布到 BindingPackage。
type MutableEnv interface {
	Env

	// Set 设置全局绑定
	Set(name string, value any)
}
