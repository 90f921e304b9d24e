// Package interfaces 定义 go-multicast 公共接口
//
// 本文件定义多播注册表与类型化中心的公共表面。
package interfaces

import "github.com/dep2p/go-multicast/pkg/types"

// CallbackFunc 委托调用回调
//
// Call 对快照中的每个委托依次执行该回调，target 为注册时传入的目标
// （间接委托先经 Reference 解析）。返回的错误按 ErrorClassifier 分类处理。
type CallbackFunc func(target interface{}) error

// Event 定义线程安全的多播委托注册表接口
//
// 写操作（Add/Remove/Clear）相互串行，Call 只在指针交换的瞬间与写者
// 互斥，回调调用完全在锁外进行。Call 看到的始终是某个完整发布过的
// 委托集合快照，绝不会观察到半变更状态。
type Event interface {
	// Add 注册委托目标，返回用于撤销的令牌
	//
	// 分配或封送失败时注册不发生，注册表状态不变。
	Add(target interface{}) (types.Token, error)

	// Remove 按令牌撤销委托
	//
	// 最多移除一个匹配（首个匹配生效）；令牌未知时为无副作用的成功。
	Remove(token types.Token) error

	// Clear 移除全部委托
	Clear()

	// Call 以回调依次调用当前快照中的全部委托
	//
	// 分类为目标失效/上下文销毁的调用错误触发自愈移除并继续；
	// 其余错误中止迭代并原样返回。
	Call(fn CallbackFunc) error

	// Len 返回当前快照中的委托数量
	Len() int

	// Stats 返回累计运行统计
	Stats() types.Stats

	// Close 关闭注册表，之后 Add 返回错误
	Close() error
}

// Handler 定义类型化事件处理器接口
type Handler interface {
	// HandleEvent 处理一个事件
	HandleEvent(event interface{}) error
}

// Hub 定义类型化多播中心接口
//
// Hub 为每个事件类型维护一个独立的 Event 注册表，Emit 按事件的动态
// 类型扇出到对应注册表。
type Hub interface {
	// Register 为事件类型注册处理器
	//
	// eventType 必须是指针（如 new(MyEvent)），实际按其元素类型分组。
	Register(eventType interface{}, handler Handler) (types.Token, error)

	// Deregister 按令牌撤销处理器注册
	Deregister(eventType interface{}, token types.Token) error

	// Emit 发射事件到对应类型的全部处理器
	//
	// 事件按值发射（Register 用 new(MyEvent)，Emit 用 MyEvent 值）。
	// 没有处理器注册该类型时为无副作用的成功。
	Emit(event interface{}) error

	// EventTypes 返回所有已注册的事件类型（零值实例）
	EventTypes() []interface{}

	// Close 关闭中心及其全部注册表
	Close() error
}
