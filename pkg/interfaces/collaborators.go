// Package interfaces 定义 go-multicast 公共接口
//
// 本文件定义注册表依赖的外部协作者接口。
package interfaces

import "github.com/dep2p/go-multicast/pkg/types"

// Allocator 定义槽位配额分配器接口
//
// 快照缓冲区在构造时一次性预留全部委托槽位，析构时成对归还。
// 预留与归还必须严格配对，配额核算是判定缓冲区泄漏的依据。
type Allocator interface {
	// ReserveSlots 预留 n 个委托槽位
	//
	// 配额不足时返回包装了 types.ErrOutOfMemory 的错误。
	ReserveSlots(n int) error

	// ReleaseSlots 归还 n 个委托槽位
	ReleaseSlots(n int)
}

// AccountingAllocator 定义带核算视图的分配器接口
type AccountingAllocator interface {
	Allocator

	// InUse 返回当前在用槽位数
	InUse() int64
}

// Marshaler 定义跨线程封送协作者接口
//
// 目标不能跨线程直接调用时，注册表通过 Marshaler 将其封送为可解析
// 句柄；每次调用前先解析回活动目标。
type Marshaler interface {
	// Wrap 将目标封送为可解析句柄
	Wrap(target interface{}) (Reference, error)
}

// Reference 定义可解析句柄接口
//
// 实现 io.Closer 的句柄会在最后一个持有它的委托析构时被关闭一次。
type Reference interface {
	// Resolve 将句柄解析为活动目标
	//
	// 目标所属上下文已销毁时返回包装了 types.ErrContextGone 的错误，
	// 目标本身已撤销时返回包装了 types.ErrTargetGone 的错误。
	Resolve() (interface{}, error)
}

// MarshalContext 定义可关闭的封送上下文接口
//
// 上下文关闭后，由它签发的全部句柄解析失败（ErrContextGone）。
type MarshalContext interface {
	Marshaler

	// ID 返回上下文标识
	ID() string

	// Close 关闭上下文并吊销全部句柄
	Close() error
}

// AgileObject 跨线程能力标记接口
//
// 实现该接口的目标被视为可在任意线程直接调用，注册时不经 Marshaler
// 封送。未配置 Marshaler 时所有目标都按直接引用处理。
type AgileObject interface {
	// AgileObject 标记方法，无行为
	AgileObject()
}

// ErrorClassifier 定义调用错误分类器接口
type ErrorClassifier interface {
	// Classify 将委托调用返回的错误归入 ErrorClass
	Classify(err error) types.ErrorClass
}
