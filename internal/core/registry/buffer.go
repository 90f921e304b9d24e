// Package registry 实现线程安全的多播委托注册表
package registry

import (
	"sync/atomic"

	pkgif "github.com/dep2p/go-multicast/pkg/interfaces"
)

// ============================================================================
// refCountedBuffer 实现
// ============================================================================

// refCountedBuffer 引用计数的委托槽位缓冲区
//
// 容量在构造时一次性向分配器预留，此后不再增长（扩容总是"新建更大
// 的快照并复制"）。发布后内容不可变，共享只通过引用计数：retain
// 递增，release 递减，归零时按下标顺序析构已初始化的槽位并归还预留。
type refCountedBuffer struct {
	refs  atomic.Int32
	alloc pkgif.Allocator
	slots []delegate
}

// newBuffer 创建容量为 capacity 的缓冲区，初始引用计数为 1
//
// capacity 为 0 时不分配，返回 nil（空快照不持有缓冲区）。
// 分配器拒绝预留时原样返回其错误（包装了 types.ErrOutOfMemory）。
func newBuffer(alloc pkgif.Allocator, capacity int) (*refCountedBuffer, error) {
	if capacity == 0 {
		return nil, nil
	}

	if err := alloc.ReserveSlots(capacity); err != nil {
		return nil, err
	}

	b := &refCountedBuffer{
		alloc: alloc,
		slots: make([]delegate, 0, capacity),
	}
	b.refs.Store(1)
	return b, nil
}

// retain 递增引用计数
func (b *refCountedBuffer) retain() {
	b.refs.Add(1)
}

// release 递减引用计数并返回递减后的值
//
// 返回 0 时调用方负责调用 destroy。递减与判零是同一个原子操作，
// 与并发的 retain/release 不会交错观察。
func (b *refCountedBuffer) release() int32 {
	return b.refs.Add(-1)
}

// destroy 按下标顺序析构全部已初始化槽位并归还预留
//
// 只允许在 release 返回 0 后调用一次。
func (b *refCountedBuffer) destroy() {
	capacity := cap(b.slots)
	for i := range b.slots {
		b.slots[i].destroy()
	}
	b.slots = nil
	b.alloc.ReleaseSlots(capacity)
}
